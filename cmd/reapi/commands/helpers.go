package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
	"github.com/fivetwenty-io/reapi-client/internal/sink"
	"github.com/fivetwenty-io/reapi-client/pkg/reapi"
	"github.com/fivetwenty-io/reapi-client/pkg/reclient"
)

// stdout is swapped in tests.
var stdout io.Writer = os.Stdout

// CreateClient builds a client from the bound flags, environment and config
// file. The password is prompted for when stdin is a terminal.
func CreateClient() (reapi.Client, error) {
	password := viper.GetString("password")

	if password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprint(os.Stderr, "Password: ")

		bytePassword, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)

		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}

		password = string(bytePassword)
	}

	if password == "" {
		return nil, constants.ErrNoPasswordConfigured
	}

	verbose := viper.GetBool("verbose")

	client, err := reclient.NewBuilder().
		BaseURL(viper.GetString("url")).
		Credentials(viper.GetString("user"), password).
		Insecure(viper.GetBool("insecure")).
		Timeout(viper.GetDuration("timeout")).
		Logger(reapi.NewSlogLogger(slog.Default())).
		Debug(verbose).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

// commandContext returns a context canceled on SIGINT or SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// parseUID parses a numeric resource UID argument.
func parseUID(arg string) (int, error) {
	uid, err := strconv.Atoi(arg)
	if err != nil || uid < 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidUID, arg)
	}

	return uid, nil
}

// outputFormat returns the requested output format.
func outputFormat() (string, error) {
	format := viper.GetString("output")

	switch format {
	case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
		return format, nil
	case "":
		return constants.FormatTable, nil
	default:
		return "", fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, format)
	}
}

// renderTable writes a table with the given header through fill.
func renderTable(header []any, fill func(table *tablewriter.Table)) error {
	table := tablewriter.NewWriter(stdout)
	table.Header(header...)
	fill(table)

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// output writes v in the requested format; table mode calls tableFn.
func output(v any, tableFn func() error) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	switch format {
	case constants.FormatJSON:
		return outputJSON(v)
	case constants.FormatYAML:
		return outputYAML(v)
	default:
		if tableFn == nil {
			return outputJSON(v)
		}

		return tableFn()
	}
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// outputYAML goes through JSON so unknown fields kept in Extra survive.
func outputYAML(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	encoder := yaml.NewEncoder(stdout)
	encoder.SetIndent(constants.JSONIndentSize)

	if err := encoder.Encode(tree); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

// outputLine writes one streamed item. Table mode falls back to compact
// JSON lines since a table cannot grow row by row.
func outputLine(v any) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	if format == constants.FormatYAML {
		fmt.Fprintln(stdout, "---")

		return outputYAML(v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	_, err = fmt.Fprintln(stdout, string(data))

	return err
}

// consumeStream prints every item of stream, or forwards them to NATS when
// --nats-url is set. The first fetch error ends the command.
func consumeStream[T any](stream reapi.Stream[T]) error {
	if natsURL := viper.GetString("nats-url"); natsURL != "" {
		s, err := sink.Connect(natsURL, viper.GetString("nats-subject"))
		if err != nil {
			return err
		}

		defer func() { _ = s.Close() }()

		published, err := sink.Forward(s, stream)
		slog.Info("stream ended", "published", published, "subject", s.Subject())

		return err
	}

	for item, err := range stream.All() {
		if err != nil {
			return err
		}

		if err := outputLine(item); err != nil {
			return err
		}
	}

	return nil
}

func deref[T any](value *T) string {
	if value == nil {
		return constants.NotAvailable
	}

	return fmt.Sprint(*value)
}

func orNA(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// extraSummary renders unclaimed fields as "key=value" pairs.
func extraSummary(extra reapi.Extra) string {
	pairs := make([]string, 0, len(extra))

	for _, key := range slices.Sorted(maps.Keys(extra)) {
		pairs = append(pairs, key+"="+strings.Trim(string(extra[key]), `"`))
	}

	return strings.Join(pairs, " ")
}
