package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// useSettings sets viper keys for the duration of the test. Viper is global,
// so callers must not run in parallel.
func useSettings(t *testing.T, settings map[string]any) {
	t.Helper()

	for key, value := range settings {
		viper.Set(key, value)
	}

	t.Cleanup(viper.Reset)
}

// captureOutput redirects command output into a buffer until the test ends.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer

	previous := stdout
	stdout = &buf

	t.Cleanup(func() { stdout = previous })

	return &buf
}

// newCluster starts a fake cluster and points the CLI settings at it.
func newCluster(t *testing.T, format string, handler http.HandlerFunc) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	useSettings(t, map[string]any{
		"url":      server.URL,
		"user":     "admin@redis.local",
		"password": "secret",
		"timeout":  "5s",
		"output":   format,
	})
}

// runCommand executes cmd with args and returns its error.
func runCommand(cmd *cobra.Command, args ...string) error {
	if args == nil {
		args = []string{}
	}

	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return cmd.Execute()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
