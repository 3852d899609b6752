package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/reapi-client/internal/constants"
)

// NewAPICommand creates the api command group for raw requests.
func NewAPICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Send raw REST API requests",
		Long: `Send a request to any REST API path and print the JSON response.

Examples:
  reapi api get /v1/cluster
  reapi api post /v1/bdbs --data '{"name":"cache","memory_size":104857600}'
  reapi api delete /v1/bdbs/3`,
	}

	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		cmd.AddCommand(newAPIMethodCommand(method))
	}

	return cmd
}

func newAPIMethodCommand(method string) *cobra.Command {
	var data string

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " PATH",
		Short: "Send a " + method + " request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := parseBody(data)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx, cancel := commandContext()
			defer cancel()

			result, err := client.Raw().Execute(ctx, method, args[0], body)
			if err != nil {
				return err
			}

			return output(result, nil)
		},
	}

	if method != http.MethodGet && method != http.MethodDelete {
		cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body, or @file to read it from a file")
	}

	return cmd
}

// parseBody decodes a --data value. An empty value means no body.
func parseBody(data string) (any, error) {
	if data == "" {
		return nil, nil
	}

	raw := []byte(data)

	if path, ok := strings.CutPrefix(data, "@"); ok {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}

		raw = content
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: %w", constants.ErrInvalidJSONBody, err)
	}

	return body, nil
}
