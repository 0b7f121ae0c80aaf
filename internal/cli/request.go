package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	reru "github.com/wesleyorama2/reru/http"
)

var methods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
	http.MethodTrace,
	http.MethodConnect,
}

// requestOptions are the builder inputs gathered from flags.
type requestOptions struct {
	params  []string
	headers []string
	json    string
	forms   []string
}

func newMethodCmd(method string) *cobra.Command {
	var (
		ro requestOptions
		eo execOptions
	)

	cmd := &cobra.Command{
		Use:   strings.ToLower(method) + " URL",
		Short: fmt.Sprintf("Make a %s request to the specified URL", method),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := args[0]
			build := func() (*reru.Request, error) {
				return buildRequest(method, rawURL, ro)
			}
			return execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), build, eo)
		},
	}

	cmd.Flags().StringArrayVarP(&ro.params, "param", "p", nil, "Query parameter name=value (can be used multiple times)")
	cmd.Flags().StringArrayVarP(&ro.headers, "header", "H", nil, "HTTP header \"Name: value\" (can be used multiple times)")
	cmd.Flags().StringVarP(&ro.json, "json", "j", "", "JSON document to send as the request body")
	cmd.Flags().StringArrayVarP(&ro.forms, "form", "f", nil, "Form field name=value to send URL-encoded (can be used multiple times)")
	addExecFlags(cmd, &eo)

	return cmd
}

// buildRequest applies flags to a new builder. A JSON body is applied before
// form fields, so form fields win when both are given.
func buildRequest(method, rawURL string, ro requestOptions) (*reru.Request, error) {
	req, err := reru.New(method, rawURL)
	if err != nil {
		return nil, err
	}

	for _, p := range ro.params {
		name, value, err := parsePair(p)
		if err != nil {
			return nil, err
		}
		req.Param(name, value)
	}

	for _, h := range ro.headers {
		name, value, err := parseHeader(h)
		if err != nil {
			return nil, err
		}
		req.Header(name, value)
	}

	if ro.json != "" {
		var doc json.RawMessage
		if err := json.Unmarshal([]byte(ro.json), &doc); err != nil {
			return nil, fmt.Errorf("invalid --json value: %w", err)
		}
		if req, err = req.BodyJSON(doc); err != nil {
			return nil, err
		}
	}

	for _, f := range ro.forms {
		name, value, err := parsePair(f)
		if err != nil {
			return nil, err
		}
		req.BodyForm(name, value)
	}

	return req, nil
}
