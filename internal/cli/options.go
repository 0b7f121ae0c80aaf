package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/reru/internal/output"
)

// execOptions controls how a request is sent and how its result is shown.
type execOptions struct {
	timeout  time.Duration
	insecure bool
	verbose  bool
	noColor  bool
	format   string
	extract  string
	schema   string
	repeat   int
}

func addExecFlags(cmd *cobra.Command, o *execOptions) {
	cmd.Flags().DurationVarP(&o.timeout, "timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().BoolVarP(&o.insecure, "insecure", "k", false, "Skip TLS certificate verification")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&o.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVarP(&o.format, "output", "o", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVarP(&o.extract, "extract", "e", "", "Print only the value at this JSON path of the response body")
	cmd.Flags().StringVar(&o.schema, "schema", "", "Validate the JSON response body against this JSON Schema file")
	cmd.Flags().IntVarP(&o.repeat, "repeat", "n", 1, "Send the request this many times and print a latency summary")
}

func (o *execOptions) formatter(out io.Writer) (output.FormatProvider, error) {
	format, err := output.ParseOutputFormat(o.format)
	if err != nil {
		return nil, err
	}
	noColor := o.noColor
	if f, ok := out.(*os.File); ok {
		noColor = output.ColorDisabled(noColor, f)
	} else {
		noColor = true
	}
	return output.GetFormatter(format, o.verbose, noColor), nil
}

// parsePair splits "name=value". The value may be empty or contain '='.
func parsePair(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid pair %q, expected name=value", s)
	}
	return name, value, nil
}

// parseHeader splits "Name: value".
func parseHeader(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid header %q, expected \"Name: value\"", s)
	}
	return name, strings.TrimSpace(value), nil
}
