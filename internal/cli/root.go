package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

// NewRootCmd builds the reru command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "reru",
		Short:   "A small fluent HTTP request client",
		Version: version,
		Long: `reru builds an HTTP request from query parameters, headers and a JSON
or URL-encoded form body, sends it, and prints the response.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, method := range methods {
		root.AddCommand(newMethodCmd(method))
	}
	root.AddCommand(newRunCmd())

	return root
}

// Execute runs the root command with the process arguments.
// This is called by main.main().
func Execute() error {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
