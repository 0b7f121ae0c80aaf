package cli

import (
	"github.com/spf13/cobra"

	reru "github.com/wesleyorama2/reru/http"
	"github.com/wesleyorama2/reru/internal/config"
)

func newRunCmd() *cobra.Command {
	var (
		vars []string
		eo   execOptions
	)

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Send a request described in a YAML or JSON file",
		Long: `Send a request described in a YAML or JSON file.

Example file:

  method: post
  url: https://{{host}}/post
  params:
    - name: show_env
      value: "1"
  json: ["蟹", "Ferris"]
  extract: $.json[0]
  variables:
    host: httpbin.org`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rf, err := config.LoadRequestFile(args[0])
			if err != nil {
				return err
			}

			overrides := make(map[string]string, len(vars))
			for _, v := range vars {
				name, value, err := parsePair(v)
				if err != nil {
					return err
				}
				overrides[name] = value
			}
			rf = rf.Resolve(overrides)

			if errs := rf.Validate(); len(errs) > 0 {
				return errs
			}

			// File values apply unless the flag was given explicitly.
			if !cmd.Flags().Changed("timeout") && rf.Timeout != "" {
				timeout, err := rf.TimeoutDuration()
				if err != nil {
					return err
				}
				eo.timeout = timeout
			}
			if !cmd.Flags().Changed("extract") {
				eo.extract = rf.Extract
			}
			if !cmd.Flags().Changed("schema") {
				eo.schema = rf.SchemaPath()
			}

			return execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func() (*reru.Request, error) {
				return rf.Build()
			}, eo)
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Variable name=value for {{name}} placeholders (can be used multiple times)")
	addExecFlags(cmd, &eo)

	return cmd
}
