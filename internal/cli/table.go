package cli

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/fatetable/internal/api/response"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Inspect tables",
	}

	cmd.AddCommand(newTableGetCmd())

	return cmd
}

func newTableGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <table-id>",
		Short: "Show the current state of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Table

			if err := client.Get(cmd.Context(), "/api/v1/tables/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr()).Print(result)
			return nil
		},
	}
}
