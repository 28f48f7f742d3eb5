package commands

import (
	"github.com/spf13/cobra"

	"docvault"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the document now and every time its file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var printErr error
			err := appCtx.Watch(cmd.Context(), func(d docvault.Document) {
				if err := printJSON(out, d); err != nil && printErr == nil {
					printErr = err
				}
			})
			if err != nil {
				return err
			}
			return printErr
		},
	}
}
