package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/internal/output"
)

func NewDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <recording-id>",
		Short: "Delete a recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if err := deps.App.Delete.Execute(cmd.Context(), args[0]); err != nil {
				return err
			}
			formatter.Success("Recording deleted")
			return nil
		},
	}
}
