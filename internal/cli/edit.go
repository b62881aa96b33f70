package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/output"
)

func NewEditCmd(deps *Dependencies) *cobra.Command {
	var (
		title string
		tags  []string
		notes string
	)

	cmd := &cobra.Command{
		Use:   "edit <recording-id>",
		Short: "Edit a recording's title, tags or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if !cmd.Flags().Changed("title") && !cmd.Flags().Changed("tag") && !cmd.Flags().Changed("notes") {
				return fmt.Errorf("nothing to change: pass --title, --tag or --notes")
			}

			err := deps.App.Update.Execute(cmd.Context(), args[0], api.UpdateRecording{
				Title: title,
				Tags:  tags,
				Notes: notes,
			})
			if err != nil {
				return err
			}
			formatter.Success("Recording updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replacement tag set (repeatable)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "New notes")

	return cmd
}
