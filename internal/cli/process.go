package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/internal/output"
)

func NewProcessCmd(deps *Dependencies) *cobra.Command {
	var types []string

	cmd := &cobra.Command{
		Use:   "process <recording-id>",
		Short: "Start processing for an existing recording and wait for it",
		Long:  "Trigger server-side processing (transcription, summary or chapter detection) for a recording and poll until every requested job reaches a terminal state.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			kinds, err := parseKinds(types)
			if err != nil {
				return err
			}

			return runProcessing(cmd.Context(), deps, formatter, args[0], kinds)
		},
	}

	cmd.Flags().StringSliceVar(&types, "type", []string{"full"}, "Processing kind: full, summary, chapters (repeatable)")

	return cmd
}
