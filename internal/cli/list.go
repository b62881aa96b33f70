package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	var cached bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if cached {
				entries, err := deps.App.List.Cached()
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					formatter.Info("No recordings found")
					return nil
				}
				formatter.RecordingListHeader(true)
				for _, e := range entries {
					formatter.RecordingListItem(e.ID, e.Title, e.Status,
						time.Duration(e.Duration)*time.Second, e.HasTranscript, e.HasSummary)
				}
				return nil
			}

			recs, err := deps.App.List.Execute(cmd.Context())
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				formatter.Info("No recordings found")
				return nil
			}

			formatter.RecordingListHeader(false)
			for _, r := range recs {
				var duration float64
				if r.Duration != nil {
					duration = *r.Duration
				}
				formatter.RecordingListItem(r.ID, r.Title, r.Status,
					time.Duration(duration)*time.Second, r.Transcript != nil, r.Summary != nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&cached, "cached", false, "List from the local cache without contacting the API")

	return cmd
}
