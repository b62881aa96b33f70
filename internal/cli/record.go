package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/domain/recording/usecases"
	"github.com/mfriedel/voicenotes/internal/output"
	"github.com/mfriedel/voicenotes/internal/poller"
)

func NewRecordCmd(deps *Dependencies) *cobra.Command {
	var (
		title   string
		tags    []string
		notes   string
		process []string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a voice note and upload it",
		Long:  "Record audio from the microphone until Ctrl+C, upload it as a recording, and optionally start processing jobs with --process.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			kinds, err := parseKinds(process)
			if err != nil {
				return err
			}

			if title == "" {
				title = "Voice note " + time.Now().Format("2006-01-02 15:04")
			}

			ctx := cmd.Context()

			recCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			controller := deps.App.Capture

			if err := controller.Start(recCtx); err != nil {
				return err
			}
			formatter.RecordingStarted()

			// Block until Ctrl+C, then tear down the device.
			<-recCtx.Done()
			stop()
			controller.Stop()

			duration := time.Duration(controller.ElapsedSeconds()) * time.Second
			formatter.RecordingStopped(duration)

			formatter.Uploading()
			rec, err := deps.App.Upload.Execute(ctx, usecases.UploadOptions{
				Title:    title,
				Tags:     tags,
				Notes:    notes,
				Audio:    controller.Payload(),
				Duration: duration.Seconds(),
			})
			if err != nil {
				// The process is about to exit, so keep the audio on disk
				// for a manual retry instead of losing it.
				if path, saveErr := rescuePayload(deps.Config.StateDir, controller.Payload()); saveErr == nil {
					formatter.Warning("Upload failed, audio saved to " + path)
				}
				return err
			}
			formatter.Uploaded(rec.ID, rec.Title)
			controller.Reset()

			if len(kinds) == 0 {
				return nil
			}
			return runProcessing(ctx, deps, formatter, rec.ID, kinds)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Recording title")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag to attach (repeatable)")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Free-form notes")
	cmd.Flags().StringSliceVar(&process, "process", nil, "Processing to start after upload: full, summary, chapters (repeatable)")

	return cmd
}

func rescuePayload(stateDir string, payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", os.ErrNotExist
	}
	path := filepath.Join(stateDir, "unsaved-"+time.Now().Format("20060102-150405")+".ogg")
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func parseKinds(values []string) ([]api.ProcessKind, error) {
	kinds := make([]api.ProcessKind, 0, len(values))
	for _, v := range values {
		kind, err := api.ParseKind(v)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func runProcessing(ctx context.Context, deps *Dependencies, formatter *output.Formatter, recordingID string, kinds []api.ProcessKind) error {
	for _, kind := range kinds {
		formatter.ProcessingStarted(kind.String())
	}
	err := deps.App.Process.Execute(ctx, recordingID, kinds, func(kind api.ProcessKind, res poller.Result) {
		if res.Err != nil {
			formatter.ProcessingFailed(kind.String(), res.Err)
			return
		}
		formatter.ProcessingDone(kind.String())
	})
	return err
}
