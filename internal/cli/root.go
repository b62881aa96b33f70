package cli

import (
	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/config"
	"github.com/mfriedel/voicenotes/internal/app"
	"github.com/mfriedel/voicenotes/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "voicenotes",
		Short: "Record voice notes, transcribe and summarize them",
		Long:  "A CLI client for the voicenotes API: capture audio from the microphone, upload it as a recording, and track transcription, summary and chapter jobs to completion.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewRecordCmd(deps))
	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewDeleteCmd(deps))
	rootCmd.AddCommand(NewEditCmd(deps))
	rootCmd.AddCommand(NewLoginCmd(deps))
	rootCmd.AddCommand(NewLogoutCmd(deps))
	rootCmd.AddCommand(NewWhoamiCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))

	return rootCmd
}
