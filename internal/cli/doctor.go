package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/internal/capture"
	"github.com/mfriedel/voicenotes/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if err := capture.CheckFFmpeg(); err != nil {
				f.SetupCheck("ffmpeg", false, "not found. Install ffmpeg and make sure it is on PATH")
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			f.SetupCheck("Audio input", true, deps.Config.InputFormat+" / "+deps.Config.InputDevice)

			if err := deps.App.API.Health(cmd.Context()); err != nil {
				f.SetupCheck("API", false, deps.Config.APIBaseURL+" unreachable: "+err.Error())
				ok = false
			} else {
				f.SetupCheck("API", true, deps.Config.APIBaseURL)
			}

			if deps.App.Session != nil {
				f.SetupCheck("Session", true, "logged in as "+deps.App.Session.User.Email)
			} else {
				f.SetupCheck("Session", false, "not logged in. Run 'voicenotes login <session-id>'")
				ok = false
			}

			f.SetupCheck("State directory", true, deps.Config.StateDir)

			if ok {
				f.Success("\nAll prerequisites met. Ready to record!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
