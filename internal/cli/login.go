package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/internal/output"
)

func NewLoginCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "login <session-id>",
		Short: "Log in with a session ID from the identity provider",
		Long:  "Exchange the session ID obtained from the identity provider redirect for an API session token and store it locally.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			sess, err := deps.App.Login.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			formatter.LoggedIn(sess.User.Name, sess.User.Email)
			return nil
		},
	}
}

func NewLogoutCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if err := deps.App.Logout.Execute(); err != nil {
				return err
			}
			formatter.LoggedOut()
			return nil
		},
	}
}
