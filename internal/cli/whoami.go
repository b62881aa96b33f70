package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mfriedel/voicenotes/internal/output"
)

func NewWhoamiCmd(deps *Dependencies) *cobra.Command {
	var referral bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			user, err := deps.App.Account.Profile(cmd.Context())
			if err != nil {
				return err
			}
			formatter.UserProfile(user.Name, user.Email, user.SubscriptionStatus)

			if !referral {
				return nil
			}
			ref, err := deps.App.Account.Referral(cmd.Context())
			if err != nil {
				return err
			}
			formatter.ReferralInfo(ref.ReferralCode, ref.DiscountAmount, ref.MonthlyCost)
			return nil
		},
	}

	cmd.Flags().BoolVar(&referral, "referral", false, "Also show the referral code and discount")

	return cmd
}
