package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"fileshare/internal/application/auth"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Print a bcrypt digest for a password",
	Long:  "Print a bcrypt digest suitable for the password_hash field of users.json.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		cost, _ := cmd.Flags().GetInt("cost")

		if password == "" {
			var err error
			if password, err = readPassword("Password: "); err != nil {
				return err
			}
		}
		if password == "" {
			return fmt.Errorf("password must not be empty")
		}

		digest, err := auth.HashPassword(password, cost)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), digest)
		return nil
	},
}

func init() {
	passwdCmd.Flags().StringP("password", "p", "", "Password to hash (prompted when omitted)")
	passwdCmd.Flags().Int("cost", 0, "bcrypt cost (0 uses the default)")
	rootCmd.AddCommand(passwdCmd)
}
