package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fileshare/internal/domain/account"
	"fileshare/internal/domain/auth"
	"fileshare/internal/infrastructure/config"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts in users.json",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), config.Load(), consoleLogger())
		if err != nil {
			return err
		}
		defer a.Close()

		accounts, err := a.Accounts.List(cmd.Context(), auth.SystemSession())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tROLE\tCREATED")
		for _, acc := range accounts {
			fmt.Fprintf(w, "%s\t%s\t%s\n", acc.Username, acc.Role, acc.Created.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var userAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Create an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			if password, err = readPassword("Password for " + args[0] + ": "); err != nil {
				return err
			}
		}

		a, err := newApp(cmd.Context(), config.Load(), consoleLogger())
		if err != nil {
			return err
		}
		defer a.Close()

		acc, err := a.Accounts.Add(cmd.Context(), auth.SystemSession(), account.CreateAccountRequest{
			Username: args[0],
			Password: password,
			Role:     account.Role(role),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", acc.Username, acc.Role)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), config.Load(), consoleLogger())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Accounts.Delete(cmd.Context(), auth.SystemSession(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var userPasswdCmd = &cobra.Command{
	Use:   "passwd <username>",
	Short: "Change an account password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if password == "" {
			var err error
			if password, err = readPassword("New password for " + args[0] + ": "); err != nil {
				return err
			}
		}

		a, err := newApp(cmd.Context(), config.Load(), consoleLogger())
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Accounts.SetPassword(cmd.Context(), auth.SystemSession(), args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Password updated for %s\n", args[0])
		return nil
	},
}

func init() {
	userAddCmd.Flags().String("role", string(account.RoleUser), "Account role (admin or user)")
	userAddCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")
	userPasswdCmd.Flags().StringP("password", "p", "", "Password (prompted when omitted)")

	userCmd.AddCommand(userListCmd, userAddCmd, userDeleteCmd, userPasswdCmd)
	rootCmd.AddCommand(userCmd)
}
