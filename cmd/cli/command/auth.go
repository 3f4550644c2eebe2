package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

// auth.go handles login, registration, logout and whoami.

// authCmd represents the auth command for authentication related subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  `Authenticate with the webtoonhub API server. Supports login, registration, logout.`,
}

// registerCmd represents the register command
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new webtoonhub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		email, _ := cmd.Flags().GetString("email")

		a := newApp(cmd.Context())
		user, err := a.session.Register(cmd.Context(), username, email, password)
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		printSuccess("Registration successful! Please login to continue.")
		fmt.Printf("UserID: %s\n", user.ID)
		return nil
	},
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login to your webtoonhub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")

		a := newApp(cmd.Context())
		user, err := a.session.Login(cmd.Context(), username, password)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		printSuccess("Logged in as %s", user.Username)
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout from your webtoonhub account",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		if err := a.session.Logout(); err != nil {
			return fmt.Errorf("could not remove stored token: %w", err)
		}
		printSuccess("Successfully logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cmd.Context())
		user := a.session.User()
		if user == nil {
			fmt.Println("Not logged in.")
			return nil
		}
		fmt.Printf("%s <%s> (%s)\n", user.Username, user.Email, user.Role)
		return nil
	},
}

// init function to add auth commands to root command
func init() {
	authCmd.AddCommand(registerCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(authCmd)

	// add flags for register command
	registerCmd.Flags().StringP("username", "u", "", "Username for the new account")
	registerCmd.Flags().StringP("password", "p", "", "Password for the new account")
	registerCmd.Flags().StringP("email", "e", "", "Email address for the new account")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("password")
	registerCmd.MarkFlagRequired("email")

	// add flags for login command
	loginCmd.Flags().StringP("username", "u", "", "Username for the account")
	loginCmd.Flags().StringP("password", "p", "", "Password for the account")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
}
