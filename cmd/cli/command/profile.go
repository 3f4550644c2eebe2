package command

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webtoonhub/cmd/cli/command/state"
	"webtoonhub/cmd/cli/dto"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Your profile, stats and liked webtoons",
}

var showProfileCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp(cmd.Context())
		if err != nil {
			return err
		}
		user := a.session.User()

		profile, err := state.LoadProfile(cmd.Context(), a.client)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		color.New(color.Bold).Printf("%s\n", user.Username)
		fmt.Printf("Email: %s\n", user.Email)
		if user.Bio != nil {
			fmt.Printf("Bio: %s\n", *user.Bio)
		}
		fmt.Printf("Joined: %s\n\n", user.CreatedAt.Local().Format("2006-01-02"))

		fmt.Printf("My webtoons: %d   Total views: %d   Total likes: %d\n\n",
			profile.Stats.Webtoons, profile.Stats.Views, profile.Stats.Likes)

		color.Cyan("Liked webtoons")
		if len(profile.Liked) == 0 {
			fmt.Println("  none yet")
			return nil
		}
		for _, w := range profile.Liked {
			printWebtoonLine(w)
		}
		return nil
	},
}

var updateProfileCmd = &cobra.Command{
	Use:   "update",
	Short: "Change username, email, bio or password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp(cmd.Context())
		if err != nil {
			return err
		}
		user := a.session.User()

		req := &dto.UpdateUserRequest{
			Username: optional(cmd, "username"),
			Email:    optional(cmd, "email"),
			Bio:      optional(cmd, "bio"),
			Password: optional(cmd, "password"),
		}
		if req.Username == nil && req.Email == nil && req.Bio == nil && req.Password == nil {
			return &state.ValidationError{Field: "profile", Message: "nothing to update"}
		}
		if req.Password != nil && len(*req.Password) < 8 {
			return &state.ValidationError{Field: "password", Message: "must be at least 8 characters"}
		}

		updated, err := a.client.UpdateUser(cmd.Context(), user.ID, req)
		if err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		a.session.SetUser(updated)
		printSuccess("Profile updated")
		return nil
	},
}

func init() {
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(updateProfileCmd)
	rootCmd.AddCommand(profileCmd)

	updateProfileCmd.Flags().StringP("username", "u", "", "New username")
	updateProfileCmd.Flags().StringP("email", "e", "", "New email")
	updateProfileCmd.Flags().StringP("bio", "b", "", "New bio")
	updateProfileCmd.Flags().StringP("password", "p", "", "New password")
}
