package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var likeCmd = &cobra.Command{
	Use:   "like [webtoon id]",
	Short: "Like a webtoon, or take the like back",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "webtoon")
		if err != nil {
			return err
		}
		a, err := newAuthedApp(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := a.client.ToggleLike(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to toggle like: %w", err)
		}
		if resp.Liked {
			printSuccess("Liked (%d likes)", resp.LikeCount)
		} else {
			printSuccess("Like removed (%d likes)", resp.LikeCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(likeCmd)
}
