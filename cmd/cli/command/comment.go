package command

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webtoonhub/cmd/cli/command/state"
	"webtoonhub/cmd/cli/dto"
)

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Comment commands",
	Long:  `Read and write comments on a webtoon`,
}

var listCommentCmd = &cobra.Command{
	Use:   "list [webtoon id]",
	Short: "List the comments of a webtoon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "webtoon")
		if err != nil {
			return err
		}

		a := newApp(cmd.Context())
		comments, err := a.client.ListComments(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get comments: %w", err)
		}
		if len(comments) == 0 {
			fmt.Println("No comments yet.")
			return nil
		}
		for _, c := range comments {
			printComment(c)
		}
		return nil
	},
}

var addCommentCmd = &cobra.Command{
	Use:   "add [webtoon id] [content]",
	Short: "Comment on a webtoon",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "webtoon")
		if err != nil {
			return err
		}
		content := strings.TrimSpace(strings.Join(args[1:], " "))
		if content == "" {
			return &state.ValidationError{Field: "content", Message: "is required"}
		}
		author, _ := cmd.Flags().GetString("as")

		a := newApp(cmd.Context())
		comment, err := a.client.CreateComment(cmd.Context(), &dto.CreateCommentRequest{
			WebtoonID:  id,
			Content:    content,
			AuthorName: &author,
		})
		if err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}

		printSuccess("Comment posted")
		printComment(*comment)
		return nil
	},
}

func printComment(c dto.Comment) {
	color.New(color.Bold).Printf("%s", c.AuthorName)
	color.HiBlack("  %s", c.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("  %s\n", c.Content)
}

func init() {
	commentCmd.AddCommand(listCommentCmd)
	commentCmd.AddCommand(addCommentCmd)
	rootCmd.AddCommand(commentCmd)

	addCommentCmd.Flags().String("as", state.DefaultReaderName, "Name shown with the comment")
}
