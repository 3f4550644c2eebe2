package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webtoonhub/cmd/cli/command/state"
	"webtoonhub/cmd/cli/dto"
)

var webtoonCmd = &cobra.Command{
	Use:   "webtoon",
	Short: "Webtoon management commands",
	Long:  `Manage webtoons: list, view, create, update and delete`,
}

var listWebtoonCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of published webtoons",
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		perPage, _ := cmd.Flags().GetInt("per-page")

		a := newApp(cmd.Context())
		list, err := a.client.ListWebtoons(cmd.Context(), page, perPage)
		if err != nil {
			return fmt.Errorf("failed to get webtoon list: %w", err)
		}

		if len(list.Webtoons) == 0 {
			fmt.Println("No webtoons found.")
			return nil
		}
		fmt.Printf("Page %d (%d webtoons in total):\n\n", list.Page, list.Total)
		for _, w := range list.Webtoons {
			printWebtoonLine(w)
		}
		if list.HasMore {
			fmt.Printf("\nMore on page %d.\n", list.Page+1)
		}
		return nil
	},
}

var myWebtoonCmd = &cobra.Command{
	Use:   "my",
	Short: "List your own webtoons",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp(cmd.Context())
		if err != nil {
			return err
		}
		webtoons, err := a.client.MyWebtoons(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get your webtoons: %w", err)
		}
		if len(webtoons) == 0 {
			fmt.Println("You have not created any webtoon yet.")
			return nil
		}
		for _, w := range webtoons {
			printWebtoonLine(w)
		}
		return nil
	},
}

var showWebtoonCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one webtoon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "webtoon")
		if err != nil {
			return err
		}

		a := newApp(cmd.Context())
		w, err := a.client.GetWebtoon(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get webtoon: %w", err)
		}
		printWebtoonDetail(w)
		return nil
	},
}

var createWebtoonCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a webtoon",
	Long: `Create a webtoon. Without --title the command asks for each field
in turn, the way the create page walks through its steps.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newAuthedApp(cmd.Context())
		if err != nil {
			return err
		}

		req := &dto.CreateWebtoonRequest{
			Description:  optional(cmd, "description"),
			AuthorName:   optional(cmd, "author"),
			Genre:        optional(cmd, "genre"),
			Theme:        optional(cmd, "theme"),
			StoryStyle:   optional(cmd, "style"),
			ThumbnailURL: optional(cmd, "thumbnail"),
		}
		req.Title, _ = cmd.Flags().GetString("title")
		if req.Title == "" {
			askWebtoon(req)
		}
		if strings.TrimSpace(req.Title) == "" {
			return &state.ValidationError{Field: "title", Message: "is required"}
		}

		w, err := a.client.CreateWebtoon(cmd.Context(), req)
		if err != nil {
			return fmt.Errorf("failed to create webtoon: %w", err)
		}
		printSuccess("Created webtoon %d: %s", w.ID, w.Title)
		return nil
	},
}

var updateWebtoonCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update your webtoon",
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

		req := &dto.UpdateWebtoonRequest{
			Title:        optional(cmd, "title"),
			Description:  optional(cmd, "description"),
			AuthorName:   optional(cmd, "author"),
			Genre:        optional(cmd, "genre"),
			Theme:        optional(cmd, "theme"),
			StoryStyle:   optional(cmd, "style"),
			ThumbnailURL: optional(cmd, "thumbnail"),
			Status:       optional(cmd, "status"),
		}
		w, err := a.client.UpdateWebtoon(cmd.Context(), id, req)
		if err != nil {
			return fmt.Errorf("failed to update webtoon: %w", err)
		}
		printSuccess("Updated webtoon %d", w.ID)
		return nil
	},
}

var deleteWebtoonCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete your webtoon",
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
		if err := a.client.DeleteWebtoon(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete webtoon: %w", err)
		}
		printSuccess("Deleted webtoon %d", id)
		return nil
	},
}

// askWebtoon fills an empty create request interactively
func askWebtoon(req *dto.CreateWebtoonRequest) {
	in := bufio.NewReader(os.Stdin)
	ask := func(label string) *string {
		fmt.Printf("%s: ", label)
		line, _ := in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		return &line
	}

	req.Title = deref(ask("Title"))
	if req.Genre == nil {
		req.Genre = ask("Genre (optional)")
	}
	if req.Theme == nil {
		req.Theme = ask("Theme (optional)")
	}
	if req.StoryStyle == nil {
		req.StoryStyle = ask("Story style (optional)")
	}
	if req.Description == nil {
		req.Description = ask("Description (optional)")
	}
	if req.AuthorName == nil {
		req.AuthorName = ask("Author name (optional)")
	}
}

func printWebtoonLine(w dto.Webtoon) {
	marker := " "
	if w.IsLiked {
		marker = color.RedString("♥")
	}
	fmt.Printf("%s [%d] %s by %s  (views %d, likes %d)\n", marker, w.ID, w.Title, w.AuthorName, w.ViewCount, w.LikeCount)
}

func printWebtoonDetail(w *dto.Webtoon) {
	color.New(color.Bold).Printf("%s\n", w.Title)
	fmt.Printf("ID: %d\n", w.ID)
	fmt.Printf("Author: %s\n", w.AuthorName)
	fmt.Printf("Status: %s\n", w.Status)
	if w.Genre != nil {
		fmt.Printf("Genre: %s\n", *w.Genre)
	}
	if w.Theme != nil {
		fmt.Printf("Theme: %s\n", *w.Theme)
	}
	if w.StoryStyle != nil {
		fmt.Printf("Style: %s\n", *w.StoryStyle)
	}
	fmt.Printf("Views: %d  Likes: %d\n", w.ViewCount, w.LikeCount)
	if w.Description != nil {
		fmt.Printf("\n%s\n", *w.Description)
	}
	if w.IsOwner {
		color.HiBlack("\nYou are the author. Use 'webtoonhub editor list %d' to arrange scenes.", w.ID)
	}
}

func addWebtoonFields(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Title")
	cmd.Flags().StringP("description", "d", "", "Description")
	cmd.Flags().StringP("author", "a", "", "Author name shown on the webtoon")
	cmd.Flags().StringP("genre", "g", "", "Genre")
	cmd.Flags().String("theme", "", "Theme")
	cmd.Flags().String("style", "", "Story style")
	cmd.Flags().String("thumbnail", "", "Thumbnail image URL")
}

func init() {
	webtoonCmd.AddCommand(listWebtoonCmd)
	webtoonCmd.AddCommand(myWebtoonCmd)
	webtoonCmd.AddCommand(showWebtoonCmd)
	webtoonCmd.AddCommand(createWebtoonCmd)
	webtoonCmd.AddCommand(updateWebtoonCmd)
	webtoonCmd.AddCommand(deleteWebtoonCmd)
	rootCmd.AddCommand(webtoonCmd)

	listWebtoonCmd.Flags().Int("page", 1, "Page number")
	listWebtoonCmd.Flags().Int("per-page", 20, "Webtoons per page (1-100)")

	addWebtoonFields(createWebtoonCmd)
	addWebtoonFields(updateWebtoonCmd)
	updateWebtoonCmd.Flags().String("status", "", "Status (draft, published, completed)")
}
