package command

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webtoonhub/cmd/cli/command/state"
	"webtoonhub/cmd/cli/dto"
)

// editor.go lets the author arrange scenes per episode. Positions given on the
// command line are 1-based.

var editorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Arrange the scenes of your webtoon",
	Long:  `Author-only commands: list episodes, add, edit, delete and move scenes, attach images.`,
}

var editorListCmd = &cobra.Command{
	Use:   "list [webtoon id]",
	Short: "Show every episode tab and its scenes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := openEditor(cmd, args[0])
		if err != nil {
			return err
		}
		only, _ := cmd.Flags().GetInt("episode")

		color.New(color.Bold).Printf("%s\n", ed.Webtoon().Title)
		for _, n := range ed.EpisodeNumbers() {
			if only != 0 && n != only {
				continue
			}
			printEpisode(n, ed.Episode(n))
		}
		return nil
	},
}

var editorAddCmd = &cobra.Command{
	Use:   "add [webtoon id]",
	Short: "Append a scene to an episode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := openEditor(cmd, args[0])
		if err != nil {
			return err
		}
		episodeNumber, _ := cmd.Flags().GetInt("episode")

		scene, err := ed.AddScene(cmd.Context(), episodeNumber, sceneFields(cmd))
		if err != nil {
			return fmt.Errorf("failed to add scene: %w", err)
		}
		printSuccess("Added scene %d at position %d of episode %d", scene.ID, scene.SceneOrder, scene.EpisodeNumber)
		return nil
	},
}

var editorEditCmd = &cobra.Command{
	Use:   "edit [webtoon id] [scene id]",
	Short: "Change the text of a scene",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := openEditor(cmd, args[0])
		if err != nil {
			return err
		}
		sceneID, err := parseID(args[1], "scene")
		if err != nil {
			return err
		}

		if _, err := ed.EditScene(cmd.Context(), sceneID, sceneFields(cmd)); err != nil {
			return fmt.Errorf("failed to update scene: %w", err)
		}
		printSuccess("Updated scene %d", sceneID)
		return nil
	},
}

var editorDeleteCmd = &cobra.Command{
	Use:   "delete [webtoon id] [scene id]",
	Short: "Delete a scene",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := openEditor(cmd, args[0])
		if err != nil {
			return err
		}
		sceneID, err := parseID(args[1], "scene")
		if err != nil {
			return err
		}

		if err := ed.DeleteScene(cmd.Context(), sceneID); err != nil {
			return fmt.Errorf("failed to delete scene: %w", err)
		}
		printSuccess("Deleted scene %d", sceneID)
		return nil
	},
}

var editorMoveCmd = &cobra.Command{
	Use:   "move [webtoon id]",
	Short: "Move a scene to another position inside its episode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := openEditor(cmd, args[0])
		if err != nil {
			return err
		}
		episodeNumber, _ := cmd.Flags().GetInt("episode")
		from, _ := cmd.Flags().GetInt("from")
		to, _ := cmd.Flags().GetInt("to")

		result, err := ed.MoveScene(cmd.Context(), episodeNumber, from-1, to-1)
		if result == nil {
			return fmt.Errorf("failed to move scene: %w", err)
		}
		printEpisode(episodeNumber, ed.Episode(episodeNumber))
		if err != nil {
			// one notice for the whole batch
			printWarning("scene order saved for %d scenes, %d failed", len(result.Succeeded), len(result.Failures))
			return retryOrder(cmd, ed)
		}
		printSuccess("Scene order saved")
		return nil
	},
}

var editorImageCmd = &cobra.Command{
	Use:   "image [webtoon id] [scene id] [file]",
	Short: "Attach an image to a scene",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ed, err := openEditor(cmd, args[0])
		if err != nil {
			return err
		}
		sceneID, err := parseID(args[1], "scene")
		if err != nil {
			return err
		}

		f, err := os.Open(args[2])
		if err != nil {
			return err
		}
		defer f.Close()

		url, err := ed.AttachImage(cmd.Context(), sceneID, filepath.Base(args[2]), f)
		if err != nil {
			return fmt.Errorf("failed to upload image: %w", err)
		}
		printSuccess("Image attached: %s", url)
		return nil
	},
}

// retryOrder pushes failed order updates again once when --retry is set
func retryOrder(cmd *cobra.Command, ed *state.Editor) error {
	retry, _ := cmd.Flags().GetBool("retry")
	if !retry {
		return errors.New("scene order only partly saved, use --retry to resend failed updates")
	}
	result, err := ed.RetryOrder(cmd.Context())
	if err != nil {
		if result != nil {
			return fmt.Errorf("%d scenes still unsaved: %w", len(result.Failures), err)
		}
		return err
	}
	printSuccess("Scene order saved on retry")
	return nil
}

func openEditor(cmd *cobra.Command, arg string) (*state.Editor, error) {
	id, err := parseID(arg, "webtoon")
	if err != nil {
		return nil, err
	}
	a, err := newAuthedApp(cmd.Context())
	if err != nil {
		return nil, err
	}
	return state.OpenEditor(cmd.Context(), a.client, id, a.logger)
}

func sceneFields(cmd *cobra.Command) state.SceneFields {
	return state.SceneFields{
		Title:       optional(cmd, "title"),
		Dialogue:    optional(cmd, "dialogue"),
		Description: optional(cmd, "description"),
		Narration:   optional(cmd, "narration"),
		PanelLayout: optional(cmd, "layout"),
	}
}

func printEpisode(n int, scenes []dto.EpisodeScene) {
	color.New(color.FgCyan, color.Bold).Printf("Episode %d", n)
	fmt.Printf(" (%d scenes)\n", len(scenes))
	for _, s := range scenes {
		title := deref(s.Title)
		if title == "" {
			title = deref(s.Description)
		}
		image := ""
		if s.ImageURL != nil {
			image = color.HiBlackString(" [image]")
		}
		fmt.Printf("  %2d. (#%d) %s%s\n", s.SceneOrder, s.ID, title, image)
	}
}

func addSceneFields(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Scene title")
	cmd.Flags().StringP("dialogue", "d", "", "Dialogue")
	cmd.Flags().String("description", "", "Scene description")
	cmd.Flags().StringP("narration", "n", "", "Narration")
	cmd.Flags().String("layout", "", "Panel layout")
}

func init() {
	editorCmd.AddCommand(editorListCmd)
	editorCmd.AddCommand(editorAddCmd)
	editorCmd.AddCommand(editorEditCmd)
	editorCmd.AddCommand(editorDeleteCmd)
	editorCmd.AddCommand(editorMoveCmd)
	editorCmd.AddCommand(editorImageCmd)
	rootCmd.AddCommand(editorCmd)

	editorListCmd.Flags().IntP("episode", "e", 0, "Only show this episode")

	editorAddCmd.Flags().IntP("episode", "e", 1, "Episode to append to")
	addSceneFields(editorAddCmd)
	addSceneFields(editorEditCmd)

	editorMoveCmd.Flags().IntP("episode", "e", 1, "Episode the scene is in")
	editorMoveCmd.Flags().Int("from", 0, "Current position (1-based)")
	editorMoveCmd.Flags().Int("to", 0, "New position (1-based)")
	editorMoveCmd.Flags().Bool("retry", false, "Retry failed order updates once")
	editorMoveCmd.MarkFlagRequired("from")
	editorMoveCmd.MarkFlagRequired("to")
}
