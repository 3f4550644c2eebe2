package command

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webtoonhub/cmd/cli/command/state"
	"webtoonhub/cmd/cli/dto"
)

var readCmd = &cobra.Command{
	Use:   "read [webtoon id]",
	Short: "Read a webtoon episode by episode",
	Long: `Read a webtoon. Scenes are split into episodes of ten; without
--episode the first episode is shown along with the list of episodes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "webtoon")
		if err != nil {
			return err
		}
		episodeNumber, _ := cmd.Flags().GetInt("episode")

		a := newApp(cmd.Context())
		reader, err := state.LoadReader(cmd.Context(), a.client, id)
		if err != nil {
			return fmt.Errorf("failed to load webtoon: %w", err)
		}

		color.New(color.Bold).Printf("%s", reader.Webtoon.Title)
		fmt.Printf(" by %s\n", reader.Webtoon.AuthorName)

		numbers := reader.EpisodeNumbers()
		if len(numbers) == 0 {
			fmt.Println("No scenes yet.")
			return nil
		}
		if episodeNumber == 0 {
			episodeNumber = numbers[0]
		}

		scenes, err := reader.Episode(episodeNumber)
		if err != nil {
			return err
		}

		labels := make([]string, 0, len(numbers))
		for _, n := range numbers {
			label := fmt.Sprintf("%d", n)
			if n == episodeNumber {
				label = color.CyanString("[%d]", n)
			}
			labels = append(labels, label)
		}
		fmt.Printf("Episodes: %s\n\n", strings.Join(labels, " "))

		for _, s := range scenes {
			printScene(s)
		}
		return nil
	},
}

func printScene(s dto.Scene) {
	color.HiBlack("#%d", s.SceneNumber)
	if s.SceneDescription != nil {
		fmt.Printf("  %s\n", *s.SceneDescription)
	}
	if s.Narration != nil {
		color.New(color.Italic).Printf("  %s\n", *s.Narration)
	}
	if s.Dialogue != nil {
		color.Cyan("  \"%s\"", *s.Dialogue)
	}
	if s.ImageURL != nil {
		fmt.Printf("  image: %s\n", *s.ImageURL)
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().IntP("episode", "e", 0, "Episode to show")
}
