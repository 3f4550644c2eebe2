package command

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"webtoonhub/cmd/cli/command/state"
)

// gallery.go is the infinite scroll list: Enter loads the next page.

var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Browse published webtoons page by page",
	RunE: func(cmd *cobra.Command, args []string) error {
		pageSize, _ := cmd.Flags().GetInt("page-size")
		all, _ := cmd.Flags().GetBool("all")

		a := newApp(cmd.Context())
		gallery := state.NewGallery(a.client, pageSize)
		in := bufio.NewReader(os.Stdin)

		for gallery.HasMore() {
			added, err := gallery.LoadMore(cmd.Context())
			if err != nil {
				// keep what was shown, the same page is retried on the next Enter
				if all {
					return fmt.Errorf("failed to load more webtoons: %w", err)
				}
				printError(fmt.Errorf("failed to load more webtoons: %w", err))
			}
			for _, w := range added {
				printWebtoonLine(w)
			}

			if gallery.Page() == 1 && len(gallery.Items()) == 0 {
				fmt.Println("No webtoons yet.")
				return nil
			}
			if !gallery.HasMore() {
				break
			}
			if all {
				continue
			}

			fmt.Printf("-- %d of %d shown, Enter for more, q to quit --", len(gallery.Items()), gallery.Total())
			line, err := in.ReadString('\n')
			fmt.Println()
			if err != nil || strings.EqualFold(strings.TrimSpace(line), "q") {
				return nil
			}
		}
		fmt.Printf("End of gallery (%d webtoons).\n", len(gallery.Items()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(galleryCmd)
	galleryCmd.Flags().Int("page-size", cliCfg.PageSize, "Webtoons per page")
	galleryCmd.Flags().Bool("all", false, "Load every page without prompting")
}
