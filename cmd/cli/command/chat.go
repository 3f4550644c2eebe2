package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webtoonhub/cmd/cli/command/state"
	"webtoonhub/cmd/cli/dto"
)

// chat.go = REPL over a chat session. Replies show up after the refetch that
// follows each message.

var chatCmd = &cobra.Command{
	Use:   "chat [webtoon id]",
	Short: "Chat with the main character of a webtoon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "webtoon")
		if err != nil {
			return err
		}

		a := newApp(cmd.Context())
		webtoon, err := a.client.GetWebtoon(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to load webtoon: %w", err)
		}

		view := newChatView(os.Stdout)
		chat, err := state.OpenChat(cmd.Context(), a.client, id, state.ChatOptions{
			ReplyDelay: cliCfg.ReplyDelay,
			OnChange:   view.render,
			OnError: func(err error) {
				printError(fmt.Errorf("could not refresh chat: %w", err))
			},
			Logger: a.logger,
		})
		if err != nil {
			return fmt.Errorf("failed to open chat: %w", err)
		}
		defer chat.Close()

		fmt.Printf("\n💬 Chatting about %s. Type your messages (or /quit to exit)\n\n", webtoon.Title)

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		defer signal.Stop(interrupt)

		lines := make(chan string)
		go func() {
			defer close(lines)
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				lines <- scanner.Text()
			}
		}()

		for {
			select {
			case <-interrupt:
				return nil
			case <-cmd.Context().Done():
				return nil
			case text, ok := <-lines:
				if !ok || strings.TrimSpace(text) == "/quit" {
					// let a reply that is already on its way arrive
					chat.Wait()
					return nil
				}
				if err := chat.Send(cmd.Context(), text); err != nil {
					if errors.Is(err, state.ErrChatClosed) {
						return nil
					}
					printError(fmt.Errorf("message not sent: %w", err))
				}
			}
		}
	},
}

// chatView prints each confirmed message once
type chatView struct {
	mu      sync.Mutex
	out     io.Writer
	printed map[int64]bool
	typing  bool
	first   bool
}

func newChatView(out io.Writer) *chatView {
	return &chatView{out: out, printed: make(map[int64]bool), first: true}
}

func (v *chatView) render(snap state.ChatSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, m := range snap.Messages {
		if m.Pending || v.printed[m.ID] {
			continue
		}
		v.printed[m.ID] = true
		// lines typed here are already on screen
		if m.Own && !v.first {
			continue
		}
		v.printMessage(m.ChatMessage)
	}
	if v.first && snap.UnreadCount > 0 {
		color.New(color.FgYellow).Fprintf(v.out, "🔔 %d unread\n", snap.UnreadCount)
	}
	v.first = false

	if snap.Typing && !v.typing {
		color.New(color.FgHiBlack).Fprintf(v.out, "%s is typing...\n", snap.Character)
	}
	v.typing = snap.Typing
}

func (v *chatView) printMessage(m dto.ChatMessage) {
	if m.SenderType == dto.SenderCharacter {
		color.New(color.FgCyan).Fprintf(v.out, "[%s] %s\n", m.SenderName, m.Message)
		return
	}
	fmt.Fprintf(v.out, "[%s] %s\n", m.SenderName, m.Message)
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
