package command

// root.go defines the root command for the webtoonhub CLI and the pieces
// every subcommand shares: the --api flag, the HTTP client and the session.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"webtoonhub/cmd/cli/authentication"
	"webtoonhub/cmd/cli/command/client"
	"webtoonhub/cmd/cli/command/state"
	"webtoonhub/internal/config"
	"webtoonhub/internal/logging"
)

var (
	apiURL   string // Global flag for API server URL
	logLevel string
	cliCfg   = loadCLIConfig()

	// tests swap this for an in-memory store
	newTokenStore = func(apiURL string) state.TokenStore { return authentication.NewKeyringStore(apiURL) }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "webtoonhub",
	Short: "webtoonhub - read, write and chat about webtoons",
	Long: `webtoonhub is the command line client of the webtoonhub API. With it you can:
- Browse the gallery and read webtoons episode by episode
- Create webtoons and arrange their scenes per episode
- Chat with a webtoon's main character
- Like and comment on webtoons

Use "webtoonhub command --help" to see all available commands.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", cliCfg.APIURL, "API server URL")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cliCfg.LogLevel, "log level (debug, info, warn, error)")
}

// loadCLIConfig runs during package variable setup so every init sees it
func loadCLIConfig() *config.CLIConfig {
	cfg, err := config.LoadCLIConfig()
	if err == nil {
		return cfg
	}
	fmt.Fprintln(os.Stderr, "ignoring bad client config:", err)
	return &config.CLIConfig{
		APIURL:     "http://localhost:8000",
		LogLevel:   "warn",
		ReplyDelay: state.DefaultReplyDelay,
		PageSize:   state.DefaultGalleryPageSize,
	}
}

// app is what one command invocation works with
type app struct {
	client  *client.HTTPClient
	session *state.Session
	logger  *slog.Logger
}

// newApp builds the client and restores the stored login. An expired token
// is dropped with a notice and the command goes on anonymously.
func newApp(ctx context.Context) *app {
	logger := logging.NewWithWriter(os.Stderr, logLevel, "text")
	httpClient := client.NewHTTPClient(apiURL)
	httpClient.SetLogger(logger)

	session := state.NewSession(httpClient, newTokenStore(apiURL), logger)
	if err := session.Init(ctx); errors.Is(err, state.ErrSessionExpired) {
		printWarning("%v", err)
	}
	return &app{client: httpClient, session: session, logger: logger}
}

// newAuthedApp is newApp for commands that need a logged in user
func newAuthedApp(ctx context.Context) (*app, error) {
	a := newApp(ctx)
	if _, err := a.session.RequireUser(); err != nil {
		return nil, err
	}
	return a, nil
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s ID %q", what, arg)
	}
	return id, nil
}

func printSuccess(format string, args ...any) {
	color.Green("✓ "+format, args...)
}

func printWarning(format string, args ...any) {
	color.Yellow("! "+format, args...)
}

// printError turns API failures into one readable line
func printError(err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		color.Red("✗ %s (HTTP %d)", apiErr.Detail, apiErr.StatusCode)
		return
	}
	var vErr *state.ValidationError
	if errors.As(err, &vErr) {
		color.Red("✗ %s", vErr.Error())
		return
	}
	color.Red("✗ %v", err)
}

func optional(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
