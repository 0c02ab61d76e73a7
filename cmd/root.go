// ABOUTME: Root command for the fitcoach CLI
// ABOUTME: Handles global flags and wiring of the session core

package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/fitnessai/fitcoach-cli/internal/api"
	"github.com/fitnessai/fitcoach-cli/internal/config"
	"github.com/fitnessai/fitcoach-cli/internal/debuglog"
	"github.com/fitnessai/fitcoach-cli/internal/session"
	"github.com/fitnessai/fitcoach-cli/internal/tokenstore"
)

var (
	apiURL     string
	jsonOutput bool
)

// Exit codes shared by all commands.
const (
	exitOK           = 0
	exitError        = 2
	exitAuthRequired = 3
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "fitcoach",
	Short: "CLI for the FitCoach fitness platform",
	Long: `fitcoach is a command-line client for the FitCoach fitness-coaching platform.

Log workouts, inspect your training and meal plans, and keep your profile up
to date from the terminal. Run 'fitcoach dashboard' for the interactive
interface.

Environment Variables:
  FITCOACH_API_URL     Backend API URL (default: ` + config.DefaultAPIURL + `)
  FITCOACH_CONFIG_DIR  Where credentials and the debug log are stored`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides FITCOACH_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// appEnv bundles the wired core handed to every command.
type appEnv struct {
	cfg     *config.Config
	client  *api.Client
	tokens  *tokenstore.Store
	session *session.Manager
}

// newAppEnv loads configuration and wires the token store, API client,
// and session manager together.
func newAppEnv() (*appEnv, error) {
	cfg, err := config.Load(tokenstore.DefaultDir())
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}

	// A failed log init only loses debug output
	_ = debuglog.Init(cfg.ConfigDir)

	tokens := tokenstore.New(cfg.ConfigDir)
	client := api.New(cfg.APIURL, tokens, time.Duration(cfg.RequestTimeout)*time.Second)
	return &appEnv{
		cfg:     cfg,
		client:  client,
		tokens:  tokens,
		session: session.NewManager(client, tokens),
	}, nil
}
