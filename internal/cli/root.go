package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/config"
	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/drive"
	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/graph"
	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/logger"
)

var (
	// Version is set by goreleaser ldflags.
	version = "dev"

	// Verbose enables debug logging.
	verbose bool

	// configPath overrides the default config file location.
	configPath string
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "onedrive-cli",
	Short: "Browse, search and download OneDrive for Business files",
	Long: `onedrive-cli talks to Microsoft Graph with app-only credentials to list,
inspect, search and download files in a OneDrive for Business drive.

Credentials come from ~/.onedrive-cli/config.toml or from the TENANT_ID,
CLIENT_ID, CLIENT_SECRET and USER_EMAIL environment variables. Run
'onedrive-cli configure' to set them up interactively.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI.
func SetVersion(v string) {
	version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.onedrive-cli/config.toml)")

	// Use PersistentPreRunE to set verbose mode before any command executes
	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		return nil
	}
}

// resolveConfigPath honours the --config flag over the default location.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.DefaultPath()
}

// loadConfig loads and validates the effective configuration.
func loadConfig() (*config.Config, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w (run 'onedrive-cli configure' or set the environment variables)", err)
	}
	return cfg, nil
}

// buildDrive wires a Graph client for the configured user.
func buildDrive(cfg *config.Config) *drive.Drive {
	source := graph.NewTokenSource(graph.Credentials{
		TenantID:     cfg.TenantID,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	})
	return drive.New(graph.NewClient(source), cfg.UserEmail)
}

// newDrive builds a Drive from the effective configuration. It is a
// variable so tests can substitute a fake.
var newDrive = func() (*drive.Drive, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return buildDrive(cfg), nil
}
