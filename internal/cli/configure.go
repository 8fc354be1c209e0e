package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Interactively set up credentials",
	Long: `Walk through the Azure AD app registration values (tenant ID, client ID,
client secret) and the drive owner's email, and write them to the config
file. Existing values are offered as defaults; press Enter to keep them.`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func init() {
	rootCmd.AddCommand(configureCmd)
}

func runConfigure(cmd *cobra.Command, _ []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	// Start from the current effective values so unchanged ones can be kept.
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cfg.TenantID = promptString(cmd, reader, "Tenant ID", cfg.TenantID)
	cfg.ClientID = promptString(cmd, reader, "Client ID", cfg.ClientID)
	cfg.ClientSecret = promptSecret(cmd, reader, "Client secret", cfg.ClientSecret)
	cfg.UserEmail = promptString(cmd, reader, "User email", cfg.UserEmail)

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg, path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	cmd.Printf("Configuration written to %s\n", path)
	return nil
}

//nolint:errcheck // CLI interactive flow
func promptString(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, current)
	} else {
		cmd.Printf("%s: ", label)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

// promptSecret reads without echo when stdin is a terminal, otherwise it
// falls back to the shared reader so piped input still works.
//
//nolint:errcheck // CLI interactive flow
func promptSecret(cmd *cobra.Command, reader *bufio.Reader, label, current string) string {
	if current != "" {
		cmd.Printf("%s [%s]: ", label, maskSecret(current))
	} else {
		cmd.Printf("%s: ", label)
	}

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		data, err := term.ReadPassword(int(f.Fd()))
		cmd.Println()
		if err == nil {
			if input := strings.TrimSpace(string(data)); input != "" {
				return input
			}
			return current
		}
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + "****" + s[len(s)-2:]
}
