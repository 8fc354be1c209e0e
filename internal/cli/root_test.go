package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/config"
)

func TestSetVersion(t *testing.T) {
	// Given
	originalVersion := version
	defer func() { version = originalVersion }()

	// When
	SetVersion("1.2.3")

	// Then
	assert.Equal(t, "1.2.3", version)
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "onedrive-cli", rootCmd.Use)
}

func TestRootCmd_Short(t *testing.T) {
	assert.Equal(t, "Browse, search and download OneDrive for Business files", rootCmd.Short)
}

func TestRootCmd_Long(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "Microsoft Graph")
	assert.Contains(t, rootCmd.Long, "TENANT_ID")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()

	// Verify expected subcommands exist
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "ls", "should have ls command")
	assert.Contains(t, commandNames, "stat", "should have stat command")
	assert.Contains(t, commandNames, "download", "should have download command")
	assert.Contains(t, commandNames, "search", "should have search command")
	assert.Contains(t, commandNames, "configure", "should have configure command")
	assert.Contains(t, commandNames, "serve-mcp", "should have serve-mcp command")
	assert.Contains(t, commandNames, "version", "should have version command")
}

func TestExecute_ReturnsNoErrorWithHelp(t *testing.T) {
	// Save and restore stdout
	oldOut := rootCmd.OutOrStdout()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"--help"})
	defer func() {
		rootCmd.SetOut(oldOut)
		rootCmd.SetArgs(nil)
	}()

	// When
	err := Execute()

	// Then
	assert.NoError(t, err)
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()
	SetVersion("9.9.9")

	out, err := executeCommand("version")

	assert.NoError(t, err)
	assert.Contains(t, out, "9.9.9")
}

func TestResolveConfigPath_FlagOverride(t *testing.T) {
	oldConfigPath := configPath
	defer func() { configPath = oldConfigPath }()
	configPath = "/custom/config.toml"

	path, err := resolveConfigPath()

	require.NoError(t, err)
	assert.Equal(t, "/custom/config.toml", path)
}

func TestResolveConfigPath_Default(t *testing.T) {
	oldConfigPath := configPath
	defer func() { configPath = oldConfigPath }()
	configPath = ""

	path, err := resolveConfigPath()

	require.NoError(t, err)
	assert.Equal(t, "config.toml", filepath.Base(path))
	assert.Equal(t, ".onedrive-cli", filepath.Base(filepath.Dir(path)))
}

func TestLoadConfig_IncompletePointsAtConfigure(t *testing.T) {
	// Given no config file and no environment
	clearCredentialEnv(t)
	oldConfigPath := configPath
	defer func() { configPath = oldConfigPath }()
	configPath = filepath.Join(t.TempDir(), "config.toml")

	// When
	cfg, err := loadConfig()

	// Then the error names the missing field and the way out
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, config.ErrMissingTenantID)
	assert.ErrorContains(t, err, "onedrive-cli configure")
}
