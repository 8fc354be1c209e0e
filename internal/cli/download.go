package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <item-id>",
	Short: "Download a file's content",
	Long: `Download the raw content of a file. By default the file is written to the
current directory under its OneDrive name; use -o to choose a different
path, or '-o -' to stream to stdout.

Examples:
  onedrive-cli download 01BYE5RZ6QN3ZWBTUFOFD3GSPGOHDJD36K
  onedrive-cli download 01BYE5RZ6QN3ZWBTUFOFD3GSPGOHDJD36K -o report.pdf
  onedrive-cli download 01BYE5RZ6QN3ZWBTUFOFD3GSPGOHDJD36K -o - | wc -c`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output path ('-' for stdout)")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	d, err := newDrive()
	if err != nil {
		return err
	}

	ctx := context.Background()
	itemID := args[0]

	// Resolve the name first so the default output path matches the drive.
	item, err := d.Metadata(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to fetch metadata: %w", err)
	}
	if item.IsFolder() {
		return fmt.Errorf("%s is a folder", item.Name)
	}

	data, err := d.Download(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}

	if downloadOutput == "-" {
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return fmt.Errorf("failed to write content: %w", err)
		}
		return nil
	}

	path := downloadOutput
	if path == "" {
		path = item.Name
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	cmd.Printf("Downloaded %s (%s) to %s\n", item.Name, humanize.IBytes(uint64(len(data))), path)
	return nil
}
