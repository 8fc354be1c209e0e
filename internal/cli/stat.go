package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/drive"
)

var (
	statByPath bool
	statJSON   bool
)

var statCmd = &cobra.Command{
	Use:   "stat <item-id>",
	Short: "Show metadata for a file or folder",
	Long: `Show the full metadata of a single item, addressed by its item ID or, with
--path, by its location in the drive.

Examples:
  onedrive-cli stat 01BYE5RZ6QN3ZWBTUFOFD3GSPGOHDJD36K
  onedrive-cli stat --path "/Documents/Q3 report.pdf"`,
	Args: cobra.ExactArgs(1),
	RunE: runStat,
}

func init() {
	statCmd.Flags().BoolVar(&statByPath, "path", false, "treat the argument as a drive path instead of an item ID")
	statCmd.Flags().BoolVar(&statJSON, "json", false, "print the item as JSON")
	rootCmd.AddCommand(statCmd)
}

func runStat(cmd *cobra.Command, args []string) error {
	d, err := newDrive()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var item *drive.DriveItem
	if statByPath {
		item, err = d.ItemByPath(ctx, args[0])
	} else {
		item, err = d.Metadata(ctx, args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to fetch metadata: %w", err)
	}

	if statJSON {
		return printJSON(cmd, item)
	}
	cmd.Print(renderItem(item))
	return nil
}
