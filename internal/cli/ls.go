package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var lsJSON bool

var lsCmd = &cobra.Command{
	Use:   "ls [folder-id]",
	Short: "List files in the drive root or a folder",
	Long: `List the immediate children of the drive root, or of the folder with the
given item ID.

Examples:
  # List the drive root
  onedrive-cli ls

  # List a folder by its item ID
  onedrive-cli ls 01BYE5RZ6QN3ZWBTUFOFD3GSPGOHDJD36K`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	lsCmd.Flags().BoolVar(&lsJSON, "json", false, "print items as JSON")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	d, err := newDrive()
	if err != nil {
		return err
	}

	folderID := ""
	if len(args) > 0 {
		folderID = args[0]
	}

	items, err := d.List(context.Background(), folderID)
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}

	if lsJSON {
		return printJSON(cmd, items)
	}
	if len(items) == 0 {
		cmd.Println("No files found.")
		return nil
	}
	cmd.Print(renderItems(items))
	return nil
}
