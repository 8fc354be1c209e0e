package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the drive by file name and content",
	Long: `Search the whole drive. Matching covers file names and, where Graph has
indexed it, file content. Multiple words are treated as one query.

Examples:
  onedrive-cli search quarterly
  onedrive-cli search "O'Brien report"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print items as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	d, err := newDrive()
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	items, err := d.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}

	if searchJSON {
		return printJSON(cmd, items)
	}
	if len(items) == 0 {
		cmd.Printf("No matches for %q.\n", query)
		return nil
	}
	cmd.Print(renderItems(items))
	return nil
}
