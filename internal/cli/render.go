package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/drive"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	folderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderItems formats a listing as an aligned table.
func renderItems(items []drive.DriveItem) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%10s  %-16s  %s", "SIZE", "MODIFIED", "NAME")))
	b.WriteByte('\n')

	for i := range items {
		item := &items[i]

		size := dimStyle.Render(fmt.Sprintf("%10s", "-"))
		if !item.IsFolder() {
			size = fmt.Sprintf("%10s", humanize.IBytes(uint64(item.Size)))
		}

		name := item.Name
		if item.IsFolder() {
			name = folderStyle.Render(name + "/")
		}

		fmt.Fprintf(&b, "%s  %-16s  %s\n", size, formatTime(item.ModifiedDateTime), name)
	}
	return b.String()
}

// renderItem formats full metadata as key-value lines.
func renderItem(item *drive.DriveItem) string {
	var b strings.Builder
	kv := func(key, value string) {
		fmt.Fprintf(&b, "%s %s\n", dimStyle.Render(fmt.Sprintf("%-10s", key)), value)
	}

	kv("ID", item.ID)
	kv("Name", item.Name)
	kv("Type", item.GetMIMEType())
	if item.IsFolder() {
		kv("Children", fmt.Sprintf("%d", item.Folder.ChildCount))
	} else {
		kv("Size", fmt.Sprintf("%s (%d bytes)", humanize.IBytes(uint64(item.Size)), item.Size))
	}
	kv("Created", formatTime(item.CreatedDateTime))
	kv("Modified", formatTime(item.ModifiedDateTime))
	if path := item.GetPath(); path != "" {
		kv("Path", path)
	}
	if item.WebURL != "" {
		kv("Web URL", item.WebURL)
	}
	return b.String()
}

// formatTime renders Graph's RFC 3339 timestamps in a compact UTC form.
func formatTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04")
}

// printJSON writes v to the command's output as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
