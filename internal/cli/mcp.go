package cli

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"unicode/utf8"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/config"
	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/drive"
	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/logger"
)

var serveMCPCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Serve drive access as MCP tools over stdio",
	Long: `Expose the drive as Model Context Protocol tools (list_files,
get_file_metadata, search_files, download_file) on stdin/stdout, for use
by AI assistants. The config file is watched while serving, so a rotated
client secret is picked up without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServeMCP,
}

func init() {
	rootCmd.AddCommand(serveMCPCmd)
}

// driveHolder swaps the active Drive when credentials are reloaded.
type driveHolder struct {
	mu sync.RWMutex
	d  *drive.Drive
}

func (h *driveHolder) get() *drive.Drive {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.d
}

func (h *driveHolder) set(d *drive.Drive) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.d = d
}

func runServeMCP(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	holder := &driveHolder{d: buildDrive(cfg)}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Stop serving on interrupt so the transport shuts down cleanly.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		cancel()
	}()

	// Pick up credential rotation while the server runs.
	go func() {
		if err := config.Watch(ctx, path, func(cfg *config.Config) {
			holder.set(buildDrive(cfg))
			logger.Debugf("reloaded configuration from %s", path)
		}); err != nil {
			logger.Errorf("config watch: %v", err)
		}
	}()

	server := mcp.NewServer(&mcp.Implementation{Name: "onedrive-cli", Version: version}, nil)
	registerTools(server, holder)

	logger.Debugf("serving MCP tools on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

type listFilesInput struct {
	FolderID string `json:"folder_id,omitempty" jsonschema:"ID of the folder to list; empty for the drive root"`
}

type fileMetadataInput struct {
	ItemID string `json:"item_id" jsonschema:"ID of the file or folder"`
}

type searchFilesInput struct {
	Query string `json:"query" jsonschema:"text to match against file names and content"`
}

type downloadFileInput struct {
	ItemID string `json:"item_id" jsonschema:"ID of the file to download"`
}

func registerTools(server *mcp.Server, holder *driveHolder) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_files",
		Description: "List files and folders in the drive root or in a given folder",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in listFilesInput) (*mcp.CallToolResult, any, error) {
		items, err := holder.get().List(ctx, in.FolderID)
		if err != nil {
			return nil, nil, err
		}
		return itemsResult(items)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_file_metadata",
		Description: "Get the full metadata of a file or folder by its item ID",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in fileMetadataInput) (*mcp.CallToolResult, any, error) {
		item, err := holder.get().Metadata(ctx, in.ItemID)
		if err != nil {
			return nil, nil, err
		}
		return jsonResult(item)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_files",
		Description: "Search the whole drive by file name and content",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in searchFilesInput) (*mcp.CallToolResult, any, error) {
		items, err := holder.get().Search(ctx, in.Query)
		if err != nil {
			return nil, nil, err
		}
		return itemsResult(items)
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "download_file",
		Description: "Download a file's content by its item ID. Text is returned verbatim; binary content is base64-encoded.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in downloadFileInput) (*mcp.CallToolResult, any, error) {
		data, err := holder.get().Download(ctx, in.ItemID)
		if err != nil {
			return nil, nil, err
		}
		return textResult(encodeContent(data))
	})
}

// encodeContent returns text verbatim and binary content base64-encoded.
func encodeContent(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return base64.StdEncoding.EncodeToString(data)
}

func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return textResult(string(data))
}

func itemsResult(items []drive.DriveItem) (*mcp.CallToolResult, any, error) {
	// A nil slice would encode as JSON null; an empty listing should read
	// as an empty array.
	if items == nil {
		items = []drive.DriveItem{}
	}
	return jsonResult(items)
}
