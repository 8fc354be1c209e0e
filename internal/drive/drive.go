// Package drive provides read-only operations on a single user's OneDrive
// for Business drive.
//
// All operations go through the authenticated Graph client; app-only access
// addresses the drive by the owner's user principal name, i.e. paths are
// rooted at /users/{email}/drive. Errors carry the Graph error taxonomy of
// the graph package unchanged.
package drive

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/graph"
)

// Drive is a read-only view of one user's drive.
type Drive struct {
	client    *graph.Client
	userEmail string
}

// New creates a Drive for the given user's drive.
func New(client *graph.Client, userEmail string) *Drive {
	return &Drive{
		client:    client,
		userEmail: userEmail,
	}
}

// listResponse is a single page of drive items.
type listResponse struct {
	Value []DriveItem `json:"value"`
}

// List returns the children of a folder, or of the drive root when folderID
// is empty. A single page is returned; an empty folder yields an empty
// slice, not an error, while an unknown folder ID surfaces Graph's 404.
func (d *Drive) List(ctx context.Context, folderID string) ([]DriveItem, error) {
	path := d.drivePath("/root/children")
	if folderID != "" {
		path = d.drivePath("/items/" + url.PathEscape(folderID) + "/children")
	}

	var page listResponse
	if err := d.client.GetJSON(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return page.Value, nil
}

// Metadata returns the full drive item for the given item ID.
func (d *Drive) Metadata(ctx context.Context, itemID string) (*DriveItem, error) {
	var item DriveItem
	if err := d.client.GetJSON(ctx, d.drivePath("/items/"+url.PathEscape(itemID)), &item); err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	return &item, nil
}

// Download returns the raw content of a file. Graph answers the content
// endpoint with a redirect to a short-lived pre-authenticated storage URL,
// which the HTTP client follows transparently.
func (d *Drive) Download(ctx context.Context, itemID string) ([]byte, error) {
	data, err := d.client.GetBytes(ctx, d.drivePath("/items/"+url.PathEscape(itemID)+"/content"))
	if err != nil {
		return nil, fmt.Errorf("download content: %w", err)
	}
	return data, nil
}

// Search returns drive items matching the query, searched from the drive
// root across names and content. The query may contain any characters:
// single quotes are doubled for OData and the whole term is percent-encoded
// into the URL.
func (d *Drive) Search(ctx context.Context, query string) ([]DriveItem, error) {
	path := d.drivePath("/root/search(q='" + escapeSearchTerm(query) + "')")

	var page listResponse
	if err := d.client.GetJSON(ctx, path, &page); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return page.Value, nil
}

// ItemByPath returns the drive item at the given slash-separated path
// relative to the drive root, e.g. "/Documents/report.pdf".
func (d *Drive) ItemByPath(ctx context.Context, itemPath string) (*DriveItem, error) {
	var item DriveItem
	if err := d.client.GetJSON(ctx, d.drivePath("/root:"+escapeItemPath(itemPath)), &item); err != nil {
		return nil, fmt.Errorf("get item by path: %w", err)
	}
	return &item, nil
}

// drivePath prefixes a drive-relative path with the user's drive root.
func (d *Drive) drivePath(suffix string) string {
	return "/users/" + url.PathEscape(d.userEmail) + "/drive" + suffix
}

// escapeSearchTerm encodes a search term for the search(q='...') path
// segment. OData escapes embedded single quotes by doubling them; the
// doubled term is then percent-encoded as a whole.
func escapeSearchTerm(query string) string {
	return url.PathEscape(strings.ReplaceAll(query, "'", "''"))
}

// escapeItemPath percent-encodes each segment of a drive path, preserving
// the separators and forcing a leading slash.
func escapeItemPath(itemPath string) string {
	segments := strings.Split(strings.TrimPrefix(itemPath, "/"), "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/" + strings.Join(segments, "/")
}
