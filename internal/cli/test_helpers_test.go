package cli

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/config"
	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/drive"
	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/graph"
)

// executeCommand runs the root command with args and captures its output.
func executeCommand(args ...string) (string, error) {
	return executeCommandWithInput("", args...)
}

// executeCommandWithInput additionally feeds input to stdin prompts.
func executeCommandWithInput(input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	if input != "" {
		rootCmd.SetIn(strings.NewReader(input))
	}
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	}()

	err := Execute()
	return buf.String(), err
}

// setupStubDrive points newDrive at a Drive backed by the given Graph
// handler and returns a cleanup func. The fake token endpoint always
// issues "T1".
func setupStubDrive(t *testing.T, handler http.HandlerFunc) func() {
	t.Helper()

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"token_type":"Bearer","expires_in":3599,"access_token":"T1"}`)
	}))
	t.Cleanup(tokenServer.Close)

	graphServer := httptest.NewServer(handler)
	t.Cleanup(graphServer.Close)

	source := graph.NewTokenSource(
		graph.Credentials{TenantID: "tenant", ClientID: "client", ClientSecret: "secret"},
		graph.WithTokenURL(tokenServer.URL),
	)
	d := drive.New(graph.NewClient(source, graph.WithBaseURL(graphServer.URL)), "user@contoso.com")

	oldNewDrive := newDrive
	newDrive = func() (*drive.Drive, error) { return d, nil }
	return func() { newDrive = oldNewDrive }
}

// clearCredentialEnv blanks the override variables so ambient values on
// the test machine cannot leak into config loading.
func clearCredentialEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{config.EnvTenantID, config.EnvClientID, config.EnvClientSecret, config.EnvUserEmail} {
		t.Setenv(key, "")
	}
}

// listingFixture is a two-item root listing: one file, one folder.
const listingFixture = `{"value":[
	{"id":"item-1","name":"report.pdf","size":2048,
	 "lastModifiedDateTime":"2024-03-02T12:30:00Z",
	 "file":{"mimeType":"application/pdf"}},
	{"id":"item-2","name":"Documents","folder":{"childCount":3}}
]}`
