package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

const (
	// tokenURLFormat is the tenant-specific v2.0 token endpoint.
	//nolint:gosec // G101: Not credentials, OAuth endpoint URL
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

	// defaultScope requests the application permissions granted to the app
	// registration.
	defaultScope = "https://graph.microsoft.com/.default"

	// refreshSkew renews tokens this long before their recorded expiry so a
	// request never leaves with a token about to lapse mid-flight.
	refreshSkew = 5 * time.Minute

	// defaultExpirySeconds is assumed when the token endpoint omits expires_in.
	defaultExpirySeconds = 3599
)

// Credentials identifies the app registration used for client credentials
// authentication. Values come from configuration, never from source.
type Credentials struct {
	// TenantID is the Azure AD tenant (directory) ID.
	TenantID string
	// ClientID is the application (client) ID.
	ClientID string
	// ClientSecret is the client secret value.
	ClientSecret string
}

// TokenSource acquires and caches app-only access tokens for a single app
// registration. It is safe for concurrent use: simultaneous callers
// serialise on an internal mutex and share one acquisition.
type TokenSource struct {
	creds      Credentials
	tokenURL   string
	httpClient *http.Client

	mu    sync.Mutex
	token *oauth2.Token
}

// TokenSourceOption configures a TokenSource.
type TokenSourceOption func(*TokenSource)

// WithTokenURL overrides the token endpoint. Used in tests.
func WithTokenURL(u string) TokenSourceOption {
	return func(s *TokenSource) { s.tokenURL = u }
}

// WithTokenHTTPClient overrides the HTTP client used for token requests.
func WithTokenHTTPClient(client *http.Client) TokenSourceOption {
	return func(s *TokenSource) { s.httpClient = client }
}

// NewTokenSource creates a token source for the given credentials.
func NewTokenSource(creds Credentials, opts ...TokenSourceOption) *TokenSource {
	s := &TokenSource{
		creds:      creds,
		tokenURL:   fmt.Sprintf(tokenURLFormat, url.PathEscape(creds.TenantID)),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Token returns a valid access token, acquiring a new one when none is
// cached or the cached one is within refreshSkew of expiry. The first
// caller of a concurrent burst refreshes; the rest reuse its result.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.valid() {
		return s.token.AccessToken, nil
	}

	token, err := s.acquire(ctx)
	if err != nil {
		return "", err
	}

	s.token = token
	return token.AccessToken, nil
}

// Invalidate drops the cached token so the next Token call acquires a fresh
// one. Called when Graph rejects a token before its recorded expiry.
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = nil
}

// valid reports whether the cached token can still be used. Callers must
// hold mu.
func (s *TokenSource) valid() bool {
	return s.token != nil && s.token.AccessToken != "" &&
		time.Now().Before(s.token.Expiry.Add(-refreshSkew))
}

// tokenResponse is the token endpoint's success body.
type tokenResponse struct {
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	AccessToken string `json:"access_token"`
}

// tokenErrorResponse is the token endpoint's failure body.
type tokenErrorResponse struct {
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

// acquire requests a new token via the client credentials grant.
func (s *TokenSource) acquire(ctx context.Context) (*oauth2.Token, error) {
	data := url.Values{}
	data.Set("grant_type", "client_credentials")
	data.Set("client_id", s.creds.ClientID)
	data.Set("client_secret", s.creds.ClientSecret)
	data.Set("scope", defaultScope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		authErr := &AuthError{StatusCode: resp.StatusCode}
		var payload tokenErrorResponse
		if err := json.Unmarshal(body, &payload); err == nil {
			authErr.Code = payload.Code
			authErr.Description = payload.Description
		}
		return nil, authErr
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, errors.New("token response has no access token")
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultExpirySeconds
	}

	return &oauth2.Token{
		AccessToken: tokenResp.AccessToken,
		TokenType:   tokenResp.TokenType,
		Expiry:      time.Now().Add(time.Duration(expiresIn) * time.Second),
	}, nil
}
