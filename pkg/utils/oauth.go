package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/natshelper/internal/config"
)

const (
	AuthPort       = 3000
	authTimeout    = 5 * time.Minute
	callbackPath   = "/oauth/callback"
	tokenDirName   = ".natshelper/tokens"
	tokenFilePerms = 0600 // Read/write for owner only
	tokenDirPerms  = 0700 // Read/write/execute for owner only
	tokenInfoURL   = "https://oauth2.googleapis.com/tokeninfo"
)

// Token providers
const (
	ProviderGoogle = "google"
	ProviderWCA    = "wca"
)

// ScopeSheets is the Google scope needed to publish schedules
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

var (
	tokenCache   = map[string]*oauth2.Token{}
	tokenCacheMu sync.Mutex
)

// ScopeValidator checks a token carries the scopes the application needs
type ScopeValidator func(ctx context.Context, token *oauth2.Token) error

// TokenRequest identifies the token to obtain
type TokenRequest struct {
	// Provider names the token file and cache entry, e.g. ProviderWCA
	Provider string
	Env      string

	// ValidateScopes is optional; tokens failing it are discarded
	ValidateScopes ScopeValidator
}

func (r TokenRequest) key() string {
	return r.Provider + "-" + r.Env
}

// RedirectURL is where the local callback server receives authorization codes
func RedirectURL() string {
	return fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)
}

// GetGoogleOAuthConfig creates an OAuth2 config from the Google client configuration
func GetGoogleOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, ScopeSheets)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	googleConfig.RedirectURL = RedirectURL()
	return googleConfig, nil
}

// GetWCAOAuthConfig creates an OAuth2 config for the WCA website
func GetWCAOAuthConfig(wcaCfg config.WCAConfig) *oauth2.Config {
	baseURL := strings.TrimSuffix(wcaCfg.BaseURL, "/")
	return &oauth2.Config{
		ClientID:     wcaCfg.ClientID,
		ClientSecret: wcaCfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  baseURL + "/oauth/authorize",
			TokenURL: baseURL + "/oauth/token",
		},
		RedirectURL: RedirectURL(),
		Scopes:      wcaCfg.Scopes,
	}
}

// ValidateGoogleScopes checks the token against Google's tokeninfo endpoint
func ValidateGoogleScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenInfo struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if !slices.Contains(strings.Split(tokenInfo.Scope, " "), ScopeSheets) {
		return fmt.Errorf("token is missing required scope %s", ScopeSheets)
	}
	return nil
}

// GetTokenWithFlow returns a valid token, running the browser authorization flow if needed.
// Only one flow runs at a time. Tokens are persisted per provider and environment
// and refreshed when expired.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, req TokenRequest, logger *zap.Logger) (*oauth2.Token, error) {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()

	if cached := tokenCache[req.key()]; cached != nil && cached.Valid() {
		return cached, nil
	}

	if token := loadUsableToken(ctx, oauthConfig, req, logger); token != nil {
		tokenCache[req.key()] = token
		return token, nil
	}

	logger.Info("No valid token found, starting OAuth flow", zap.String("provider", req.Provider))

	state := uuid.NewString()
	authURL := oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize the application:\n%s\n\n", authURL)

	code, err := listenForAuthCallback(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if req.ValidateScopes != nil {
		if err := req.ValidateScopes(ctx, token); err != nil {
			return nil, fmt.Errorf("token validation failed: %w", err)
		}
	}

	if err := SaveTokenToFile(req.Provider, req.Env, token); err != nil {
		logger.Warn("Failed to save token to file", zap.Error(err))
	}

	tokenCache[req.key()] = token
	return token, nil
}

// loadUsableToken returns the stored token if it is valid or can be refreshed
func loadUsableToken(ctx context.Context, oauthConfig *oauth2.Config, req TokenRequest, logger *zap.Logger) *oauth2.Token {
	fileToken, err := LoadTokenFromFile(req.Provider, req.Env)
	if err != nil {
		logger.Warn("Failed to load token from file", zap.Error(err))
		return nil
	}
	if fileToken == nil {
		return nil
	}

	token := fileToken
	if !token.Valid() {
		if token.RefreshToken == "" {
			return nil
		}
		refreshed, err := oauthConfig.TokenSource(ctx, fileToken).Token()
		if err != nil {
			logger.Warn("Failed to refresh token", zap.String("provider", req.Provider), zap.Error(err))
			return nil
		}
		token = refreshed
	}

	if req.ValidateScopes != nil {
		if err := req.ValidateScopes(ctx, token); err != nil {
			logger.Warn("Stored token is missing required scopes, deleting it", zap.Error(err))
			if err := DeleteTokenFile(req.Provider, req.Env); err != nil {
				logger.Warn("Failed to delete token file", zap.Error(err))
			}
			return nil
		}
	}

	if token != fileToken {
		logger.Info("Token refreshed", zap.String("provider", req.Provider))
		if err := SaveTokenToFile(req.Provider, req.Env, token); err != nil {
			logger.Warn("Failed to save refreshed token", zap.Error(err))
		}
	}

	return token
}

// listenForAuthCallback starts a local HTTP server and waits for the OAuth callback
func listenForAuthCallback(ctx context.Context, state string) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			errChan <- errors.New("authorization state mismatch")
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			errChan <- errors.New("no authorization code received")
			return
		}

		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `
			<html>
				<head><title>Authorization Successful</title></head>
				<body>
					<h1>Authorization successful!</h1>
					<p>You can close this window and return to natshelper.</p>
				</body>
			</html>
		`)

		codeChan <- code
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", AuthPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error

	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)

	if authErr != nil {
		return "", authErr
	}

	return code, nil
}

// ClearTokens clears every token from the memory cache
func ClearTokens() {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()
	tokenCache = map[string]*oauth2.Token{}
}

// tokenDir returns the directory tokens are stored in, under the user's home directory
func tokenDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, tokenDirName), nil
}

func tokenFilePath(provider, env string) (string, error) {
	dir, err := tokenDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("token-%s-%s.json", provider, env)), nil
}

// LoadTokenFromFile loads a stored token for a provider and environment.
// Returns nil if no token has been stored yet.
func LoadTokenFromFile(provider, env string) (*oauth2.Token, error) {
	tokenPath, err := tokenFilePath(provider, env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(tokenPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// SaveTokenToFile stores a token for a provider and environment with owner-only permissions
func SaveTokenToFile(provider, env string, token *oauth2.Token) error {
	dir, err := tokenDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	tokenPath, err := tokenFilePath(provider, env)
	if err != nil {
		return err
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(tokenPath, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// DeleteTokenFile deletes the stored token for a provider and environment
func DeleteTokenFile(provider, env string) error {
	tokenPath, err := tokenFilePath(provider, env)
	if err != nil {
		return err
	}

	if err := os.Remove(tokenPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}

	return nil
}
