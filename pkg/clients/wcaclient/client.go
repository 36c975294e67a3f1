package wcaclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/natshelper/internal/config"
	"github.com/jakechorley/natshelper/pkg/core/model"
	"github.com/jakechorley/natshelper/pkg/db"
	"github.com/jakechorley/natshelper/pkg/utils"
)

const wcifPath = "/api/v0/competitions/%s/wcif"

// Client reads and writes competition documents through the WCA API.
// It implements db.CompetitionStore.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ db.CompetitionStore = (*Client)(nil)

// NewClient creates a WCA client, performing the OAuth flow if needed.
// Tokens are persisted to disk for the given environment.
func NewClient(ctx context.Context, wcaCfg config.WCAConfig, env string, logger *zap.Logger) (*Client, error) {
	oauthConfig := utils.GetWCAOAuthConfig(wcaCfg)

	token, err := utils.GetTokenWithFlow(ctx, oauthConfig, utils.TokenRequest{Provider: utils.ProviderWCA, Env: env}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}

	return NewClientWithHTTP(wcaCfg.BaseURL, oauthConfig.Client(ctx, token), logger), nil
}

// NewClientWithHTTP creates a client that sends requests with an already authorized HTTP client
func NewClientWithHTTP(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// GetCompetition fetches the WCIF document of a competition
func (c *Client) GetCompetition(ctx context.Context, competitionID string) (*model.Competition, error) {
	body, err := c.do(ctx, http.MethodGet, competitionID, nil)
	if err != nil {
		return nil, err
	}

	var comp model.Competition
	if err := json.Unmarshal(body, &comp); err != nil {
		return nil, fmt.Errorf("failed to decode competition %s: %w", competitionID, err)
	}

	c.logger.Debug("Fetched competition from WCA", zap.String("competition_id", competitionID), zap.Int("bytes", len(body)))
	return &comp, nil
}

// SaveCompetition patches the competition's schedule, persons and extensions on the WCA website
func (c *Client) SaveCompetition(ctx context.Context, comp *model.Competition) error {
	persons, extensions := comp.Persons, comp.Extensions
	if persons == nil {
		persons = []*model.Person{}
	}
	if extensions == nil {
		extensions = []*model.Extension{}
	}

	payload, err := json.Marshal(struct {
		ID         string             `json:"id"`
		Schedule   model.Schedule     `json:"schedule"`
		Persons    []*model.Person    `json:"persons"`
		Extensions []*model.Extension `json:"extensions"`
	}{
		ID:         comp.ID,
		Schedule:   comp.Schedule,
		Persons:    persons,
		Extensions: extensions,
	})
	if err != nil {
		return fmt.Errorf("failed to encode competition %s: %w", comp.ID, err)
	}

	if _, err := c.do(ctx, http.MethodPatch, comp.ID, payload); err != nil {
		return err
	}

	c.logger.Debug("Patched competition on WCA", zap.String("competition_id", comp.ID), zap.Int("bytes", len(payload)))
	return nil
}

func (c *Client) do(ctx context.Context, method, competitionID string, payload []byte) ([]byte, error) {
	endpoint := c.baseURL + fmt.Sprintf(wcifPath, url.PathEscape(competitionID))

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call WCA API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read WCA response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", db.ErrCompetitionNotFound, competitionID)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("WCA API %s %s failed with status %d: %s", method, endpoint, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
