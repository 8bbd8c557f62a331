// Package linkedin posts generated articles as LinkedIn shares. This is a
// best-effort integration: it covers the happy path of the UGC posts API and
// nothing more.
package linkedin

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.linkedin.com"

// Visibility controls who can see a share.
type Visibility string

const (
	VisibilityPublic      Visibility = "PUBLIC"
	VisibilityConnections Visibility = "CONNECTIONS"
)

// ErrNotAuthenticated indicates no access token was configured.
var ErrNotAuthenticated = errors.New("linkedin credentials not provided")

// Client talks to the LinkedIn REST API with a member access token.
type Client struct {
	http  *resty.Client
	token string
}

// NewClient builds a client for the given OAuth access token. baseURL is
// overridable for tests; empty means the production API.
func NewClient(token, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		http:  resty.New().SetBaseURL(baseURL),
		token: token,
	}
}

type profileResponse struct {
	ID string `json:"id"`
}

// Post publishes content as a UGC share on the authenticated member's feed
// and returns the created share ID.
func (c *Client) Post(ctx context.Context, content string, visibility Visibility) (string, error) {
	if c.token == "" {
		return "", ErrNotAuthenticated
	}
	if visibility == "" {
		visibility = VisibilityPublic
	}

	var profile profileResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetResult(&profile).
		Get("/v2/me")
	if err != nil {
		return "", fmt.Errorf("fetch profile: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode())
	}
	if profile.ID == "" {
		return "", errors.New("fetch profile: response carried no member id")
	}

	payload := map[string]any{
		"author":         "urn:li:person:" + profile.ID,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]any{
			"com.linkedin.ugc.ShareContent": map[string]any{
				"shareCommentary":    map[string]any{"text": content},
				"shareMediaCategory": "NONE",
			},
		},
		"visibility": map[string]any{
			"com.linkedin.ugc.MemberNetworkVisibility": string(visibility),
		},
	}

	var created struct {
		ID string `json:"id"`
	}
	resp, err = c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetHeader("X-Restli-Protocol-Version", "2.0.0").
		SetBody(payload).
		SetResult(&created).
		Post("/v2/ugcPosts")
	if err != nil {
		return "", fmt.Errorf("post share: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("post share: unexpected status %d: %s", resp.StatusCode(), snippet(resp.String()))
	}
	log.Info().Str("share_id", created.ID).Msg("posted article to LinkedIn")
	return created.ID, nil
}

func snippet(s string) string {
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
