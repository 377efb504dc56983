// Package linkedin implements the profile-upload collaborator: an OAuth 2.0
// client for the LinkedIn profile API and a rate-limited uploader that
// submits canonical patent records one at a time.
package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joelkehle/patentfolio/internal/canonical"
)

const (
	DefaultAPIBase   = "https://api.linkedin.com/v2"
	DefaultOAuthBase = "https://www.linkedin.com/oauth/v2"

	restliHeader  = "X-Restli-Protocol-Version"
	restliVersion = "2.0.0"

	maxBodyBytes = 1 << 20
)

var scopes = []string{"r_liteprofile", "w_member_social", "profile:edit"}

type Config struct {
	ClientID     string
	ClientSecret string
	APIBase      string
	OAuthBase    string
	HTTPClient   *http.Client
}

type Client struct {
	cfg         Config
	accessToken string
}

func NewClient(cfg Config) (*Client, error) {
	cfg.ClientID = strings.TrimSpace(cfg.ClientID)
	cfg.ClientSecret = strings.TrimSpace(cfg.ClientSecret)
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("linkedin client id and secret are required")
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}
	if cfg.OAuthBase == "" {
		cfg.OAuthBase = DefaultOAuthBase
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg}, nil
}

// AuthorizationURL builds the OAuth authorization URL the user must visit to
// grant access.
func (c *Client) AuthorizationURL(redirectURI string) string {
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {c.cfg.ClientID},
		"redirect_uri":  {redirectURI},
		"scope":         {strings.Join(scopes, " ")},
		"state":         {"patent_upload_session"},
	}
	return c.cfg.OAuthBase + "/authorization?" + params.Encode()
}

// ExchangeCode trades an authorization code for an access token and stores
// it on the client for subsequent API calls.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) error {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {redirectURI},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OAuthBase+"/accessToken", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(req, &parsed); err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	if parsed.AccessToken == "" {
		return errors.New("exchange code: no access token in response")
	}
	c.accessToken = parsed.AccessToken
	return nil
}

// ProfileID returns the authenticated member's profile identifier.
func (c *Client) ProfileID(ctx context.Context) (string, error) {
	req, err := c.apiRequest(ctx, http.MethodGet, "/people/~", nil)
	if err != nil {
		return "", err
	}
	var parsed struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &parsed); err != nil {
		return "", fmt.Errorf("profile id: %w", err)
	}
	if parsed.ID == "" {
		return "", errors.New("profile id: empty id in response")
	}
	return parsed.ID, nil
}

// ExistingPatentNumbers lists patent numbers already on the profile, used to
// skip duplicates before submission.
func (c *Client) ExistingPatentNumbers(ctx context.Context, profileID string) (map[string]struct{}, error) {
	req, err := c.apiRequest(ctx, http.MethodGet, "/people/"+profileID+"/patents", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(restliHeader, restliVersion)
	var parsed struct {
		Elements []struct {
			Number string `json:"number"`
		} `json:"elements"`
	}
	if err := c.do(req, &parsed); err != nil {
		return nil, fmt.Errorf("existing patents: %w", err)
	}
	numbers := make(map[string]struct{}, len(parsed.Elements))
	for _, e := range parsed.Elements {
		if e.Number != "" {
			numbers[e.Number] = struct{}{}
		}
	}
	return numbers, nil
}

// CreatePatent submits one canonical record to the profile.
func (c *Client) CreatePatent(ctx context.Context, profileID string, p canonical.Patent) error {
	body, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := c.apiRequest(ctx, http.MethodPost, "/people/"+profileID+"/patents", strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(restliHeader, restliVersion)
	if err := c.do(req, nil); err != nil {
		return fmt.Errorf("create patent %s: %w", p.Number, err)
	}
	return nil
}

func (c *Client) apiRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	if c.accessToken == "" {
		return nil, errors.New("not authenticated: exchange an authorization code first")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.APIBase+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	res, err := c.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	b, _ := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if res.StatusCode >= 400 {
		return fmt.Errorf("status code: %d body=%s", res.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(b, out)
}
