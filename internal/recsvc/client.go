// Package recsvc is the HTTP client for the recommendation API, used by the
// terminal panel. It speaks the same envelopes the server handlers emit.
package recsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/altkan/linkwise/internal"
	"github.com/altkan/linkwise/internal/recs"
	"github.com/rs/zerolog/log"
)

type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient builds a client for the given server. Credentials are sent as
// basic auth, which the server's auth middleware accepts alongside cookies.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type recommendationsResponse struct {
	Recommendations []recs.Recommendation `json:"recommendations"`
}

type linkPayload struct {
	ID        int64      `json:"id"`
	Slug      string     `json:"slug"`
	URL       string     `json:"url"`
	CreatedAt time.Time  `json:"created_at"`
	Clicks    int64      `json:"clicks"`
	LastClick *time.Time `json:"last_clicked_at"`
}

func (p linkPayload) toDomain() internal.Link {
	return internal.Link{
		ID:        p.ID,
		Slug:      p.Slug,
		URL:       p.URL,
		CreatedAt: p.CreatedAt,
		Stats: &internal.LinkStats{
			Clicks:        p.Clicks,
			LastClickedAt: p.LastClick,
		},
	}
}

type createdLinkResponse struct {
	Link linkPayload `json:"link"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *Client) GetRecommendations(ctx context.Context) ([]recs.Recommendation, error) {
	var resp recommendationsResponse
	if err := c.do(ctx, http.MethodGet, "/api/recommendations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recommendations, nil
}

func (c *Client) CreateRecommendedLink(ctx context.Context, id string) (*internal.Link, error) {
	var resp createdLinkResponse
	path := "/api/recommendations/" + id + "/accept"
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	link := resp.Link.toDomain()
	return &link, nil
}

func (c *Client) DismissRecommendation(ctx context.Context, id string) error {
	path := "/api/recommendations/" + id + "/dismiss"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	log.Debug().Str("method", method).Str("path", path).Msg("calling recommendation api")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%s %s: %s", method, path, apiError(resp))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) string {
	var body errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return body.Error
	}
	return resp.Status
}
