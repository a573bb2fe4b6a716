// Raw HTTP access to the SoundCloud REST API
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/scplayer/internal/shared"
	"golang.org/x/time/rate"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// APIClient performs bearer-authenticated requests against a REST base URL and returns the raw response.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewAPIClient creates a new API client for baseURL.
func NewAPIClient(baseURL string, client *http.Client) *APIClient {
	if baseURL == "" {
		baseURL = soundCloudAPIURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
}

// WithRateLimit makes every request wait for a token from a limiter allowing rps requests per second.
// A non-positive rps removes the limit.
func (a *APIClient) WithRateLimit(rps float64) *APIClient {
	if rps <= 0 {
		a.limiter = nil
		return a
	}
	a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	return a
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// OK reports a 200 response.
func (r *APIResponse) OK() bool {
	return r.StatusCode == http.StatusOK
}

// Decode unmarshals the body into v.
func (r *APIResponse) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Get performs a GET request to path with the given query parameters and bearer token.
//
// Any HTTP status is returned as a response; only transport failures produce an error.
func (a *APIClient) Get(ctx context.Context, path string, params url.Values, accessToken string) (*APIResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: rate limit: %v", shared.ErrAPIRequest, err)
		}
	}

	fullURL := a.baseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", shared.ErrAPIRequest, err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}
