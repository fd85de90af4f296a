// Package readwise is a small client for the Readwise Reader API. It injects the
// access token, retries rate-limited calls, and checks that responses are JSON.
package readwise

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"readtag/internal/metrics"
	"readtag/internal/utils"
)

const (
	DefaultBaseURL    = "https://readwise.io"
	DefaultMaxRetries = 5
	DefaultRetryDelay = 1500 * time.Millisecond

	defaultTimeout = 30 * time.Second

	listPath   = "/api/v3/list/"
	updatePath = "/api/v3/update/"
	authPath   = "/api/v2/auth/"
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// Client talks to the Readwise API on behalf of whichever token each call carries.
// It holds no per-user state.
type Client struct {
	http       *http.Client
	baseURL    string
	maxRetries int
	retryDelay time.Duration

	sleep func(context.Context, time.Duration) error
	now   func() time.Time
}

func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	return &Client{
		http:       httpClient,
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		sleep:      sleepContext,
		now:        time.Now,
	}
}

// ListURL builds the list endpoint URL for the given query.
func (c *Client) ListURL(query url.Values) string {
	u := c.baseURL + listPath
	if encoded := query.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// UpdateURL builds the update endpoint URL for a document id.
func (c *Client) UpdateURL(id string) string {
	return c.baseURL + updatePath + url.PathEscape(id) + "/"
}

// Do performs an authenticated call and returns the raw JSON body, or nil when
// the response carried no body. A 429 is retried after the delay named by
// Retry-After, at most maxRetries times.
func (c *Client) Do(ctx context.Context, method, rawURL string, body any, token string) ([]byte, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	endpoint := endpointLabel(rawURL)

	for attempt := 0; ; attempt++ {
		resp, respBody, err := c.send(ctx, method, rawURL, payload, token, endpoint)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			if attempt >= c.maxRetries {
				return nil, ErrRateLimitExceeded
			}

			delay, ok := retryAfter(resp.Header, c.now())
			if !ok {
				delay = c.retryDelay
			}
			metrics.RateLimitRetriesTotal.Inc()
			log.Warn().
				Str("endpoint", endpoint).
				Dur("delay", delay).
				Int("attempt", attempt+1).
				Int("max_retries", c.maxRetries).
				Msgf("Rate limited by Readwise API. Retrying in %ds (attempt %d/%d).",
					int((delay+time.Second-1)/time.Second), attempt+1, c.maxRetries)

			if err := c.sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
		}

		return jsonBody(resp, respBody)
	}
}

func (c *Client) send(ctx context.Context, method, rawURL string, payload []byte, token, endpoint string) (*http.Response, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("endpoint", endpoint).Msg("readwise request")

	status := "error"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.UpstreamRequestDurationSeconds.WithLabelValues(endpoint, method, status).Observe(v)
	}))
	defer timer.ObserveDuration()

	resp, err := c.http.Do(req)
	if err != nil {
		utils.UpstreamErrorsTotal.WithLabelValues(endpoint, method).Inc()
		return nil, nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		utils.UpstreamErrorsTotal.WithLabelValues(endpoint, method).Inc()
		return nil, nil, fmt.Errorf("read response: %w", err)
	}

	return resp, respBody, nil
}

// jsonBody accepts JSON content types, and JSON-parseable bodies when the
// server sent no content type or text/plain.
func jsonBody(resp *http.Response, body []byte) ([]byte, error) {
	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusResetContent {
		return nil, nil
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err == nil && (mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")) {
		return body, nil
	}
	if (contentType == "" || mediaType == "text/plain") && json.Valid(body) {
		return body, nil
	}

	return nil, fmt.Errorf("%w: got %q", ErrContentTypeMismatch, contentType)
}

func endpointLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "other"
	}
	switch {
	case strings.HasSuffix(u.Path, listPath):
		return "list"
	case strings.Contains(u.Path, updatePath):
		return "update"
	case strings.HasSuffix(u.Path, authPath):
		return "auth"
	default:
		return "other"
	}
}
