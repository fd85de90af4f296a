package readwise

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// VerifyToken probes the auth endpoint: 204 means the token is valid, 401 that
// it is not. The probe is not retried.
func (c *Client) VerifyToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return NewError("verify", "", ErrMissingToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+authPath, nil)
	if err != nil {
		return NewError("verify", "", fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Token "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return NewError("verify", "", fmt.Errorf("execute request: %w", err))
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	case http.StatusUnauthorized:
		return NewError("verify", "", ErrInvalidToken)
	default:
		log.Warn().Int("status", resp.StatusCode).Msg("Unexpected response from Readwise auth endpoint")
		return NewError("verify", "", fmt.Errorf("%w: %d", ErrUnexpectedAuthResponse, resp.StatusCode))
	}
}
