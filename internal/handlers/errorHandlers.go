package handlers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"readtag/internal/middlewares"
	"readtag/internal/readwise"
	"readtag/internal/repositories"
	"readtag/internal/services"
	"readtag/internal/utils"
	"readtag/internal/validation"
)

// statusFor maps a service error to the status code returned to the browser.
// Upstream failures are checked first: a response that failed validation also
// wraps a *validation.Error but is not the client's fault.
func statusFor(err error) int {
	if code, ok := readwise.StatusCode(err); ok {
		switch code {
		case http.StatusUnauthorized:
			return http.StatusUnauthorized
		case http.StatusNotFound:
			return http.StatusNotFound
		default:
			return http.StatusBadGateway
		}
	}

	var rwErr *readwise.Error
	var vErr *validation.Error
	switch {
	case errors.Is(err, readwise.ErrMissingToken), errors.Is(err, readwise.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, readwise.ErrMissingID):
		return http.StatusBadRequest
	case errors.Is(err, readwise.ErrRateLimitExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, readwise.ErrInvalidResponse),
		errors.Is(err, readwise.ErrContentTypeMismatch),
		errors.Is(err, readwise.ErrUnexpectedAuthResponse):
		return http.StatusBadGateway
	case errors.Is(err, services.ErrDocumentNotFound):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrInvalidFilter), errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.As(err, &rwErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// sendError logs err against the request id and answers with its mapped status.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	event := log.Warn()
	if code >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).
		Str("request_id", middlewares.RequestID(r.Context())).
		Str("path", r.URL.Path).
		Int("status", code).
		Msg("Request failed")
	utils.SendJSONError(w, err.Error(), code)
}
