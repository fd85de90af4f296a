package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"readtag/internal/models"
	"readtag/internal/readwise"
	"readtag/internal/services"
	"readtag/internal/utils"
)

type SessionHandler struct {
	service services.SessionService
}

func NewSessionHandler(service services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	_, ok := h.service.Token(r)
	utils.RespondWithJSON(w, http.StatusOK, models.SessionStatus{Authenticated: ok})
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body models.SessionRequestBody
	if err := utils.DecodeJSONBody(r, &body); err != nil {
		log.Error().Err(err).Msg("Invalid JSON input for CreateSession")
		utils.SendJSONError(w, "Invalid JSON input: "+err.Error(), http.StatusBadRequest)
		return
	}

	token := strings.TrimSpace(body.Token)
	if token == "" {
		utils.SendJSONError(w, "The 'token' field is required", http.StatusBadRequest)
		return
	}

	if err := h.service.Verify(r.Context(), token); err != nil {
		sendVerifyError(w, r, err)
		return
	}

	if err := h.service.Save(w, r, token); err != nil {
		utils.SendJSONError(w, "Failed to store session", http.StatusInternalServerError)
		return
	}

	log.Info().Msg("Session created")
	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.service.Clear(w)
	log.Info().Msg("Session cleared")
	w.WriteHeader(http.StatusNoContent)
}

// TestSession verifies the token in the body, or the stored one when the body
// carries none, without changing the session.
func (h *SessionHandler) TestSession(w http.ResponseWriter, r *http.Request) {
	var body models.SessionRequestBody
	if err := utils.DecodeJSONBody(r, &body); err != nil && !errors.Is(err, io.EOF) {
		log.Debug().Err(err).Msg("Ignoring unreadable body for TestSession")
	}

	token := strings.TrimSpace(body.Token)
	if token == "" {
		token, _ = h.service.Token(r)
	}
	if token == "" {
		utils.SendJSONError(w, "No token supplied or stored", http.StatusBadRequest)
		return
	}

	if err := h.service.Verify(r.Context(), token); err != nil {
		sendVerifyError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func sendVerifyError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, readwise.ErrInvalidToken), errors.Is(err, readwise.ErrMissingToken):
		utils.SendJSONError(w, "Invalid Readwise access token", http.StatusUnauthorized)
	case errors.Is(err, readwise.ErrUnexpectedAuthResponse):
		utils.SendJSONError(w, err.Error(), http.StatusBadGateway)
	default:
		sendError(w, r, err)
	}
}
