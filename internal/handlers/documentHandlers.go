package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"readtag/internal/middlewares"
	"readtag/internal/models"
	"readtag/internal/services"
	"readtag/internal/utils"
	"readtag/internal/validation"
)

type DocumentHandler struct {
	service   services.DocumentService
	validator *validation.Validator
}

func NewDocumentHandler(service services.DocumentService, validator *validation.Validator) *DocumentHandler {
	return &DocumentHandler{service: service, validator: validator}
}

func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	token, _ := middlewares.AccessToken(r.Context())
	id := mux.Vars(r)["id"]

	fetched, err := h.service.GetDocument(r.Context(), token, id)
	if err != nil {
		sendError(w, r, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, fetched)
}

func (h *DocumentHandler) UpdateDocumentTags(w http.ResponseWriter, r *http.Request) {
	token, _ := middlewares.AccessToken(r.Context())
	id := mux.Vars(r)["id"]

	var body models.UpdateTagsRequestBody
	if err := utils.DecodeJSONBody(r, &body); err != nil {
		log.Error().Err(err).Msg("Invalid JSON input for UpdateDocumentTags")
		utils.SendJSONError(w, "Invalid JSON input: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(body); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.service.UpdateTags(r.Context(), token, id, body.Tags)
	if err != nil {
		sendError(w, r, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, updated)
}

func (h *DocumentHandler) MultiFetch(w http.ResponseWriter, r *http.Request) {
	token, _ := middlewares.AccessToken(r.Context())

	var body models.MultiFetchRequestBody
	if err := utils.DecodeJSONBody(r, &body); err != nil {
		log.Error().Err(err).Msg("Invalid JSON input for MultiFetch")
		utils.SendJSONError(w, "Invalid JSON input: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validator.Validate(body); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	results, err := h.service.MultiFetch(r.Context(), token, body)
	if err != nil {
		sendError(w, r, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}
