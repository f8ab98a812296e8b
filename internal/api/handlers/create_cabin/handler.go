package create_cabin

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CabinService/internal/api/handlers"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgBodyTooLarge       = "request body too large"
)

type Handler struct {
	service CabinsService
	logger  Logger
}

func NewHandler(service CabinsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /cabins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCabinRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /cabins - Invalid request body: %v", err)
		if handlers.IsBodyTooLarge(err) {
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, cabins.ErrInvalidInput):
			h.logger.Warn("POST /cabins - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /cabins - Failed to create cabin: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /cabins - Cabin created: id=%d, name=%q", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
