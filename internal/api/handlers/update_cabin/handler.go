package update_cabin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CabinService/internal/api/handlers"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins/models"
)

const (
	msgInvalidCabinID     = "invalid cabin id"
	msgInvalidRequestBody = "invalid request body"
	msgBodyTooLarge       = "request body too large"
	msgCabinNotFound      = "cabin not found"
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

// Handle PUT /cabins/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cabinID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || cabinID <= 0 {
		h.logger.Warn("PUT /cabins/{id} - Invalid cabin id: %v", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidCabinID)
		return
	}

	var req models.UpdateCabinRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /cabins/%d - Invalid request body: %v", cabinID, err)
		if handlers.IsBodyTooLarge(err) {
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), cabinID, &req)
	if err != nil {
		switch {
		case errors.Is(err, cabins.ErrCabinNotFound):
			h.logger.Warn("PUT /cabins/%d - Cabin not found", cabinID)
			handlers.RespondNotFound(w, msgCabinNotFound)

		case errors.Is(err, cabins.ErrInvalidInput):
			h.logger.Warn("PUT /cabins/%d - Validation failed: %v", cabinID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /cabins/%d - Failed to update cabin: %v", cabinID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /cabins/%d - Cabin updated", cabinID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
