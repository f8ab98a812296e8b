package delete_cabin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CabinService/internal/api/handlers"
	"github.com/m04kA/SMC-CabinService/internal/service/cabins"
)

const (
	msgInvalidCabinID   = "invalid cabin id"
	msgCabinNotFound    = "cabin not found"
	msgHasActiveBooking = "cabin has active bookings and cannot be deleted"
	msgDeleted          = "cabin deleted"
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

// Handle DELETE /cabins/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cabinID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || cabinID <= 0 {
		h.logger.Warn("DELETE /cabins/{id} - Invalid cabin id: %v", mux.Vars(r)["id"])
		handlers.RespondBadRequest(w, msgInvalidCabinID)
		return
	}

	if err := h.service.Delete(r.Context(), cabinID); err != nil {
		switch {
		case errors.Is(err, cabins.ErrCabinNotFound):
			h.logger.Warn("DELETE /cabins/%d - Cabin not found", cabinID)
			handlers.RespondNotFound(w, msgCabinNotFound)

		case errors.Is(err, cabins.ErrCabinHasActiveBookings):
			h.logger.Warn("DELETE /cabins/%d - Cabin has active bookings", cabinID)
			handlers.RespondConflict(w, msgHasActiveBooking)

		default:
			h.logger.Error("DELETE /cabins/%d - Failed to delete cabin: %v", cabinID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /cabins/%d - Cabin deleted", cabinID)
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"detail": msgDeleted})
}
