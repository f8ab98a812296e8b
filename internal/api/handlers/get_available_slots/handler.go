package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CabinService/internal/api/handlers"
	"github.com/m04kA/SMC-CabinService/internal/api/middleware"
	getSlots "github.com/m04kA/SMC-CabinService/internal/usecase/get_available_slots"
)

const (
	msgInvalidCabinID = "invalid cabin id"
	msgCabinNotFound  = "cabin not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /bookings/{cabinId}/available-slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cabinID, err := strconv.ParseInt(mux.Vars(r)["cabinId"], 10, 64)
	if err != nil || cabinID <= 0 {
		h.logger.Warn("GET /bookings/{cabinId}/available-slots - Invalid cabin id: %v", mux.Vars(r)["cabinId"])
		handlers.RespondBadRequest(w, msgInvalidCabinID)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		UserID:  identity.UserID,
		CabinID: cabinID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrCabinNotFound):
			h.logger.Warn("GET /bookings/%d/available-slots - Cabin not found", cabinID)
			handlers.RespondNotFound(w, msgCabinNotFound)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /bookings/%d/available-slots - Invalid input: %v", cabinID, err)
			handlers.RespondBadRequest(w, msgInvalidCabinID)

		default:
			h.logger.Error("GET /bookings/%d/available-slots - Failed to get slots: %v", cabinID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
