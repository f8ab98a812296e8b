package get_all_bookings

import (
	"net/http"

	"github.com/m04kA/SMC-CabinService/internal/api/handlers"
	"github.com/m04kA/SMC-CabinService/internal/service/bookings/models"
)

// AllBookingsResponse HTTP response model
type AllBookingsResponse struct {
	AllBookings []models.BookingResponse `json:"all_bookings"`
	Total       int                      `json:"total"`
}

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /bookings/admin/all-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetAllBookings(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings/admin/all-bookings - Failed to get bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &AllBookingsResponse{
		AllBookings: result.Bookings,
		Total:       result.Total,
	})
}
