package book_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CabinService/internal/api/handlers"
	"github.com/m04kA/SMC-CabinService/internal/api/middleware"
	bookSlot "github.com/m04kA/SMC-CabinService/internal/usecase/book_slot"
)

const (
	msgInvalidCabinID     = "invalid cabin id"
	msgInvalidRequestBody = "invalid request body"
	msgBodyTooLarge       = "request body too large"
	msgInvalidSlotLabel   = "invalid slot, expected \"YYYY-MM-DD HH:MM\""
	msgCabinNotFound      = "cabin not found"
	msgInvalidDuration    = "duration does not match the cabin slot duration"
	msgInvalidSlot        = "slot is not offered by this cabin"
	msgSlotInPast         = "slot is in the past"
	msgSlotRestricted     = "slot falls into a restricted time range"
	msgSlotAlreadyBooked  = "slot is already booked"
	msgDailyLimitReached  = "daily booking limit reached"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /bookings/{cabinId}/book-selected-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cabinID, err := strconv.ParseInt(mux.Vars(r)["cabinId"], 10, 64)
	if err != nil || cabinID <= 0 {
		h.logger.Warn("POST /bookings/{cabinId}/book-selected-slot - Invalid cabin id: %v", mux.Vars(r)["cabinId"])
		handlers.RespondBadRequest(w, msgInvalidCabinID)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/%d/book-selected-slot - Invalid request body: %v", cabinID, err)
		if handlers.IsBodyTooLarge(err) {
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(cabinID, identity)
	if err != nil {
		h.logger.Warn("POST /bookings/%d/book-selected-slot - Failed to parse slot %q: %v",
			cabinID, req.SelectedSlot, err)
		handlers.RespondBadRequest(w, msgInvalidSlotLabel)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrCabinNotFound):
			h.logger.Warn("POST /bookings/%d/book-selected-slot - Cabin not found", cabinID)
			handlers.RespondNotFound(w, msgCabinNotFound)

		case errors.Is(err, bookSlot.ErrInvalidDuration):
			h.logger.Warn("POST /bookings/%d/book-selected-slot - Invalid duration: user=%d, duration=%d",
				cabinID, identity.UserID, req.Duration)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, bookSlot.ErrInvalidSlot):
			h.logger.Warn("POST /bookings/%d/book-selected-slot - Invalid slot: user=%d, slot=%q",
				cabinID, identity.UserID, req.SelectedSlot)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, bookSlot.ErrSlotInPast):
			h.logger.Warn("POST /bookings/%d/book-selected-slot - Slot in past: user=%d, slot=%q",
				cabinID, identity.UserID, req.SelectedSlot)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, bookSlot.ErrSlotRestricted):
			h.logger.Warn("POST /bookings/%d/book-selected-slot - Slot restricted: user=%d, slot=%q",
				cabinID, identity.UserID, req.SelectedSlot)
			handlers.RespondConflict(w, msgSlotRestricted)

		case errors.Is(err, bookSlot.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /bookings/%d/book-selected-slot - Slot already booked: user=%d, slot=%q",
				cabinID, identity.UserID, req.SelectedSlot)
			handlers.RespondConflict(w, msgSlotAlreadyBooked)

		case errors.Is(err, bookSlot.ErrDailyLimitReached):
			h.logger.Warn("POST /bookings/%d/book-selected-slot - Daily limit reached: user=%d",
				cabinID, identity.UserID)
			handlers.RespondConflict(w, msgDailyLimitReached)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /bookings/%d/book-selected-slot - Invalid input: %v", cabinID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/%d/book-selected-slot - Failed to book slot: user=%d, error=%v",
				cabinID, identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/book-selected-slot - Booking created: booking_id=%d, user=%d",
		cabinID, result.Booking.ID, identity.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
