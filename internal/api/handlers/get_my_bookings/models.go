package get_my_bookings

import "github.com/m04kA/SMC-CabinService/internal/service/bookings/models"

// MyBookingsResponse HTTP response model
type MyBookingsResponse struct {
	ActiveBookings []models.BookingResponse `json:"active_bookings"`
	PastBookings   []models.BookingResponse `json:"past_bookings"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.MyBookingsResponse) *MyBookingsResponse {
	return &MyBookingsResponse{
		ActiveBookings: resp.Active,
		PastBookings:   resp.Past,
	}
}
