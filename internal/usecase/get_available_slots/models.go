package get_available_slots

import (
	"github.com/m04kA/SMC-CabinService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID  int64 // ID пользователя (для логирования, не влияет на результат)
	CabinID int64 // ID кабины
}

// Response классифицированные слоты кабины на горизонте сегодня+завтра.
// Дни упорядочены: сегодня, затем завтра; слоты внутри дня - по времени начала.
type Response struct {
	CabinID             int64
	CabinName           string
	SlotDurationMinutes int
	Days                []domain.DaySlots
}
