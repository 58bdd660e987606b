package get_available_slots

import (
	"time"

	"github.com/m04kA/FSP-BookingService/pkg/types"
)

// Request модель запроса свободных слотов на дату
type Request struct {
	Date time.Time // Дата (без времени)

	// DurationCode опциональный код длительности: если задан, возвращаются
	// только слоты, в которые съемка такой длительности умещается целиком
	DurationCode *string
}

// Response модель ответа со свободными слотами
type Response struct {
	Date  time.Time          // Запрошенная дата
	Slots []types.TimeString // Свободные времена начала, по возрастанию
}
