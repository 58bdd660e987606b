package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/FSP-BookingService/internal/api/handlers"
	"github.com/m04kA/FSP-BookingService/internal/domain"
	"github.com/m04kA/FSP-BookingService/internal/service/schedule"
	"github.com/m04kA/FSP-BookingService/internal/service/schedule/models"
)

const (
	msgMissingPeriod   = "параметры from и to обязательны"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidPeriod   = "некорректный период"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: from, to (required, YYYY-MM-DD)
// Ответ анонимизирован: только занятые интервалы и блокировки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /availability - Missing from/to")
		handlers.RespondBadRequest(w, msgMissingPeriod)
		return
	}

	from, err := time.Parse(domain.DateFormat, fromStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid from date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := time.Parse(domain.DateFormat, toStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid to date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetAvailability(r.Context(), &models.GetAvailabilityRequest{
		From: from,
		To:   to,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidTimeRange), errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid period: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPeriod)

		default:
			h.logger.Error("GET /availability - Failed to get availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved: busy=%d, blocked=%d", len(result.Busy), len(result.Blocked))
	handlers.RespondJSON(w, http.StatusOK, result)
}
