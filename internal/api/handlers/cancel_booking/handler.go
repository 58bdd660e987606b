package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FSP-BookingService/internal/api/handlers"
	"github.com/m04kA/FSP-BookingService/internal/api/middleware"
	"github.com/m04kA/FSP-BookingService/internal/service/bookings"
	"github.com/m04kA/FSP-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "бронирование не может быть отменено"
)

// cancelBody тело запроса отмены
type cancelBody struct {
	CancellationReason string `json:"cancellationReason"`
}

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	userID, authorized := middleware.GetUserID(r.Context())
	if !authorized {
		h.logger.Warn("POST /bookings/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var body cancelBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.Cancel(r.Context(), bookingID, &models.CancelBookingRequest{
		RequesterID:        &userID,
		CancellationReason: body.CancellationReason,
	})
	if err != nil {
		h.respondServiceError(w, err, bookingID)
		return
	}

	h.logger.Info("POST /bookings/{id}/cancel - Booking cancelled: booking_id=%d, user_id=%d", bookingID, userID)
	handlers.RespondNoContent(w)
}

// HandleAdmin POST /api/v1/admin/bookings/{bookingId}/cancel
func (h *Handler) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	var body cancelBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.Cancel(r.Context(), bookingID, &models.CancelBookingRequest{
		IsAdmin:            true,
		CancellationReason: body.CancellationReason,
	})
	if err != nil {
		h.respondServiceError(w, err, bookingID)
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/cancel - Booking cancelled: booking_id=%d", bookingID)
	handlers.RespondNoContent(w)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("CancelBooking - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return bookingID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, bookingID int64) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("CancelBooking - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("CancelBooking - Access denied: booking_id=%d", bookingID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, bookings.ErrCannotCancel):
		h.logger.Warn("CancelBooking - Cannot cancel: booking_id=%d", bookingID)
		handlers.RespondConflict(w, msgCannotCancel)

	default:
		h.logger.Error("CancelBooking - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
