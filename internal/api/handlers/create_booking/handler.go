package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/FSP-BookingService/internal/api/handlers"
	"github.com/m04kA/FSP-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/FSP-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidSelection   = "некорректный выбор услуги"
	msgInvalidDate        = "дата съемки не может быть в прошлом"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgMalformedCoupon    = "некорректный формат кода купона"
	msgCouponNotFound     = "купон не найден"
	msgCouponExpired      = "срок действия купона истек"
	msgCouponAlreadyUsed  = "купон уже использован"
	msgCouponWrongUser    = "купон выписан другому пользователю"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Ручка публичная: гостевое бронирование без аккаунта допустимо
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID := middleware.OptionalUserID(r)

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCouponAlreadyUsed):
			h.logger.Warn("POST /bookings - Coupon already used")
			handlers.RespondConflict(w, msgCouponAlreadyUsed)

		case errors.Is(err, createBooking.ErrCouponNotFound):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponNotFound)

		case errors.Is(err, createBooking.ErrCouponExpired):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponExpired)

		case errors.Is(err, createBooking.ErrCouponWrongUser):
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgCouponWrongUser)

		case errors.Is(err, createBooking.ErrMalformedCoupon):
			handlers.RespondBadRequest(w, msgMalformedCoupon)

		case errors.Is(err, createBooking.ErrInvalidSelection):
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, reference=%s", result.ID, result.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
