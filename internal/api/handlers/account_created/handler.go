package account_created

import (
	"errors"
	"net/http"

	"github.com/m04kA/FSP-BookingService/internal/api/handlers"
	"github.com/m04kA/FSP-BookingService/internal/service/coupons"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUserID      = "некорректный ID пользователя"
)

// hookBody payload webhook-а платформы аккаунтов
type hookBody struct {
	UserID int64 `json:"userId"`
}

type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/hooks/account-created
// Вызывается платформой аккаунтов после регистрации клиента:
// новому пользователю выписывается приветственный купон
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var body hookBody
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /hooks/account-created - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.IssueWelcomeCoupon(r.Context(), body.UserID)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("POST /hooks/account-created - Invalid user ID: %d", body.UserID)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		default:
			h.logger.Error("POST /hooks/account-created - Failed to issue welcome coupon: user_id=%d, error=%v", body.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /hooks/account-created - Welcome coupon issued: user_id=%d, coupon_id=%d", body.UserID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
