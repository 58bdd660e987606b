package validate_coupon

import (
	"errors"
	"net/http"

	"github.com/m04kA/FSP-BookingService/internal/api/handlers"
	"github.com/m04kA/FSP-BookingService/internal/api/middleware"
	validateCoupon "github.com/m04kA/FSP-BookingService/internal/usecase/validate_coupon"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMalformedCode      = "некорректный формат кода купона"
)

type Handler struct {
	useCase ValidateCouponUseCase
	logger  Logger
}

func NewHandler(useCase ValidateCouponUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/coupons/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ValidateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /coupons/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID := middleware.OptionalUserID(r)

	result, err := h.useCase.Execute(r.Context(), &validateCoupon.Request{
		Code:   req.Code,
		UserID: userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, validateCoupon.ErrMalformedCode):
			h.logger.Warn("POST /coupons/validate - Malformed code")
			handlers.RespondBadRequest(w, msgMalformedCode)

		default:
			h.logger.Error("POST /coupons/validate - Failed to validate coupon: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /coupons/validate - Validated: valid=%v", result.Valid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
