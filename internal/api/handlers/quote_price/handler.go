package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/FSP-BookingService/internal/api/handlers"
	"github.com/m04kA/FSP-BookingService/internal/api/middleware"
	quotePrice "github.com/m04kA/FSP-BookingService/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSelection   = "некорректный выбор услуги"
	msgMalformedCoupon    = "некорректный формат кода купона"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Ручка публичная: пользователь опционален, нужен только для проверки
	// адресных купонов
	userID := middleware.OptionalUserID(r)

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrInvalidSelection):
			h.logger.Warn("POST /quotes - Invalid selection: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSelection)

		case errors.Is(err, quotePrice.ErrMalformedCoupon):
			h.logger.Warn("POST /quotes - Malformed coupon code")
			handlers.RespondBadRequest(w, msgMalformedCoupon)

		default:
			h.logger.Error("POST /quotes - Failed to compute quote: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote computed: total=%s", result.Total.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
