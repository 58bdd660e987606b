package manage_coupons

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/FSP-BookingService/internal/api/handlers"
	"github.com/m04kA/FSP-BookingService/internal/service/coupons"
	"github.com/m04kA/FSP-BookingService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCoupon      = "некорректные параметры купона"
	msgInvalidCouponID    = "некорректный ID купона"
	msgNotFound           = "купон не найден"
)

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

// HandleCreate POST /api/v1/admin/coupons
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/coupons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("POST /admin/coupons - Invalid coupon parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCoupon)

		default:
			h.logger.Error("POST /admin/coupons - Failed to create coupon: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/coupons - Coupon created: id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/admin/coupons
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/coupons - Failed to list coupons: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/coupons - Coupons retrieved: count=%d", len(result.Coupons))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeactivate PATCH /api/v1/admin/coupons/{couponId}/deactivate
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	couponID, err := strconv.ParseInt(vars["couponId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/coupons/{id}/deactivate - Invalid coupon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCouponID)
		return
	}

	if err := h.service.Deactivate(r.Context(), couponID); err != nil {
		switch {
		case errors.Is(err, coupons.ErrCouponNotFound):
			h.logger.Warn("PATCH /admin/coupons/{id}/deactivate - Not found: id=%d", couponID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/coupons/{id}/deactivate - Failed to deactivate: id=%d, error=%v", couponID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/coupons/{id}/deactivate - Coupon deactivated: id=%d", couponID)
	handlers.RespondNoContent(w)
}
