package discount

import (
	"time"

	"github.com/m04kA/FSP-BookingService/internal/domain"
)

// RejectionReason типизированная причина отказа в применении купона.
// Отказ - это не ошибка: UI показывает причину рядом с полем ввода,
// бронирование при этом не прерывается на этапе предварительного расчета.
type RejectionReason string

const (
	RejectionNotFound    RejectionReason = "not_found"
	RejectionExpired     RejectionReason = "expired"
	RejectionAlreadyUsed RejectionReason = "already_used"
	RejectionWrongUser   RejectionReason = "wrong_user"
)

// CouponResult результат поиска и проверки купона
// Coupon заполнен только если Rejection пустой
type CouponResult struct {
	Coupon    *domain.Coupon
	Rejection RejectionReason
}

// Applied возвращает true, если купон прошел все проверки
func (r CouponResult) Applied() bool {
	return r.Coupon != nil && r.Rejection == ""
}

// Rejected создает результат-отказ
func Rejected(reason RejectionReason) CouponResult {
	return CouponResult{Rejection: reason}
}

// ValidateCoupon проверяет применимость купона к текущему пользователю.
// Деактивированный купон неотличим снаружи от несуществующего.
func ValidateCoupon(coupon *domain.Coupon, userID *int64, now time.Time) CouponResult {
	if coupon == nil || !coupon.IsActive {
		return Rejected(RejectionNotFound)
	}
	if coupon.IsExpired(now) {
		return Rejected(RejectionExpired)
	}
	if coupon.IsRedeemed() {
		return Rejected(RejectionAlreadyUsed)
	}
	if !coupon.IsForUser(userID) {
		return Rejected(RejectionWrongUser)
	}
	return CouponResult{Coupon: coupon}
}

// Context результат разрешения скидок для одного расчета цены.
// Вычисляется заново при каждом пересчете и никогда не кэшируется:
// любое изменение выбора может изменить применимость скидок.
type Context struct {
	// ModelReleaseEligible скидка за model-release (на время съемки)
	ModelReleaseEligible bool
	// WelcomeEligible приветственная скидка 10% на фотопакет
	WelcomeEligible bool
	// Coupon применимый купон (nil, если купона нет или он отклонен)
	Coupon *domain.Coupon
	// CouponRejection причина отказа (для отображения в UI)
	CouponRejection RejectionReason
}

// Resolve определяет, какие скидки применимы к выбору.
//
// Правила взаимного исключения:
//   - купон и welcome-скидка никогда не действуют одновременно
//   - model-release независим от них (другой компонент цены), но требует
//     выбранного фотопакета
//   - к deal применим только купон
func Resolve(sel domain.BookingSelection, couponLookup CouponResult) Context {
	ctx := Context{
		Coupon:          couponLookup.Coupon,
		CouponRejection: couponLookup.Rejection,
	}
	if !couponLookup.Applied() {
		ctx.Coupon = nil
	}

	if sel.IsDeal() {
		// Deal-цена уже включает все: ни welcome, ни model-release
		return ctx
	}

	ctx.ModelReleaseEligible = sel.ModelRelease && sel.HasPackage()
	ctx.WelcomeEligible = sel.CreateAccount && ctx.Coupon == nil && sel.HasPackage()

	return ctx
}
