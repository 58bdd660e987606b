package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/FSP-BookingService/internal/discount"
	"github.com/m04kA/FSP-BookingService/internal/domain"
)

// Пакет pricing - единственная реализация расчета цены.
// Его используют и предварительный расчет для UI (POST /quotes), и
// авторитетный пересчет при создании бронирования. Две рассинхронизированные
// копии этой логики - главный источник дефектов, поэтому копий нет.
//
// ComputeTotal детерминирован и не делает I/O: все цены приходят снапшотами
// в выборе, все решения о скидках - в discount.Context.

// Коды позиций расчета
const (
	ItemDuration     = "duration"
	ItemPackage      = "package"
	ItemCombo        = "combo"
	ItemDeal         = "deal"
	ItemCoupon       = "coupon"
	ItemWelcome      = "welcome"
	ItemModelRelease = "model_release"
)

// WelcomePercent размер приветственной скидки (процент от цены фотопакета)
var WelcomePercent = decimal.NewFromInt(10)

// ModelReleaseCap потолок скидки за model-release
var ModelReleaseCap = decimal.RequireFromString("99.99")

var hundred = decimal.NewFromInt(100)

// LineItem одна позиция расчета. Скидки имеют отрицательный Amount.
// Все суммы уже округлены до центов (half-up).
type LineItem struct {
	Code   string
	Label  string
	Amount decimal.Decimal
}

// Quote итог расчета: позиции и неотрицательная сумма
type Quote struct {
	LineItems []LineItem
	Total     decimal.Decimal
}

// ComputeTotal вычисляет итоговую цену выбора с учетом скидок.
//
// Порядок применения:
//  1. База: длительность + фотопакет (+ combo), либо фиксированная deal-цена
//  2. Ровно один из источников {купон, welcome-скидка} - они взаимоисключающие
//  3. Model-release скидка - независимо от п.2, т.к. действует на время
//     съемки, а не на пакет; min(99.99, цена длительности)
//  4. Итог не бывает отрицательным
func ComputeTotal(sel domain.BookingSelection, d discount.Context) Quote {
	items := make([]LineItem, 0, 5)

	if sel.IsDeal() {
		items = append(items, LineItem{Code: ItemDeal, Label: "Спецпредложение", Amount: roundMoney(sel.DealPrice)})
	} else {
		items = append(items, LineItem{Code: ItemDuration, Label: "Время съемки", Amount: roundMoney(sel.DurationPrice)})
		if sel.HasPackage() {
			items = append(items, LineItem{Code: ItemPackage, Label: "Фотопакет", Amount: roundMoney(sel.PackagePrice)})
		}
		if sel.ComboSelected && sel.ComboEligible {
			items = append(items, LineItem{Code: ItemCombo, Label: "Комбо-предложение", Amount: roundMoney(sel.ComboPrice)})
		}
	}

	subtotal := sumItems(items)

	// Скидки: купон и welcome взаимоисключающие по построению.
	// Даже если контекст сверху ошибочно разрешил оба, применится только купон.
	switch {
	case d.Coupon != nil:
		items = append(items, couponItem(sel, d.Coupon, subtotal))
	case d.WelcomeEligible && !sel.IsDeal() && sel.HasPackage():
		welcome := roundMoney(sel.PackagePrice.Mul(WelcomePercent).Div(hundred))
		items = append(items, LineItem{Code: ItemWelcome, Label: "Приветственная скидка", Amount: welcome.Neg()})
	}

	// Model-release действует на компонент "время съемки" и может сочетаться
	// с купоном или welcome-скидкой, но не с deal и не без фотопакета
	if d.ModelReleaseEligible && !sel.IsDeal() && sel.HasPackage() {
		limit := decimal.Min(ModelReleaseCap, roundMoney(sel.DurationPrice))
		running := sumItems(items)
		// Скидка не может увести итог в минус
		mr := decimal.Min(limit, running)
		if mr.IsNegative() {
			mr = decimal.Zero
		}
		items = append(items, LineItem{Code: ItemModelRelease, Label: "Скидка model-release", Amount: mr.Neg()})
	}

	total := sumItems(items)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{LineItems: items, Total: roundMoney(total)}
}

// couponItem вычисляет позицию купонной скидки.
// Купон со scope package_only при выборе "без пакета" дает нулевую скидку -
// это не ошибка, но позиция с 0.00 остается видимой, чтобы UI показал,
// что купон принят, но к выбору не применился.
func couponItem(sel domain.BookingSelection, coupon *domain.Coupon, subtotal decimal.Decimal) LineItem {
	var base decimal.Decimal
	switch coupon.Scope {
	case domain.ScopePackageOnly:
		if sel.IsDeal() || !sel.HasPackage() {
			base = decimal.Zero
		} else {
			base = roundMoney(sel.PackagePrice)
		}
	default: // domain.ScopeWholeOrder
		base = subtotal
	}

	// Процент применяется первым, фиксированная сумма - после
	disc := roundMoney(base.Mul(coupon.DiscountPercent).Div(hundred))
	disc = disc.Add(roundMoney(coupon.DiscountAmount))

	// Скидка не превышает компонент, на который она действует
	if disc.GreaterThan(base) {
		disc = base
	}
	if disc.IsNegative() {
		disc = decimal.Zero
	}

	label := "Купон"
	if base.IsZero() {
		label = "Купон (не применим к выбору)"
	}

	return LineItem{Code: ItemCoupon, Label: label, Amount: disc.Neg()}
}

func sumItems(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	return total
}

// roundMoney округляет до 2 знаков, half-up
func roundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
