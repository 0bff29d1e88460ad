package domain

import "github.com/shopspring/decimal"

var (
	// Порог суммы, после которого применяется скидка 10%.
	discountSubtotalThreshold = decimal.NewFromInt(500)
	// Порог количества различных товаров для дополнительных 5%.
	discountDistinctThreshold = 5

	discountRateSubtotal = decimal.NewFromFloat(0.10)
	discountRateDistinct = decimal.NewFromFloat(0.05)
)

// TotalWithDiscount вычисляет итог заказа по правилу двух скидок:
// 10% при сумме строго больше 500 и дополнительные 5% при строго
// больше 5 различных товаров. Условия независимы и суммируются.
// Результат округляется до двух знаков.
func TotalWithDiscount(subtotal decimal.Decimal, distinctProducts int) decimal.Decimal {
	discount := decimal.Zero

	if subtotal.GreaterThan(discountSubtotalThreshold) {
		discount = discount.Add(subtotal.Mul(discountRateSubtotal))
	}
	if distinctProducts > discountDistinctThreshold {
		discount = discount.Add(subtotal.Mul(discountRateDistinct))
	}

	return subtotal.Sub(discount).Round(2)
}
