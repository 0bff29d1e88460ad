package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога, доступный для включения в заказы.
type Product struct {
	// ID назначается хранилищем при создании.
	ID int64
	// Name — название товара, обязательно непустое.
	Name string
	// Price — цена товара с точностью до двух знаков.
	Price decimal.Decimal
}

// EntityID возвращает идентификатор для generic-репозитория.
func (p Product) EntityID() int64 { return p.ID }

// ValidateInvariants проверяет базовые инварианты товара.
func (p Product) ValidateInvariants() []error {
	var errs []error

	if isBlank(p.Name) {
		errs = append(errs, ErrProductNameRequired)
	}
	if !p.Price.IsPositive() {
		errs = append(errs, ErrProductPriceInvalid)
	}

	return errs
}
