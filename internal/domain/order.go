package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine связывает заказ с одним вхождением товара.
// Линия не существует отдельно от заказа: при обновлении заказа
// весь набор линий заменяется целиком.
type OrderLine struct {
	ProductID int64
	// Product заполняется при eager-загрузке и отражает текущее
	// состояние товара, а не его цену на момент создания заказа.
	Product *Product
}

// Order агрегирует заказ клиента и его линии.
type Order struct {
	// ID назначается хранилищем при создании.
	ID int64
	// Customer — имя клиента, обязательно непустое.
	Customer string
	// CreatedAt фиксируется серверными часами в момент создания.
	CreatedAt time.Time
	// Total всегда вычисляется алгоритмом скидок и никогда
	// не принимается от вызывающей стороны.
	Total decimal.Decimal
	Lines []OrderLine
}

// EntityID возвращает идентификатор для generic-репозитория.
func (o Order) EntityID() int64 { return o.ID }

// ValidateInvariants проверяет базовые инварианты заказа.
func (o Order) ValidateInvariants() []error {
	var errs []error

	if isBlank(o.Customer) {
		errs = append(errs, ErrCustomerRequired)
	}
	if len(o.Lines) == 0 {
		errs = append(errs, ErrProductsRequired)
	}
	if o.Total.IsNegative() {
		errs = append(errs, ErrTotalNegative)
	}

	return errs
}

// ProductIDs возвращает идентификаторы товаров по линиям заказа,
// сохраняя порядок и повторы.
func (o Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Lines))
	for _, line := range o.Lines {
		ids = append(ids, line.ProductID)
	}
	return ids
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
