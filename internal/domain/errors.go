package domain

import "errors"

var (
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrProductNotFound возвращается, если товар не найден в хранилище.
	ErrProductNotFound = errors.New("product not found")

	// Ошибка отсутствующего имени клиента.
	ErrCustomerRequired = errors.New("customer name is required")
	// Ошибка пустого списка товаров при создании/обновлении заказа.
	ErrProductsRequired = errors.New("order must contain at least one product")
	// Ошибка, если хотя бы один из запрошенных товаров не существует.
	ErrUnknownProducts = errors.New("one or more products do not exist")
	// Ошибка отсутствующего названия товара.
	ErrProductNameRequired = errors.New("product name is required")
	// Ошибка неположительной цены товара.
	ErrProductPriceInvalid = errors.New("product price must be greater than zero")
	// Ошибка несовпадения идентификатора в теле запроса и в пути.
	ErrProductIDMismatch = errors.New("product id does not match the target id")
	// Ошибка отрицательного итога заказа.
	ErrTotalNegative = errors.New("order total must be non-negative")

	// ErrProductInUse блокирует удаление товара, на который ссылается заказ.
	ErrProductInUse = errors.New("product is in use")
)

// notFoundErrors и invalidArgumentErrors задают единственную точку
// классификации ошибок для транспортного слоя.
var (
	notFoundErrors = []error{ErrOrderNotFound, ErrProductNotFound}

	invalidArgumentErrors = []error{
		ErrCustomerRequired,
		ErrProductsRequired,
		ErrUnknownProducts,
		ErrProductNameRequired,
		ErrProductPriceInvalid,
		ErrProductIDMismatch,
		ErrTotalNegative,
	}
)

// IsNotFound проверяет, относится ли ошибка к классу NotFound.
func IsNotFound(err error) bool {
	return matchesAny(err, notFoundErrors)
}

// IsInvalidArgument проверяет, относится ли ошибка к классу InvalidArgument.
func IsInvalidArgument(err error) bool {
	return matchesAny(err, invalidArgumentErrors)
}

// IsFailedPrecondition проверяет, относится ли ошибка к классу FailedPrecondition.
func IsFailedPrecondition(err error) bool {
	return errors.Is(err, ErrProductInUse)
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
