package products

import (
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

// CreateRequest — входные данные создания товара.
type CreateRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// UpdateRequest — входные данные обновления; ID обязан совпадать
// с идентификатором в пути запроса.
type UpdateRequest struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Response — проекция товара для ответов API.
type Response struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// InUseResponse — ответ отдельной операции проверки использования.
type InUseResponse struct {
	ID    int64 `json:"id"`
	InUse bool  `json:"in_use"`
}

func toResponse(product domain.Product) Response {
	return Response{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
	}
}
