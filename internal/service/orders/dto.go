package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

// CreateRequest — входные данные создания и обновления заказа.
// Повторы идентификаторов допустимы: каждое вхождение становится
// отдельной линией.
type CreateRequest struct {
	Customer   string  `json:"customer"`
	ProductIDs []int64 `json:"product_ids"`
}

// ProductSnapshot — снапшот товара на момент чтения заказа.
type ProductSnapshot struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Response — проекция заказа для ответов API.
type Response struct {
	ID        int64             `json:"id"`
	Customer  string            `json:"customer"`
	CreatedAt time.Time         `json:"created_at"`
	Total     decimal.Decimal   `json:"total"`
	Products  []ProductSnapshot `json:"products"`
}

// PageResponse — конверт пагинации для списка заказов.
type PageResponse struct {
	Items      []Response `json:"items"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalItems int        `json:"total_items"`
	TotalPages int        `json:"total_pages"`
	HasPrev    bool       `json:"has_prev"`
	HasNext    bool       `json:"has_next"`
}

// toResponse проецирует заказ с уже разрешёнными снапшотами линий.
func toResponse(order domain.Order) Response {
	snapshots := make([]ProductSnapshot, 0, len(order.Lines))
	for _, line := range order.Lines {
		if line.Product == nil {
			continue
		}
		snapshots = append(snapshots, ProductSnapshot{
			ID:    line.Product.ID,
			Name:  line.Product.Name,
			Price: line.Product.Price,
		})
	}
	return Response{
		ID:        order.ID,
		Customer:  order.Customer,
		CreatedAt: order.CreatedAt,
		Total:     order.Total,
		Products:  snapshots,
	}
}

// toResponseWith проецирует заказ, подставляя снапшоты из переданного
// набора товаров (используется сразу после создания, когда линии ещё
// не загружались из хранилища).
func toResponseWith(order domain.Order, resolved map[int64]domain.Product) Response {
	snapshots := make([]ProductSnapshot, 0, len(order.Lines))
	for _, line := range order.Lines {
		product, ok := resolved[line.ProductID]
		if !ok {
			continue
		}
		snapshots = append(snapshots, ProductSnapshot{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
		})
	}
	return Response{
		ID:        order.ID,
		Customer:  order.Customer,
		CreatedAt: order.CreatedAt,
		Total:     order.Total,
		Products:  snapshots,
	}
}

func toPageResponse(page domain.Page[domain.Order]) PageResponse {
	items := make([]Response, 0, len(page.Items))
	for _, order := range page.Items {
		items = append(items, toResponse(order))
	}
	return PageResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
		HasPrev:    page.HasPrev(),
		HasNext:    page.HasNext(),
	}
}
