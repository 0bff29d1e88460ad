package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

// Store держит общее состояние in-memory хранилища. Репозитории товаров
// и заказов работают поверх одного Store, чтобы проверка "товар
// используется" видела линии заказов без обращения к внешней БД.
type Store struct {
	mu sync.RWMutex

	products map[int64]domain.Product
	orders   map[int64]domain.Order

	nextProductID int64
	nextOrderID   int64
}

// NewStore создаёт пустое in-memory хранилище для локальной разработки
// и unit-тестов.
func NewStore() *Store {
	return &Store{
		products: make(map[int64]domain.Product),
		orders:   make(map[int64]domain.Order),
	}
}

// copyOrder возвращает независимую копию заказа, чтобы избежать
// непредсказуемых мутаций извне.
func copyOrder(order domain.Order) domain.Order {
	lines := make([]domain.OrderLine, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = domain.OrderLine{ProductID: line.ProductID}
		if line.Product != nil {
			product := *line.Product
			lines[i].Product = &product
		}
	}
	order.Lines = lines
	return order
}
