package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

// orderRepository — in-memory реализация OrderRepository.
type orderRepository struct {
	store *Store
}

// NewOrderRepository возвращает репозиторий заказов поверх общего Store.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

// List возвращает все заказы без снапшотов товаров, по возрастанию ID.
func (r *orderRepository) List(_ context.Context) ([]domain.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.sortedOrdersLocked(), nil
}

// Get возвращает заказ без снапшотов товаров.
func (r *orderRepository) Get(_ context.Context, id int64) (domain.Order, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, false, nil
	}
	return copyOrder(order), true, nil
}

// Add сохраняет заказ с его линиями, назначая следующий свободный ID.
func (r *orderRepository) Add(_ context.Context, order domain.Order) (domain.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextOrderID++
	order.ID = r.store.nextOrderID
	r.store.orders[order.ID] = copyOrder(order)

	return order, nil
}

// Update заменяет заказ целиком, сохраняя исходный момент создания.
func (r *orderRepository) Update(_ context.Context, order domain.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.orders[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.CreatedAt = current.CreatedAt
	r.store.orders[order.ID] = copyOrder(order)
	return nil
}

// Delete удаляет заказ вместе с линиями; отсутствие записи не ошибка.
func (r *orderRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.orders, id)
	return nil
}

// GetWithProducts возвращает заказ, подставляя в линии текущие
// снапшоты товаров.
func (r *orderRepository) GetWithProducts(_ context.Context, id int64) (domain.Order, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	order, ok := r.store.orders[id]
	if !ok {
		return domain.Order{}, false, nil
	}
	return r.resolveLinesLocked(copyOrder(order)), true, nil
}

// ListPage возвращает страницу заказов по возрастанию ID с eager-загрузкой.
func (r *orderRepository) ListPage(_ context.Context, params domain.PageParams) (domain.Page[domain.Order], error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	all := r.sortedOrdersLocked()
	total := len(all)

	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	items := make([]domain.Order, 0, end-start)
	for _, order := range all[start:end] {
		items = append(items, r.resolveLinesLocked(order))
	}

	return domain.NewPage(items, params, total), nil
}

func (r *orderRepository) sortedOrdersLocked() []domain.Order {
	result := make([]domain.Order, 0, len(r.store.orders))
	for _, order := range r.store.orders {
		result = append(result, copyOrder(order))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (r *orderRepository) resolveLinesLocked(order domain.Order) domain.Order {
	for i := range order.Lines {
		if product, ok := r.store.products[order.Lines[i].ProductID]; ok {
			snapshot := product
			order.Lines[i].Product = &snapshot
		}
	}
	return order
}

var _ domain.OrderRepository = (*orderRepository)(nil)
