package memory

import (
	"context"
	"sort"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

// productRepository — in-memory реализация ProductRepository.
type productRepository struct {
	store *Store
}

// NewProductRepository возвращает репозиторий товаров поверх общего Store.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{store: store}
}

// List возвращает все товары в порядке возрастания ID.
func (r *productRepository) List(_ context.Context) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.store.products))
	for _, product := range r.store.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// Get возвращает товар и признак его существования.
func (r *productRepository) Get(_ context.Context, id int64) (domain.Product, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	product, ok := r.store.products[id]
	return product, ok, nil
}

// Add сохраняет товар, назначая следующий свободный ID.
func (r *productRepository) Add(_ context.Context, product domain.Product) (domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextProductID++
	product.ID = r.store.nextProductID
	r.store.products[product.ID] = product

	return product, nil
}

// Update полностью заменяет товар по его ID.
func (r *productRepository) Update(_ context.Context, product domain.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.store.products[product.ID] = product
	return nil
}

// Delete удаляет товар; отсутствие записи не считается ошибкой.
func (r *productRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.products, id)
	return nil
}

// Exists проверяет существование товара.
func (r *productRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	_, ok := r.store.products[id]
	return ok, nil
}

// GetByIDs возвращает только найденные товары, без повторов,
// в порядке возрастания ID.
func (r *productRepository) GetByIDs(_ context.Context, ids []int64) ([]domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	seen := make(map[int64]struct{}, len(ids))
	result := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if product, ok := r.store.products[id]; ok {
			result = append(result, product)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

// InUse сообщает, ссылается ли хотя бы одна линия заказа на товар.
func (r *productRepository) InUse(_ context.Context, id int64) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, order := range r.store.orders {
		for _, line := range order.Lines {
			if line.ProductID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
