package domain

import "context"

// Entity объединяет сущности, у которых есть числовой идентификатор.
type Entity interface {
	EntityID() int64
}

// Repository описывает общий контракт хранилища для одной сущности.
// Специализированные репозитории встраивают его (композиция вместо
// наследования) и добавляют свои операции.
type Repository[T Entity] interface {
	// List возвращает все сущности в порядке возрастания идентификатора.
	List(ctx context.Context) ([]T, error)
	// Get возвращает сущность и признак её существования.
	Get(ctx context.Context, id int64) (T, bool, error)
	// Add сохраняет новую сущность и возвращает её с назначенным ID.
	Add(ctx context.Context, entity T) (T, error)
	// Update полностью заменяет сущность по её идентификатору.
	Update(ctx context.Context, entity T) error
	// Delete удаляет сущность; отсутствие записи не считается ошибкой.
	Delete(ctx context.Context, id int64) error
}

// OrderRepository расширяет общий контракт операциями над заказами.
type OrderRepository interface {
	Repository[Order]

	// GetWithProducts возвращает заказ с линиями и снапшотами товаров.
	GetWithProducts(ctx context.Context, id int64) (Order, bool, error)
	// ListPage возвращает страницу заказов с eager-загрузкой линий
	// и товаров; параметры должны быть предварительно нормализованы.
	ListPage(ctx context.Context, params PageParams) (Page[Order], error)
}

// ProductRepository расширяет общий контракт операциями над товарами.
type ProductRepository interface {
	Repository[Product]

	// Exists проверяет существование товара по идентификатору.
	Exists(ctx context.Context, id int64) (bool, error)
	// GetByIDs возвращает только найденные товары; вызывающая сторона
	// сравнивает количества, чтобы обнаружить несуществующие ID.
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
	// InUse сообщает, ссылается ли хотя бы одна линия заказа на товар.
	InUse(ctx context.Context, id int64) (bool, error)
}
