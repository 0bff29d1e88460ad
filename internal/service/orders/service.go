// Пакет orders реализует бизнес-логику заказов: валидацию, разрешение
// товаров, расчёт итога с учётом скидок и проекцию в DTO.
package orders

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

// Service реализует операции над заказами поверх репозиториев
// заказов и товаров.
type Service struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	logger   *log.Entry
}

// NewService конструирует сервис заказов.
func NewService(orders domain.OrderRepository, products domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{orders: orders, products: products, logger: logger}
}

// List возвращает страницу заказов с нормализованными параметрами.
func (s *Service) List(ctx context.Context, params domain.PageParams) (PageResponse, error) {
	params = params.Normalize()

	page, err := s.orders.ListPage(ctx, params)
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return PageResponse{}, err
	}

	s.logger.WithFields(log.Fields{
		"page":        page.Page,
		"total_pages": page.TotalPages,
	}).Info("returning orders page")

	return toPageResponse(page), nil
}

// Get возвращает заказ с снапшотами товаров или ErrOrderNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Response, error) {
	order, ok, err := s.orders.GetWithProducts(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order")
		return Response{}, err
	}
	if !ok {
		return Response{}, domain.ErrOrderNotFound
	}
	return toResponse(order), nil
}

// Create валидирует запрос, разрешает товары и сохраняет заказ
// с вычисленным итогом.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Response, error) {
	if err := validateRequest(req); err != nil {
		return Response{}, err
	}

	resolved, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return Response{}, err
	}

	order := domain.Order{
		Customer:  req.Customer,
		CreatedAt: time.Now().UTC(),
		Total:     totalFor(resolved),
		Lines:     buildLines(req.ProductIDs),
	}

	created, err := s.orders.Add(ctx, order)
	if err != nil {
		s.logger.WithError(err).Error("failed to create order")
		return Response{}, err
	}

	s.logger.WithField("order_id", created.ID).Info("order created")
	return toResponseWith(created, resolved), nil
}

// Update заменяет имя клиента и весь набор линий, пересчитывая итог.
func (s *Service) Update(ctx context.Context, id int64, req CreateRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	_, ok, err := s.orders.Get(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order")
		return err
	}
	if !ok {
		return domain.ErrOrderNotFound
	}

	resolved, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return err
	}

	order := domain.Order{
		ID:       id,
		Customer: req.Customer,
		Total:    totalFor(resolved),
		Lines:    buildLines(req.ProductIDs),
	}

	if err := s.orders.Update(ctx, order); err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to update order")
		return err
	}

	s.logger.WithField("order_id", id).Info("order updated")
	return nil
}

// Delete удаляет заказ вместе с линиями без дополнительных проверок.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, ok, err := s.orders.Get(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to load order")
		return err
	}
	if !ok {
		return domain.ErrOrderNotFound
	}

	if err := s.orders.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("order_id", id).Error("failed to delete order")
		return err
	}

	s.logger.WithField("order_id", id).Info("order deleted")
	return nil
}

// validateRequest проверяет запрос в фиксированном порядке:
// сначала имя клиента, затем список товаров.
func validateRequest(req CreateRequest) error {
	if strings.TrimSpace(req.Customer) == "" {
		return domain.ErrCustomerRequired
	}
	if len(req.ProductIDs) == 0 {
		return domain.ErrProductsRequired
	}
	return nil
}

// resolveProducts загружает товары по различным идентификаторам запроса.
// Несоответствие количеств означает, что часть товаров не существует.
func (s *Service) resolveProducts(ctx context.Context, ids []int64) (map[int64]domain.Product, error) {
	distinct := distinctIDs(ids)

	products, err := s.products.GetByIDs(ctx, distinct)
	if err != nil {
		s.logger.WithError(err).Error("failed to resolve products")
		return nil, err
	}
	if len(products) != len(distinct) {
		return nil, domain.ErrUnknownProducts
	}

	resolved := make(map[int64]domain.Product, len(products))
	for _, product := range products {
		resolved[product.ID] = product
	}
	return resolved, nil
}

// totalFor считает итог по сумме цен различных товаров и их количеству.
func totalFor(resolved map[int64]domain.Product) decimal.Decimal {
	subtotal := decimal.Zero
	for _, product := range resolved {
		subtotal = subtotal.Add(product.Price)
	}
	return domain.TotalWithDiscount(subtotal, len(resolved))
}

// buildLines создаёт линию на каждое вхождение идентификатора,
// сохраняя повторы и порядок запроса.
func buildLines(ids []int64) []domain.OrderLine {
	lines := make([]domain.OrderLine, 0, len(ids))
	for _, id := range ids {
		lines = append(lines, domain.OrderLine{ProductID: id})
	}
	return lines
}

func distinctIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
