// Пакет products реализует бизнес-логику каталога товаров:
// валидацию, проекцию в DTO и защиту от удаления используемого товара.
package products

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

// Service реализует операции над товарами поверх репозитория.
type Service struct {
	repo   domain.ProductRepository
	logger *log.Entry
}

// NewService конструирует сервис товаров.
func NewService(repo domain.ProductRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "product-service")
	}
	return &Service{repo: repo, logger: logger}
}

// List возвращает все товары без пагинации.
func (s *Service) List(ctx context.Context) ([]Response, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to list products")
		return nil, err
	}

	result := make([]Response, 0, len(products))
	for _, product := range products {
		result = append(result, toResponse(product))
	}
	return result, nil
}

// Get возвращает товар или ErrProductNotFound.
func (s *Service) Get(ctx context.Context, id int64) (Response, error) {
	product, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to load product")
		return Response{}, err
	}
	if !ok {
		return Response{}, domain.ErrProductNotFound
	}
	return toResponse(product), nil
}

// Create валидирует и сохраняет новый товар.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Response, error) {
	product := domain.Product{Name: req.Name, Price: req.Price}
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return Response{}, errors.Join(errs...)
	}

	created, err := s.repo.Add(ctx, product)
	if err != nil {
		s.logger.WithError(err).Error("failed to create product")
		return Response{}, err
	}

	s.logger.WithField("product_id", created.ID).Info("product created")
	return toResponse(created), nil
}

// Update полностью заменяет товар. Идентификатор в теле запроса обязан
// совпадать с целевым идентификатором.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) error {
	if req.ID != id {
		return domain.ErrProductIDMismatch
	}

	product := domain.Product{ID: id, Name: req.Name, Price: req.Price}
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return errors.Join(errs...)
	}

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to check product")
		return err
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to update product")
		return err
	}

	s.logger.WithField("product_id", id).Info("product updated")
	return nil
}

// Delete удаляет товар, если он существует и не используется в заказах.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, ok, err := s.repo.Get(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to load product")
		return err
	}
	if !ok {
		return domain.ErrProductNotFound
	}

	inUse, err := s.repo.InUse(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to check product usage")
		return err
	}
	if inUse {
		return domain.ErrProductInUse
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to delete product")
		return err
	}

	s.logger.WithField("product_id", id).Info("product deleted")
	return nil
}

// InUse сообщает, ссылается ли на товар хотя бы одна линия заказа.
// Используется сторожем удаления и доступен как отдельная операция.
func (s *Service) InUse(ctx context.Context, id int64) (InUseResponse, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to check product")
		return InUseResponse{}, err
	}
	if !exists {
		return InUseResponse{}, domain.ErrProductNotFound
	}

	inUse, err := s.repo.InUse(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id).Error("failed to check product usage")
		return InUseResponse{}, err
	}
	return InUseResponse{ID: id, InUse: inUse}, nil
}
