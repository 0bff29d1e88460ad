package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/ordenes/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer, created_at, total
		FROM orders
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	order, ok, err := r.selectOrder(ctx, id)
	if err != nil || !ok {
		return domain.Order{}, ok, err
	}

	lines, err := r.loadLines(ctx, id, false)
	if err != nil {
		return domain.Order{}, false, err
	}
	order.Lines = lines

	return order, true, nil
}

func (r *orderRepository) Add(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (customer, created_at, total)
		VALUES ($1, $2, $3)
		RETURNING id
	`, order.Customer, order.CreatedAt, order.Total).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	if err = insertLines(ctx, tx, order.ID, order.Lines); err != nil {
		return domain.Order{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit create order: %w", err)
	}

	return order, nil
}

// Update заменяет заказ целиком: поля шапки перезаписываются, прежние
// линии удаляются и вставляются заново. Момент создания не меняется.
func (r *orderRepository) Update(ctx context.Context, order domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET customer = $1, total = $2
		WHERE id = $3
	`, order.Customer, order.Total, order.ID)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		err = domain.ErrOrderNotFound
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	if err = insertLines(ctx, tx, order.ID, order.Lines); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update order: %w", err)
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	// Линии удаляются каскадно по FK.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *orderRepository) GetWithProducts(ctx context.Context, id int64) (domain.Order, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	order, ok, err := r.selectOrder(ctx, id)
	if err != nil || !ok {
		return domain.Order{}, ok, err
	}

	lines, err := r.loadLines(ctx, id, true)
	if err != nil {
		return domain.Order{}, false, err
	}
	order.Lines = lines

	return order, true, nil
}

func (r *orderRepository) ListPage(ctx context.Context, params domain.PageParams) (domain.Page[domain.Order], error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("count orders: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer, created_at, total
		FROM orders
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`, params.PageSize, params.Offset())
	if err != nil {
		return domain.Page[domain.Order]{}, fmt.Errorf("list orders page: %w", err)
	}
	defer rows.Close()

	orders, err := scanOrders(rows)
	if err != nil {
		return domain.Page[domain.Order]{}, err
	}

	for i := range orders {
		lines, err := r.loadLines(ctx, orders[i].ID, true)
		if err != nil {
			return domain.Page[domain.Order]{}, err
		}
		orders[i].Lines = lines
	}

	return domain.NewPage(orders, params, total), nil
}

func (r *orderRepository) selectOrder(ctx context.Context, id int64) (domain.Order, bool, error) {
	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer, created_at, total
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.Customer, &order.CreatedAt, &order.Total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, false, nil
		}
		return domain.Order{}, false, fmt.Errorf("select order: %w", err)
	}
	return order, true, nil
}

// loadLines загружает линии заказа; withProducts добавляет join
// с таблицей товаров и заполняет снапшоты.
func (r *orderRepository) loadLines(ctx context.Context, orderID int64, withProducts bool) ([]domain.OrderLine, error) {
	query := `
		SELECT product_id
		FROM order_lines
		WHERE order_id = $1
		ORDER BY id ASC
	`
	if withProducts {
		query = `
			SELECT ol.product_id, p.name, p.price
			FROM order_lines ol
			JOIN products p ON p.id = ol.product_id
			WHERE ol.order_id = $1
			ORDER BY ol.id ASC
		`
	}

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if withProducts {
			var product domain.Product
			if err := rows.Scan(&product.ID, &product.Name, &product.Price); err != nil {
				return nil, fmt.Errorf("scan order line: %w", err)
			}
			line.ProductID = product.ID
			line.Product = &product
		} else {
			if err := rows.Scan(&line.ProductID); err != nil {
				return nil, fmt.Errorf("scan order line: %w", err)
			}
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return lines, nil
}

func insertLines(ctx context.Context, tx *sql.Tx, orderID int64, lines []domain.OrderLine) error {
	for _, line := range lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, product_id)
			VALUES ($1, $2)
		`, orderID, line.ProductID); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func scanOrders(rows *sql.Rows) ([]domain.Order, error) {
	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Customer, &order.CreatedAt, &order.Total); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}
	return orders, nil
}

var _ domain.OrderRepository = (*orderRepository)(nil)
