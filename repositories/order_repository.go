package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"table-order/config"
	"table-order/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// GetLastOrderForTable returns the most recent order placed for the given
// human table number, or (nil, nil) if the table has no order history yet.
// The sequence allocator seeds its counters from this.
func (r *OrderRepository) GetLastOrderForTable(ctx context.Context, tableNumber string) (*models.Order, error) {
	query := `
		SELECT o.id, o.store_id, o.table_id, o.order_number, o.status,
		       o.total_amount, o.lock_version, o.created_at, o.updated_at
		FROM orders o
		JOIN tables t ON t.id = o.table_id
		WHERE t.table_number = $1
		ORDER BY o.id DESC
		LIMIT 1
	`

	order := &models.Order{}
	err := config.DB.QueryRow(ctx, query, tableNumber).Scan(
		&order.ID,
		&order.StoreID,
		&order.TableID,
		&order.OrderNumber,
		&order.Status,
		&order.TotalAmount,
		&order.LockVersion,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return order, nil
}

// CreateWithItems persists the order and all its items in one transaction.
// A reader never observes the order without its items. A unique-index
// violation on (table_id, order_number) comes back as ErrOrderNumberTaken.
func (r *OrderRepository) CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	tx, err := config.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	orderQuery := `
		INSERT INTO orders (store_id, table_id, order_number, status, total_amount, lock_version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, $6)
		RETURNING id, lock_version, created_at, updated_at
	`

	err = tx.QueryRow(ctx, orderQuery,
		order.StoreID,
		order.TableID,
		order.OrderNumber,
		order.Status,
		order.TotalAmount,
		now,
	).Scan(&order.ID, &order.LockVersion, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.ErrOrderNumberTaken
		}
		return err
	}

	itemQuery := `
		INSERT INTO order_items (order_id, menu_id, menu_name_snapshot, menu_price_snapshot, selected_options, quantity, subtotal, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	for i := range items {
		optionsJSON, err := json.Marshal(items[i].SelectedOptions)
		if err != nil {
			return fmt.Errorf("failed to encode selected options: %w", err)
		}

		items[i].OrderID = order.ID
		err = tx.QueryRow(ctx, itemQuery,
			order.ID,
			items[i].MenuID,
			items[i].MenuNameSnapshot,
			items[i].MenuPriceSnapshot,
			optionsJSON,
			items[i].Quantity,
			items[i].Subtotal,
			now,
		).Scan(&items[i].ID, &items[i].CreatedAt)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	order.Items = items
	return nil
}

// GetByID returns (nil, nil) when the order does not exist.
func (r *OrderRepository) GetByID(ctx context.Context, id int) (*models.Order, error) {
	query := `
		SELECT id, store_id, table_id, order_number, status, total_amount, lock_version, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order := &models.Order{}
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.StoreID,
		&order.TableID,
		&order.OrderNumber,
		&order.Status,
		&order.TotalAmount,
		&order.LockVersion,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return order, nil
}

// GetByTable lists a table's orders, newest first, items included.
func (r *OrderRepository) GetByTable(ctx context.Context, tableID int) ([]models.Order, error) {
	query := `
		SELECT id, store_id, table_id, order_number, status, total_amount, lock_version, created_at, updated_at
		FROM orders
		WHERE table_id = $1
		ORDER BY created_at DESC
	`

	rows, err := config.DB.Query(ctx, query, tableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.StoreID,
			&order.TableID,
			&order.OrderNumber,
			&order.Status,
			&order.TotalAmount,
			&order.LockVersion,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := r.getItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// UpdateStatus applies a staff status transition with an optimistic lock
// check; a stale lockVersion means someone else updated the order first.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int, newStatus string, lockVersion int) error {
	query := `
		UPDATE orders
		SET status = $2, lock_version = lock_version + 1, updated_at = $3
		WHERE id = $1 AND lock_version = $4
	`

	tag, err := config.DB.Exec(ctx, query, id, newStatus, time.Now(), lockVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NewConflictError("order was updated by someone else, please retry")
	}

	return nil
}

func (r *OrderRepository) getItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	query := `
		SELECT id, order_id, menu_id, menu_name_snapshot, menu_price_snapshot,
		       COALESCE(selected_options, '[]'), quantity, subtotal, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := config.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		var optionsJSON []byte
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.MenuID,
			&item.MenuNameSnapshot,
			&item.MenuPriceSnapshot,
			&optionsJSON,
			&item.Quantity,
			&item.Subtotal,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(optionsJSON, &item.SelectedOptions); err != nil {
			return nil, fmt.Errorf("failed to decode selected options: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
