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
)

type TableRepository struct{}

func NewTableRepository() *TableRepository {
	return &TableRepository{}
}

const tableColumns = `
	id, store_id, table_number, status, status_changed_at,
	status_history, current_session_started_at, created_at, updated_at
`

// GetByID returns (nil, nil) when the table does not exist.
func (r *TableRepository) GetByID(ctx context.Context, id int) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE id = $1`
	return r.scanOne(config.DB.QueryRow(ctx, query, id))
}

// GetByNumber looks a table up by its human number within a store.
func (r *TableRepository) GetByNumber(ctx context.Context, storeID int, tableNumber string) (*models.Table, error) {
	query := `SELECT ` + tableColumns + ` FROM tables WHERE store_id = $1 AND table_number = $2`
	return r.scanOne(config.DB.QueryRow(ctx, query, storeID, tableNumber))
}

// Save writes the table's occupancy state. Status, status_changed_at,
// status_history and current_session_started_at go out in a single UPDATE so
// readers never see the status without its matching history entry.
func (r *TableRepository) Save(ctx context.Context, table *models.Table) error {
	historyJSON, err := json.Marshal(table.StatusHistory)
	if err != nil {
		return fmt.Errorf("failed to encode status history: %w", err)
	}

	query := `
		UPDATE tables
		SET status = $2,
		    status_changed_at = $3,
		    status_history = $4,
		    current_session_started_at = $5,
		    updated_at = $6
		WHERE id = $1
	`

	tag, err := config.DB.Exec(ctx, query,
		table.ID,
		table.Status,
		table.StatusChangedAt,
		historyJSON,
		table.CurrentSessionStartedAt,
		time.Now(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.NewNotFoundError("table")
	}

	return nil
}

func (r *TableRepository) scanOne(row pgx.Row) (*models.Table, error) {
	table := &models.Table{}
	var historyJSON []byte

	err := row.Scan(
		&table.ID,
		&table.StoreID,
		&table.TableNumber,
		&table.Status,
		&table.StatusChangedAt,
		&historyJSON,
		&table.CurrentSessionStartedAt,
		&table.CreatedAt,
		&table.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(historyJSON, &table.StatusHistory); err != nil {
		return nil, fmt.Errorf("failed to decode status history: %w", err)
	}

	return table, nil
}
