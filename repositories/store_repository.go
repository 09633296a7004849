package repositories

import (
	"context"
	"errors"

	"table-order/config"
	"table-order/models"

	"github.com/jackc/pgx/v5"
)

type StoreRepository struct{}

func NewStoreRepository() *StoreRepository {
	return &StoreRepository{}
}

// GetByAdminUsername returns (nil, nil) when no store matches.
func (r *StoreRepository) GetByAdminUsername(ctx context.Context, username string) (*models.Store, error) {
	query := `
		SELECT id, name, admin_username, admin_password_hash, created_at, updated_at
		FROM stores
		WHERE admin_username = $1
	`

	store := &models.Store{}
	err := config.DB.QueryRow(ctx, query, username).Scan(
		&store.ID,
		&store.Name,
		&store.AdminUsername,
		&store.AdminPasswordHash,
		&store.CreatedAt,
		&store.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return store, nil
}
