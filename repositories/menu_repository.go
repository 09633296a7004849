package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"table-order/config"
	"table-order/models"

	"github.com/jackc/pgx/v5"
)

type MenuRepository struct{}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{}
}

// GetByID resolves one menu, going through the redis cache when it is up.
// Returns (nil, nil) when the menu does not exist.
func (r *MenuRepository) GetByID(ctx context.Context, id int) (*models.Menu, error) {
	if menu := r.cacheGet(ctx, id); menu != nil {
		return menu, nil
	}

	query := `
		SELECT id, store_id, name, COALESCE(description, ''), price,
		       category_level1, COALESCE(category_level2, ''), COALESCE(image_url, ''),
		       is_available, COALESCE(options, '[]'), created_at, updated_at
		FROM menus
		WHERE id = $1
	`

	menu := &models.Menu{}
	var optionsJSON []byte
	err := config.DB.QueryRow(ctx, query, id).Scan(
		&menu.ID,
		&menu.StoreID,
		&menu.Name,
		&menu.Description,
		&menu.Price,
		&menu.CategoryLevel1,
		&menu.CategoryLevel2,
		&menu.ImageURL,
		&menu.IsAvailable,
		&optionsJSON,
		&menu.CreatedAt,
		&menu.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(optionsJSON, &menu.Options); err != nil {
		return nil, fmt.Errorf("failed to decode menu options: %w", err)
	}

	r.cacheSet(ctx, menu)
	return menu, nil
}

func (r *MenuRepository) cacheGet(ctx context.Context, id int) *models.Menu {
	if config.RedisClient == nil {
		return nil
	}

	data, err := config.RedisClient.Get(ctx, menuCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}

	menu := &models.Menu{}
	if err := json.Unmarshal(data, menu); err != nil {
		log.Println("Failed to decode cached menu:", err)
		return nil
	}
	return menu
}

func (r *MenuRepository) cacheSet(ctx context.Context, menu *models.Menu) {
	if config.RedisClient == nil {
		return
	}

	data, err := json.Marshal(menu)
	if err != nil {
		return
	}
	if err := config.RedisClient.Set(ctx, menuCacheKey(menu.ID), data, config.AppConfig.MenuCacheTTL).Err(); err != nil {
		log.Println("Failed to cache menu:", err)
	}
}

func menuCacheKey(id int) string {
	return fmt.Sprintf("menu:%d", id)
}
