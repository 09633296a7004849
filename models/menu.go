package models

import "time"

type Menu struct {
	ID             int           `json:"id"`
	StoreID        int           `json:"store_id"`
	Name           string        `json:"name"`
	Description    string        `json:"description,omitempty"`
	Price          float64       `json:"price"`
	CategoryLevel1 string        `json:"category_level1"`
	CategoryLevel2 string        `json:"category_level2,omitempty"`
	ImageURL       string        `json:"image_url,omitempty"`
	IsAvailable    bool          `json:"is_available"`
	Options        []OrderOption `json:"options,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
