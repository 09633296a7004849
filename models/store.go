package models

import "time"

type Store struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	AdminUsername     string    `json:"admin_username"`
	AdminPasswordHash string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
