package services

import (
	"context"
	"errors"

	"table-order/models"
	"table-order/utils"
)

// StoreFinder resolves a store by its admin account name.
type StoreFinder interface {
	GetByAdminUsername(ctx context.Context, username string) (*models.Store, error)
}

type AdminAuthService struct {
	stores StoreFinder
}

func NewAdminAuthService(stores StoreFinder) *AdminAuthService {
	return &AdminAuthService{stores: stores}
}

var ErrInvalidCredentials = errors.New("invalid username or password")

// Login verifies the store admin's credentials and returns the store plus an
// admin JWT.
func (s *AdminAuthService) Login(ctx context.Context, username, password string) (*models.Store, string, error) {
	store, err := s.stores.GetByAdminUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if store == nil {
		return nil, "", ErrInvalidCredentials
	}

	if !utils.VerifyPassword(store.AdminPasswordHash, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateAdminToken(store.ID, store.AdminUsername)
	if err != nil {
		return nil, "", err
	}

	return store, token, nil
}
