package services

import (
	"context"
	"fmt"
	"math"

	"table-order/models"
)

// MenuLookup is the read-only slice of menu storage the validator consumes.
type MenuLookup interface {
	GetByID(ctx context.Context, id int) (*models.Menu, error)
}

// OrderValidationService checks a submitted cart against the live menu. It
// only reads; the first violation found is reported.
type OrderValidationService struct {
	menus MenuLookup
}

func NewOrderValidationService(menus MenuLookup) *OrderValidationService {
	return &OrderValidationService{menus: menus}
}

func (s *OrderValidationService) ValidateOrderItems(ctx context.Context, items []models.CartItemRequest) error {
	if len(items) == 0 {
		return models.NewValidationError("cart is empty")
	}

	for _, item := range items {
		if err := s.validateCartItem(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

func (s *OrderValidationService) validateCartItem(ctx context.Context, item models.CartItemRequest) error {
	if item.MenuID <= 0 {
		return models.NewValidationError("cart item is missing menu_id")
	}
	if item.MenuSnapshot.Name == "" && item.MenuSnapshot.Price == 0 {
		return models.NewValidationError("cart item is missing menu_snapshot")
	}
	if item.Subtotal <= 0 {
		return models.NewValidationError("cart item is missing subtotal")
	}

	menu, err := s.menus.GetByID(ctx, item.MenuID)
	if err != nil {
		return err
	}
	if menu == nil {
		return models.NewValidationError("menu not found")
	}
	if !menu.IsAvailable {
		return models.NewValidationError(fmt.Sprintf("%s is currently not available", menu.Name))
	}

	// Stale-cart protection: the client confirmed an old price, make it
	// re-confirm instead of silently charging the new one.
	if !amountsEqual(item.MenuSnapshot.Price, menu.Price) {
		return models.NewValidationError("menu price has changed, please review your cart")
	}

	if item.Quantity < 1 {
		return models.NewValidationError("quantity must be at least 1")
	}

	optionsTotal := 0.0
	for _, opt := range item.SelectedOptions {
		optionsTotal += opt.Price
	}
	expected := float64(item.Quantity) * (menu.Price + optionsTotal)
	if !amountsEqual(item.Subtotal, expected) {
		return models.NewValidationError("subtotal does not match item price and quantity")
	}

	return nil
}

func amountsEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}
