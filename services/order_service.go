package services

import (
	"context"

	"table-order/models"
)

// TableStore is the slice of table storage order admission needs.
type TableStore interface {
	GetByID(ctx context.Context, id int) (*models.Table, error)
}

// OrderStore is the order storage consumed by admission and staff updates.
type OrderStore interface {
	LastOrderFinder
	CreateWithItems(ctx context.Context, order *models.Order, items []models.OrderItem) error
	GetByID(ctx context.Context, id int) (*models.Order, error)
	GetByTable(ctx context.Context, tableID int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int, newStatus string, lockVersion int) error
}

// EventPublisher fans an event out to the table's live subscribers.
type EventPublisher interface {
	Publish(tableID int, event models.OrderEvent)
}

// OrderService turns validated carts into durable, uniquely numbered orders
// and notifies live subscribers of lifecycle changes.
type OrderService struct {
	orders    OrderStore
	tables    TableStore
	validator *OrderValidationService
	sequence  *SequenceAllocator
	events    EventPublisher
}

func NewOrderService(
	orders OrderStore,
	tables TableStore,
	validator *OrderValidationService,
	sequence *SequenceAllocator,
	events EventPublisher,
) *OrderService {
	return &OrderService{
		orders:    orders,
		tables:    tables,
		validator: validator,
		sequence:  sequence,
		events:    events,
	}
}

// CreateOrder admits a cart for the given table. Validation and sequence
// allocation run first; the order and its items are written as one atomic
// unit inside the allocator's per-table critical section, so two devices
// racing on the same table can never take the same order number.
func (s *OrderService) CreateOrder(ctx context.Context, tableID int, cartItems []models.CartItemRequest) (*models.Order, error) {
	if err := s.validator.ValidateOrderItems(ctx, cartItems); err != nil {
		return nil, err
	}

	table, err := s.tables.GetByID(ctx, tableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, models.NewNotFoundError("table")
	}

	totalAmount := 0.0
	for _, item := range cartItems {
		totalAmount += item.Subtotal
	}

	order := &models.Order{
		StoreID:     table.StoreID,
		TableID:     table.ID,
		Status:      models.OrderStatusPending,
		TotalAmount: totalAmount,
	}
	items := buildOrderItems(cartItems)

	_, err = s.sequence.AllocateAndWrite(ctx, table.TableNumber, func(seq int) error {
		order.OrderNumber = FormatOrderNumber(table.TableNumber, seq)
		return s.orders.CreateWithItems(ctx, order, items)
	})
	if err != nil {
		return nil, err
	}

	// The order is already durable; subscribers that miss this pick it up by
	// polling.
	s.events.Publish(table.ID, models.NewOrderCreatedEvent(order.ID, order.OrderNumber))

	return order, nil
}

// UpdateStatus applies a staff-side lifecycle transition and notifies the
// table's subscribers.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int, newStatus string) (*models.Order, error) {
	if !models.IsValidOrderStatus(newStatus) {
		return nil, models.NewValidationError("unknown order status: " + newStatus)
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, models.NewNotFoundError("order")
	}

	if !models.IsForwardStatusTransition(order.Status, newStatus) {
		return nil, models.NewValidationError(
			"cannot move order from " + order.Status + " to " + newStatus)
	}

	if err := s.orders.UpdateStatus(ctx, order.ID, newStatus, order.LockVersion); err != nil {
		return nil, err
	}

	oldStatus := order.Status
	order.Status = newStatus
	order.LockVersion++

	s.events.Publish(order.TableID,
		models.NewOrderStatusChangedEvent(order.ID, order.OrderNumber, oldStatus, newStatus))

	return order, nil
}

// GetOrdersForTable returns the table's order history, newest first.
func (s *OrderService) GetOrdersForTable(ctx context.Context, tableID int) ([]models.Order, error) {
	return s.orders.GetByTable(ctx, tableID)
}

func buildOrderItems(cartItems []models.CartItemRequest) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cartItems))
	for _, cartItem := range cartItems {
		options := cartItem.SelectedOptions
		if options == nil {
			options = []models.OrderOption{}
		}
		items = append(items, models.OrderItem{
			MenuID:            cartItem.MenuID,
			MenuNameSnapshot:  cartItem.MenuSnapshot.Name,
			MenuPriceSnapshot: cartItem.MenuSnapshot.Price,
			SelectedOptions:   options,
			Quantity:          cartItem.Quantity,
			Subtotal:          cartItem.Subtotal,
		})
	}
	return items
}
