package models

import "time"

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusCompleted = "COMPLETED"
)

// orderStatusRank orders the lifecycle states. Staff transitions only move
// forward; skipping a state is allowed, going back is not.
var orderStatusRank = map[string]int{
	OrderStatusPending:   0,
	OrderStatusConfirmed: 1,
	OrderStatusPreparing: 2,
	OrderStatusReady:     3,
	OrderStatusCompleted: 4,
}

func IsValidOrderStatus(status string) bool {
	_, ok := orderStatusRank[status]
	return ok
}

func IsForwardStatusTransition(from, to string) bool {
	fromRank, ok := orderStatusRank[from]
	if !ok {
		return false
	}
	toRank, ok := orderStatusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

type Order struct {
	ID          int         `json:"id"`
	StoreID     int         `json:"store_id"`
	TableID     int         `json:"table_id"`
	OrderNumber string      `json:"order_number"`
	Status      string      `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	LockVersion int         `json:"lock_version"`
	Items       []OrderItem `json:"items,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// OrderOption is one selected menu option, snapshotted at order time.
type OrderOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderItem carries an immutable snapshot of the menu name and price as they
// were when the order was placed, so later menu edits never change history.
type OrderItem struct {
	ID                int           `json:"id"`
	OrderID           int           `json:"order_id"`
	MenuID            int           `json:"menu_id"`
	MenuNameSnapshot  string        `json:"menu_name_snapshot"`
	MenuPriceSnapshot float64       `json:"menu_price_snapshot"`
	SelectedOptions   []OrderOption `json:"selected_options,omitempty"`
	Quantity          int           `json:"quantity"`
	Subtotal          float64       `json:"subtotal"`
	CreatedAt         time.Time     `json:"created_at"`
}
