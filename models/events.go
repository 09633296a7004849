package models

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is the payload fanned out to every live subscriber of a table.
type OrderEvent struct {
	Type        string `json:"type"`
	OrderID     int    `json:"order_id"`
	OrderNumber string `json:"order_number"`
	OldStatus   string `json:"old_status,omitempty"`
	NewStatus   string `json:"new_status,omitempty"`
}

func NewOrderCreatedEvent(orderID int, orderNumber string) OrderEvent {
	return OrderEvent{
		Type:        EventOrderCreated,
		OrderID:     orderID,
		OrderNumber: orderNumber,
	}
}

func NewOrderStatusChangedEvent(orderID int, orderNumber, oldStatus, newStatus string) OrderEvent {
	return OrderEvent{
		Type:        EventOrderStatusChanged,
		OrderID:     orderID,
		OrderNumber: orderNumber,
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
	}
}
