package models

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TableLoginRequest struct {
	StoreID     int    `json:"store_id" binding:"required"`
	TableNumber string `json:"table_number" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	StoreID     int    `json:"store_id,omitempty"`
	TableID     int    `json:"table_id,omitempty"`
}

// MenuSnapshot is the client's copy of the menu name and price taken when the
// item was put in the cart. The validator compares it against the live menu.
type MenuSnapshot struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type CartItemRequest struct {
	MenuID          int           `json:"menu_id"`
	MenuSnapshot    MenuSnapshot  `json:"menu_snapshot"`
	SelectedOptions []OrderOption `json:"selected_options"`
	Quantity        int           `json:"quantity"`
	Subtotal        float64       `json:"subtotal"`
}

type CreateOrderRequest struct {
	CartItems []CartItemRequest `json:"cart_items" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
