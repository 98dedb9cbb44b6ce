package orders

import "time"

type Status string

// Orders are immutable once created; pending is the only status this system
// ever assigns.
const StatusPending Status = "pending"

// CartItem is the transient client-supplied pair of product id and quantity.
// It exists only inside a create-order request and is never persisted.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// OrderItem is a snapshot of the purchased product at order time. It holds a
// copy of the name and unit price so historical orders stay accurate when the
// catalog changes later.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID        string      `json:"id"`
	Items     []OrderItem `json:"items"`
	Total     float64     `json:"total"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}
