package catalog

// OrderStatusPending is the numeric status code the catalog's orders
// collection assigns to a freshly placed order.
const OrderStatusPending = 0

// OrderItem is one line of an order payload: a product reference and a
// quantity. The catalog resolves prices server side.
type OrderItem struct {
	Product  int `json:"product"`
	Quantity int `json:"quantity"`
}

// CreateOrderRequest is the payload posted to the catalog's orders
// collection. Optional fields are pointers so they are omitted entirely when
// unset rather than sent as empty strings.
type CreateOrderRequest struct {
	OrderItems    []OrderItem `json:"orderItems"`
	PaymentMethod string      `json:"paymentMethod"`
	TransactionID *string     `json:"transactionId,omitempty"`
	Phone         string      `json:"phone"`
	City          string      `json:"city"`
	Address       string      `json:"address"`
	Status        int         `json:"status"`
	Notes         *string     `json:"notes,omitempty"`
	CustomerName  string      `json:"customerName"`
}

// OrderReceipt is the catalog's acknowledgement of a created order.
type OrderReceipt struct {
	ID     int `json:"id"`
	Status int `json:"status"`
}
