package models

// Order statuses stored in the orders table
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// AmountDivisor converts stored integer money values to display amounts.
// Stored values are divided by 1000, not 100; existing rows depend on it.
const AmountDivisor = 1000

// OrderRecord is an order row as returned by the data API
type OrderRecord struct {
	ID             string            `json:"id"`
	OrderNumber    string            `json:"order_number"`
	CustomerName   string            `json:"customer_name"`
	CustomerPhone  string            `json:"customer_phone"`
	CustomerIP     string            `json:"customer_ip"`
	Status         string            `json:"status"`
	Items          []OrderItemRecord `json:"items"`
	SubtotalAmount int64             `json:"subtotal_amount"`
	ShippingAmount int64             `json:"shipping_amount"`
	TotalAmount    int64             `json:"total_amount"`
	Notes          *string           `json:"notes,omitempty"`
	CreatedAt      string            `json:"created_at"`
}

// OrderItemRecord is a line item embedded in an order row
type OrderItemRecord struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	LineTotal   int64  `json:"line_total"`
}

// Order is the public order-history shape
type Order struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"orderNumber"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone,omitempty"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Shipping      float64     `json:"shipping"`
	Total         float64     `json:"total"`
	Notes         *string     `json:"notes,omitempty"`
	CreatedAt     string      `json:"createdAt"`
}

// OrderItem is the public line item shape
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// ToAmount converts a stored integer money value to a display amount
func ToAmount(stored int64) float64 {
	return float64(stored) / AmountDivisor
}

// IsCompleted reports whether the order reached its final state
func (r *OrderRecord) IsCompleted() bool {
	return r.Status == OrderStatusCompleted
}

// ToOrder reshapes a stored row into the public order shape.
// The customer IP is never exposed.
func (r *OrderRecord) ToOrder() Order {
	items := make([]OrderItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, item.ToOrderItem())
	}

	return Order{
		ID:            r.ID,
		OrderNumber:   r.OrderNumber,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		Status:        r.Status,
		Items:         items,
		Subtotal:      ToAmount(r.SubtotalAmount),
		Shipping:      ToAmount(r.ShippingAmount),
		Total:         ToAmount(r.TotalAmount),
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}

// ToOrderItem reshapes a stored line item
func (i OrderItemRecord) ToOrderItem() OrderItem {
	return OrderItem{
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		UnitPrice:   ToAmount(i.UnitPrice),
		LineTotal:   ToAmount(i.LineTotal),
	}
}

// ToOrders reshapes a list of rows, preserving order
func ToOrders(records []OrderRecord) []Order {
	orders := make([]Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].ToOrder())
	}
	return orders
}
