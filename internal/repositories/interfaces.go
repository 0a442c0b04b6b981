package repositories

import (
	"context"

	"storefront-api/internal/models"
)

// OrderFilter selects rows for the order-history lookup
type OrderFilter struct {
	// CustomerIP is required; it is the only identifier the storefront has
	// for anonymous customers.
	CustomerIP string

	// CustomerPhone narrows the lookup when set
	CustomerPhone string

	// CompletedOnly restricts results to completed orders
	CompletedOnly bool

	// Limit caps the number of rows returned
	Limit int
}

// OrderRepository reads order history from the hosted data API.
// Each call results in exactly one upstream request.
type OrderRepository interface {
	// ListOrders returns matching orders, newest first
	ListOrders(ctx context.Context, filter *OrderFilter) ([]models.OrderRecord, error)
}

// RepositoryManager holds every repository the services depend on
type RepositoryManager interface {
	Orders() OrderRepository

	// Close releases idle upstream connections
	Close() error
}
