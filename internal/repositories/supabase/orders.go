package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/models"
	"storefront-api/internal/repositories"
)

// OrderRepository implements repositories.OrderRepository over PostgREST
type OrderRepository struct {
	client *Client
	table  string
	logger logrus.FieldLogger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(client *Client, table string, logger logrus.FieldLogger) repositories.OrderRepository {
	if table == "" {
		table = "orders"
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrderRepository{
		client: client,
		table:  table,
		logger: logger,
	}
}

// ListOrders returns orders for a customer, newest first
func (r *OrderRepository) ListOrders(ctx context.Context, filter *repositories.OrderFilter) ([]models.OrderRecord, error) {
	if filter == nil {
		filter = &repositories.OrderFilter{}
	}
	if err := models.ValidateRequired(filter.CustomerIP, "customer ip"); err != nil {
		return nil, repositories.NewRepositoryError("list_orders", r.table,
			fmt.Errorf("%w: %v", repositories.ErrInvalidFilter, err))
	}

	body, err := r.client.Get(ctx, "list_orders", repositories.OrderHistoryQuery(r.table, filter))
	if err != nil {
		return nil, err
	}

	var records []models.OrderRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, repositories.NewRepositoryError("list_orders", r.table,
			fmt.Errorf("%w: %v", repositories.ErrDecode, err))
	}
	if records == nil {
		records = []models.OrderRecord{}
	}

	r.logger.WithFields(logrus.Fields{
		"count":          len(records),
		"completed_only": filter.CompletedOnly,
		"limit":          filter.Limit,
	}).Debug("Listed orders")

	return records, nil
}
