package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"storefront-api/internal/models"
	"storefront-api/internal/repositories"
)

// orderService implements the OrderService interface
type orderService struct {
	orderRepo repositories.OrderRepository
	validator *validator.Validate
	logger    logrus.FieldLogger
}

// NewOrderService creates a new order service instance
func NewOrderService(orderRepo repositories.OrderRepository, logger logrus.FieldLogger) OrderService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &orderService{
		orderRepo: orderRepo,
		validator: validator.New(),
		logger:    logger,
	}
}

// ListOrders implements OrderService.ListOrders
func (s *orderService) ListOrders(ctx context.Context, query *OrderQuery) (*models.OrdersResponse, error) {
	if query == nil || strings.TrimSpace(query.IP) == "" {
		return nil, NewBadRequestError(MsgMissingIP, nil)
	}
	if query.Limit == 0 {
		query.Limit = models.DefaultOrderLimit
	}
	if err := s.validator.Struct(query); err != nil {
		return nil, NewBadRequestError(
			fmt.Sprintf("limit must be between 1 and %d", models.MaxOrderLimit),
			fmt.Errorf("validation failed: %w", err),
		)
	}

	records, err := s.orderRepo.ListOrders(ctx, &repositories.OrderFilter{
		CustomerIP:    strings.TrimSpace(query.IP),
		CustomerPhone: strings.TrimSpace(query.Phone),
		CompletedOnly: query.CompletedOnly,
		Limit:         query.Limit,
	})
	if err != nil {
		if repositories.IsNotConfigured(err) {
			s.logger.Error("Data API is not configured")
			return nil, NewConfigError(err)
		}
		s.logger.WithError(err).Error("Failed to list orders")
		return nil, NewUpstreamError(err)
	}

	orders := models.ToOrders(records)
	return &models.OrdersResponse{
		Success: true,
		Orders:  orders,
		Count:   len(orders),
	}, nil
}
