package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/models"
	"storefront-api/internal/services"
	"storefront-api/pkg/lambda"
)

// OrderHandler serves customer order history
type OrderHandler struct {
	orderService services.OrderService
	logger       logrus.FieldLogger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderService, logger logrus.FieldLogger) *OrderHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrderHandler{
		orderService: orderService,
		logger:       logger.WithField("handler", "orders"),
	}
}

// @Summary Order history
// @Description List a customer's orders, newest first
// @Tags orders
// @Produce json
// @Param ip query string true "Customer IP address"
// @Param phone query string false "Customer phone number"
// @Param limit query int false "Maximum number of orders (1-100)" default(10)
// @Param completed_only query bool false "Only completed orders"
// @Success 200 {object} models.OrdersResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) HandleListOrders(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	switch req.Method {
	case http.MethodOptions:
		return PreflightResponse(methodsOrders), nil
	case http.MethodGet:
	default:
		return MethodNotAllowed(methodsOrders), nil
	}

	ip := models.SanitizeString(req.Query("ip"))
	if ip == "" {
		return errorResponse(h.logger, services.NewBadRequestError(services.MsgMissingIP, nil)), nil
	}

	limit, err := models.ParseLimit(req.Query("limit"))
	if err != nil {
		return errorResponse(h.logger, services.NewBadRequestError(err.Error(), err)), nil
	}

	resp, err := h.orderService.ListOrders(ctx, &services.OrderQuery{
		IP:            ip,
		Phone:         models.SanitizeString(req.Query("phone")),
		Limit:         limit,
		CompletedOnly: models.ParseFlag(req.Query("completed_only")),
	})
	if err != nil {
		return errorResponse(h.logger, err), nil
	}

	return JSONResponse(http.StatusOK, resp), nil
}
