package main

import (
	"context"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"storefront-api/internal/handlers"
	"storefront-api/pkg/lambda"
	"storefront-api/pkg/server"
)

func init() {
	if _, err := lambda.GetConnectionManager().GetContainer(context.Background()); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}
}

func route(container *server.Container) lambda.HandlerFunc {
	orderHandler := handlers.NewOrderHandler(container.OrderService, container.Logger)
	return handlers.Recover(container.Logger, orderHandler.HandleListOrders)
}

func main() {
	awslambda.Start(lambda.Serve(lambda.GetConnectionManager().Wrap(route)))
}
