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

// The gate function sits in front of static admin pages. It answers with a
// redirect or 401 when access is denied and {"forward":true} otherwise.
func route(container *server.Container) lambda.HandlerFunc {
	return handlers.Recover(container.Logger, handlers.GateHandler(container.Gate))
}

func main() {
	awslambda.Start(lambda.Serve(lambda.GetConnectionManager().Wrap(route)))
}
