package main

import (
	"context"
	"strings"

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

// route serves both buckets; the path prefix picks the bucket
func route(container *server.Container) lambda.HandlerFunc {
	imageHandler := handlers.NewImageHandler(container.ImageService, container.Logger)

	return handlers.Recover(container.Logger, func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		if strings.HasPrefix(req.Path, "/api/page-image/") {
			return imageHandler.HandlePageImage(ctx, req)
		}
		return imageHandler.HandleProductImage(ctx, req)
	})
}

func main() {
	awslambda.Start(lambda.Serve(lambda.GetConnectionManager().Wrap(route)))
}
