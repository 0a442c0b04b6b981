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

// route serves /api/login and /api/logout from one function
func route(container *server.Container) lambda.HandlerFunc {
	authHandler := handlers.NewAuthHandler(container.AuthService, container.Gate.CookieName(), container.Logger)

	return handlers.Recover(container.Logger, func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		if strings.HasSuffix(strings.TrimSuffix(req.Path, "/"), "/logout") {
			return authHandler.HandleLogout(ctx, req)
		}
		return authHandler.HandleLogin(ctx, req)
	})
}

func main() {
	awslambda.Start(lambda.Serve(lambda.GetConnectionManager().Wrap(route)))
}
