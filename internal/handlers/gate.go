package handlers

import (
	"context"
	"net/http"

	"storefront-api/internal/middleware"
	"storefront-api/pkg/lambda"
)

// GateResponse renders a non-forward gate decision
func GateResponse(d middleware.Decision) *lambda.Response {
	switch d.Action {
	case middleware.JSONUnauthorized:
		return JSONResponse(d.StatusCode(), d.Failure)
	case middleware.RedirectToLogin, middleware.RedirectToReject:
		return RedirectResponse(d.Location)
	default:
		return nil
	}
}

// Gated runs the access gate before next
func Gated(gate *middleware.AccessGate, next lambda.HandlerFunc) lambda.HandlerFunc {
	return func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		d := gate.Decide(req.Path, req.Headers)
		if !d.Forwarded() {
			return GateResponse(d), nil
		}
		return next(ctx, req)
	}
}

// GateHandler answers only with the gate's decision. It backs the edge
// function placed in front of the admin pages; a forward yields
// {"forward":true}.
func GateHandler(gate *middleware.AccessGate) lambda.HandlerFunc {
	return Gated(gate, func(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
		return JSONResponse(http.StatusOK, map[string]bool{"forward": true}), nil
	})
}
