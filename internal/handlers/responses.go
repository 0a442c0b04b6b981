package handlers

import (
	"encoding/json"
	"net/http"

	"storefront-api/internal/models"
	"storefront-api/internal/services"
	"storefront-api/pkg/lambda"
)

// Allowed methods advertised in CORS preflight responses
const (
	methodsLogin  = "POST, OPTIONS"
	methodsOrders = "GET, OPTIONS"
	methodsImages = "GET, OPTIONS"
)

func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin": "*",
	}
}

// JSONResponse builds a JSON response with permissive CORS
func JSONResponse(status int, v interface{}) *lambda.Response {
	body, err := json.Marshal(v)
	if err != nil {
		return ErrorJSON(http.StatusInternalServerError, err.Error())
	}

	headers := corsHeaders()
	headers["Content-Type"] = "application/json"
	return &lambda.Response{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}

// ErrorJSON builds an {"error": message} response
func ErrorJSON(status int, message string) *lambda.Response {
	return JSONResponse(status, models.ErrorResponse{Error: message})
}

// RedirectResponse builds a 302 to location
func RedirectResponse(location string) *lambda.Response {
	return &lambda.Response{
		StatusCode: http.StatusFound,
		Headers: map[string]string{
			"Location":      location,
			"Cache-Control": "no-store",
		},
	}
}

// BinaryResponse builds a binary payload response
func BinaryResponse(contentType, cacheControl string, data []byte) *lambda.Response {
	headers := corsHeaders()
	headers["Content-Type"] = contentType
	if cacheControl != "" {
		headers["Cache-Control"] = cacheControl
	}
	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       data,
		Binary:     true,
	}
}

// PreflightResponse answers an OPTIONS request with an empty 200
func PreflightResponse(methods string) *lambda.Response {
	headers := corsHeaders()
	headers["Access-Control-Allow-Methods"] = methods
	headers["Access-Control-Allow-Headers"] = "Content-Type"
	return &lambda.Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
	}
}

// MethodNotAllowed builds a 405 JSON response
func MethodNotAllowed(allowed string) *lambda.Response {
	resp := ErrorJSON(http.StatusMethodNotAllowed, services.MsgMethodNotAllowed)
	resp.Headers["Allow"] = allowed
	return resp
}
