package lambda

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// FromAPIGateway converts an API Gateway proxy event into a generic request
func FromAPIGateway(event events.APIGatewayProxyRequest) (*Request, error) {
	body := []byte(event.Body)
	if event.IsBase64Encoded && event.Body != "" {
		decoded, err := base64.StdEncoding.DecodeString(event.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode request body: %w", err)
		}
		body = decoded
	}

	headers := make(Headers, len(event.Headers))
	for k, v := range event.Headers {
		headers[k] = v
	}
	// Some clients send several Cookie headers, and HTTP/2 clients send them
	// lowercase; API Gateway keeps every crumb apart.
	var cookies []string
	for name, values := range event.MultiValueHeaders {
		if strings.EqualFold(name, "Cookie") {
			cookies = append(cookies, values...)
		}
	}
	if len(cookies) > 0 {
		headers.Set("Cookie", strings.Join(cookies, "; "))
	}

	return &Request{
		Method:      event.HTTPMethod,
		Path:        event.Path,
		Headers:     headers,
		QueryParams: event.QueryStringParameters,
		Body:        body,
		PathParams:  event.PathParameters,
	}, nil
}

// ToAPIGateway converts a generic response into an API Gateway proxy response
func ToAPIGateway(resp *Response) events.APIGatewayProxyResponse {
	out := events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
	}

	if len(resp.Cookies) > 0 {
		out.MultiValueHeaders = map[string][]string{"Set-Cookie": resp.Cookies}
	}

	if resp.Binary {
		out.Body = base64.StdEncoding.EncodeToString(resp.Body)
		out.IsBase64Encoded = true
	} else {
		out.Body = string(resp.Body)
	}

	return out
}

// Serve adapts a HandlerFunc into a function accepted by lambda.Start.
// A handler error never escapes as a Lambda invocation error; it becomes a 500.
func Serve(h HandlerFunc) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		req, err := FromAPIGateway(event)
		if err != nil {
			return ToAPIGateway(errorResponse(http.StatusBadRequest, err.Error())), nil
		}

		resp, err := h(ctx, req)
		if err != nil {
			return ToAPIGateway(errorResponse(http.StatusInternalServerError, err.Error())), nil
		}
		if resp == nil {
			return ToAPIGateway(errorResponse(http.StatusInternalServerError, "empty response")), nil
		}

		return ToAPIGateway(resp), nil
	}
}

func errorResponse(status int, message string) *Response {
	body, _ := json.Marshal(map[string]string{"error": message})
	return &Response{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: body,
	}
}
