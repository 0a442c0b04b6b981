package lambda

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// FromGin builds a generic request from a gin context so the same handler
// code serves both the Lambda functions and the long-running server.
func FromGin(c *gin.Context) (*Request, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
	}

	headers := make(Headers, len(c.Request.Header))
	for name, values := range c.Request.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}
	if cookies := c.Request.Header.Values("Cookie"); len(cookies) > 1 {
		headers.Set("Cookie", strings.Join(cookies, "; "))
	}

	query := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			query[key] = values[0]
		}
	}

	params := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		params[p.Key] = p.Value
	}

	return &Request{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		Headers:     headers,
		QueryParams: query,
		Body:        body,
		PathParams:  params,
	}, nil
}

// WriteGin writes a generic response to a gin context
func WriteGin(c *gin.Context, resp *Response) {
	for k, v := range resp.Headers {
		c.Header(k, v)
	}
	for _, cookie := range resp.Cookies {
		c.Writer.Header().Add("Set-Cookie", cookie)
	}

	contentType := resp.Headers["Content-Type"]
	if len(resp.Body) == 0 {
		c.Status(resp.StatusCode)
		c.Writer.WriteHeaderNow()
		return
	}
	c.Data(resp.StatusCode, contentType, resp.Body)
}

// GinHandler wraps a HandlerFunc for use as a gin route
func GinHandler(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := FromGin(c)
		if err != nil {
			WriteGin(c, errorResponse(http.StatusBadRequest, err.Error()))
			return
		}

		resp, err := h(c.Request.Context(), req)
		if err != nil {
			_ = c.Error(err)
			WriteGin(c, errorResponse(http.StatusInternalServerError, err.Error()))
			return
		}
		WriteGin(c, resp)
	}
}
