package lambda

import (
	"context"
	"strings"
)

// Headers is a header map with case-insensitive lookup.
// API Gateway delivers header names in whatever case the client sent them.
type Headers map[string]string

// Get returns the value of the named header, ignoring case
func (h Headers) Get(name string) string {
	if v, ok := h[name]; ok {
		return v
	}
	for k, v := range h {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Set stores a header value, replacing any existing entry that differs only in case
func (h Headers) Set(name, value string) {
	for k := range h {
		if k != name && strings.EqualFold(k, name) {
			delete(h, k)
		}
	}
	h[name] = value
}

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     Headers           `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`
}

// Query returns a query parameter or the empty string
func (r *Request) Query(key string) string {
	if r.QueryParams == nil {
		return ""
	}
	return r.QueryParams[key]
}

// Param returns a path parameter or the empty string
func (r *Request) Param(key string) string {
	if r.PathParams == nil {
		return ""
	}
	return r.PathParams[key]
}

// Cookie returns the raw Cookie header
func (r *Request) Cookie() string {
	return r.Headers.Get("Cookie")
}

// Response represents a generic HTTP response for serverless functions.
// Binary marks bodies that must be base64-encoded on the way out.
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Cookies    []string          `json:"cookies,omitempty"`
	Body       []byte            `json:"body"`
	Binary     bool              `json:"binary,omitempty"`
}

// HandlerFunc is a framework-agnostic handler
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)
