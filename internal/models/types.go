package models

import (
	"time"
)

// Response messages
const (
	MessageLoginSuccessful = "Login successful"
	MessageLoggedOut       = "Logged out successfully"
	LogoutRedirectURL      = "/"
)

// Order-history query limits
const (
	DefaultOrderLimit = 10
	MaxOrderLimit     = 100
)

// Session cookie lifetime at issuance
const SessionMaxAgeSeconds = 86400

// Image responses
const (
	ImageCacheControl  = "public, max-age=86400"
	DefaultContentType = "application/octet-stream"
)

// MessageResponse is the body of login and logout responses
type MessageResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}

// OrdersResponse is the body of the order-history endpoint
type OrdersResponse struct {
	Success bool    `json:"success"`
	Orders  []Order `json:"orders"`
	Count   int     `json:"count"`
}

// ErrorResponse is the body of every failed JSON response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationError represents a validation error with field-specific details
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	return ve.Message
}

// HealthCheck represents system health status
type HealthCheck struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
	Uptime    string            `json:"uptime"`
}
