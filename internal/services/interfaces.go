package services

import (
	"context"
	"time"

	"storefront-api/internal/models"
)

// AuthService defines admin login operations
type AuthService interface {
	// Login checks configuration, then the JSON body, then the credentials,
	// and issues a session on success.
	Login(ctx context.Context, body []byte) (*Session, error)
}

// OrderService defines order-history operations
type OrderService interface {
	ListOrders(ctx context.Context, query *OrderQuery) (*models.OrdersResponse, error)
}

// ImageService defines image proxy operations
type ImageService interface {
	GetImage(ctx context.Context, kind ImageKind, filename string) (*Image, error)
}

// LoginRequest is the login payload
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is an issued admin session. The token is opaque and is not
// recorded anywhere server side.
type Session struct {
	Token    string
	MaxAge   int
	IssuedAt time.Time
}

// OrderQuery is an order-history lookup
type OrderQuery struct {
	IP            string `validate:"required"`
	Phone         string
	Limit         int `validate:"min=1,max=100"`
	CompletedOnly bool
}

// ImageKind selects the bucket an image is served from
type ImageKind string

const (
	ImageKindProduct ImageKind = "product"
	ImageKindPage    ImageKind = "page"
)

// Image is a proxied image payload
type Image struct {
	Filename     string
	ContentType  string
	CacheControl string
	Data         []byte
}
