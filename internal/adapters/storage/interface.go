package storage

import (
	"context"
	"time"
)

// Object is a fetched object-store payload
type Object struct {
	Bucket       string
	Key          string
	ContentType  string
	Data         []byte
	LastModified time.Time
	ETag         string
}

// Size returns the payload length in bytes
func (o *Object) Size() int64 {
	return int64(len(o.Data))
}

// ObjectStorage is a read-only view of the storefront's image buckets.
// Implementations make exactly one upstream call per Fetch and never retry.
type ObjectStorage interface {
	// Fetch returns the object stored under key in bucket.
	// A missing object yields an error for which IsNotFound is true.
	Fetch(ctx context.Context, bucket, key string) (*Object, error)

	// Close cleans up any resources used by the storage implementation
	Close() error
}

// StorageConfig represents configuration for storage providers
type StorageConfig struct {
	Type     string            `json:"type" yaml:"type"`           // "supabase", "s3", "local", "mock"
	BasePath string            `json:"base_path" yaml:"base_path"` // For local storage
	BaseURL  string            `json:"base_url" yaml:"base_url"`   // For supabase storage
	APIKey   string            `json:"-" yaml:"-"`                 // For supabase storage
	Region   string            `json:"region" yaml:"region"`       // For s3
	Options  map[string]string `json:"options" yaml:"options"`     // Provider-specific options
}
