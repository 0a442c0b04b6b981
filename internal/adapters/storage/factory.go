package storage

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeSupabase StorageType = "supabase"
	StorageTypeS3       StorageType = "s3"
	StorageTypeLocal    StorageType = "local"
	StorageTypeMock     StorageType = "mock"
)

// Factory creates ObjectStorage instances based on configuration
type Factory struct {
	httpClient *http.Client
	logger     logrus.FieldLogger
}

// NewFactory creates a new storage factory
func NewFactory(httpClient *http.Client, logger logrus.FieldLogger) *Factory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Factory{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Create creates an ObjectStorage instance based on the provided configuration
func (f *Factory) Create(config *StorageConfig) (ObjectStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	storageType := StorageType(strings.ToLower(config.Type))
	logger := f.logger.WithField("storage_type", storageType)

	switch storageType {
	case StorageTypeSupabase, "":
		return NewSupabaseStorage(config.BaseURL, config.APIKey, f.httpClient, logger).
			WithPublicKey(config.Options["public_key"]), nil
	case StorageTypeS3:
		storage, err := NewS3Storage(
			config.Region,
			config.Options["endpoint"],
			config.Options["access_key"],
			config.Options["secret_key"],
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 storage: %w", err)
		}
		return storage, nil
	case StorageTypeLocal:
		basePath := config.BasePath
		if basePath == "" {
			basePath = "./data/images"
		}
		storage, err := NewLocalFileStorage(basePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create local storage: %w", err)
		}
		return storage, nil
	case StorageTypeMock:
		return NewMockObjectStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}
}
