package services

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/adapters/storage"
	"storefront-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	AuthService  AuthService
	OrderService OrderService
	ImageService ImageService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	Auth   *AuthConfig
	Images *ImageConfig
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(repos repositories.RepositoryManager, store storage.ObjectStorage, config *ServiceConfig, logger logrus.FieldLogger) (*ServiceContainer, error) {
	if repos == nil {
		return nil, fmt.Errorf("repository manager cannot be nil")
	}

	if config == nil {
		config = &ServiceConfig{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &ServiceContainer{
		AuthService:  NewAuthService(config.Auth, logger.WithField("service", "auth")),
		OrderService: NewOrderService(repos.Orders(), logger.WithField("service", "orders")),
		ImageService: NewImageService(store, config.Images, logger.WithField("service", "images")),
	}, nil
}
