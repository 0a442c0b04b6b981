package server

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/adapters/storage"
	"storefront-api/internal/config"
	"storefront-api/internal/middleware"
	"storefront-api/internal/repositories"
	"storefront-api/internal/repositories/supabase"
	"storefront-api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *logrus.Logger
	Gate         *middleware.AccessGate
	AuthService  services.AuthService
	OrderService services.OrderService
	ImageService services.ImageService

	// Internal dependencies
	repos    repositories.RepositoryManager
	storage  storage.ObjectStorage
	services *services.ServiceContainer
}

// NewContainer creates a new dependency injection container. Missing
// upstream credentials do not fail construction; the affected endpoints
// report them per request.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	logger := config.NewLogger(cfg)

	ordersTable := cfg.Supabase.OrdersTable
	if ordersTable == "" {
		ordersTable = repositories.DefaultConfig().OrdersTable
	}

	repos, err := supabase.NewManager(&repositories.Config{
		BaseURL:     cfg.Supabase.URL,
		ServiceKey:  cfg.Supabase.ServiceKey,
		OrdersTable: ordersTable,
		Timeout:     cfg.Supabase.UpstreamTimeout,
	}, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create repositories: %w", err)
	}

	store, err := storage.NewFactory(nil, logger).Create(&storage.StorageConfig{
		Type:     cfg.Storage.Type,
		BasePath: cfg.Storage.LocalPath,
		BaseURL:  cfg.Supabase.URL,
		APIKey:   cfg.Supabase.ServiceKey,
		Region:   cfg.Storage.S3Region,
		Options: map[string]string{
			"endpoint":   cfg.Storage.S3Endpoint,
			"access_key": cfg.Storage.S3AccessKey,
			"secret_key": cfg.Storage.S3SecretKey,
			"public_key": cfg.Supabase.AnonKey,
		},
	})
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}

	serviceConfig := &services.ServiceConfig{
		Auth: &services.AuthConfig{
			Username:      cfg.Admin.Username,
			Password:      cfg.Admin.Password,
			SessionMaxAge: int(cfg.Session.MaxAge.Seconds()),
		},
		Images: &services.ImageConfig{
			ProductBucket: cfg.Storage.ProductImageBucket,
			PageBucket:    cfg.Storage.PageImageBucket,
		},
	}

	serviceContainer, err := services.NewServiceContainer(repos, store, serviceConfig, logger)
	if err != nil {
		store.Close()
		repos.Close()
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"environment":         cfg.Environment,
		"mode":                config.GetDeploymentMode(),
		"storage_type":        cfg.Storage.Type,
		"supabase_configured": cfg.Supabase.Configured(),
		"admin_configured":    cfg.Admin.Configured(),
	}).Info("Container initialized")

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Gate:         middleware.NewAccessGate(cfg.Session.CookieName, logger),
		AuthService:  serviceContainer.AuthService,
		OrderService: serviceContainer.OrderService,
		ImageService: serviceContainer.ImageService,
		repos:        repos,
		storage:      store,
		services:     serviceContainer,
	}, nil
}

// Services returns the service container shared by the handlers
func (c *Container) Services() *services.ServiceContainer {
	return c.services
}

// Components reports the configuration state of each upstream for /health
func (c *Container) Components() map[string]string {
	state := func(ok bool) string {
		if ok {
			return "configured"
		}
		return "not_configured"
	}

	storageType := c.Config.Storage.Type
	if storageType == "" {
		storageType = string(storage.StorageTypeSupabase)
	}

	return map[string]string{
		"database": state(c.Config.Supabase.Configured()),
		"storage":  storageType,
		"admin":    state(c.Config.Admin.Configured()),
	}
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.storage != nil {
		if err := c.storage.Close(); err != nil {
			return fmt.Errorf("failed to close storage: %w", err)
		}
	}

	if c.repos != nil {
		if err := c.repos.Close(); err != nil {
			return fmt.Errorf("failed to close repositories: %w", err)
		}
	}

	return nil
}
