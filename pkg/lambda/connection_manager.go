package lambda

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront-api/internal/config"
	"storefront-api/pkg/server"
)

// staleAfter is how long a warm container may sit idle before IsHealthy
// reports it as stale
const staleAfter = 5 * time.Minute

// ConnectionManager keeps one service container alive across invocations of
// a warm Lambda instance
type ConnectionManager struct {
	container *server.Container
	lastUsed  time.Time
	mu        sync.RWMutex
	config    *config.Config

	// loadConfig and newContainer are swapped out in tests
	loadConfig   func() (*config.Config, error)
	newContainer func(*config.Config) (*server.Container, error)
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = NewConnectionManager()
	})
	return globalConnectionManager
}

// NewConnectionManager creates a manager that loads its configuration from
// the environment on first use
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		loadConfig:   config.GetOptimizedConfig,
		newContainer: server.NewContainer,
	}
}

// Initialize builds the container from cfg. It is a no-op once a container exists.
func (cm *ConnectionManager) Initialize(cfg *config.Config) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.initLocked(cfg)
}

func (cm *ConnectionManager) initLocked(cfg *config.Config) error {
	if cm.container != nil {
		return nil
	}

	container, err := cm.newContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	cm.config = cfg
	cm.container = container
	cm.lastUsed = time.Now()
	return nil
}

// GetContainer returns the service container, initializing if necessary.
// A failed initialization is retried on the next call.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		cm.lastUsed = time.Now()
		return cm.container, nil
	}

	cfg := cm.config
	if cfg == nil {
		loaded, err := cm.loadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	if err := cm.initLocked(cfg); err != nil {
		return nil, err
	}
	return cm.container, nil
}

// IsHealthy reports whether a container exists and was used recently
func (cm *ConnectionManager) IsHealthy() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.container == nil {
		return false
	}
	return time.Since(cm.lastUsed) < staleAfter
}

// Cleanup closes the container. The next GetContainer builds a fresh one.
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		if err := cm.container.Close(); err != nil {
			return err
		}
		cm.container = nil
	}

	return nil
}

// Wrap serves each invocation with the current container. A container left
// idle past staleAfter is closed and rebuilt first, dropping upstream
// connections that went stale while the instance was frozen.
func (cm *ConnectionManager) Wrap(build func(*server.Container) HandlerFunc) HandlerFunc {
	return func(ctx context.Context, req *Request) (*Response, error) {
		if !cm.IsHealthy() {
			if err := cm.Cleanup(); err != nil {
				return nil, fmt.Errorf("failed to recycle container: %w", err)
			}
		}

		container, err := cm.GetContainer(ctx)
		if err != nil {
			return nil, err
		}
		return build(container)(ctx, req)
	}
}
