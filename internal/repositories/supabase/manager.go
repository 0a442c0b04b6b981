package supabase

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/repositories"
)

// Manager implements repositories.RepositoryManager for a hosted project
type Manager struct {
	client *Client
	orders repositories.OrderRepository
}

// NewManager creates the repositories for config. A config without URL or key
// is accepted; calls then fail with ErrNotConfigured.
func NewManager(config *repositories.Config, httpClient *http.Client, logger logrus.FieldLogger) (*Manager, error) {
	if config == nil {
		config = repositories.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid repository config: %w", err)
	}

	client := NewClient(config, httpClient, logger)
	return &Manager{
		client: client,
		orders: NewOrderRepository(client, config.OrdersTable, logger),
	}, nil
}

// Orders returns the order repository
func (m *Manager) Orders() repositories.OrderRepository {
	return m.orders
}

// Close implements repositories.RepositoryManager
func (m *Manager) Close() error {
	return m.client.Close()
}
