package app

import (
	"github.com/trebuchet-org/treb-addresses/internal/domain/config"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig

	// Use cases
	ExtractAddresses *usecase.ExtractAddresses
	ListNetworks     *usecase.ListNetworks
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	extractAddresses *usecase.ExtractAddresses,
	listNetworks *usecase.ListNetworks,
) (*App, error) {
	return &App{
		Config:           cfg,
		ExtractAddresses: extractAddresses,
		ListNetworks:     listNetworks,
	}, nil
}
