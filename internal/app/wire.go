//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-addresses/internal/adapters"
	"github.com/trebuchet-org/treb-addresses/internal/config"
	"github.com/trebuchet-org/treb-addresses/internal/logging"
	"github.com/trebuchet-org/treb-addresses/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewExtractAddresses,
		usecase.NewListNetworks,

		// App
		NewApp,
	)
	return nil, nil
}
