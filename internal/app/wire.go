//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/solos-nft/solos-deploy/internal/adapters"
	"github.com/solos-nft/solos-deploy/internal/config"
	"github.com/solos-nft/solos-deploy/internal/logging"
	"github.com/solos-nft/solos-deploy/internal/usecase"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		config.ProvideNetworkResolver,
		wire.Bind(new(usecase.NetworkResolver), new(*config.NetworkResolver)),
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewDeployTopology,
		usecase.NewPlanDeployment,
		usecase.NewShowDeployment,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
