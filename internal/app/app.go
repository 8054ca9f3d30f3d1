package app

import (
	"log/slog"

	"github.com/solos-nft/solos-deploy/internal/domain/config"
	"github.com/solos-nft/solos-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Use cases
	DeployTopology *usecase.DeployTopology
	PlanDeployment *usecase.PlanDeployment
	ShowDeployment *usecase.ShowDeployment
	ListNetworks   *usecase.ListNetworks
	ShowConfig     *usecase.ShowConfig
	SetConfig      *usecase.SetConfig
	RemoveConfig   *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	deployTopology *usecase.DeployTopology,
	planDeployment *usecase.PlanDeployment,
	showDeployment *usecase.ShowDeployment,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:         cfg,
		Log:            log,
		DeployTopology: deployTopology,
		PlanDeployment: planDeployment,
		ShowDeployment: showDeployment,
		ListNetworks:   listNetworks,
		ShowConfig:     showConfig,
		SetConfig:      setConfig,
		RemoveConfig:   removeConfig,
	}, nil
}
