package mcp

import (
	"github.com/ludo-technologies/mockscn/app"
	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/internal/config"
	"github.com/ludo-technologies/mockscn/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	factReader   domain.MockFactReader
	configLoader *service.MockCloneConfigurationLoader
	config       *config.MockscnConfig
	configPath   string
}

// NewDependencies constructs the dependency set. A nil cfg means the
// configuration is discovered per call, starting at configPath or at the
// analyzed path.
func NewDependencies(cfg *config.MockscnConfig, configPath string) *Dependencies {
	return &Dependencies{
		factReader:   service.NewFactReader(),
		configLoader: service.NewMockCloneConfigurationLoader(),
		config:       cfg,
		configPath:   configPath,
	}
}

// Config exposes the loaded configuration snapshot (may be nil).
func (d *Dependencies) Config() *config.MockscnConfig {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// BaseRequest returns the configured request for analyzing target
func (d *Dependencies) BaseRequest(target string) (*domain.MockCloneRequest, error) {
	if d.config != nil {
		return d.config.ToRequest(), nil
	}
	from := d.configPath
	if from == "" {
		from = target
	}
	return d.configLoader.LoadConfig(from)
}

// BuildMockCloneUseCase assembles a fresh MockCloneUseCase. Handlers write
// through the request's writer, so no report writer is attached.
func (d *Dependencies) BuildMockCloneUseCase() (*app.MockCloneUseCase, error) {
	return app.NewMockCloneUseCaseBuilder().
		WithService(service.NewMockCloneService(d.factReader, nil, nil)).
		WithFactReader(d.factReader).
		WithFormatter(service.NewMockCloneFormatter()).
		Build()
}

// BuildMockInfoUseCase assembles a fresh MockInfoUseCase
func (d *Dependencies) BuildMockInfoUseCase() (*app.MockInfoUseCase, error) {
	return app.NewMockInfoUseCaseBuilder().
		WithService(service.NewMockCloneService(d.factReader, nil, nil)).
		WithFactReader(d.factReader).
		WithFormatter(service.NewMockCloneFormatter()).
		Build()
}
