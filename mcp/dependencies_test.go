package mcp

import (
	"github.com/ludo-technologies/mockscn/domain"
	"github.com/ludo-technologies/mockscn/internal/config"
	"github.com/ludo-technologies/mockscn/service"
)

func NewTestDependencies(fr domain.MockFactReader, cfg *config.MockscnConfig, path string) *Dependencies {
	return &Dependencies{
		factReader:   fr,
		configLoader: service.NewMockCloneConfigurationLoader(),
		config:       cfg,
		configPath:   path,
	}
}
