package handlers

import (
	"msgrelay/internal/app/infrastructure/config"
	"msgrelay/internal/app/ports"
	"msgrelay/pkg/logger"
)

type Handlers struct {
	log     logger.Logger
	manager *config.Manager
	relay   ports.RelayPort
}

func New(log logger.Logger, manager *config.Manager, relay ports.RelayPort) *Handlers {
	return &Handlers{
		log:     log,
		manager: manager,
		relay:   relay,
	}
}
