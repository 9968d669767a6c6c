package config_fx

import (
	"go.uber.org/fx"

	"nearby/internal/config"
)

var Module = fx.Provide(config.LoadServer)
