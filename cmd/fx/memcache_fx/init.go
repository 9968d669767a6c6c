package memcache_fx

import (
	"go.uber.org/fx"

	"nearby/internal/config"
	mem "nearby/pkg/memcache"
)

var Module = fx.Provide(provideDetailCache)

func provideDetailCache(cfg config.Server) mem.DetailStore {
	return mem.NewDetailCache(cfg.DetailsCacheTTL)
}
