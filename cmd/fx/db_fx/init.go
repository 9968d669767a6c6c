package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"nearby/internal/config"
	"nearby/internal/infra"
	"nearby/internal/repositories"
)

var Module = fx.Provide(provideSearchLogRepository)

// provideSearchLogRepository falls back to a no-op log when POSTGRES_URL is unset.
func provideSearchLogRepository(lc fx.Lifecycle, cfg config.Server, logger *zap.Logger) (repositories.SearchLogRepository, error) {
	if cfg.PostgresURL == "" {
		logger.Info("POSTGRES_URL not set, search log disabled")
		return repositories.NewNoopSearchLogRepository(), nil
	}

	db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return repositories.NewSearchLogRepository(db), nil
}
