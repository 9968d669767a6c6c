package places_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"nearby/internal/config"
	"nearby/internal/repositories"
	"nearby/internal/services"
	mem "nearby/pkg/memcache"
	"nearby/pkg/utils"
)

var Module = fx.Provide(
	ProvidePlaceModel,
	ProvidePlaceService)

// ProvidePlaceModel creates a place model client based on MODEL_PROVIDER
func ProvidePlaceModel(lc fx.Lifecycle, cfg config.Server, logger *zap.Logger) (utils.PlaceModelInterface, error) {
	var (
		model     utils.PlaceModelInterface
		modelName string
	)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		model, modelName = utils.NewOpenAIPlaceClient(cfg.OpenAIAPIKey, cfg.OpenAIModel), cfg.OpenAIModel
	case config.ProviderGemini:
		client, err := utils.NewGeminiPlaceClient(cfg.APIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		model, modelName = client, cfg.GeminiModel
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}

	logger.Info("Initialized place model",
		zap.String("provider", cfg.Provider),
		zap.String("model", modelName))

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return model.Close()
		},
	})
	return model, nil
}

func ProvidePlaceService(
	model utils.PlaceModelInterface,
	searchLog repositories.SearchLogRepository,
	details mem.DetailStore,
	cfg config.Server,
	logger *zap.Logger,
) services.PlaceServiceInterface {
	return services.NewPlaceService(model, searchLog, details, cfg.PlacesPerCategory, logger.Named("places"))
}
