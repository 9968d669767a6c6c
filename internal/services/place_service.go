package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"nearby/internal/models/db_models"
	"nearby/internal/models/request_models"
	"nearby/internal/models/response_models"
	"nearby/internal/repositories"
	mem "nearby/pkg/memcache"
	"nearby/pkg/utils"
)

type PlaceServiceInterface interface {
	FindNearbyPlaces(ctx context.Context, traceID string, req request_models.FindNearbyPlacesRequest) ([]response_models.Place, error)
	GetPlaceDetails(ctx context.Context, req request_models.PlaceDetailsRequest) (string, error)
	RecentSearches(ctx context.Context, limit int) ([]db_models.SearchLog, error)
}

type PlaceService struct {
	model     utils.PlaceModelInterface
	searchLog repositories.SearchLogRepository
	details   mem.DetailStore
	perQuery  int
	logger    *zap.Logger
}

func NewPlaceService(
	model utils.PlaceModelInterface,
	searchLog repositories.SearchLogRepository,
	details mem.DetailStore,
	perQuery int,
	logger *zap.Logger,
) PlaceServiceInterface {
	if perQuery < 1 {
		perQuery = 5
	}
	return &PlaceService{
		model:     model,
		searchLog: searchLog,
		details:   details,
		perQuery:  perQuery,
		logger:    logger,
	}
}

func (s *PlaceService) FindNearbyPlaces(ctx context.Context, traceID string, req request_models.FindNearbyPlacesRequest) ([]response_models.Place, error) {
	location := strings.TrimSpace(req.Location)
	category := strings.TrimSpace(req.Category)
	if location == "" {
		return nil, utils.ErrMissingLocation
	}
	if category == "" {
		return nil, utils.ErrMissingCategory
	}

	places, err := s.model.FindPlaces(ctx, location, category, s.perQuery)
	s.record(ctx, &db_models.SearchLog{
		TraceID:     traceID,
		Location:    location,
		Category:    category,
		ResultCount: len(places),
		Failed:      err != nil,
	})
	if err != nil {
		return nil, fmt.Errorf("find %s near %s: %w", category, location, err)
	}

	if places == nil {
		places = []response_models.Place{}
	}
	return places, nil
}

func (s *PlaceService) GetPlaceDetails(ctx context.Context, req request_models.PlaceDetailsRequest) (string, error) {
	name := strings.TrimSpace(req.PlaceName)
	location := strings.TrimSpace(req.Location)
	if name == "" || location == "" {
		return "", utils.ErrMissingPlaceName
	}

	if cached, ok := s.details.Get(name, location); ok {
		return cached, nil
	}

	details, err := s.model.DescribePlace(ctx, name, location)
	if err != nil {
		return "", fmt.Errorf("details for %s: %w", name, err)
	}
	s.details.Set(name, location, details)
	return details, nil
}

func (s *PlaceService) RecentSearches(ctx context.Context, limit int) ([]db_models.SearchLog, error) {
	logs, err := s.searchLog.Recent(ctx, limit)
	if err != nil {
		s.logger.Error("Error listing search log", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	return logs, nil
}

// record never fails the request; the log is best effort.
func (s *PlaceService) record(ctx context.Context, entry *db_models.SearchLog) {
	if err := s.searchLog.Record(ctx, entry); err != nil {
		s.logger.Warn("Error recording search",
			zap.String("trace_id", entry.TraceID),
			zap.String("category", entry.Category),
			zap.Error(err))
	}
}
