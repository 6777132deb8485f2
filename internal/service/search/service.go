package search

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/altynbek8/ServiceApp/internal/ai"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	"github.com/altynbek8/ServiceApp/pkg/logger"
	"github.com/altynbek8/ServiceApp/pkg/metrics"
)

const (
	pathIntent   = "intent"
	pathFallback = "fallback"
)

// Service answers free-text search: the language model extracts a
// structured intent which drives the provider search view; when the
// model is unavailable or unsure, a plain text match over names and
// descriptions takes over.
type Service struct {
	providerRepo repository.ProviderRepository
	llm          ai.Client
	intents      *cache.Cache
	logger       *logger.Logger
	metrics      *metrics.Metrics
}

func NewService(providerRepo repository.ProviderRepository, llm ai.Client, intentTTL time.Duration, logger *logger.Logger, m *metrics.Metrics) *Service {
	if intentTTL <= 0 {
		intentTTL = 5 * time.Minute
	}
	return &Service{
		providerRepo: providerRepo,
		llm:          llm,
		intents:      cache.New(intentTTL, 2*intentTTL),
		logger:       logger,
		metrics:      m,
	}
}

func (s *Service) Search(ctx context.Context, query string) (*model.SearchResponse, error) {
	intent := s.extractIntent(ctx, query)

	if intent == nil || intent.Intent == model.IntentGeneralQuestion {
		return s.fallback(ctx, query, intent)
	}

	role := model.RoleSpecialist
	if intent.Intent == model.IntentSearchVenue {
		role = model.RoleVenue
	}
	filters := &model.ProviderSearchFilters{
		Role:         &role,
		CategoryLike: intent.Category,
		CityLike:     intent.City,
	}
	if intent.MaxPrice > 0 {
		price := int64(intent.MaxPrice)
		filters.MaxPrice = &price
	}

	results, err := s.providerRepo.Search(ctx, filters)
	if err != nil {
		return nil, err
	}

	// An intent that matches nothing usually means the category guess
	// was too narrow; retry on the raw text before giving up.
	if len(results) == 0 && intent.Category != "" {
		return s.fallback(ctx, query, intent)
	}

	s.metrics.SearchRequests.WithLabelValues(pathIntent).Inc()
	return &model.SearchResponse{
		Intent:  intent,
		Path:    pathIntent,
		Results: results,
	}, nil
}

// extractIntent returns nil when the model cannot produce a usable
// intent; callers fall back to text search.
func (s *Service) extractIntent(ctx context.Context, query string) *model.SearchIntent {
	if s.llm == nil {
		return nil
	}

	key := strings.ToLower(strings.TrimSpace(query))
	if cached, ok := s.intents.Get(key); ok {
		return cached.(*model.SearchIntent)
	}

	intent, err := s.llm.ExtractIntent(ctx, query)
	if err != nil {
		s.logger.Error(err, "intent extraction failed", map[string]interface{}{
			"query": query,
		})
		return nil
	}

	s.intents.Set(key, intent, cache.DefaultExpiration)
	return intent
}

func (s *Service) fallback(ctx context.Context, query string, intent *model.SearchIntent) (*model.SearchResponse, error) {
	text := query
	if intent != nil && len(intent.QueryTags) > 0 {
		text = intent.QueryTags[0]
	}

	results, err := s.providerRepo.Search(ctx, &model.ProviderSearchFilters{TextQuery: text})
	if err != nil {
		return nil, err
	}

	s.metrics.SearchRequests.WithLabelValues(pathFallback).Inc()
	return &model.SearchResponse{
		Intent:  intent,
		Path:    pathFallback,
		Results: results,
	}, nil
}
