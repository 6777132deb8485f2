package review

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/altynbek8/ServiceApp/internal/ai"
	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/internal/repository"
	apperrors "github.com/altynbek8/ServiceApp/pkg/errors"
	"github.com/altynbek8/ServiceApp/pkg/logger"
)

type Service struct {
	repo   repository.ReviewRepository
	llm    ai.Client
	logger *logger.Logger
}

// NewService builds the review service. llm may be nil; summaries then
// degrade to empty.
func NewService(repo repository.ReviewRepository, llm ai.Client, logger *logger.Logger) *Service {
	return &Service{repo: repo, llm: llm, logger: logger}
}

func (s *Service) Create(ctx context.Context, clientID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	if clientID == req.TargetID {
		return nil, apperrors.BadRequest("cannot review yourself", nil)
	}

	review := &model.Review{
		ClientID: clientID,
		TargetID: req.TargetID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *Service) ListByTarget(ctx context.Context, targetID uuid.UUID, limit int) ([]*model.Review, error) {
	return s.repo.ListByTarget(ctx, targetID, limit)
}

func (s *Service) AverageRating(ctx context.Context, targetID uuid.UUID) (float64, int, error) {
	return s.repo.AverageRating(ctx, targetID)
}

// Summary condenses a provider's recent review comments into one
// sentence. Best effort: any model failure yields an empty summary,
// never an error page.
func (s *Service) Summary(ctx context.Context, targetID uuid.UUID) (string, error) {
	if s.llm == nil {
		return "", nil
	}

	reviews, err := s.repo.ListByTarget(ctx, targetID, 30)
	if err != nil {
		return "", fmt.Errorf("failed to load reviews: %w", err)
	}

	var comments []string
	for _, r := range reviews {
		if r.Comment != nil && strings.TrimSpace(*r.Comment) != "" {
			comments = append(comments, *r.Comment)
		}
	}
	if len(comments) == 0 {
		return "", nil
	}

	prompt := "Сформулируй одним предложением общее впечатление клиентов по этим отзывам:\n- " +
		strings.Join(comments, "\n- ")
	summary, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error(err, "failed to summarize reviews", map[string]interface{}{
			"target_id": targetID,
		})
		return "", nil
	}
	return summary, nil
}
