package review

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/altynbek8/ServiceApp/internal/model"
	"github.com/altynbek8/ServiceApp/pkg/logger"
)

type fakeReviewRepo struct {
	reviews []*model.Review
	listErr error
}

func (f *fakeReviewRepo) Create(_ context.Context, r *model.Review) error {
	for _, existing := range f.reviews {
		if existing.ClientID == r.ClientID && existing.TargetID == r.TargetID {
			return errors.New("review already exists")
		}
	}
	r.ID = uuid.New()
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeReviewRepo) ListByTarget(_ context.Context, targetID uuid.UUID, _ int) ([]*model.Review, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*model.Review
	for _, r := range f.reviews {
		if r.TargetID == targetID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) AverageRating(_ context.Context, targetID uuid.UUID) (float64, int, error) {
	var sum, count int
	for _, r := range f.reviews {
		if r.TargetID == targetID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type fakeLLM struct {
	reply string
	err   error
	calls int
}

func (f *fakeLLM) ExtractIntent(context.Context, string) (*model.SearchIntent, error) {
	return nil, nil
}

func (f *fakeLLM) Generate(context.Context, string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeLLM) Close() error { return nil }

func quietLogger() *logger.Logger {
	return logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func strPtr(s string) *string { return &s }

func TestCreateReview(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewService(repo, nil, quietLogger())
	clientID, targetID := uuid.New(), uuid.New()

	r, err := svc.Create(context.Background(), clientID, &model.CreateReviewRequest{
		TargetID: targetID,
		Rating:   5,
		Comment:  strPtr("Очень аккуратная работа"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, r.ID)

	// One review per (client, target).
	_, err = svc.Create(context.Background(), clientID, &model.CreateReviewRequest{
		TargetID: targetID, Rating: 4,
	})
	assert.Error(t, err)
}

func TestCreateReviewRejectsSelf(t *testing.T) {
	svc := NewService(&fakeReviewRepo{}, nil, quietLogger())
	id := uuid.New()

	_, err := svc.Create(context.Background(), id, &model.CreateReviewRequest{
		TargetID: id, Rating: 5,
	})
	assert.Error(t, err)
}

func TestAverageRating(t *testing.T) {
	repo := &fakeReviewRepo{}
	svc := NewService(repo, nil, quietLogger())
	targetID := uuid.New()

	for _, rating := range []int{5, 4} {
		_, err := svc.Create(context.Background(), uuid.New(), &model.CreateReviewRequest{
			TargetID: targetID, Rating: rating,
		})
		require.NoError(t, err)
	}

	avg, count, err := svc.AverageRating(context.Background(), targetID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.InDelta(t, 4.5, avg, 0.001)
}

func TestSummary(t *testing.T) {
	repo := &fakeReviewRepo{}
	targetID := uuid.New()
	_, err := NewService(repo, nil, quietLogger()).Create(context.Background(), uuid.New(),
		&model.CreateReviewRequest{TargetID: targetID, Rating: 5, Comment: strPtr("Супер мастер")})
	require.NoError(t, err)

	llm := &fakeLLM{reply: "Клиенты в восторге от качества работы."}
	svc := NewService(repo, llm, quietLogger())

	summary, err := svc.Summary(context.Background(), targetID)
	require.NoError(t, err)
	assert.Equal(t, llm.reply, summary)
}

func TestSummaryDegradesGracefully(t *testing.T) {
	repo := &fakeReviewRepo{}
	targetID := uuid.New()

	// No model configured.
	summary, err := NewService(repo, nil, quietLogger()).Summary(context.Background(), targetID)
	require.NoError(t, err)
	assert.Empty(t, summary)

	// No comments to summarize: the model is not called.
	llm := &fakeLLM{reply: "unused"}
	svc := NewService(repo, llm, quietLogger())
	summary, err = svc.Summary(context.Background(), targetID)
	require.NoError(t, err)
	assert.Empty(t, summary)
	assert.Zero(t, llm.calls)

	// Model failure yields an empty summary, not an error.
	_, err = NewService(repo, nil, quietLogger()).Create(context.Background(), uuid.New(),
		&model.CreateReviewRequest{TargetID: targetID, Rating: 5, Comment: strPtr("Отлично")})
	require.NoError(t, err)

	failing := &fakeLLM{err: errors.New("quota exceeded")}
	summary, err = NewService(repo, failing, quietLogger()).Summary(context.Background(), targetID)
	require.NoError(t, err)
	assert.Empty(t, summary)
}
