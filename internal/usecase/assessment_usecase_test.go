package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dhruvtara/internal/domain/assessment"
	"dhruvtara/internal/infrastructure/cache"
	"dhruvtara/internal/ml"
	"dhruvtara/internal/pkg/metrics"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var technicalSurvey = ml.SurveyResponse{
	"math_interest":        9,
	"science_interest":     8,
	"literature_interest":  2,
	"coding_interest":      9,
	"teamwork":             5,
	"creativity":           6,
	"helping_interest":     3,
	"leadership":           4,
	"travel_interest":      2,
	"stable_job_interest":  7,
	"business_interest":    3,
	"communication_skills": 6,
}

func loadPredictor(t *testing.T) *ml.Predictor {
	t.Helper()
	p, err := ml.Load(ml.Paths{Dir: "../ml/testdata"})
	require.NoError(t, err)
	return p
}

func newRedisCache(t *testing.T) *cache.Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisWithClient(client, time.Minute, zap.NewNop())
}

type failingPredictor struct{}

func (failingPredictor) Predict(ml.SurveyResponse) ([]ml.Career, error) {
	return nil, errors.New("model exploded")
}

func TestAssessment_SubmitTransitionsToAssessed(t *testing.T) {
	repo := newFakeAssessments()
	m := metrics.New("test")
	uc := NewAssessmentUsecase(repo, loadPredictor(t), newRedisCache(t), m, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	dash, err := uc.Dashboard(ctx, userID)
	require.NoError(t, err)
	assert.False(t, dash.Assessed)
	assert.Nil(t, dash.Assessment)

	res, err := uc.Submit(ctx, userID, technicalSurvey)
	require.NoError(t, err)
	require.Len(t, res.Careers, 3)
	assert.Equal(t, "Software Engineer", res.Record.Careers[0])
	assert.Equal(t, res.Careers[0].Label, res.Record.Careers[0])
	assert.Equal(t, 9, res.Record.Scores[3])
	assert.GreaterOrEqual(t, res.Careers[0].Confidence, res.Careers[1].Confidence)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PredictionsCounter(metrics.OutcomeOK)))

	dash, err = uc.Dashboard(ctx, userID)
	require.NoError(t, err)
	assert.True(t, dash.Assessed)
	require.NotNil(t, dash.Assessment)
	assert.Equal(t, res.Record.Careers, dash.Assessment.Careers)

	_, err = uc.Submit(ctx, userID, technicalSurvey)
	assert.ErrorIs(t, err, assessment.ErrAlreadyAssessed)
	assert.Len(t, repo.records, 1)
}

func TestAssessment_RecordServedFromCache(t *testing.T) {
	repo := newFakeAssessments()
	uc := NewAssessmentUsecase(repo, loadPredictor(t), newRedisCache(t), nil, zap.NewNop())
	ctx := context.Background()
	userID := uuid.New()

	_, err := uc.Submit(ctx, userID, technicalSurvey)
	require.NoError(t, err)
	reads := repo.reads

	rec, err := uc.Record(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, userID, rec.UserID)
	assert.Equal(t, reads, repo.reads)
}

func TestAssessment_WithoutCache(t *testing.T) {
	repo := newFakeAssessments()
	uc := NewAssessmentUsecase(repo, loadPredictor(t), nil, nil, nil)
	userID := uuid.New()

	_, err := uc.Submit(context.Background(), userID, ml.SurveyResponse{})
	require.NoError(t, err)

	_, err = uc.Submit(context.Background(), userID, ml.SurveyResponse{})
	assert.ErrorIs(t, err, assessment.ErrAlreadyAssessed)
}

func TestAssessment_ConcurrentSubmitsStoreOnce(t *testing.T) {
	repo := newFakeAssessments()
	uc := NewAssessmentUsecase(repo, loadPredictor(t), newRedisCache(t), nil, zap.NewNop())
	userID := uuid.New()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Submit(context.Background(), userID, technicalSurvey)
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
				return
			}
			assert.True(t, errors.Is(err, assessment.ErrAlreadyAssessed) || errors.Is(err, ErrSubmissionInProgress), "got %v", err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Len(t, repo.records, 1)
}

func TestAssessment_PredictFailure(t *testing.T) {
	repo := newFakeAssessments()
	m := metrics.New("test")
	uc := NewAssessmentUsecase(repo, failingPredictor{}, nil, m, nil)

	_, err := uc.Submit(context.Background(), uuid.New(), technicalSurvey)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, repo.records)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PredictionsCounter(metrics.OutcomeError)))
}

func TestAssessment_StorageFailure(t *testing.T) {
	repo := newFakeAssessments()
	repo.err = errors.New("connection reset")
	uc := NewAssessmentUsecase(repo, loadPredictor(t), nil, nil, nil)

	_, err := uc.Dashboard(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestQuestions(t *testing.T) {
	qs := Questions()
	require.Len(t, qs, ml.FeatureCount)
	for i, q := range qs {
		assert.Equal(t, ml.FeatureColumns[i], q.Field)
		assert.NotEmpty(t, q.Prompt)
	}
}
