package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dhruvtara/internal/domain/assessment"
	"dhruvtara/internal/ml"
	"dhruvtara/internal/pkg/logger"
	"dhruvtara/internal/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSubmissionInProgress = errors.New("assessment submission already in progress")

const (
	assessmentKeyPrefix = "assessment:"
	submitLockKeyPrefix = "assessment:submit:"
	submitLockTTL       = 30 * time.Second
	questionMin         = 1
	questionMax         = 10
)

type Predictor interface {
	Predict(s ml.SurveyResponse) ([]ml.Career, error)
}

// AssessmentCache holds finished assessments and the per-user submit lock.
type AssessmentCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

type Question struct {
	Field  string `json:"field"`
	Prompt string `json:"prompt"`
	Min    int    `json:"min"`
	Max    int    `json:"max"`
}

var questionPrompts = map[string]string{
	"math_interest":        "How much do you enjoy mathematics?",
	"science_interest":     "How much do you enjoy science subjects?",
	"literature_interest":  "How much do you enjoy reading and literature?",
	"coding_interest":      "How interested are you in coding and computers?",
	"teamwork":             "How much do you like working in a team?",
	"creativity":           "How creative do you consider yourself?",
	"helping_interest":     "How much do you enjoy helping other people?",
	"leadership":           "How comfortable are you leading a group?",
	"travel_interest":      "How much would you like a job that involves travel?",
	"stable_job_interest":  "How important is job stability to you?",
	"business_interest":    "How interested are you in business and trade?",
	"communication_skills": "How confident are you speaking and presenting?",
}

// Questions lists the survey in feature column order.
func Questions() []Question {
	out := make([]Question, 0, ml.FeatureCount)
	for _, field := range ml.FeatureColumns {
		out = append(out, Question{Field: field, Prompt: questionPrompts[field], Min: questionMin, Max: questionMax})
	}
	return out
}

type Dashboard struct {
	Assessed   bool
	Assessment *assessment.Record
}

// SubmitResult carries the stored record and the ranked careers with their
// confidences. Confidences are only available at submit time.
type SubmitResult struct {
	Record  assessment.Record
	Careers []ml.Career
}

type AssessmentUsecase interface {
	Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error)
	Record(ctx context.Context, userID uuid.UUID) (assessment.Record, error)
	Submit(ctx context.Context, userID uuid.UUID, survey ml.SurveyResponse) (SubmitResult, error)
}

type Assessment struct {
	repo      assessment.Repository
	predictor Predictor
	cache     AssessmentCache
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewAssessmentUsecase(repo assessment.Repository, predictor Predictor, cache AssessmentCache, m *metrics.Metrics, log *zap.Logger) *Assessment {
	return &Assessment{
		repo:      repo,
		predictor: predictor,
		cache:     cache,
		metrics:   m,
		logger:    logger.OrNop(log),
	}
}

func (a *Assessment) Dashboard(ctx context.Context, userID uuid.UUID) (Dashboard, error) {
	rec, err := a.Record(ctx, userID)
	if err != nil {
		if errors.Is(err, assessment.ErrNotFound) {
			return Dashboard{}, nil
		}
		return Dashboard{}, err
	}
	return Dashboard{Assessed: true, Assessment: &rec}, nil
}

// Record returns the user's assessment or assessment.ErrNotFound. Records
// are write-once, so cached copies never go stale.
func (a *Assessment) Record(ctx context.Context, userID uuid.UUID) (assessment.Record, error) {
	key := assessmentKeyPrefix + userID.String()
	if a.cache != nil {
		var cached assessment.Record
		found, err := a.cache.GetJSON(ctx, key, &cached)
		if err == nil && found && cached.UserID == userID {
			return cached, nil
		}
	}

	rec, err := a.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, assessment.ErrNotFound) {
			return assessment.Record{}, err
		}
		return assessment.Record{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	a.remember(ctx, rec)
	return rec, nil
}

func (a *Assessment) Submit(ctx context.Context, userID uuid.UUID, survey ml.SurveyResponse) (SubmitResult, error) {
	if userID == uuid.Nil {
		return SubmitResult{}, ErrUnauthorized
	}

	if a.cache != nil {
		lockKey := submitLockKeyPrefix + userID.String()
		ok, err := a.cache.AcquireLock(ctx, lockKey, submitLockTTL)
		if err != nil {
			a.logger.Warn("submit lock unavailable, relying on storage constraint", zap.Error(err))
		}
		if !ok {
			return SubmitResult{}, ErrSubmissionInProgress
		}
		defer func() {
			_ = a.cache.Delete(context.WithoutCancel(ctx), lockKey)
		}()
	}

	if _, err := a.Record(ctx, userID); err == nil {
		return SubmitResult{}, assessment.ErrAlreadyAssessed
	} else if !errors.Is(err, assessment.ErrNotFound) {
		return SubmitResult{}, err
	}

	careers, err := a.predictor.Predict(survey)
	if err != nil {
		a.metrics.ObservePrediction(metrics.OutcomeError)
		return SubmitResult{}, fmt.Errorf("%w: predict: %v", ErrInternal, err)
	}
	if len(careers) < ml.TopCareers {
		a.metrics.ObservePrediction(metrics.OutcomeError)
		return SubmitResult{}, fmt.Errorf("%w: predictor returned %d careers", ErrInternal, len(careers))
	}

	rec := assessment.Record{
		ID:     uuid.New(),
		UserID: userID,
		Scores: survey.Scores(),
	}
	for i := range rec.Careers {
		rec.Careers[i] = careers[i].Label
	}

	stored, err := a.repo.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, assessment.ErrAlreadyAssessed) {
			return SubmitResult{}, err
		}
		a.metrics.ObservePrediction(metrics.OutcomeError)
		return SubmitResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	a.metrics.ObservePrediction(metrics.OutcomeOK)
	a.remember(ctx, stored)

	a.logger.Info("assessment stored",
		zap.String("user_id", userID.String()),
		zap.Strings("careers", rec.Careers[:]),
	)
	return SubmitResult{Record: stored, Careers: careers[:ml.TopCareers]}, nil
}

func (a *Assessment) remember(ctx context.Context, rec assessment.Record) {
	if a.cache == nil {
		return
	}
	if err := a.cache.SetJSON(ctx, assessmentKeyPrefix+rec.UserID.String(), rec, 0); err != nil {
		a.logger.Debug("cache assessment failed", zap.Error(err))
	}
}
