package usecase

import (
	"context"
	"errors"
	"fmt"

	"dhruvtara/internal/domain/assessment"
	"dhruvtara/internal/domain/career"
	"dhruvtara/internal/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotAssessed           = errors.New("please complete the assessment first")
	ErrCareerPathUnavailable = errors.New("unable to load career details right now, please try again later")
)

type RecordLookup interface {
	Record(ctx context.Context, userID uuid.UUID) (assessment.Record, error)
}

type CareerEnricher interface {
	EnrichAll(ctx context.Context, labels []string) []career.Detail
}

type CareerPathUsecase interface {
	CareerPath(ctx context.Context, userID uuid.UUID) ([]career.Detail, error)
}

type CareerPath struct {
	records  RecordLookup
	enricher CareerEnricher
	logger   *zap.Logger
}

func NewCareerPathUsecase(records RecordLookup, enricher CareerEnricher, log *zap.Logger) *CareerPath {
	return &CareerPath{records: records, enricher: enricher, logger: logger.OrNop(log)}
}

// CareerPath describes the user's three stored careers in rank order.
// Generation failures degrade per career; only a missing assessment or an
// unexpected failure is reported, as ErrNotAssessed or ErrCareerPathUnavailable.
func (c *CareerPath) CareerPath(ctx context.Context, userID uuid.UUID) (details []career.Detail, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("career path assembly panicked",
				zap.String("user_id", userID.String()),
				zap.Any("panic", r),
			)
			details, err = nil, ErrCareerPathUnavailable
		}
	}()

	rec, err := c.records.Record(ctx, userID)
	if err != nil {
		if errors.Is(err, assessment.ErrNotFound) {
			return nil, ErrNotAssessed
		}
		c.logger.Error("load assessment for career path", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, ErrCareerPathUnavailable
	}

	details = c.enricher.EnrichAll(ctx, rec.Careers[:])
	if len(details) != len(rec.Careers) {
		c.logger.Error("career path incomplete", zap.Int("got", len(details)))
		return nil, fmt.Errorf("%w: got %d details", ErrCareerPathUnavailable, len(details))
	}
	return details, nil
}
