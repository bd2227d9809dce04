package assessment

import (
	"context"
	"errors"
	"time"

	"dhruvtara/internal/ml"

	"github.com/google/uuid"
)

var (
	// ErrNotFound marks the "not yet assessed" state.
	ErrNotFound = errors.New("assessment not found")
	// ErrAlreadyAssessed is returned when a user submits a second survey.
	ErrAlreadyAssessed = errors.New("assessment already completed")
)

// Record is the persisted, write-once result of one survey.
type Record struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Scores    [ml.FeatureCount]int
	Careers   [ml.TopCareers]string
	CreatedAt time.Time
}

// Survey rebuilds the answers keyed by feature column.
func (r Record) Survey() ml.SurveyResponse {
	s := make(ml.SurveyResponse, ml.FeatureCount)
	for i, col := range ml.FeatureColumns {
		s[col] = r.Scores[i]
	}
	return s
}

type Repository interface {
	Create(ctx context.Context, r Record) (Record, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (Record, error)
}
