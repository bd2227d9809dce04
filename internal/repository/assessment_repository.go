package repository

import (
	"context"
	"fmt"
	"time"

	"dhruvtara/internal/database"
	"dhruvtara/internal/domain/assessment"

	"github.com/google/uuid"
)

type PostgresAssessmentRepository struct {
	db database.DB
}

func NewPostgresAssessmentRepository(db database.DB) *PostgresAssessmentRepository {
	return &PostgresAssessmentRepository{db: db}
}

// Create stores the record. The user_id unique constraint turns a second
// submission into assessment.ErrAlreadyAssessed instead of a duplicate row.
func (r *PostgresAssessmentRepository) Create(ctx context.Context, rec assessment.Record) (assessment.Record, error) {
	if rec.UserID == uuid.Nil {
		return assessment.Record{}, fmt.Errorf("create assessment: nil user id")
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	s := rec.Scores
	row := r.db.QueryRow(ctx,
		`INSERT INTO assessments (
			id, user_id,
			math_interest, science_interest, literature_interest, coding_interest,
			teamwork, creativity, helping_interest, leadership,
			travel_interest, stable_job_interest, business_interest, communication_skills,
			career_choice_1, career_choice_2, career_choice_3, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id`,
		rec.ID, rec.UserID,
		s[0], s[1], s[2], s[3], s[4], s[5], s[6], s[7], s[8], s[9], s[10], s[11],
		rec.Careers[0], rec.Careers[1], rec.Careers[2], rec.CreatedAt,
	)

	var id uuid.UUID
	if err := row.Scan(&id); err != nil {
		if isNoRows(err) {
			return assessment.Record{}, assessment.ErrAlreadyAssessed
		}
		return assessment.Record{}, fmt.Errorf("create assessment: %w", err)
	}
	rec.ID = id
	return rec, nil
}

func (r *PostgresAssessmentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (assessment.Record, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id,
			math_interest, science_interest, literature_interest, coding_interest,
			teamwork, creativity, helping_interest, leadership,
			travel_interest, stable_job_interest, business_interest, communication_skills,
			career_choice_1, career_choice_2, career_choice_3, created_at
		 FROM assessments
		 WHERE user_id = $1
		 ORDER BY created_at ASC
		 LIMIT 1`,
		userID,
	)

	var rec assessment.Record
	s := &rec.Scores
	err := row.Scan(
		&rec.ID, &rec.UserID,
		&s[0], &s[1], &s[2], &s[3], &s[4], &s[5], &s[6], &s[7], &s[8], &s[9], &s[10], &s[11],
		&rec.Careers[0], &rec.Careers[1], &rec.Careers[2], &rec.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return assessment.Record{}, assessment.ErrNotFound
		}
		return assessment.Record{}, fmt.Errorf("get assessment: %w", err)
	}
	return rec, nil
}
