package dto

import (
	"time"

	"dhruvtara/internal/domain/assessment"
	"dhruvtara/internal/domain/career"
	"dhruvtara/internal/ml"
	"dhruvtara/internal/usecase"

	"github.com/google/uuid"
)

type AssessmentResponse struct {
	ID        uuid.UUID         `json:"id"`
	Scores    ml.SurveyResponse `json:"scores"`
	Careers   []string          `json:"careers"`
	CreatedAt time.Time         `json:"created_at"`
}

type DashboardResponse struct {
	Assessed   bool                `json:"assessed"`
	Assessment *AssessmentResponse `json:"assessment"`
}

type SubmitAssessmentResponse struct {
	Assessment AssessmentResponse `json:"assessment"`
	TopCareers []ml.Career        `json:"top_careers"`
}

type QuestionsResponse struct {
	Questions []usecase.Question `json:"questions"`
}

type CareerPathResponse struct {
	Careers []career.Detail `json:"careers"`
}

func NewAssessmentResponse(r assessment.Record) AssessmentResponse {
	return AssessmentResponse{
		ID:        r.ID,
		Scores:    r.Survey(),
		Careers:   append([]string(nil), r.Careers[:]...),
		CreatedAt: r.CreatedAt,
	}
}

func NewDashboardResponse(d usecase.Dashboard) DashboardResponse {
	res := DashboardResponse{Assessed: d.Assessed}
	if d.Assessment != nil {
		a := NewAssessmentResponse(*d.Assessment)
		res.Assessment = &a
	}
	return res
}
