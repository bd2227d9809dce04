package handler

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"dhruvtara/internal/delivery/http/dto"
	"dhruvtara/internal/delivery/http/middleware"
	"dhruvtara/internal/domain/assessment"
	"dhruvtara/internal/ml"
	"dhruvtara/internal/pkg/response"
	"dhruvtara/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// DashboardPath is where already-assessed users are sent.
const DashboardPath = "/api/v1/dashboard"

type AssessmentHandler struct {
	uc usecase.AssessmentUsecase
}

func NewAssessmentHandler(uc usecase.AssessmentUsecase) *AssessmentHandler {
	return &AssessmentHandler{uc: uc}
}

func (h *AssessmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/dashboard", h.Dashboard)
	r.Get("/assessment", h.Form)
	r.Post("/assessment", h.Submit)
}

func (h *AssessmentHandler) Dashboard(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	d, err := h.uc.Dashboard(c.Context(), userID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewDashboardResponse(d))
}

// Form lists the survey questions, or redirects once the user is assessed.
func (h *AssessmentHandler) Form(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	_, err := h.uc.Record(c.Context(), userID)
	switch {
	case err == nil:
		return response.SeeOther(c, DashboardPath, "Assessment already completed")
	case !errors.Is(err, assessment.ErrNotFound):
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.QuestionsResponse{Questions: usecase.Questions()})
}

func (h *AssessmentHandler) Submit(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	survey, err := parseSurvey(c)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.Submit(c.Context(), userID, survey)
	if err != nil {
		switch {
		case errors.Is(err, assessment.ErrAlreadyAssessed):
			return response.SeeOther(c, DashboardPath, "Assessment already completed")
		case errors.Is(err, usecase.ErrSubmissionInProgress):
			return middleware.NewAppError(fiber.StatusConflict, "Assessment submission already in progress", nil, err)
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusCreated, "Assessment completed", dto.SubmitAssessmentResponse{
		Assessment: dto.NewAssessmentResponse(res.Record),
		TopCareers: res.Careers,
	})
}

// parseSurvey reads the 12 answers from a JSON object or a form post.
// Missing and non-integer answers become 0.
func parseSurvey(c fiber.Ctx) (ml.SurveyResponse, error) {
	survey := make(ml.SurveyResponse, ml.FeatureCount)

	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		var raw map[string]any
		if body := c.Body(); len(body) > 0 {
			if err := json.Unmarshal(body, &raw); err != nil {
				return nil, err
			}
		}
		for _, field := range ml.FeatureColumns {
			survey[field] = coerceScore(raw[field])
		}
		return survey, nil
	}

	for _, field := range ml.FeatureColumns {
		survey[field] = coerceScore(c.FormValue(field))
	}
	return survey, nil
}

func coerceScore(v any) int {
	switch val := v.(type) {
	case float64:
		if val != math.Trunc(val) || math.IsInf(val, 0) || val > math.MaxInt32 || val < math.MinInt32 {
			return 0
		}
		return int(val)
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 32)
		if err != nil {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}
