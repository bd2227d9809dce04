package handler

import (
	"errors"

	"dhruvtara/internal/delivery/http/dto"
	"dhruvtara/internal/delivery/http/middleware"
	"dhruvtara/internal/pkg/response"
	"dhruvtara/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CareerHandler struct {
	uc usecase.CareerPathUsecase
}

func NewCareerHandler(uc usecase.CareerPathUsecase) *CareerHandler {
	return &CareerHandler{uc: uc}
}

func (h *CareerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/careerpath", h.CareerPath)
}

func (h *CareerHandler) CareerPath(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	details, err := h.uc.CareerPath(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotAssessed) {
			return middleware.NewAppError(fiber.StatusConflict, "Please complete the assessment first", nil, err)
		}
		return middleware.NewAppError(fiber.StatusServiceUnavailable, usecase.ErrCareerPathUnavailable.Error(), nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.CareerPathResponse{Careers: details})
}
