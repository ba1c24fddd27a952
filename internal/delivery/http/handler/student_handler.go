package handler

import (
	"errors"

	"estagios/internal/delivery/http/dto"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StudentHandler struct {
	uc usecase.StudentUsecase
}

type updateStudentProfileRequest struct {
	Nome         *string        `json:"nome"`
	Curso        *string        `json:"curso"`
	NumeroAluno  *string        `json:"numero_aluno"`
	Competencias *dto.SkillList `json:"competencias"`
}

func NewStudentHandler(uc usecase.StudentUsecase) *StudentHandler {
	return &StudentHandler{uc: uc}
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/perfil", h.GetProfile)
	r.Put("/perfil", h.UpdateProfile)
}

func (h *StudentHandler) GetProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetProfile(c.Context(), actor.UserID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewStudentProfileResponse(p))
}

func (h *StudentHandler) UpdateProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req updateStudentProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	in := usecase.UpdateStudentProfileInput{
		Name:          req.Nome,
		Course:        req.Curso,
		StudentNumber: req.NumeroAluno,
	}
	if req.Competencias != nil {
		skills := []string(*req.Competencias)
		in.Skills = &skills
	}

	p, err := h.uc.UpdateProfile(c.Context(), actor.UserID, in)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewStudentProfileResponse(p))
}

func mapProfileUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
