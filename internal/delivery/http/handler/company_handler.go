package handler

import (
	"estagios/internal/delivery/http/dto"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

type updateCompanyProfileRequest struct {
	Nome        *string `json:"nome"`
	NomeEmpresa *string `json:"nome_empresa"`
	NIF         *string `json:"nif"`
	Morada      *string `json:"morada"`
	Telefone    *string `json:"telefone"`
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/perfil", h.GetProfile)
	r.Put("/perfil", h.UpdateProfile)
	r.Get("/propostas", h.ListProposals)
}

func (h *CompanyHandler) GetProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	p, err := h.uc.GetProfile(c.Context(), actor.UserID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewCompanyProfileResponse(p))
}

func (h *CompanyHandler) UpdateProfile(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req updateCompanyProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), actor.UserID, usecase.UpdateCompanyProfileInput{
		ContactName: req.Nome,
		CompanyName: req.NomeEmpresa,
		NIF:         req.NIF,
		Address:     req.Morada,
		Phone:       req.Telefone,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewCompanyProfileResponse(p))
}

func (h *CompanyHandler) ListProposals(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	items, err := h.uc.ListOwnProposals(c.Context(), actor.UserID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProposalResponses(items))
}
