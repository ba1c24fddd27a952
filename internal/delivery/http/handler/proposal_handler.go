package handler

import (
	"errors"
	"strings"

	"estagios/internal/delivery/http/dto"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/domain/proposal"
	"estagios/internal/domain/user"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProposalHandler struct {
	uc usecase.ProposalUsecase
}

type proposalRequest struct {
	Titulo       string   `json:"titulo"`
	Descricao    string   `json:"descricao"`
	Tipo         string   `json:"tipo"`
	Departamento string   `json:"departamento"`
	Localizacao  string   `json:"localizacao"`
	Areas        []string `json:"areas"`
}

type changeStateRequest struct {
	Estado string `json:"estado"`
}

func NewProposalHandler(uc usecase.ProposalUsecase) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

func (h *ProposalHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/propostas")
	grp.Get("/", h.List)
	grp.Get("/:id", h.Get)
	grp.Post("/", middleware.RequireRoles(user.RoleEmpresa), h.Create)
	grp.Put("/:id", middleware.RequireRoles(user.RoleEmpresa), h.Update)
	grp.Delete("/:id", middleware.RequireRoles(user.RoleEmpresa, user.RoleAdmin), h.Delete)
	grp.Patch("/:id/estado", middleware.RequireRoles(user.RoleGestor, user.RoleAdmin), h.ChangeState)
}

func (h *ProposalHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var f proposal.Filter
	if raw := strings.TrimSpace(c.Query("estado")); raw != "" {
		st, ok := proposal.ParseState(raw)
		if !ok {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid estado", nil, nil)
		}
		f.State = st
	}
	f.Department = strings.TrimSpace(c.Query("departamento"))

	items, err := h.uc.List(c.Context(), actor, f)
	if err != nil {
		return mapProposalUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProposalResponses(items))
}

func (h *ProposalHandler) Get(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	p, err := h.uc.Get(c.Context(), actor, id)
	if err != nil {
		return mapProposalUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProposalResponse(p))
}

func (h *ProposalHandler) Create(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req proposalRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.Create(c.Context(), actor, req.input())
	if err != nil {
		return mapProposalUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewProposalResponse(p))
}

func (h *ProposalHandler) Update(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req proposalRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.Update(c.Context(), actor, id, req.input())
	if err != nil {
		return mapProposalUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProposalResponse(p))
}

func (h *ProposalHandler) Delete(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Context(), actor, id); err != nil {
		return mapProposalUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Proposal deleted", nil)
}

func (h *ProposalHandler) ChangeState(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req changeStateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.ChangeState(c.Context(), actor, id, req.Estado)
	if err != nil {
		return mapProposalUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProposalResponse(p))
}

func (r proposalRequest) input() usecase.ProposalInput {
	return usecase.ProposalInput{
		Title:       r.Titulo,
		Description: r.Descricao,
		Kind:        r.Tipo,
		Department:  r.Departamento,
		Location:    r.Localizacao,
		Areas:       r.Areas,
	}
}

func mapProposalUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrUnknownDepartment):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown department", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrProposalNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Proposal not found", nil, err)
	case errors.Is(err, usecase.ErrProposalNotEditable):
		return middleware.NewAppError(fiber.StatusConflict, "Proposal can only be edited while pending or inactive", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid state transition", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
