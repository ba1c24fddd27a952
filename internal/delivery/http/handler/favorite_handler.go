package handler

import (
	"errors"

	"estagios/internal/delivery/http/dto"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type FavoriteHandler struct {
	uc usecase.FavoriteUsecase
}

func NewFavoriteHandler(uc usecase.FavoriteUsecase) *FavoriteHandler {
	return &FavoriteHandler{uc: uc}
}

func (h *FavoriteHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/favoritos")
	grp.Get("/", h.List)
	grp.Post("/:id", h.Add)
	grp.Delete("/:id", h.Remove)
}

func (h *FavoriteHandler) List(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	items, err := h.uc.List(c.Context(), actor.UserID)
	if err != nil {
		return mapFavoriteUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewProposalResponses(items))
}

func (h *FavoriteHandler) Add(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Add(c.Context(), actor.UserID, id); err != nil {
		return mapFavoriteUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Added to favorites", nil)
}

func (h *FavoriteHandler) Remove(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Remove(c.Context(), actor.UserID, id); err != nil {
		return mapFavoriteUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Removed from favorites", nil)
}

func mapFavoriteUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrProposalNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Proposal not found", nil, err)
	case errors.Is(err, usecase.ErrFavoriteNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Favorite not found", nil, err)
	case errors.Is(err, usecase.ErrProposalNotActive):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Only active proposals can be favorited", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
