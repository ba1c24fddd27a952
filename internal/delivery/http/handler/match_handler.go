package handler

import (
	"errors"

	"estagios/internal/delivery/http/dto"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/propostas/compativeis", h.ListCompatible)
}

// ListCompatible answers with a bare JSON array, empty when nothing matches.
func (h *MatchHandler) ListCompatible(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	matches, err := h.uc.ListCompatible(c.Context(), actor.UserID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewCompatibleProposalResponses(matches))
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrCompatibleProposalsUnavailable):
		return middleware.NewPublicAppError(fiber.StatusInternalServerError, usecase.ErrCompatibleProposalsUnavailable.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
