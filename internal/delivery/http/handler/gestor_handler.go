package handler

import (
	"estagios/internal/delivery/http/dto"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type GestorHandler struct {
	dashboard usecase.DashboardUsecase
}

func NewGestorHandler(dashboard usecase.DashboardUsecase) *GestorHandler {
	return &GestorHandler{dashboard: dashboard}
}

func (h *GestorHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/dashboard", h.Dashboard)
}

func (h *GestorHandler) Dashboard(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	d, err := h.dashboard.Gestor(c.Context(), actor.UserID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewGestorDashboardResponse(d))
}
