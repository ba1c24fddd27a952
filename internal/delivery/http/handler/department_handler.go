package handler

import (
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DepartmentHandler struct {
	uc usecase.DepartmentUsecase
}

func NewDepartmentHandler(uc usecase.DepartmentUsecase) *DepartmentHandler {
	return &DepartmentHandler{uc: uc}
}

func (h *DepartmentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/departamentos", h.List)
}

func (h *DepartmentHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	names := make([]string, 0, len(items))
	for _, d := range items {
		names = append(names, d.Name)
	}
	return response.JSON(c, fiber.StatusOK, names)
}
