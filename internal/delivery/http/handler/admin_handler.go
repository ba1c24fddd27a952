package handler

import (
	"errors"

	"estagios/internal/delivery/http/dto"
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/pkg/response"
	"estagios/internal/usecase"
	ucauth "estagios/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	admin     usecase.AdminUsecase
	dashboard usecase.DashboardUsecase
}

type createGestorRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Nome         string `json:"nome"`
	Departamento string `json:"departamento"`
}

func NewAdminHandler(admin usecase.AdminUsecase, dashboard usecase.DashboardUsecase) *AdminHandler {
	return &AdminHandler{admin: admin, dashboard: dashboard}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/utilizadores", h.ListUsers)
	r.Delete("/utilizadores/:id", h.DeleteUser)
	r.Post("/gestores", h.CreateGestor)
	r.Get("/dashboard", h.Dashboard)
}

func (h *AdminHandler) ListUsers(c fiber.Ctx) error {
	items, err := h.admin.ListUsers(c.Context(), c.Query("role"))
	if err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewUserResponses(items))
}

func (h *AdminHandler) CreateGestor(c fiber.Ctx) error {
	var req createGestorRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	usr, err := h.admin.CreateGestor(c.Context(), ucauth.GestorInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Nome,
		Department: req.Departamento,
	})
	if err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusCreated, dto.NewUserResponse(usr))
}

func (h *AdminHandler) DeleteUser(c fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.admin.DeleteUser(c.Context(), actor, id); err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "User deleted", nil)
}

func (h *AdminHandler) Dashboard(c fiber.Ctx) error {
	d, err := h.dashboard.Admin(c.Context())
	if err != nil {
		return mapAdminUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewAdminDashboardResponse(d))
}

func mapAdminUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, usecase.ErrUnknownDepartment):
		return middleware.NewAppError(fiber.StatusBadRequest, "Unknown department", nil, err)
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, usecase.ErrCannotDeleteSelf):
		return middleware.NewAppError(fiber.StatusConflict, "Cannot delete own account", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
