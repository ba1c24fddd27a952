package handler

import (
	"estagios/internal/delivery/http/middleware"
	"estagios/internal/domain/user"
	"estagios/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

func actorFrom(c fiber.Ctx) (usecase.Actor, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return usecase.Actor{}, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(user.Role)
	return usecase.Actor{UserID: userID, Role: role}, nil
}

func pathID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid id", nil, err)
	}
	return id, nil
}
