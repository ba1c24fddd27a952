package usecase

import (
	"context"

	"estagios/internal/domain/user"
	ucuser "estagios/internal/usecase/user"

	"github.com/google/uuid"
)

type UserUsecase interface {
	GetMe(ctx context.Context, userID uuid.UUID) (user.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, in ucuser.ChangePasswordInput) error
}

type User struct {
	svc *ucuser.Service
}

func NewUserUsecase(users user.Repository) *User {
	return &User{svc: ucuser.NewService(users)}
}

func (u *User) GetMe(ctx context.Context, userID uuid.UUID) (user.User, error) {
	return u.svc.GetMe(ctx, userID)
}

func (u *User) ChangePassword(ctx context.Context, userID uuid.UUID, in ucuser.ChangePasswordInput) error {
	return u.svc.ChangePassword(ctx, userID, in)
}
