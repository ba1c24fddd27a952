package usecase

import (
	"context"
	"errors"
	"strings"

	"estagios/internal/domain/user"
	"estagios/internal/repository"
	ucauth "estagios/internal/usecase/auth"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCannotDeleteSelf = errors.New("cannot delete own account")

type AdminUsecase interface {
	ListUsers(ctx context.Context, role string) ([]user.User, error)
	CreateGestor(ctx context.Context, in ucauth.GestorInput) (user.User, error)
	DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error
}

type Admin struct {
	users       user.Repository
	departments repository.DepartmentRepository
	authSvc     *ucauth.Service
	cache       ProposalCache
	logger      *zap.Logger
}

func NewAdminUsecase(
	users user.Repository,
	accounts repository.AccountRepository,
	departments repository.DepartmentRepository,
	cache ProposalCache,
	logger *zap.Logger,
) *Admin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Admin{
		users:       users,
		departments: departments,
		authSvc:     ucauth.NewService(users, accounts),
		cache:       cache,
		logger:      logger,
	}
}

func (u *Admin) ListUsers(ctx context.Context, role string) ([]user.User, error) {
	var filter user.Role
	if strings.TrimSpace(role) != "" {
		r, ok := user.ParseRole(role)
		if !ok {
			return nil, ErrInvalidInput
		}
		filter = r
	}

	items, err := u.users.ListUsers(ctx, filter)
	if err != nil {
		return nil, ErrInternal
	}
	for i := range items {
		items[i].PasswordHash = ""
	}
	return items, nil
}

func (u *Admin) CreateGestor(ctx context.Context, in ucauth.GestorInput) (user.User, error) {
	dept := strings.TrimSpace(in.Department)
	if dept == "" {
		return user.User{}, ErrInvalidInput
	}
	exists, err := u.departments.Exists(ctx, dept)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if !exists {
		return user.User{}, ErrUnknownDepartment
	}

	in.Department = dept
	return u.authSvc.CreateGestor(ctx, in)
}

// DeleteUser removes an account and, through cascading keys, its profile,
// proposals and favorites.
func (u *Admin) DeleteUser(ctx context.Context, actor Actor, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrUserNotFound
	}
	if id == actor.UserID {
		return ErrCannotDeleteSelf
	}

	if err := u.users.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, proposalListCachePrefix+"*"); err != nil {
			u.logger.Warn("[Admin] Cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}
