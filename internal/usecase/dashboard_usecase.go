package usecase

import (
	"context"

	"estagios/internal/domain/proposal"
	"estagios/internal/domain/user"
	"estagios/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AdminDashboard struct {
	ProposalsByState map[proposal.State]int
	UsersByRole      map[user.Role]int
	Favorites        int
}

type GestorDashboard struct {
	Department       string
	ProposalsByState map[proposal.State]int
}

type DashboardUsecase interface {
	Admin(ctx context.Context) (AdminDashboard, error)
	Gestor(ctx context.Context, gestorID uuid.UUID) (GestorDashboard, error)
}

type Dashboard struct {
	proposals repository.ProposalRepository
	users     user.Repository
	favorites repository.FavoriteRepository
	gestores  repository.GestorRepository
}

func NewDashboardUsecase(
	proposals repository.ProposalRepository,
	users user.Repository,
	favorites repository.FavoriteRepository,
	gestores repository.GestorRepository,
) *Dashboard {
	return &Dashboard{proposals: proposals, users: users, favorites: favorites, gestores: gestores}
}

func (u *Dashboard) Admin(ctx context.Context) (AdminDashboard, error) {
	var out AdminDashboard

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := u.proposals.CountByState(gctx, "")
		out.ProposalsByState = m
		return err
	})
	g.Go(func() error {
		m, err := u.users.CountByRole(gctx)
		out.UsersByRole = m
		return err
	})
	g.Go(func() error {
		n, err := u.favorites.Count(gctx)
		out.Favorites = n
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminDashboard{}, ErrInternal
	}

	if out.UsersByRole == nil {
		out.UsersByRole = map[user.Role]int{}
	}
	for _, r := range []user.Role{user.RoleAdmin, user.RoleGestor, user.RoleEmpresa, user.RoleEstudante} {
		if _, ok := out.UsersByRole[r]; !ok {
			out.UsersByRole[r] = 0
		}
	}
	return out, nil
}

func (u *Dashboard) Gestor(ctx context.Context, gestorID uuid.UUID) (GestorDashboard, error) {
	g, err := u.gestores.GetByUserID(ctx, gestorID)
	if err != nil {
		return GestorDashboard{}, ErrInternal
	}

	counts, err := u.proposals.CountByState(ctx, g.Department)
	if err != nil {
		return GestorDashboard{}, ErrInternal
	}
	return GestorDashboard{Department: g.Department, ProposalsByState: counts}, nil
}
