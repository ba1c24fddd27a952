package usecase

import (
	"context"
	"errors"
	"testing"

	"estagios/internal/domain/gestor"
	"estagios/internal/domain/proposal"
	"estagios/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_Admin(t *testing.T) {
	proposals := &mockProposalRepo{countByStateFn: func(_ context.Context, dept string) (map[proposal.State]int, error) {
		assert.Empty(t, dept)
		return map[proposal.State]int{proposal.StateActive: 3, proposal.StatePending: 1}, nil
	}}
	users := newMemUserRepo(
		user.User{ID: uuid.New(), Email: "a@uni.pt", Role: user.RoleEstudante},
		user.User{ID: uuid.New(), Email: "b@uni.pt", Role: user.RoleEstudante},
	)
	uc := NewDashboardUsecase(proposals, users, &mockFavoriteRepo{count: 7}, mockGestorRepo{})

	got, err := uc.Admin(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, got.ProposalsByState[proposal.StateActive])
	assert.Equal(t, 2, got.UsersByRole[user.RoleEstudante])
	assert.Equal(t, 0, got.UsersByRole[user.RoleGestor])
	assert.Contains(t, got.UsersByRole, user.RoleAdmin)
	assert.Equal(t, 7, got.Favorites)
}

func TestDashboard_AdminFailure(t *testing.T) {
	proposals := &mockProposalRepo{countByStateFn: func(context.Context, string) (map[proposal.State]int, error) {
		return nil, errors.New("boom")
	}}
	uc := NewDashboardUsecase(proposals, newMemUserRepo(), &mockFavoriteRepo{}, mockGestorRepo{})

	_, err := uc.Admin(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestDashboard_GestorScopedToDepartment(t *testing.T) {
	gestorID := uuid.New()
	proposals := &mockProposalRepo{countByStateFn: func(_ context.Context, dept string) (map[proposal.State]int, error) {
		assert.Equal(t, "Gestão", dept)
		return map[proposal.State]int{proposal.StatePending: 4}, nil
	}}
	gestores := mockGestorRepo{profiles: map[uuid.UUID]gestor.Profile{gestorID: {UserID: gestorID, Department: "Gestão"}}}
	uc := NewDashboardUsecase(proposals, newMemUserRepo(), &mockFavoriteRepo{}, gestores)

	got, err := uc.Gestor(context.Background(), gestorID)
	require.NoError(t, err)
	assert.Equal(t, "Gestão", got.Department)
	assert.Equal(t, 4, got.ProposalsByState[proposal.StatePending])

	_, err = uc.Gestor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
}
