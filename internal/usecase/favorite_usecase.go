package usecase

import (
	"context"
	"errors"

	"estagios/internal/domain/proposal"
	"estagios/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrFavoriteNotFound  = errors.New("favorite not found")
	ErrProposalNotActive = errors.New("only active proposals can be favorited")
)

type FavoriteUsecase interface {
	List(ctx context.Context, studentID uuid.UUID) ([]proposal.Proposal, error)
	Add(ctx context.Context, studentID, proposalID uuid.UUID) error
	Remove(ctx context.Context, studentID, proposalID uuid.UUID) error
}

type Favorites struct {
	favorites repository.FavoriteRepository
	proposals repository.ProposalRepository
}

func NewFavoriteUsecase(favorites repository.FavoriteRepository, proposals repository.ProposalRepository) *Favorites {
	return &Favorites{favorites: favorites, proposals: proposals}
}

func (u *Favorites) List(ctx context.Context, studentID uuid.UUID) ([]proposal.Proposal, error) {
	items, err := u.favorites.ListProposals(ctx, studentID)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Favorites) Add(ctx context.Context, studentID, proposalID uuid.UUID) error {
	if proposalID == uuid.Nil {
		return ErrProposalNotFound
	}
	p, err := u.proposals.GetByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, proposal.ErrNotFound) {
			return ErrProposalNotFound
		}
		return ErrInternal
	}
	if p.State != proposal.StateActive {
		return ErrProposalNotActive
	}

	if err := u.favorites.Add(ctx, studentID, proposalID); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Favorites) Remove(ctx context.Context, studentID, proposalID uuid.UUID) error {
	if err := u.favorites.Remove(ctx, studentID, proposalID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return ErrFavoriteNotFound
		}
		return ErrInternal
	}
	return nil
}
