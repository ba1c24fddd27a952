package usecase

import (
	"context"
	"errors"
	"strings"

	"estagios/internal/domain/company"
	"estagios/internal/domain/proposal"
	"estagios/internal/repository"

	"github.com/google/uuid"
)

type UpdateCompanyProfileInput struct {
	ContactName *string
	CompanyName *string
	NIF         *string
	Address     *string
	Phone       *string
}

type CompanyUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (company.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateCompanyProfileInput) (company.Profile, error)
	ListOwnProposals(ctx context.Context, userID uuid.UUID) ([]proposal.Proposal, error)
}

type Company struct {
	repo      repository.CompanyRepository
	proposals repository.ProposalRepository
}

func NewCompanyUsecase(repo repository.CompanyRepository, proposals repository.ProposalRepository) *Company {
	return &Company{repo: repo, proposals: proposals}
}

func (u *Company) GetProfile(ctx context.Context, userID uuid.UUID) (company.Profile, error) {
	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Profile{}, ErrProfileNotFound
		}
		return company.Profile{}, ErrInternal
	}
	return p, nil
}

func (u *Company) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateCompanyProfileInput) (company.Profile, error) {
	p, err := u.GetProfile(ctx, userID)
	if err != nil {
		return company.Profile{}, err
	}

	if in.ContactName != nil {
		name := strings.TrimSpace(*in.ContactName)
		if name == "" {
			return company.Profile{}, ErrInvalidInput
		}
		p.ContactName = name
	}
	if in.CompanyName != nil {
		name := strings.TrimSpace(*in.CompanyName)
		if name == "" {
			return company.Profile{}, ErrInvalidInput
		}
		p.CompanyName = name
	}
	if in.NIF != nil {
		p.NIF = strings.TrimSpace(*in.NIF)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}

	updated, err := u.repo.Update(ctx, p)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.Profile{}, ErrProfileNotFound
		}
		return company.Profile{}, ErrInternal
	}
	return updated, nil
}

// ListOwnProposals returns every proposal of the company in any state.
func (u *Company) ListOwnProposals(ctx context.Context, userID uuid.UUID) ([]proposal.Proposal, error) {
	items, err := u.proposals.List(ctx, proposal.Filter{CompanyID: userID})
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}
