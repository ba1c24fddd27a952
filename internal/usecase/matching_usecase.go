package usecase

import (
	"context"
	"errors"
	"fmt"

	"estagios/internal/domain/matching"
	"estagios/internal/domain/proposal"
	"estagios/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrCompatibleProposalsUnavailable = errors.New("failed to load compatible proposals")

type ActiveProposalLister interface {
	ListActive(ctx context.Context) ([]proposal.Proposal, error)
}

type MatchingUsecase interface {
	ListCompatible(ctx context.Context, studentID uuid.UUID) ([]matching.Match, error)
}

type Matching struct {
	students  repository.StudentRepository
	proposals ActiveProposalLister
}

func NewMatchingUsecase(students repository.StudentRepository, proposals ActiveProposalLister) *Matching {
	return &Matching{students: students, proposals: proposals}
}

// ListCompatible loads the student's skills and the active proposals
// concurrently and keeps the proposals sharing at least one tag. Either read
// failing fails the whole call; there is no partial result.
func (u *Matching) ListCompatible(ctx context.Context, studentID uuid.UUID) ([]matching.Match, error) {
	if studentID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var (
		skills []string
		active []proposal.Proposal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := u.students.GetByUserID(gctx, studentID)
		if err != nil {
			return fmt.Errorf("student profile: %w", err)
		}
		skills = p.Skills
		return nil
	})
	g.Go(func() error {
		items, err := u.proposals.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("active proposals: %w", err)
		}
		active = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCompatibleProposalsUnavailable, err)
	}

	return matching.Compatible(skills, active), nil
}
