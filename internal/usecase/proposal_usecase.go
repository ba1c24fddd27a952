package usecase

import (
	"context"
	"errors"
	"strings"

	"estagios/internal/domain/proposal"
	"estagios/internal/domain/user"
	"estagios/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrProposalNotFound    = errors.New("proposal not found")
	ErrProposalNotEditable = errors.New("proposal can only be edited while pending or inactive")
	ErrInvalidTransition   = errors.New("invalid state transition")
	ErrUnknownDepartment   = errors.New("unknown department")
)

type ProposalInput struct {
	Title       string
	Description string
	Kind        string
	Department  string
	Location    string
	Areas       []string
}

// ProposalNotifier is told about every committed state change.
type ProposalNotifier interface {
	ProposalStateChanged(p proposal.Proposal)
}

type ProposalUsecase interface {
	List(ctx context.Context, actor Actor, f proposal.Filter) ([]proposal.Proposal, error)
	ListActive(ctx context.Context) ([]proposal.Proposal, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (proposal.Proposal, error)
	Create(ctx context.Context, actor Actor, in ProposalInput) (proposal.Proposal, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in ProposalInput) (proposal.Proposal, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	ChangeState(ctx context.Context, actor Actor, id uuid.UUID, state string) (proposal.Proposal, error)
}

type Proposals struct {
	proposals   repository.ProposalRepository
	gestores    repository.GestorRepository
	departments repository.DepartmentRepository
	cache       ProposalCache
	notifier    ProposalNotifier
	logger      *zap.Logger
}

func NewProposalUsecase(
	proposals repository.ProposalRepository,
	gestores repository.GestorRepository,
	departments repository.DepartmentRepository,
	cache ProposalCache,
	notifier ProposalNotifier,
	logger *zap.Logger,
) *Proposals {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Proposals{
		proposals:   proposals,
		gestores:    gestores,
		departments: departments,
		cache:       cache,
		notifier:    notifier,
		logger:      logger,
	}
}

// List applies the caller's visibility before querying: students only see
// active proposals, companies only their own, gestores only their department.
func (u *Proposals) List(ctx context.Context, actor Actor, f proposal.Filter) ([]proposal.Proposal, error) {
	scoped, err := u.scope(ctx, actor, f)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, scoped)
}

// ListActive returns every proposal in state ativo, newest first.
func (u *Proposals) ListActive(ctx context.Context) ([]proposal.Proposal, error) {
	return u.list(ctx, proposal.Filter{State: proposal.StateActive})
}

func (u *Proposals) Get(ctx context.Context, actor Actor, id uuid.UUID) (proposal.Proposal, error) {
	p, err := u.load(ctx, id)
	if err != nil {
		return proposal.Proposal{}, err
	}

	ok, err := u.visible(ctx, actor, p)
	if err != nil {
		return proposal.Proposal{}, err
	}
	if !ok {
		return proposal.Proposal{}, ErrProposalNotFound
	}
	return p, nil
}

func (u *Proposals) Create(ctx context.Context, actor Actor, in ProposalInput) (proposal.Proposal, error) {
	if !actor.Is(user.RoleEmpresa) {
		return proposal.Proposal{}, ErrForbidden
	}

	p, err := u.validate(ctx, in)
	if err != nil {
		return proposal.Proposal{}, err
	}
	p.ID = uuid.New()
	p.CompanyID = actor.UserID
	p.State = proposal.StatePending

	created, err := u.proposals.Create(ctx, p)
	if err != nil {
		return proposal.Proposal{}, ErrInternal
	}
	u.invalidate(ctx)
	return created, nil
}

// Update edits a proposal owned by the calling company. Editing an inactive
// proposal sends it back to pending for re-approval.
func (u *Proposals) Update(ctx context.Context, actor Actor, id uuid.UUID, in ProposalInput) (proposal.Proposal, error) {
	if !actor.Is(user.RoleEmpresa) {
		return proposal.Proposal{}, ErrForbidden
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return proposal.Proposal{}, err
	}
	if current.CompanyID != actor.UserID {
		return proposal.Proposal{}, ErrProposalNotFound
	}
	if !current.Editable() {
		return proposal.Proposal{}, ErrProposalNotEditable
	}

	next, err := u.validate(ctx, in)
	if err != nil {
		return proposal.Proposal{}, err
	}
	next.ID = current.ID
	next.CompanyID = current.CompanyID
	next.State = proposal.StatePending

	updated, err := u.proposals.Update(ctx, next)
	if err != nil {
		if errors.Is(err, proposal.ErrNotFound) {
			return proposal.Proposal{}, ErrProposalNotFound
		}
		return proposal.Proposal{}, ErrInternal
	}
	u.invalidate(ctx)
	if current.State != updated.State {
		u.notify(updated)
	}
	return updated, nil
}

func (u *Proposals) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.Is(user.RoleEmpresa) && !actor.Is(user.RoleAdmin) {
		return ErrForbidden
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return err
	}
	if actor.Is(user.RoleEmpresa) && current.CompanyID != actor.UserID {
		return ErrProposalNotFound
	}

	if err := u.proposals.Delete(ctx, id); err != nil {
		if errors.Is(err, proposal.ErrNotFound) {
			return ErrProposalNotFound
		}
		return ErrInternal
	}
	u.invalidate(ctx)
	return nil
}

// ChangeState moves a proposal along its lifecycle. Gestores may only act on
// proposals of their own department.
func (u *Proposals) ChangeState(ctx context.Context, actor Actor, id uuid.UUID, state string) (proposal.Proposal, error) {
	if !actor.Is(user.RoleGestor) && !actor.Is(user.RoleAdmin) {
		return proposal.Proposal{}, ErrForbidden
	}

	next, ok := proposal.ParseState(state)
	if !ok {
		return proposal.Proposal{}, ErrInvalidInput
	}

	current, err := u.load(ctx, id)
	if err != nil {
		return proposal.Proposal{}, err
	}

	if actor.Is(user.RoleGestor) {
		dept, err := u.gestorDepartment(ctx, actor.UserID)
		if err != nil {
			return proposal.Proposal{}, err
		}
		if dept != current.Department {
			return proposal.Proposal{}, ErrForbidden
		}
	}

	if !current.State.CanTransitionTo(next) {
		return proposal.Proposal{}, ErrInvalidTransition
	}

	updated, err := u.proposals.UpdateState(ctx, id, current.State, next)
	if err != nil {
		switch {
		case errors.Is(err, proposal.ErrNotFound):
			return proposal.Proposal{}, ErrProposalNotFound
		case errors.Is(err, repository.ErrStateConflict):
			return proposal.Proposal{}, ErrInvalidTransition
		default:
			return proposal.Proposal{}, ErrInternal
		}
	}

	u.invalidate(ctx)
	u.notify(updated)
	return updated, nil
}

func (u *Proposals) list(ctx context.Context, f proposal.Filter) ([]proposal.Proposal, error) {
	key := ProposalListCacheKey(f)
	if u.cache != nil {
		var cached []proposal.Proposal
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			u.logger.Debug("[Proposals] Cache HIT", zap.String("key", key))
			return cached, nil
		}
		u.logger.Debug("[Proposals] Cache MISS", zap.String("key", key))
	}

	items, err := u.proposals.List(ctx, f)
	if err != nil {
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, items, 0); err != nil {
			u.logger.Warn("[Proposals] Cache SET failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

func (u *Proposals) scope(ctx context.Context, actor Actor, f proposal.Filter) (proposal.Filter, error) {
	f.Department = strings.TrimSpace(f.Department)
	switch actor.Role {
	case user.RoleAdmin:
		return f, nil
	case user.RoleEstudante:
		f.State = proposal.StateActive
		return f, nil
	case user.RoleEmpresa:
		f.CompanyID = actor.UserID
		return f, nil
	case user.RoleGestor:
		dept, err := u.gestorDepartment(ctx, actor.UserID)
		if err != nil {
			return proposal.Filter{}, err
		}
		f.Department = dept
		return f, nil
	default:
		return proposal.Filter{}, ErrForbidden
	}
}

func (u *Proposals) visible(ctx context.Context, actor Actor, p proposal.Proposal) (bool, error) {
	switch actor.Role {
	case user.RoleAdmin:
		return true, nil
	case user.RoleEstudante:
		return p.State == proposal.StateActive, nil
	case user.RoleEmpresa:
		return p.CompanyID == actor.UserID, nil
	case user.RoleGestor:
		dept, err := u.gestorDepartment(ctx, actor.UserID)
		if err != nil {
			return false, err
		}
		return p.Department == dept, nil
	default:
		return false, nil
	}
}

func (u *Proposals) validate(ctx context.Context, in ProposalInput) (proposal.Proposal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return proposal.Proposal{}, ErrInvalidInput
	}
	kind, ok := proposal.ParseKind(in.Kind)
	if !ok {
		return proposal.Proposal{}, ErrInvalidInput
	}
	dept := strings.TrimSpace(in.Department)
	if dept == "" {
		return proposal.Proposal{}, ErrInvalidInput
	}

	exists, err := u.departments.Exists(ctx, dept)
	if err != nil {
		return proposal.Proposal{}, ErrInternal
	}
	if !exists {
		return proposal.Proposal{}, ErrUnknownDepartment
	}

	return proposal.Proposal{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Kind:        kind,
		Department:  dept,
		Location:    strings.TrimSpace(in.Location),
		Areas:       cleanAreas(in.Areas),
	}, nil
}

func (u *Proposals) load(ctx context.Context, id uuid.UUID) (proposal.Proposal, error) {
	if id == uuid.Nil {
		return proposal.Proposal{}, ErrProposalNotFound
	}
	p, err := u.proposals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, proposal.ErrNotFound) {
			return proposal.Proposal{}, ErrProposalNotFound
		}
		return proposal.Proposal{}, ErrInternal
	}
	return p, nil
}

func (u *Proposals) gestorDepartment(ctx context.Context, userID uuid.UUID) (string, error) {
	g, err := u.gestores.GetByUserID(ctx, userID)
	if err != nil {
		return "", ErrInternal
	}
	return g.Department, nil
}

func (u *Proposals) invalidate(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, proposalListCachePrefix+"*"); err != nil {
		u.logger.Warn("[Proposals] Cache invalidation failed", zap.Error(err))
	}
}

func (u *Proposals) notify(p proposal.Proposal) {
	if u.notifier != nil {
		u.notifier.ProposalStateChanged(p)
	}
}

// cleanAreas trims tags and drops empty and repeated ones. Case is kept
// because compatibility uses exact string equality.
func cleanAreas(areas []string) []string {
	out := make([]string, 0, len(areas))
	seen := make(map[string]struct{}, len(areas))
	for _, a := range areas {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
