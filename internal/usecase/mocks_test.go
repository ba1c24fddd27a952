package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"estagios/internal/domain/company"
	"estagios/internal/domain/department"
	"estagios/internal/domain/gestor"
	"estagios/internal/domain/proposal"
	"estagios/internal/domain/student"
	"estagios/internal/domain/user"

	"github.com/google/uuid"
)

type mockProposalRepo struct {
	createFn       func(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error)
	getFn          func(ctx context.Context, id uuid.UUID) (proposal.Proposal, error)
	listFn         func(ctx context.Context, f proposal.Filter) ([]proposal.Proposal, error)
	updateFn       func(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error)
	updateStateFn  func(ctx context.Context, id uuid.UUID, from, to proposal.State) (proposal.Proposal, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
	countByStateFn func(ctx context.Context, department string) (map[proposal.State]int, error)
}

func (m *mockProposalRepo) Create(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error) {
	if m.createFn == nil {
		return p, nil
	}
	return m.createFn(ctx, p)
}

func (m *mockProposalRepo) GetByID(ctx context.Context, id uuid.UUID) (proposal.Proposal, error) {
	if m.getFn == nil {
		return proposal.Proposal{}, proposal.ErrNotFound
	}
	return m.getFn(ctx, id)
}

func (m *mockProposalRepo) List(ctx context.Context, f proposal.Filter) ([]proposal.Proposal, error) {
	if m.listFn == nil {
		return []proposal.Proposal{}, nil
	}
	return m.listFn(ctx, f)
}

func (m *mockProposalRepo) Update(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error) {
	if m.updateFn == nil {
		return p, nil
	}
	return m.updateFn(ctx, p)
}

func (m *mockProposalRepo) UpdateState(ctx context.Context, id uuid.UUID, from, to proposal.State) (proposal.Proposal, error) {
	return m.updateStateFn(ctx, id, from, to)
}

func (m *mockProposalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockProposalRepo) CountByState(ctx context.Context, department string) (map[proposal.State]int, error) {
	return m.countByStateFn(ctx, department)
}

type mockGestorRepo struct {
	profiles map[uuid.UUID]gestor.Profile
}

func (m mockGestorRepo) GetByUserID(_ context.Context, id uuid.UUID) (gestor.Profile, error) {
	p, ok := m.profiles[id]
	if !ok {
		return gestor.Profile{}, gestor.ErrNotFound
	}
	return p, nil
}

type mockDepartmentRepo struct {
	names []string
	err   error
}

func (m mockDepartmentRepo) List(context.Context) ([]department.Department, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]department.Department, 0, len(m.names))
	for _, n := range m.names {
		out = append(out, department.Department{Name: n})
	}
	return out, nil
}

func (m mockDepartmentRepo) Exists(_ context.Context, name string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, n := range m.names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

type mockStudentRepo struct {
	getFn    func(ctx context.Context, id uuid.UUID) (student.Profile, error)
	updateFn func(ctx context.Context, p student.Profile) (student.Profile, error)
}

func (m *mockStudentRepo) GetByUserID(ctx context.Context, id uuid.UUID) (student.Profile, error) {
	return m.getFn(ctx, id)
}

func (m *mockStudentRepo) Update(ctx context.Context, p student.Profile) (student.Profile, error) {
	if m.updateFn == nil {
		return p, nil
	}
	return m.updateFn(ctx, p)
}

type mockCompanyRepo struct {
	profile company.Profile
	err     error
}

func (m *mockCompanyRepo) GetByUserID(context.Context, uuid.UUID) (company.Profile, error) {
	return m.profile, m.err
}

func (m *mockCompanyRepo) Update(_ context.Context, p company.Profile) (company.Profile, error) {
	m.profile = p
	return p, nil
}

type mockFavoriteRepo struct {
	added   map[uuid.UUID][]uuid.UUID
	removed error
	listFn  func(ctx context.Context, studentID uuid.UUID) ([]proposal.Proposal, error)
	count   int
}

func (m *mockFavoriteRepo) Add(_ context.Context, studentID, proposalID uuid.UUID) error {
	if m.added == nil {
		m.added = map[uuid.UUID][]uuid.UUID{}
	}
	m.added[studentID] = append(m.added[studentID], proposalID)
	return nil
}

func (m *mockFavoriteRepo) Remove(context.Context, uuid.UUID, uuid.UUID) error {
	return m.removed
}

func (m *mockFavoriteRepo) ListProposals(ctx context.Context, studentID uuid.UUID) ([]proposal.Proposal, error) {
	return m.listFn(ctx, studentID)
}

func (m *mockFavoriteRepo) Count(context.Context) (int, error) {
	return m.count, nil
}

// memUserRepo is an in-memory user.Repository.
type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]user.User
}

func newMemUserRepo(users ...user.User) *memUserRepo {
	m := &memUserRepo{users: map[uuid.UUID]user.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUserRepo) CreateUser(_ context.Context, u user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetUserByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.PasswordHash = hash
	m.users[id] = u
	return nil
}

func (m *memUserRepo) ListUsers(_ context.Context, role user.Role) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]user.User, 0)
	for _, u := range m.users {
		if role == "" || u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memUserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *memUserRepo) CountByRole(context.Context) (map[user.Role]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[user.Role]int{}
	for _, u := range m.users {
		out[u.Role]++
	}
	return out, nil
}

// memAccountRepo writes the user half of an account into a memUserRepo and
// records the profiles.
type memAccountRepo struct {
	users    *memUserRepo
	students []student.Profile
	companies []company.Profile
	gestores []gestor.Profile
}

func (m *memAccountRepo) CreateStudent(ctx context.Context, u user.User, p student.Profile) error {
	m.students = append(m.students, p)
	return m.users.CreateUser(ctx, u)
}

func (m *memAccountRepo) CreateCompany(ctx context.Context, u user.User, p company.Profile) error {
	m.companies = append(m.companies, p)
	return m.users.CreateUser(ctx, u)
}

func (m *memAccountRepo) CreateGestor(ctx context.Context, u user.User, p gestor.Profile) error {
	m.gestores = append(m.gestores, p)
	return m.users.CreateUser(ctx, u)
}

// memCache is a ProposalCache storing JSON in memory.
type memCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	deletes []string
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = b
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes = append(c.deletes, pattern)
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

type recordingNotifier struct {
	events []proposal.Proposal
}

func (n *recordingNotifier) ProposalStateChanged(p proposal.Proposal) {
	n.events = append(n.events, p)
}
