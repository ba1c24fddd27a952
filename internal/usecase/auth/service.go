package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"estagios/internal/domain/company"
	"estagios/internal/domain/gestor"
	"estagios/internal/domain/student"
	"estagios/internal/domain/user"
	"estagios/internal/repository"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

// RegisterInput carries the self-service sign-up form. Only the fields of
// the chosen role are read.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string

	Course        string
	StudentNumber string
	Skills        []string

	CompanyName string
	NIF         string
	Address     string
	Phone       string
}

type LoginInput struct {
	Email    string
	Password string
}

type GestorInput struct {
	Email      string
	Password   string
	Name       string
	Department string
}

type Service struct {
	users    user.Repository
	accounts repository.AccountRepository
}

func NewService(users user.Repository, accounts repository.AccountRepository) *Service {
	return &Service{users: users, accounts: accounts}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	role, ok := user.ParseRole(in.Role)
	if !ok || (role != user.RoleEstudante && role != user.RoleEmpresa) {
		return user.User{}, ErrInvalidInput
	}

	u, err := s.newUser(ctx, in.Email, in.Password, in.Name, role)
	if err != nil {
		return user.User{}, err
	}

	switch role {
	case user.RoleEstudante:
		err = s.accounts.CreateStudent(ctx, u, student.Profile{
			UserID:        u.ID,
			Course:        strings.TrimSpace(in.Course),
			StudentNumber: strings.TrimSpace(in.StudentNumber),
			Skills:        in.Skills,
		})
	case user.RoleEmpresa:
		name := strings.TrimSpace(in.CompanyName)
		if name == "" {
			return user.User{}, ErrInvalidInput
		}
		err = s.accounts.CreateCompany(ctx, u, company.Profile{
			UserID:      u.ID,
			CompanyName: name,
			NIF:         strings.TrimSpace(in.NIF),
			Address:     strings.TrimSpace(in.Address),
			Phone:       strings.TrimSpace(in.Phone),
		})
	}
	if err != nil {
		return user.User{}, s.createFailure(ctx, u.Email)
	}

	return s.reload(ctx, u.ID)
}

// CreateGestor provisions a department manager account. The caller checks
// that the department exists.
func (s *Service) CreateGestor(ctx context.Context, in GestorInput) (user.User, error) {
	department := strings.TrimSpace(in.Department)
	if department == "" {
		return user.User{}, ErrInvalidInput
	}

	u, err := s.newUser(ctx, in.Email, in.Password, in.Name, user.RoleGestor)
	if err != nil {
		return user.User{}, err
	}

	if err := s.accounts.CreateGestor(ctx, u, gestor.Profile{UserID: u.ID, Department: department}); err != nil {
		return user.User{}, s.createFailure(ctx, u.Email)
	}

	return s.reload(ctx, u.ID)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return user.User{}, ErrInvalidCredentials
	}
	if in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrInvalidCredentials
		}
		return user.User{}, ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	return sanitizeUser(u), nil
}

func (s *Service) newUser(ctx context.Context, rawEmail, password, name string, role user.Role) (user.User, error) {
	email := normalizeEmail(rawEmail)
	if email == "" || !strings.Contains(email, "@") {
		return user.User{}, ErrInvalidInput
	}
	if !isValidPassword(password) {
		return user.User{}, ErrInvalidInput
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return user.User{}, ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := HashPassword(password)
	if err != nil {
		return user.User{}, ErrInternal
	}

	return user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
	}, nil
}

// createFailure distinguishes a lost race on the unique email from any
// other insert failure.
func (s *Service) createFailure(ctx context.Context, email string) error {
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err == nil && exists {
		return ErrEmailAlreadyRegistered
	}
	return ErrInternal
}

func (s *Service) reload(ctx context.Context, id uuid.UUID) (user.User, error) {
	created, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return user.User{}, ErrInternal
	}
	return sanitizeUser(created), nil
}

// HashPassword bcrypt-hashes a plaintext password with the default cost.
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func isValidPassword(pw string) bool {
	pw = strings.TrimSpace(pw)
	if len(pw) < 8 {
		return false
	}
	return true
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
