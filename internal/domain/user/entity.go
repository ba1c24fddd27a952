package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleGestor    Role = "gestor"
	RoleEmpresa   Role = "empresa"
	RoleEstudante Role = "estudante"
)

func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleGestor, RoleEmpresa, RoleEstudante:
		return true
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
