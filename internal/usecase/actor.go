package usecase

import (
	"estagios/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller as read from the access token.
type Actor struct {
	UserID uuid.UUID
	Role   user.Role
}

func (a Actor) Is(role user.Role) bool {
	return a.Role == role
}
