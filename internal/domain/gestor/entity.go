package gestor

import (
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("gestor profile not found")

// Profile scopes a gestor account to the department whose proposals it approves.
type Profile struct {
	UserID     uuid.UUID
	Department string
}
