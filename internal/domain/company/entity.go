package company

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("company profile not found")

type Profile struct {
	UserID      uuid.UUID
	ContactName string
	Email       string
	CompanyName string
	NIF         string
	Address     string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
