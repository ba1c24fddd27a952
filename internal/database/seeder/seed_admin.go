package seeder

import (
	"context"
	"errors"
	"strings"

	"estagios/internal/database"
	"estagios/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AdminSeeder creates the bootstrap admin account when no user owns Email yet.
type AdminSeeder struct {
	Email       string
	Password    string
	DisplayName string
}

func (AdminSeeder) Name() string { return "admin" }

func (s AdminSeeder) Run(ctx context.Context, db database.DB) error {
	email := strings.ToLower(strings.TrimSpace(s.Email))
	if email == "" || len(strings.TrimSpace(s.Password)) < 8 {
		return errors.New("admin seed requires an email and a password of at least 8 characters")
	}

	if err := EnsureTableColumns(ctx, db, "users", "id", "email", "password_hash", "role", "nome"); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, nome) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), email, string(hash), string(user.RoleAdmin), strings.TrimSpace(s.DisplayName),
	)
	return err
}
