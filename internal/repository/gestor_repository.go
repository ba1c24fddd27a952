package repository

import (
	"context"

	"estagios/internal/database"
	"estagios/internal/domain/gestor"

	"github.com/google/uuid"
)

type GestorRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (gestor.Profile, error)
}

type PostgresGestorRepository struct {
	db database.DB
}

func NewPostgresGestorRepository(db database.DB) *PostgresGestorRepository {
	return &PostgresGestorRepository{db: db}
}

func (r *PostgresGestorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (gestor.Profile, error) {
	var p gestor.Profile
	row := r.db.QueryRow(ctx, `SELECT user_id, departamento FROM gestores WHERE user_id = $1`, userID)
	if err := row.Scan(&p.UserID, &p.Department); err != nil {
		if isNoRows(err) {
			return gestor.Profile{}, gestor.ErrNotFound
		}
		return gestor.Profile{}, err
	}
	return p, nil
}
