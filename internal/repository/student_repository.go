package repository

import (
	"context"

	"estagios/internal/database"
	"estagios/internal/domain/student"

	"github.com/google/uuid"
)

type StudentRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error)
	Update(ctx context.Context, p student.Profile) (student.Profile, error)
}

type PostgresStudentRepository struct {
	db database.DB
}

func NewPostgresStudentRepository(db database.DB) *PostgresStudentRepository {
	return &PostgresStudentRepository{db: db}
}

func (r *PostgresStudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (student.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT u.id, u.nome, u.email, e.curso, e.numero_aluno, e.competencias, e.created_at, e.updated_at
		 FROM estudantes e
		 JOIN users u ON u.id = e.user_id
		 WHERE e.user_id = $1`,
		userID,
	)

	var (
		p   student.Profile
		raw string
	)
	if err := row.Scan(&p.UserID, &p.Name, &p.Email, &p.Course, &p.StudentNumber, &raw, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return student.Profile{}, student.ErrNotFound
		}
		return student.Profile{}, err
	}
	p.Skills = student.ParseSkills(raw)
	return p, nil
}

func (r *PostgresStudentRepository) Update(ctx context.Context, p student.Profile) (student.Profile, error) {
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		affected, err := tx.Exec(ctx,
			`UPDATE estudantes SET curso = $1, numero_aluno = $2, competencias = $3, updated_at = now() WHERE user_id = $4`,
			p.Course, p.StudentNumber, student.FormatSkills(p.Skills), p.UserID,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return student.ErrNotFound
		}
		_, err = tx.Exec(ctx, `UPDATE users SET nome = $1, updated_at = now() WHERE id = $2`, p.Name, p.UserID)
		return err
	})
	if err != nil {
		return student.Profile{}, err
	}
	return r.GetByUserID(ctx, p.UserID)
}
