package repository

import (
	"context"

	"estagios/internal/database"
	"estagios/internal/domain/company"
	"estagios/internal/domain/gestor"
	"estagios/internal/domain/student"
	"estagios/internal/domain/user"
)

// AccountRepository creates a user together with its role profile in one
// transaction.
type AccountRepository interface {
	CreateStudent(ctx context.Context, u user.User, p student.Profile) error
	CreateCompany(ctx context.Context, u user.User, p company.Profile) error
	CreateGestor(ctx context.Context, u user.User, p gestor.Profile) error
}

type PostgresAccountRepository struct {
	db database.DB
}

func NewPostgresAccountRepository(db database.DB) *PostgresAccountRepository {
	return &PostgresAccountRepository{db: db}
}

func (r *PostgresAccountRepository) CreateStudent(ctx context.Context, u user.User, p student.Profile) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO estudantes (user_id, curso, numero_aluno, competencias) VALUES ($1, $2, $3, $4)`,
			u.ID, p.Course, p.StudentNumber, student.FormatSkills(p.Skills),
		)
		return err
	})
}

func (r *PostgresAccountRepository) CreateCompany(ctx context.Context, u user.User, p company.Profile) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO empresas (user_id, nome_empresa, nif, morada, telefone) VALUES ($1, $2, $3, $4, $5)`,
			u.ID, p.CompanyName, p.NIF, p.Address, p.Phone,
		)
		return err
	})
}

func (r *PostgresAccountRepository) CreateGestor(ctx context.Context, u user.User, p gestor.Profile) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO gestores (user_id, departamento) VALUES ($1, $2)`,
			u.ID, p.Department,
		)
		return err
	})
}
