package repository

import (
	"context"

	"estagios/internal/database"
	"estagios/internal/domain/company"

	"github.com/google/uuid"
)

type CompanyRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (company.Profile, error)
	Update(ctx context.Context, p company.Profile) (company.Profile, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

func (r *PostgresCompanyRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (company.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT u.id, u.nome, u.email, c.nome_empresa, c.nif, c.morada, c.telefone, c.created_at, c.updated_at
		 FROM empresas c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.user_id = $1`,
		userID,
	)

	var p company.Profile
	if err := row.Scan(&p.UserID, &p.ContactName, &p.Email, &p.CompanyName, &p.NIF, &p.Address, &p.Phone, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if isNoRows(err) {
			return company.Profile{}, company.ErrNotFound
		}
		return company.Profile{}, err
	}
	return p, nil
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, p company.Profile) (company.Profile, error) {
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		affected, err := tx.Exec(ctx,
			`UPDATE empresas SET nome_empresa = $1, nif = $2, morada = $3, telefone = $4, updated_at = now() WHERE user_id = $5`,
			p.CompanyName, p.NIF, p.Address, p.Phone, p.UserID,
		)
		if err != nil {
			return err
		}
		if affected == 0 {
			return company.ErrNotFound
		}
		_, err = tx.Exec(ctx, `UPDATE users SET nome = $1, updated_at = now() WHERE id = $2`, p.ContactName, p.UserID)
		return err
	})
	if err != nil {
		return company.Profile{}, err
	}
	return r.GetByUserID(ctx, p.UserID)
}
