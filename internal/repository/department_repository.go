package repository

import (
	"context"

	"estagios/internal/database"
	"estagios/internal/domain/department"
)

type DepartmentRepository interface {
	List(ctx context.Context) ([]department.Department, error)
	Exists(ctx context.Context, name string) (bool, error)
}

type PostgresDepartmentRepository struct {
	db database.DB
}

func NewPostgresDepartmentRepository(db database.DB) *PostgresDepartmentRepository {
	return &PostgresDepartmentRepository{db: db}
}

func (r *PostgresDepartmentRepository) List(ctx context.Context) ([]department.Department, error) {
	rows, err := r.db.Query(ctx, `SELECT nome FROM departamentos ORDER BY nome ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]department.Department, 0)
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.Name); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresDepartmentRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM departamentos WHERE nome = $1)`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
