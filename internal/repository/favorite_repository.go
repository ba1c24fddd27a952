package repository

import (
	"context"
	"errors"

	"estagios/internal/database"
	"estagios/internal/domain/proposal"

	"github.com/google/uuid"
)

var ErrFavoriteNotFound = errors.New("favorite not found")

type FavoriteRepository interface {
	Add(ctx context.Context, studentID, proposalID uuid.UUID) error
	Remove(ctx context.Context, studentID, proposalID uuid.UUID) error
	ListProposals(ctx context.Context, studentID uuid.UUID) ([]proposal.Proposal, error)
	Count(ctx context.Context) (int, error)
}

type PostgresFavoriteRepository struct {
	db database.DB
}

func NewPostgresFavoriteRepository(db database.DB) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{db: db}
}

// Add is idempotent: favoriting the same proposal twice keeps one row.
func (r *PostgresFavoriteRepository) Add(ctx context.Context, studentID, proposalID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO favoritos (estudante_id, proposta_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		studentID, proposalID,
	)
	return err
}

func (r *PostgresFavoriteRepository) Remove(ctx context.Context, studentID, proposalID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM favoritos WHERE estudante_id = $1 AND proposta_id = $2`,
		studentID, proposalID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *PostgresFavoriteRepository) ListProposals(ctx context.Context, studentID uuid.UUID) ([]proposal.Proposal, error) {
	rows, err := r.db.Query(ctx,
		proposalSelect+`
		 JOIN favoritos f ON f.proposta_id = p.id
		 WHERE f.estudante_id = $1
		 ORDER BY f.created_at DESC, p.id ASC`,
		studentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]proposal.Proposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresFavoriteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM favoritos`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
