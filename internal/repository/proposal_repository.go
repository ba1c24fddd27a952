package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"estagios/internal/database"
	"estagios/internal/domain/proposal"

	"github.com/google/uuid"
)

// ErrStateConflict is returned by UpdateState when the stored state no longer
// matches the state the caller validated the transition against.
var ErrStateConflict = errors.New("proposal state changed concurrently")

type ProposalRepository interface {
	Create(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error)
	GetByID(ctx context.Context, id uuid.UUID) (proposal.Proposal, error)
	List(ctx context.Context, f proposal.Filter) ([]proposal.Proposal, error)
	Update(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error)
	UpdateState(ctx context.Context, id uuid.UUID, from, to proposal.State) (proposal.Proposal, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByState(ctx context.Context, department string) (map[proposal.State]int, error)
}

const proposalSelect = `SELECT p.id, p.empresa_id, COALESCE(c.nome_empresa, ''), p.titulo, p.descricao, p.tipo,
	p.departamento, p.localizacao, p.areas, p.estado, p.created_at, p.updated_at
	FROM propostas p
	LEFT JOIN empresas c ON c.user_id = p.empresa_id`

type PostgresProposalRepository struct {
	db database.DB
}

func NewPostgresProposalRepository(db database.DB) *PostgresProposalRepository {
	return &PostgresProposalRepository{db: db}
}

func (r *PostgresProposalRepository) Create(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Areas == nil {
		p.Areas = []string{}
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO propostas (id, empresa_id, titulo, descricao, tipo, departamento, localizacao, areas, estado)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.CompanyID, p.Title, p.Description, string(p.Kind), p.Department, p.Location, p.Areas, string(p.State),
	)
	if err != nil {
		return proposal.Proposal{}, err
	}
	return r.GetByID(ctx, p.ID)
}

func (r *PostgresProposalRepository) GetByID(ctx context.Context, id uuid.UUID) (proposal.Proposal, error) {
	return scanProposal(r.db.QueryRow(ctx, proposalSelect+` WHERE p.id = $1`, id))
}

func (r *PostgresProposalRepository) List(ctx context.Context, f proposal.Filter) ([]proposal.Proposal, error) {
	query, args := buildProposalListQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
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

func (r *PostgresProposalRepository) Update(ctx context.Context, p proposal.Proposal) (proposal.Proposal, error) {
	if p.Areas == nil {
		p.Areas = []string{}
	}
	affected, err := r.db.Exec(ctx,
		`UPDATE propostas
		 SET titulo = $1, descricao = $2, tipo = $3, departamento = $4, localizacao = $5, areas = $6, estado = $7, updated_at = now()
		 WHERE id = $8`,
		p.Title, p.Description, string(p.Kind), p.Department, p.Location, p.Areas, string(p.State), p.ID,
	)
	if err != nil {
		return proposal.Proposal{}, err
	}
	if affected == 0 {
		return proposal.Proposal{}, proposal.ErrNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *PostgresProposalRepository) UpdateState(ctx context.Context, id uuid.UUID, from, to proposal.State) (proposal.Proposal, error) {
	affected, err := r.db.Exec(ctx,
		`UPDATE propostas SET estado = $1, updated_at = now() WHERE id = $2 AND estado = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return proposal.Proposal{}, err
	}
	if affected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return proposal.Proposal{}, err
		}
		return proposal.Proposal{}, ErrStateConflict
	}
	return r.GetByID(ctx, id)
}

func (r *PostgresProposalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM propostas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return proposal.ErrNotFound
	}
	return nil
}

// CountByState returns the number of proposals per state, restricted to one
// department when department is not empty. Every state is present in the map.
func (r *PostgresProposalRepository) CountByState(ctx context.Context, department string) (map[proposal.State]int, error) {
	var (
		rows database.Rows
		err  error
	)
	if department == "" {
		rows, err = r.db.Query(ctx, `SELECT estado, COUNT(*) FROM propostas GROUP BY estado`)
	} else {
		rows, err = r.db.Query(ctx, `SELECT estado, COUNT(*) FROM propostas WHERE departamento = $1 GROUP BY estado`, department)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[proposal.State]int, len(proposal.States))
	for _, s := range proposal.States {
		out[s] = 0
	}
	for rows.Next() {
		var (
			state string
			count int
		)
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		out[proposal.State(state)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func buildProposalListQuery(f proposal.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if f.State != "" {
		add("p.estado = ?", string(f.State))
	}
	if f.Department != "" {
		add("p.departamento = ?", f.Department)
	}
	if f.CompanyID != uuid.Nil {
		add("p.empresa_id = ?", f.CompanyID)
	}

	var b strings.Builder
	b.WriteString(proposalSelect)
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY p.created_at DESC, p.id ASC")
	return b.String(), args
}

func scanProposal(row database.Row) (proposal.Proposal, error) {
	var (
		p     proposal.Proposal
		kind  string
		state string
	)
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.CompanyName, &p.Title, &p.Description, &kind,
		&p.Department, &p.Location, &p.Areas, &state, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return proposal.Proposal{}, proposal.ErrNotFound
		}
		return proposal.Proposal{}, err
	}
	p.Kind = proposal.Kind(kind)
	p.State = proposal.State(state)
	if p.Areas == nil {
		p.Areas = []string{}
	}
	return p, nil
}
