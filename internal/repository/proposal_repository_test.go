package repository

import (
	"testing"

	"estagios/internal/domain/proposal"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuildProposalListQuery_NoFilter(t *testing.T) {
	query, args := buildProposalListQuery(proposal.Filter{})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY p.created_at DESC")
	assert.Empty(t, args)
}

func TestBuildProposalListQuery_StateOnly(t *testing.T) {
	query, args := buildProposalListQuery(proposal.Filter{State: proposal.StateActive})

	assert.Contains(t, query, "WHERE p.estado = $1 ORDER BY")
	assert.Equal(t, []any{"ativo"}, args)
}

func TestBuildProposalListQuery_AllFiltersNumberedInOrder(t *testing.T) {
	companyID := uuid.New()
	query, args := buildProposalListQuery(proposal.Filter{
		State:      proposal.StatePending,
		Department: "Informática",
		CompanyID:  companyID,
	})

	assert.Contains(t, query, "p.estado = $1 AND p.departamento = $2 AND p.empresa_id = $3")
	assert.Equal(t, []any{"pendente", "Informática", companyID}, args)
}
