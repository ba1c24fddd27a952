package dto

import (
	"time"

	"estagios/internal/domain/matching"
	"estagios/internal/domain/proposal"

	"github.com/google/uuid"
)

type ProposalResponse struct {
	ID           uuid.UUID `json:"id"`
	EmpresaID    uuid.UUID `json:"empresa_id"`
	Empresa      string    `json:"empresa"`
	Titulo       string    `json:"titulo"`
	Descricao    string    `json:"descricao"`
	Tipo         string    `json:"tipo"`
	Departamento string    `json:"departamento"`
	Localizacao  string    `json:"localizacao"`
	Areas        []string  `json:"areas"`
	Estado       string    `json:"estado"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CompatibleProposalResponse narrows areas to the tags the student matched
// and keeps the full tag list in areas_requeridas.
type CompatibleProposalResponse struct {
	ProposalResponse
	AreasRequeridas []string `json:"areas_requeridas"`
}

func NewProposalResponse(p proposal.Proposal) ProposalResponse {
	areas := p.Areas
	if areas == nil {
		areas = []string{}
	}
	return ProposalResponse{
		ID:           p.ID,
		EmpresaID:    p.CompanyID,
		Empresa:      p.CompanyName,
		Titulo:       p.Title,
		Descricao:    p.Description,
		Tipo:         string(p.Kind),
		Departamento: p.Department,
		Localizacao:  p.Location,
		Areas:        areas,
		Estado:       string(p.State),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewProposalResponses(items []proposal.Proposal) []ProposalResponse {
	out := make([]ProposalResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewProposalResponse(p))
	}
	return out
}

func NewCompatibleProposalResponses(matches []matching.Match) []CompatibleProposalResponse {
	out := make([]CompatibleProposalResponse, 0, len(matches))
	for _, m := range matches {
		res := CompatibleProposalResponse{
			ProposalResponse: NewProposalResponse(m.Proposal),
			AreasRequeridas:  m.Proposal.Areas,
		}
		if res.AreasRequeridas == nil {
			res.AreasRequeridas = []string{}
		}
		res.Areas = m.MatchedTags
		out = append(out, res)
	}
	return out
}
