package dto

import (
	"estagios/internal/domain/proposal"
	"estagios/internal/usecase"
)

type AdminDashboardResponse struct {
	PropostasPorEstado    map[string]int `json:"propostas_por_estado"`
	UtilizadoresPorPerfil map[string]int `json:"utilizadores_por_perfil"`
	TotalFavoritos        int            `json:"total_favoritos"`
}

type GestorDashboardResponse struct {
	Departamento       string         `json:"departamento"`
	PropostasPorEstado map[string]int `json:"propostas_por_estado"`
}

func NewAdminDashboardResponse(d usecase.AdminDashboard) AdminDashboardResponse {
	users := make(map[string]int, len(d.UsersByRole))
	for role, n := range d.UsersByRole {
		users[string(role)] = n
	}
	return AdminDashboardResponse{
		PropostasPorEstado:    stateCounts(d.ProposalsByState),
		UtilizadoresPorPerfil: users,
		TotalFavoritos:        d.Favorites,
	}
}

func NewGestorDashboardResponse(d usecase.GestorDashboard) GestorDashboardResponse {
	return GestorDashboardResponse{
		Departamento:       d.Department,
		PropostasPorEstado: stateCounts(d.ProposalsByState),
	}
}

func stateCounts(m map[proposal.State]int) map[string]int {
	out := make(map[string]int, len(proposal.States))
	for _, s := range proposal.States {
		out[string(s)] = m[s]
	}
	return out
}
