package ws

import (
	"encoding/json"
	"time"

	"estagios/internal/domain/proposal"

	"github.com/google/uuid"
)

const EventProposalUpdated = "proposta_atualizada"

type ProposalUpdatedEvent struct {
	Type         string    `json:"type"`
	PropostaID   uuid.UUID `json:"proposta_id"`
	Estado       string    `json:"estado"`
	Departamento string    `json:"departamento"`
	Timestamp    string    `json:"timestamp"`
}

// Notifier turns proposal state changes into hub broadcasts.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) ProposalStateChanged(p proposal.Proposal) {
	if n == nil || n.hub == nil {
		return
	}

	evt := ProposalUpdatedEvent{
		Type:         EventProposalUpdated,
		PropostaID:   p.ID,
		Estado:       string(p.State),
		Departamento: p.Department,
		Timestamp:    n.now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
