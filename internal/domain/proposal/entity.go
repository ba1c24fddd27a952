// Package proposal holds the internship and job proposal entity and its
// lifecycle rules.
package proposal

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("proposal not found")

type State string

const (
	StatePending  State = "pendente"
	StateActive   State = "ativo"
	StateInactive State = "inativo"
	StateArchived State = "arquivado"
)

// States lists every lifecycle state in display order.
var States = []State{StatePending, StateActive, StateInactive, StateArchived}

func ParseState(s string) (State, bool) {
	st := State(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatePending, StateActive, StateInactive, StateArchived:
		return st, true
	default:
		return "", false
	}
}

var transitions = map[State][]State{
	StatePending:  {StateActive, StateInactive, StateArchived},
	StateActive:   {StateInactive, StateArchived},
	StateInactive: {StateActive, StateArchived},
}

// CanTransitionTo reports whether a gestor or admin may move a proposal from
// s to next. Archived proposals are terminal.
func (s State) CanTransitionTo(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Kind string

const (
	KindInternship Kind = "estagio"
	KindJob        Kind = "emprego"
)

func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindInternship, KindJob:
		return k, true
	default:
		return "", false
	}
}

type Proposal struct {
	ID          uuid.UUID
	CompanyID   uuid.UUID
	CompanyName string
	Title       string
	Description string
	Kind        Kind
	Department  string
	Location    string
	Areas       []string
	State       State
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Editable reports whether the owning company may still change the proposal.
func (p Proposal) Editable() bool {
	return p.State == StatePending || p.State == StateInactive
}

type Filter struct {
	State      State
	Department string
	CompanyID  uuid.UUID
}
