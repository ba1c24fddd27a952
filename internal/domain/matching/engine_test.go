package matching_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estagios/internal/domain/matching"
	"estagios/internal/domain/proposal"
)

func active(areas ...string) proposal.Proposal {
	return proposal.Proposal{
		ID:    uuid.New(),
		State: proposal.StateActive,
		Areas: areas,
	}
}

func ids(ms []matching.Match) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.Proposal.ID)
	}
	return out
}

func TestCompatible_SingleSharedTag(t *testing.T) {
	p1 := active("Informática", "Gestão")
	p2 := active("Marketing")

	got := matching.Compatible([]string{"Informática"}, []proposal.Proposal{p1, p2})

	require.Len(t, got, 1)
	assert.Equal(t, p1.ID, got[0].Proposal.ID)
	assert.Equal(t, []string{"Informática"}, got[0].MatchedTags)
}

func TestCompatible_NoStudentSkills(t *testing.T) {
	got := matching.Compatible(nil, []proposal.Proposal{active("Informática")})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCompatible_ProposalWithoutTags(t *testing.T) {
	got := matching.Compatible([]string{"Design"}, []proposal.Proposal{active()})

	assert.Empty(t, got)
}

func TestCompatible_NoProposals(t *testing.T) {
	got := matching.Compatible([]string{"Design"}, nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCompatible_PreservesInputOrder(t *testing.T) {
	p1 := active("B", "C")
	p2 := active("A")

	got := matching.Compatible([]string{"A", "B"}, []proposal.Proposal{p1, p2})

	require.Len(t, got, 2)
	assert.Equal(t, []uuid.UUID{p1.ID, p2.ID}, ids(got))
	assert.Equal(t, []string{"B"}, got[0].MatchedTags)
	assert.Equal(t, []string{"A"}, got[1].MatchedTags)
}

func TestCompatible_DoesNotRankByOverlap(t *testing.T) {
	weak := active("A")
	strong := active("A", "B", "C")

	got := matching.Compatible([]string{"A", "B", "C"}, []proposal.Proposal{weak, strong})

	assert.Equal(t, []uuid.UUID{weak.ID, strong.ID}, ids(got))
}

func TestCompatible_ExactStringEquality(t *testing.T) {
	got := matching.Compatible([]string{"informática"}, []proposal.Proposal{active("Informática")})

	assert.Empty(t, got)
}

func TestCompatible_SkipsInactiveStates(t *testing.T) {
	var ps []proposal.Proposal
	for _, st := range proposal.States {
		p := active("Go")
		p.State = st
		ps = append(ps, p)
	}

	got := matching.Compatible([]string{"Go"}, ps)

	require.Len(t, got, 1)
	assert.Equal(t, proposal.StateActive, got[0].Proposal.State)
}

func TestCompatible_MatchedTagsFollowProposalOrderWithoutDuplicates(t *testing.T) {
	p := active("SQL", "Go", "SQL", "Docker")

	got := matching.Compatible([]string{"Go", "SQL"}, []proposal.Proposal{p})

	require.Len(t, got, 1)
	assert.Equal(t, []string{"SQL", "Go"}, got[0].MatchedTags)
}

func TestCompatible_DoesNotMutateInputs(t *testing.T) {
	skills := []string{"B", "A"}
	p := active("A", "B", "C")
	ps := []proposal.Proposal{p}

	_ = matching.Compatible(skills, ps)

	assert.Equal(t, []string{"B", "A"}, skills)
	assert.Equal(t, []string{"A", "B", "C"}, ps[0].Areas)
}

func TestCompatible_Idempotent(t *testing.T) {
	skills := []string{"A", "C"}
	ps := []proposal.Proposal{active("A", "B"), active("B"), active("C", "A")}

	first := matching.Compatible(skills, ps)
	second := matching.Compatible(skills, ps)

	assert.Equal(t, first, second)
}

// Every match carries exactly the intersection of student skills and
// proposal areas, and every omitted active proposal has an empty intersection.
func TestCompatible_MatchedTagsAreExactIntersection(t *testing.T) {
	skills := []string{"Go", "SQL", "Design", "Gestão"}
	ps := []proposal.Proposal{
		active("Go", "Kubernetes"),
		active("Marketing"),
		active("Design", "Gestão", "SQL"),
		active(),
		active("Go", "SQL", "Design", "Gestão", "Excel"),
	}

	got := matching.Compatible(skills, ps)

	skillSet := map[string]bool{}
	for _, s := range skills {
		skillSet[s] = true
	}

	matchedByID := map[uuid.UUID][]string{}
	for _, m := range got {
		require.NotEmpty(t, m.MatchedTags)
		matchedByID[m.Proposal.ID] = m.MatchedTags
	}

	for i, p := range ps {
		t.Run(fmt.Sprintf("proposal_%d", i), func(t *testing.T) {
			var want []string
			for _, a := range p.Areas {
				if skillSet[a] {
					want = append(want, a)
				}
			}
			assert.Equal(t, want, matchedByID[p.ID])
		})
	}
}
