// Package matching decides which proposals are compatible with a student.
//
// A proposal is compatible when it is active and shares at least one skill
// tag with the student. Tags compare by exact string equality. Results keep
// the order in which proposals were supplied; no relevance ranking is applied.
package matching

import "estagios/internal/domain/proposal"

type Match struct {
	Proposal    proposal.Proposal
	MatchedTags []string
}

// Compatible returns the active proposals sharing at least one tag with
// studentSkills, each decorated with the shared tags in the proposal's own
// order. Proposals in any other state are skipped. Inputs are not modified.
func Compatible(studentSkills []string, proposals []proposal.Proposal) []Match {
	out := make([]Match, 0)
	if len(studentSkills) == 0 || len(proposals) == 0 {
		return out
	}

	skills := make(map[string]struct{}, len(studentSkills))
	for _, s := range studentSkills {
		skills[s] = struct{}{}
	}

	for _, p := range proposals {
		if p.State != proposal.StateActive {
			continue
		}
		matched := intersect(p.Areas, skills)
		if len(matched) == 0 {
			continue
		}
		out = append(out, Match{Proposal: p, MatchedTags: matched})
	}
	return out
}

func intersect(areas []string, skills map[string]struct{}) []string {
	var matched []string
	for _, a := range areas {
		if _, ok := skills[a]; !ok {
			continue
		}
		if contains(matched, a) {
			continue
		}
		matched = append(matched, a)
	}
	return matched
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
