// Package consensus turns one round's structured votes into a verdict.
// Everything here is pure: no I/O, no clock, no randomness.
package consensus

import (
	"sort"
	"strings"
)

// Threshold is the configured consensus policy. Unanimity always counts as
// reached regardless of policy; the policy only widens what else counts.
type Threshold string

const (
	Unanimous     Threshold = "unanimous"
	Supermajority Threshold = "supermajority"
	Majority      Threshold = "majority"
)

// Type classifies a round's verdict.
type Type string

const (
	TypeUnanimous     Type = "unanimous"
	TypeSupermajority Type = "supermajority"
	TypeMajority      Type = "majority"
	TypeSplit         Type = "split"
	TypeInsufficient  Type = "insufficient"
)

// Vote is one participant's normalizable ballot for a round.
type Vote struct {
	Voter      string
	Decision   string
	Position   string
	Confidence int
}

// Group is a set of votes sharing a normalized decision.
type Group struct {
	Decision   string   `json:"decision"`
	Position   string   `json:"position"`
	Count      int      `json:"count"`
	Confidence int      `json:"confidence"`
	Voters     []string `json:"voters"`
}

// Result is the verdict for one round. When Reached is false and Type is
// split, Groups carries the full breakdown and Majority the largest group.
type Result struct {
	Reached    bool    `json:"reached"`
	Type       Type    `json:"type"`
	Decision   string  `json:"decision,omitempty"`
	Position   string  `json:"position,omitempty"`
	Confidence int     `json:"confidence,omitempty"`
	Groups     []Group `json:"groups,omitempty"`
	Majority   *Group  `json:"majority,omitempty"`
}

// canonical keyword cascade, checked in priority order. Substring matches
// are intentional: "I'd say YES, proceed" must normalize to YES.
var canonicalKeywords = []struct {
	label    string
	keywords []string
}{
	{"YES", []string{"YES", "PROCEED", "APPROVE"}},
	{"NO", []string{"NO", "REJECT", "DECLINE"}},
	{"CONDITIONAL", []string{"CONDITIONAL", "IF", "DEPENDS"}},
	{"WAIT", []string{"WAIT", "DELAY", "MORE INFO"}},
	{"ALTERNATIVE", []string{"ALTERNATIVE", "DIFFERENT", "NEITHER"}},
}

// Normalize maps a free-form decision onto a canonical label, or passes the
// uppercased trimmed text through unchanged when no keyword matches. The
// pass-through is what makes comparison questions work: "Pele" and "PELE"
// group together as the literal winner name.
func Normalize(decision string) string {
	d := strings.ToUpper(strings.TrimSpace(decision))
	if d == "" {
		return "UNKNOWN"
	}
	for _, c := range canonicalKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(d, kw) {
				return c.label
			}
		}
	}
	return d
}

// Check evaluates one round's votes under the given threshold policy.
// Callers are expected to have dropped errored responses already; fewer
// than two votes cannot form a consensus.
func Check(votes []Vote, threshold Threshold) Result {
	if len(votes) < 2 {
		return Result{Reached: false, Type: TypeInsufficient}
	}

	order := make([]string, 0, len(votes))
	grouped := make(map[string][]Vote)
	for _, v := range votes {
		label := Normalize(v.Decision)
		if _, seen := grouped[label]; !seen {
			order = append(order, label)
		}
		grouped[label] = append(grouped[label], v)
	}

	groups := make([]Group, 0, len(order))
	for _, label := range order {
		members := grouped[label]
		voters := make([]string, len(members))
		for i, m := range members {
			voters[i] = m.Voter
		}
		groups = append(groups, Group{
			Decision:   label,
			Position:   members[0].Position,
			Count:      len(members),
			Confidence: averageConfidence(members),
			Voters:     voters,
		})
	}
	// Stable sort keeps first-seen order among equal-sized groups.
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })

	largest := groups[0]
	total := len(votes)

	reachedAs := func(t Type) Result {
		return Result{
			Reached:    true,
			Type:       t,
			Decision:   largest.Decision,
			Position:   largest.Position,
			Confidence: largest.Confidence,
			Groups:     groups,
		}
	}

	switch {
	case largest.Count == total:
		return reachedAs(TypeUnanimous)
	case threshold == Supermajority && largest.Count >= total-1:
		return reachedAs(TypeSupermajority)
	case threshold == Majority && 2*largest.Count > total:
		return reachedAs(TypeMajority)
	}

	majority := largest
	return Result{
		Reached:  false,
		Type:     TypeSplit,
		Groups:   groups,
		Majority: &majority,
	}
}

// averageConfidence averages positive confidences, rounding to nearest, and
// defaults to 5 when no member reported one.
func averageConfidence(votes []Vote) int {
	sum, n := 0, 0
	for _, v := range votes {
		if v.Confidence > 0 {
			sum += v.Confidence
			n++
		}
	}
	if n == 0 {
		return 5
	}
	return (sum + n/2) / n
}
