package activation

import (
	"github.com/ja-he/proppanel/internal/model"
)

// Restriction limits the entries shown for elements of a type and marks
// some of their properties read-only.
type Restriction struct {
	Type     string
	Entries  []string
	ReadOnly []string
}

// Restricted is a policy enforcing a catalog of allowed entries.
// For elements matching a restriction with a non-empty Entries list, every
// other entry is denied; elements matching no restriction are left to
// lower-priority policies.
type Restricted struct {
	registry     *model.ElementRegistry
	restrictions []Restriction
}

// NewRestricted returns a Restricted policy.
func NewRestricted(registry *model.ElementRegistry, restrictions []Restriction) *Restricted {
	return &Restricted{registry: registry, restrictions: restrictions}
}

// EntryVisible denies entries missing from a matching allow-list.
func (r *Restricted) EntryVisible(q EntryQuery) Verdict {
	if q.Entry == nil {
		return NoOpinion
	}
	verdict := NoOpinion
	for _, restriction := range r.matching(q.Element) {
		if len(restriction.Entries) == 0 {
			continue
		}
		if !contains(restriction.Entries, q.Entry.ID) {
			return Deny
		}
		verdict = Allow
	}
	return verdict
}

// PropertyEditable denies read-only properties of matching elements.
func (r *Restricted) PropertyEditable(q PropertyQuery) Verdict {
	for _, restriction := range r.matching(q.Element) {
		if contains(restriction.ReadOnly, q.Property) {
			return Deny
		}
	}
	return NoOpinion
}

func (r *Restricted) matching(el *model.Element) []Restriction {
	var result []Restriction
	for _, restriction := range r.restrictions {
		if r.registry.Is(el, restriction.Type) {
			result = append(result, restriction)
		}
	}
	return result
}

func contains(list []string, s string) bool {
	for _, other := range list {
		if other == s {
			return true
		}
	}
	return false
}
