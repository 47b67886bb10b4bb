package leads

import (
	"strings"
	"time"
)

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleAgent    Role = "agent"
	RoleCustomer Role = "customer"
	RoleSystem   Role = "system"
)

// SellerPreferences is the structured preference record captured by
// upstream extractors during a seller conversation. Fields are pointers
// so "not yet answered" is distinguishable from an explicit answer.
type SellerPreferences struct {
	Motivation         *string  `json:"motivation,omitempty"`
	TimelineAcceptable *bool    `json:"timeline_acceptable,omitempty"`
	PropertyCondition  *string  `json:"property_condition,omitempty"`
	PriceExpectation   *float64 `json:"price_expectation,omitempty"`
}

// PopulatedFields returns how many of the four preference fields are set.
func (p *SellerPreferences) PopulatedFields() int {
	if p == nil {
		return 0
	}
	count := 0
	if p.Motivation != nil && strings.TrimSpace(*p.Motivation) != "" {
		count++
	}
	if p.TimelineAcceptable != nil {
		count++
	}
	if p.PropertyCondition != nil && strings.TrimSpace(*p.PropertyCondition) != "" {
		count++
	}
	if p.PriceExpectation != nil {
		count++
	}
	return count
}

// Turn is a single message in a conversation. Turns are immutable once
// created; history slices are read-only to the pipeline. Structured
// scores extracted upstream ride along on the turn they were derived
// from, normalized here at the ingestion boundary rather than threaded
// through as loose maps.
type Turn struct {
	Role      Role      `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`

	SellerPreferences  *SellerPreferences `json:"seller_preferences,omitempty"`
	FinancialReadiness *float64           `json:"financial_readiness_score,omitempty"`
	BuyingMotivation   *float64           `json:"buying_motivation_score,omitempty"`
}

// History is an ordered, caller-owned sequence of turns.
type History []Turn

// LastTurns returns up to n most recent turns regardless of role,
// oldest first.
func (h History) LastTurns(n int) []Turn {
	if n <= 0 || len(h) == 0 {
		return nil
	}
	if n > len(h) {
		n = len(h)
	}
	out := make([]Turn, n)
	copy(out, h[len(h)-n:])
	return out
}

// MergedSellerPreferences folds every preference record in the history
// into one view. Later turns win on a per-field basis.
func (h History) MergedSellerPreferences() *SellerPreferences {
	var merged *SellerPreferences
	for _, turn := range h {
		p := turn.SellerPreferences
		if p == nil {
			continue
		}
		if merged == nil {
			merged = &SellerPreferences{}
		}
		if p.Motivation != nil {
			merged.Motivation = p.Motivation
		}
		if p.TimelineAcceptable != nil {
			merged.TimelineAcceptable = p.TimelineAcceptable
		}
		if p.PropertyCondition != nil {
			merged.PropertyCondition = p.PropertyCondition
		}
		if p.PriceExpectation != nil {
			merged.PriceExpectation = p.PriceExpectation
		}
	}
	return merged
}

// MaxBuyerScores returns the highest financial-readiness and
// buying-motivation scores seen anywhere in the history. Missing values
// default to zero.
func (h History) MaxBuyerScores() (financialReadiness, buyingMotivation float64) {
	for _, turn := range h {
		if turn.FinancialReadiness != nil && *turn.FinancialReadiness > financialReadiness {
			financialReadiness = *turn.FinancialReadiness
		}
		if turn.BuyingMotivation != nil && *turn.BuyingMotivation > buyingMotivation {
			buyingMotivation = *turn.BuyingMotivation
		}
	}
	return financialReadiness, buyingMotivation
}

// TagSet is a case-insensitive set of CRM tags.
type TagSet map[string]struct{}

// NewTagSet normalizes raw tag strings into a set.
func NewTagSet(tags []string) TagSet {
	set := make(TagSet, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		set[tag] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the tag (case-insensitive).
func (s TagSet) Has(tag string) bool {
	_, ok := s[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// Intersects reports whether any of the candidates is in the set.
func (s TagSet) Intersects(candidates []string) bool {
	for _, tag := range candidates {
		if s.Has(tag) {
			return true
		}
	}
	return false
}
