package qualification

import (
	"sort"

	"github.com/garcia-realty/leadflow/internal/leads"
)

// DefaultDeactivationTags mark contacts whose automation is switched
// off. Configurable per deployment via config.DeactivationTags.
var DefaultDeactivationTags = []string{
	"ai-off",
	"stop-bot",
	"qualified",
	TagSellerQualified,
	TagTCPAOptOut,
}

// ComplianceGate flags deactivated contacts. The gate observes and
// reports; it never stops the pipeline. Callers that must suppress
// automated replies act on the flag at the delivery layer.
type ComplianceGate struct {
	deactivation leads.TagSet
}

// NewComplianceGate builds a gate. An empty tag list falls back to the
// defaults.
func NewComplianceGate(deactivationTags []string) *ComplianceGate {
	if len(deactivationTags) == 0 {
		deactivationTags = DefaultDeactivationTags
	}
	return &ComplianceGate{deactivation: leads.NewTagSet(deactivationTags)}
}

// ComplianceCheck is the gate's verdict for one contact.
type ComplianceCheck struct {
	Deactivated bool     `json:"deactivated"`
	MatchedTags []string `json:"matched_tags,omitempty"`
}

// Check reports whether any deactivation tag is present.
func (g *ComplianceGate) Check(tags leads.TagSet) ComplianceCheck {
	var matched []string
	for tag := range g.deactivation {
		if tags.Has(tag) {
			matched = append(matched, tag)
		}
	}
	sort.Strings(matched)
	return ComplianceCheck{Deactivated: len(matched) > 0, MatchedTags: matched}
}

// DeactivationTags exposes the configured tag set for callers that
// short-circuit before running the pipeline.
func (g *ComplianceGate) DeactivationTags() leads.TagSet {
	return g.deactivation
}
