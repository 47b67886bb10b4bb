// Package compliance provides TCPA handling for inbound SMS.
package compliance

import (
	"regexp"
	"strings"
)

// Standard carrier stop keywords plus common free-text revocations.
// Matched against the whole trimmed message for the keywords and as
// phrases for the free-text forms.
var stopKeywords = map[string]struct{}{
	"stop":        {},
	"stopall":     {},
	"stop all":    {},
	"unsubscribe": {},
	"cancel":      {},
	"end":         {},
	"quit":        {},
	"revoke":      {},
	"optout":      {},
	"opt out":     {},
	"opt-out":     {},
}

var optOutPhrases = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bstop\s+(texting|messaging|contacting)\s+me\b`),
	regexp.MustCompile(`(?i)\b(don'?t|do\s+not)\s+(text|message|contact)\s+me\b`),
	regexp.MustCompile(`(?i)\bremove\s+me\s+from\b`),
	regexp.MustCompile(`(?i)\btake\s+me\s+off\b`),
	regexp.MustCompile(`(?i)\bleave\s+me\s+alone\b`),
	regexp.MustCompile(`(?i)\bwrong\s+number\b`),
}

// OptOutDetector recognizes TCPA revocations in inbound messages.
type OptOutDetector struct{}

func NewOptOutDetector() *OptOutDetector {
	return &OptOutDetector{}
}

// IsOptOut reports whether the message revokes texting consent. Bare
// carrier keywords must be the entire message; free-text revocations
// match anywhere.
func (d *OptOutDetector) IsOptOut(message string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	normalized = strings.Trim(normalized, ".!?")
	if _, ok := stopKeywords[normalized]; ok {
		return true
	}
	for _, re := range optOutPhrases {
		if re.MatchString(message) {
			return true
		}
	}
	return false
}
