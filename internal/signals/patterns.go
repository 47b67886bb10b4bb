package signals

import "regexp"

// signalPattern pairs a compiled pattern with its base confidence and
// the keyword reported in trigger descriptions.
type signalPattern struct {
	regex      *regexp.Regexp
	confidence float64
	keyword    string
}

// PatternProfile holds every pattern bank the extractor consults. All
// known stall/keyword vocabularies live here, behind one profile, so
// variant deployments configure a profile instead of forking the banks.
// The default profile is immutable shared data; concurrent use is safe.
type PatternProfile struct {
	Hedging          []signalPattern
	Commitment       []signalPattern
	Urgency          []signalPattern
	Objection        []signalPattern
	Stall            []signalPattern
	PriceSensitivity []signalPattern

	// Negation markers flip hedging/commitment weight when only one of
	// the two sides matched. Deliberately explicit phrases only: a bare
	// "not" would invert messages like "not sure" that already carry
	// their polarity inside a hedge pattern.
	Negation []signalPattern
}

// DefaultProfile returns the stock pattern profile.
func DefaultProfile() *PatternProfile {
	return defaultProfile
}

var defaultProfile = &PatternProfile{
	Hedging: []signalPattern{
		{regex: regexp.MustCompile(`(?i)\bnot\s+sure\b`), confidence: 0.8, keyword: "not sure"},
		{regex: regexp.MustCompile(`(?i)\bmaybe\b`), confidence: 0.7, keyword: "maybe"},
		{regex: regexp.MustCompile(`(?i)\bi\s+guess\b`), confidence: 0.7, keyword: "i guess"},
		{regex: regexp.MustCompile(`(?i)\b(might|possibly|perhaps)\b`), confidence: 0.65, keyword: "might"},
		{regex: regexp.MustCompile(`(?i)\bkind\s+of\b|\bsort\s+of\b`), confidence: 0.6, keyword: "kind of"},
		{regex: regexp.MustCompile(`(?i)\bwe'?ll\s+see\b`), confidence: 0.75, keyword: "we'll see"},
		{regex: regexp.MustCompile(`(?i)\blet\s+me\s+think\b`), confidence: 0.75, keyword: "let me think"},
		{regex: regexp.MustCompile(`(?i)\b(hesitant|on\s+the\s+fence|torn)\b`), confidence: 0.8, keyword: "hesitant"},
		{regex: regexp.MustCompile(`(?i)\bdepends\s+on\b`), confidence: 0.6, keyword: "depends on"},
		{regex: regexp.MustCompile(`(?i)\b(talk|check)\s+(it\s+over\s+)?with\s+my\b`), confidence: 0.7, keyword: "talk with my"},
	},
	Commitment: []signalPattern{
		{regex: regexp.MustCompile(`(?i)\b(i'?m|we'?re)\s+ready\b|\bready\s+to\s+(go|move|sell|buy|sign|list)\b`), confidence: 0.9, keyword: "ready"},
		{regex: regexp.MustCompile(`(?i)\blet'?s\s+do\s+it\b|\blet'?s\s+(get\s+)?started\b`), confidence: 0.9, keyword: "let's do it"},
		{regex: regexp.MustCompile(`(?i)\b(definitely|absolutely|for\s+sure)\b`), confidence: 0.8, keyword: "definitely"},
		{regex: regexp.MustCompile(`(?i)\bmove\s+forward\b|\bnext\s+steps?\b`), confidence: 0.8, keyword: "move forward"},
		{regex: regexp.MustCompile(`(?i)\bsign\s+(the\s+)?(paperwork|contract|agreement|listing)\b`), confidence: 0.85, keyword: "sign"},
		{regex: regexp.MustCompile(`(?i)\bwhen\s+can\s+(we|you|i)\b`), confidence: 0.75, keyword: "when can we"},
		{regex: regexp.MustCompile(`(?i)\b(schedule|book)\s+(a\s+|the\s+)?(showing|appointment|call|walkthrough|tour)\b`), confidence: 0.8, keyword: "schedule"},
		{regex: regexp.MustCompile(`(?i)\bi\s+want\s+to\s+(sell|buy|list|see)\b`), confidence: 0.75, keyword: "i want to"},
		{regex: regexp.MustCompile(`(?i)\bsounds\s+(good|great|perfect)\b`), confidence: 0.65, keyword: "sounds good"},
	},
	Urgency: []signalPattern{
		{regex: regexp.MustCompile(`(?i)\basap\b|\bas\s+soon\s+as\s+possible\b`), confidence: 0.9, keyword: "asap"},
		{regex: regexp.MustCompile(`(?i)\burgent(ly)?\b`), confidence: 0.9, keyword: "urgent"},
		{regex: regexp.MustCompile(`(?i)\bright\s+away\b|\bimmediately\b`), confidence: 0.85, keyword: "right away"},
		{regex: regexp.MustCompile(`(?i)\bthis\s+(week|weekend|month)\b`), confidence: 0.7, keyword: "this week"},
		{regex: regexp.MustCompile(`(?i)\b(need|have)\s+to\s+(sell|buy|move|close)\s+(fast|quickly|soon|now)\b`), confidence: 0.9, keyword: "need to move fast"},
		{regex: regexp.MustCompile(`(?i)\bdeadline\b`), confidence: 0.8, keyword: "deadline"},
		{regex: regexp.MustCompile(`(?i)\b(relocat\w+|job\s+(transfer|change)|new\s+job)\b`), confidence: 0.7, keyword: "relocating"},
		{regex: regexp.MustCompile(`(?i)\b(foreclosure|behind\s+on\s+payments|pre.?foreclosure)\b`), confidence: 0.9, keyword: "foreclosure"},
		{regex: regexp.MustCompile(`(?i)\bbefore\s+(the\s+)?(end\s+of|school\s+starts|winter|summer)\b`), confidence: 0.65, keyword: "before"},
	},
	Objection: []signalPattern{
		{regex: regexp.MustCompile(`(?i)\btoo\s+(expensive|high|much)\b`), confidence: 0.85, keyword: "too expensive"},
		{regex: regexp.MustCompile(`(?i)\b(don'?t|do\s+not)\s+(like|love|want)\b`), confidence: 0.7, keyword: "don't like"},
		{regex: regexp.MustCompile(`(?i)\b(concern(ed)?|worried|worry)\b`), confidence: 0.7, keyword: "concerned"},
		{regex: regexp.MustCompile(`(?i)\bproblem\s+with\b|\bissue\s+with\b`), confidence: 0.75, keyword: "problem with"},
		{regex: regexp.MustCompile(`(?i)\bnot\s+worth\b`), confidence: 0.8, keyword: "not worth"},
		{regex: regexp.MustCompile(`(?i)\b(another|other)\s+agent\b|\bsomeone\s+else\b`), confidence: 0.8, keyword: "another agent"},
		{regex: regexp.MustCompile(`(?i)\bwhy\s+(should|would)\s+i\b`), confidence: 0.7, keyword: "why should i"},
	},
	Stall: []signalPattern{
		{regex: regexp.MustCompile(`(?i)\bthink\s+(about\s+)?it\s+over\b|\bthink\s+about\s+it\b`), confidence: 0.85, keyword: "think about it"},
		{regex: regexp.MustCompile(`(?i)\bget\s+back\s+to\s+you\b`), confidence: 0.85, keyword: "get back to you"},
		{regex: regexp.MustCompile(`(?i)\bsleep\s+on\s+it\b`), confidence: 0.85, keyword: "sleep on it"},
		{regex: regexp.MustCompile(`(?i)\bnot\s+ready\s+(yet|right\s+now)?\b`), confidence: 0.8, keyword: "not ready"},
		{regex: regexp.MustCompile(`(?i)\b(circle|loop)\s+back\b`), confidence: 0.75, keyword: "circle back"},
		{regex: regexp.MustCompile(`(?i)\btouch\s+base\s+(later|next)\b`), confidence: 0.75, keyword: "touch base later"},
		{regex: regexp.MustCompile(`(?i)\bin\s+a\s+(few|couple\s+of?)\s+(weeks|months)\b`), confidence: 0.7, keyword: "in a few weeks"},
		{regex: regexp.MustCompile(`(?i)\bafter\s+the\s+holidays\b|\bnext\s+(spring|year)\b`), confidence: 0.7, keyword: "after the holidays"},
		{regex: regexp.MustCompile(`(?i)\bno\s+rush\b|\bno\s+hurry\b`), confidence: 0.7, keyword: "no rush"},
	},
	PriceSensitivity: []signalPattern{
		{regex: regexp.MustCompile(`(?i)\b(commission|fees?)\b`), confidence: 0.75, keyword: "commission"},
		{regex: regexp.MustCompile(`(?i)\b(afford|budget)\b`), confidence: 0.7, keyword: "budget"},
		{regex: regexp.MustCompile(`(?i)\b(discount|negotiable|negotiate)\b`), confidence: 0.75, keyword: "negotiate"},
		{regex: regexp.MustCompile(`(?i)\blower\s+(the\s+)?price\b|\bcome\s+down\s+on\b`), confidence: 0.8, keyword: "lower price"},
		{regex: regexp.MustCompile(`(?i)\bwhat('?s|\s+is)\s+(it|that)\s+going\s+to\s+cost\b|\bhow\s+much\b`), confidence: 0.65, keyword: "how much"},
		{regex: regexp.MustCompile(`(?i)\b(cheapest|best\s+price|good\s+deal)\b`), confidence: 0.7, keyword: "best price"},
		{regex: regexp.MustCompile(`(?i)\bnet\s+proceeds\b|\bclosing\s+costs?\b`), confidence: 0.7, keyword: "closing costs"},
	},
	Negation: []signalPattern{
		{regex: regexp.MustCompile(`(?i)\bnot\s+interested\b`), confidence: 0.9, keyword: "not interested"},
		{regex: regexp.MustCompile(`(?i)\bno\s+longer\b`), confidence: 0.8, keyword: "no longer"},
		{regex: regexp.MustCompile(`(?i)\bchanged\s+(my|our)\s+mind\b`), confidence: 0.9, keyword: "changed my mind"},
		{regex: regexp.MustCompile(`(?i)\bnever\s+mind\b`), confidence: 0.85, keyword: "never mind"},
		{regex: regexp.MustCompile(`(?i)\bdon'?t\s+want\s+to\s+(sell|buy|list|move)\b`), confidence: 0.85, keyword: "don't want to"},
	},
}

// matchBank returns the matched patterns for the message.
func matchBank(bank []signalPattern, message string) []signalPattern {
	var hits []signalPattern
	for _, pat := range bank {
		if pat.regex.MatchString(message) {
			hits = append(hits, pat)
		}
	}
	return hits
}
