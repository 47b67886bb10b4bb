package qualification

import (
	"strings"

	"github.com/garcia-realty/leadflow/internal/leads"
)

// Classifier routes a contact to a lead type. Routing tags win over
// message keywords; a keyword tie falls through to general.
type Classifier struct {
	sellerTags []string
	buyerTags  []string
}

// Default routing tag vocabularies. Configurable per deployment via
// config.SellerTags / config.BuyerTags.
var (
	DefaultSellerTags = []string{"needs qualifying", "seller-lead"}
	DefaultBuyerTags  = []string{"buyer-lead", "needs-buyer-qualification"}
)

var sellerKeywords = []string{
	"sell", "selling", "listing", "list my", "home value", "what's my home worth",
	"equity", "cash offer", "my house", "my property", "downsiz", "estate sale",
}

var buyerKeywords = []string{
	"buy", "buying", "purchase", "looking for", "house hunting", "pre-approved",
	"preapproved", "mortgage", "first home", "move in", "showing", "tour",
}

// NewClassifier builds a classifier. Empty tag lists fall back to the
// defaults.
func NewClassifier(sellerTags, buyerTags []string) *Classifier {
	if len(sellerTags) == 0 {
		sellerTags = DefaultSellerTags
	}
	if len(buyerTags) == 0 {
		buyerTags = DefaultBuyerTags
	}
	return &Classifier{
		sellerTags: sellerTags,
		buyerTags:  buyerTags,
	}
}

// Classify determines the lead type from tags first and message
// keywords second. Seller tags outrank buyer tags when both are
// present.
func (c *Classifier) Classify(tags leads.TagSet, message string) LeadType {
	if tags.Intersects(c.sellerTags) {
		return LeadTypeSeller
	}
	if tags.Intersects(c.buyerTags) {
		return LeadTypeBuyer
	}

	lower := strings.ToLower(message)
	sellerHits := countKeywords(lower, sellerKeywords)
	buyerHits := countKeywords(lower, buyerKeywords)

	switch {
	case sellerHits > buyerHits:
		return LeadTypeSeller
	case buyerHits > sellerHits:
		return LeadTypeBuyer
	default:
		return LeadTypeGeneral
	}
}

func countKeywords(lower string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}
