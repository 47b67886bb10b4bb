package qualification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/garcia-realty/leadflow/internal/leads"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(nil, nil)

	tests := []struct {
		name    string
		tags    []string
		message string
		want    LeadType
	}{
		{
			name: "seller routing tag",
			tags: []string{"needs qualifying"},
			want: LeadTypeSeller,
		},
		{
			name: "buyer routing tag",
			tags: []string{"buyer-lead"},
			want: LeadTypeBuyer,
		},
		{
			name: "seller tag outranks buyer tag",
			tags: []string{"buyer-lead", "seller-lead"},
			want: LeadTypeSeller,
		},
		{
			name:    "tag outranks contradicting keywords",
			tags:    []string{"seller-lead"},
			message: "I'm looking to buy a house",
			want:    LeadTypeSeller,
		},
		{
			name:    "seller keywords",
			message: "I need to sell my home before winter",
			want:    LeadTypeSeller,
		},
		{
			name:    "buyer keywords",
			message: "We're pre-approved and looking for a three bedroom",
			want:    LeadTypeBuyer,
		},
		{
			name:    "no keywords",
			message: "Thanks for the info",
			want:    LeadTypeGeneral,
		},
		{
			name:    "keyword tie falls to general",
			message: "Should we sell first or buy first?",
			want:    LeadTypeGeneral,
		},
		{
			name: "unknown tags ignored",
			tags: []string{"newsletter", "open-house-visitor"},
			want: LeadTypeGeneral,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(leads.NewTagSet(tc.tags), tc.message)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyCustomTags(t *testing.T) {
	c := NewClassifier([]string{"vendor"}, []string{"purchaser"})

	assert.Equal(t, LeadTypeSeller, c.Classify(leads.NewTagSet([]string{"Vendor"}), ""))
	assert.Equal(t, LeadTypeBuyer, c.Classify(leads.NewTagSet([]string{"purchaser"}), ""))
	assert.Equal(t, LeadTypeGeneral, c.Classify(leads.NewTagSet([]string{"needs qualifying"}), ""))
}
