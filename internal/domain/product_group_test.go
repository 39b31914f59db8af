package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseProductGroup(t *testing.T) {
	tests := []struct {
		raw        string
		kind       ProductGroupKind
		familyRoot bool
	}{
		{"Book", ProductGroupBook, true},
		{"Authority Non Buyable", ProductGroupAuthorityNonBuyable, true},
		{"Not Found", ProductGroupNotFound, false},
		{"", ProductGroupNotFound, false},
		{"eBooks", ProductGroupOther, false},
		{"book", ProductGroupOther, false},
	}

	for _, tt := range tests {
		group := ParseProductGroup(tt.raw)
		assert.Equal(t, tt.kind, group.Kind, tt.raw)
		assert.Equal(t, tt.familyRoot, group.IsFamilyRootPolicy(), tt.raw)
	}

	assert.Equal(t, "eBooks", ParseProductGroup("eBooks").String())
	assert.Equal(t, ProductGroupNotFoundName, ParseProductGroup("").String())
}

func TestMinorUnits(t *testing.T) {
	d, ok := MinorUnits("1299")
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("12.99")))

	_, ok = MinorUnits("")
	assert.False(t, ok)

	_, ok = MinorUnits("n/a")
	assert.False(t, ok)
}
