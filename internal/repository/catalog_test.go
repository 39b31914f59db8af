package repository

import (
	"testing"

	"catalog/relations/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	price := minorUnits("2999")
	assert.True(t, price.Valid)
	assert.Equal(t, "29.99", price.Decimal.String())

	assert.False(t, minorUnits("").Valid)
	assert.False(t, minorUnits("call for price").Valid)
}

func TestAsinStrings(t *testing.T) {
	assert.Equal(t, []string{"0316015849", "B000KINDLE"}, asinStrings([]domain.ASIN{"0316015849", "B000KINDLE"}))
	assert.NotNil(t, asinStrings(nil))
}
