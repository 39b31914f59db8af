package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestASIN_Pad(t *testing.T) {
	tests := map[ASIN]ASIN{
		"6015849":     "0006015849",
		"0316015849":  "0316015849",
		" 12345 ":     "0000012345",
		"":            "0000000000",
		"B00LONGER99": "B00LONGER99",
	}

	for in, want := range tests {
		got := in.Pad()
		assert.Equal(t, want, got, "pad %q", in)
		assert.Equal(t, got, got.Pad(), "pad is idempotent for %q", in)
	}
}

func TestPadAll(t *testing.T) {
	assert.Equal(t, []ASIN{"0000000001", "B00SHIRT0S"}, PadAll([]string{"1", "B00SHIRT0S"}))
	assert.Empty(t, PadAll(nil))
}
