package domain

import "strings"

// ASINLength is the canonical width of a catalog item identifier.
const ASINLength = 10

// ASIN identifies a single listing in the remote catalog.
type ASIN string

// Pad left-pads the identifier with zeros to ASINLength characters.
// Identifiers that are already long enough are returned unchanged.
func (a ASIN) Pad() ASIN {
	s := strings.TrimSpace(string(a))
	if len(s) >= ASINLength {
		return ASIN(s)
	}
	return ASIN(strings.Repeat("0", ASINLength-len(s)) + s)
}

func (a ASIN) String() string {
	return string(a)
}

// PadAll pads every identifier in ids, keeping order.
func PadAll(ids []string) []ASIN {
	out := make([]ASIN, 0, len(ids))
	for _, id := range ids {
		out = append(out, ASIN(id).Pad())
	}
	return out
}
