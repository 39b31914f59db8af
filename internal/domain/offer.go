package domain

import (
	"github.com/shopspring/decimal"
)

type OfferSource string

const (
	OfferSourceBuybox       OfferSource = "Buybox"
	OfferSourceOtherSellers OfferSource = "Other Sellers"
)

// AvailabilityUnknown is reported when an offer listing carries no availability text.
const AvailabilityUnknown = "Not sure!"

// Item is a listing the caller wants offers for.
type Item struct {
	ASIN ASIN   `json:"asin"`
	Name string `json:"name,omitempty"`
}

type Offer struct {
	Condition      string      `json:"condition"`
	Source         OfferSource `json:"offer_source"`
	PriceAmount    string      `json:"offer_price_amount"`    // Minor currency units, as reported
	PriceFormatted string      `json:"offer_price_formatted"` // e.g. "$12.99"
	PrimeEligible  bool        `json:"prime_eligible"`
	Availability   string      `json:"availability"`
	ItemASIN       ASIN        `json:"item_id"`
}

// Price converts the reported amount (in cents) to a decimal value.
// The second result is false when the amount is missing or not a number.
func (o Offer) Price() (decimal.Decimal, bool) {
	return MinorUnits(o.PriceAmount)
}

// MinorUnits parses an amount expressed in minor currency units.
func MinorUnits(amount string) (decimal.Decimal, bool) {
	if amount == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, false
	}
	return d.Shift(-2), true
}
