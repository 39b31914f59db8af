package client

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Strict view of an ItemLookup response. Optional elements are pointers so that
// callers can tell an absent element from an empty one.

type Items struct {
	Request *Request `xml:"Request"`
	Item    []Item   `xml:"Item"`
}

type Request struct {
	IsValid string  `xml:"IsValid"`
	Errors  *Errors `xml:"Errors"`
}

type Errors struct {
	Error []APIError `xml:"Error"`
}

type APIError struct {
	Code    string `xml:"Code"`
	Message string `xml:"Message"`
}

type Item struct {
	ASIN           string          `xml:"ASIN"`
	ParentASIN     *string         `xml:"ParentASIN"`
	DetailPageURL  *string         `xml:"DetailPageURL"`
	SmallImage     *ImageNode      `xml:"SmallImage"`
	MediumImage    *ImageNode      `xml:"MediumImage"`
	LargeImage     *ImageNode      `xml:"LargeImage"`
	ItemAttributes *ItemAttributes `xml:"ItemAttributes"`
	Offers         *Offers         `xml:"Offers"`
	RelatedItems   *RelatedItems   `xml:"RelatedItems"`
	Variations     *Variations     `xml:"Variations"`
}

type ImageNode struct {
	URL    string    `xml:"URL"`
	Height Dimension `xml:"Height"`
	Width  Dimension `xml:"Width"`
}

type Dimension struct {
	Value string `xml:",chardata"`
	Units string `xml:"Units,attr"`
}

type ItemAttributes struct {
	ListPrice    *Price  `xml:"ListPrice"`
	ProductGroup *string `xml:"ProductGroup"`
	Title        *string `xml:"Title"`
}

type Price struct {
	Amount         string `xml:"Amount"`
	CurrencyCode   string `xml:"CurrencyCode"`
	FormattedPrice string `xml:"FormattedPrice"`
}

type Offers struct {
	TotalOffers Count   `xml:"TotalOffers"`
	Offer       []Offer `xml:"Offer"`
}

type Offer struct {
	OfferAttributes *OfferAttributes `xml:"OfferAttributes"`
	OfferListing    *OfferListing    `xml:"OfferListing"`
}

type OfferAttributes struct {
	Condition string `xml:"Condition"`
}

type OfferListing struct {
	Price              *Price  `xml:"Price"`
	Availability       *string `xml:"Availability"`
	IsEligibleForPrime string  `xml:"IsEligibleForPrime"`
}

type RelatedItems struct {
	RelationshipType     string        `xml:"RelationshipType"`
	RelatedItemCount     Count         `xml:"RelatedItemCount"`
	RelatedItemPageCount Count         `xml:"RelatedItemPageCount"`
	RelatedItemPage      Count         `xml:"RelatedItemPage"`
	RelatedItem          []RelatedItem `xml:"RelatedItem"`
}

type RelatedItem struct {
	Item *Item `xml:"Item"`
}

type Variations struct {
	TotalVariations Count  `xml:"TotalVariations"`
	Item            []Item `xml:"Item"`
}

// ProductGroup returns the item's product group and whether it was present.
func (it *Item) ProductGroup() (string, bool) {
	if it == nil || it.ItemAttributes == nil || it.ItemAttributes.ProductGroup == nil {
		return "", false
	}
	return *it.ItemAttributes.ProductGroup, true
}

// Count is a non-negative counter element. Values that are not a number read as 0,
// the same as an absent element.
type Count int

func (c *Count) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw string
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		n = 0
	}
	*c = Count(n)
	return nil
}
