package client

import (
	"net/url"
	"strconv"
	"strings"
)

// Response groups select which parts of an item the service includes.
const (
	ResponseGroupItemAttributes = "ItemAttributes"
	ResponseGroupBrowseNodes    = "BrowseNodes"
	ResponseGroupImages         = "Images"
	ResponseGroupOfferListings  = "OfferListings"
	ResponseGroupOffers         = "Offers"
	ResponseGroupRelatedItems   = "RelatedItems"
	ResponseGroupVariations     = "Variations"
)

const (
	ConditionAll               = "All"
	RelationshipAuthorityTitle = "AuthorityTitle"
)

// LookupRequest is a single ItemLookup call.
type LookupRequest struct {
	ItemID           string
	ResponseGroups   []string
	Condition        string
	RelationshipType string
	RelatedItemPage  int // 1-based; 0 omits the parameter
}

func (r LookupRequest) ResponseGroupParam() string {
	return strings.Join(r.ResponseGroups, ",")
}

// Params returns the request-specific query parameters.
func (r LookupRequest) Params() url.Values {
	params := url.Values{}
	params.Set("ItemId", r.ItemID)
	params.Set("ResponseGroup", r.ResponseGroupParam())
	if r.Condition != "" {
		params.Set("Condition", r.Condition)
	}
	if r.RelationshipType != "" {
		params.Set("RelationshipType", r.RelationshipType)
	}
	if r.RelatedItemPage > 0 {
		params.Set("RelatedItemPage", strconv.Itoa(r.RelatedItemPage))
	}
	return params
}
