package resolver

import (
	"context"
	"fmt"
	"unicode"

	"catalog/relations/internal/client"
	"catalog/relations/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// CookbookCategory is the browse-node name that marks an item as a cookbook.
const CookbookCategory = "Cookbooks, Food & Wine"

// ExtractAttributes returns the item's attributes. A missing item or an error marker
// in the response yields empty attributes.
func (r *Resolver) ExtractAttributes(ctx context.Context, id domain.ASIN) (domain.ItemAttributes, error) {
	id = id.Pad()

	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:         id.String(),
		ResponseGroups: []string{client.ResponseGroupItemAttributes, client.ResponseGroupBrowseNodes},
	})
	if err != nil {
		return domain.ItemAttributes{}, fmt.Errorf("failed to get attributes of %s: %w", id, err)
	}

	if resp.HasErrors() {
		log.Warnf("Attribute lookup for %s returned errors: %+v", id, resp.Errors())
		return domain.ItemAttributes{}, nil
	}

	item := resp.FirstItem()
	if item == nil {
		log.Debugf("No item in attribute lookup for %s", id)
		return domain.ItemAttributes{}, nil
	}

	attrs := domain.ItemAttributes{
		IsCookbook: hasAncestorCategory(resp.Markup, CookbookCategory),
	}
	if item.DetailPageURL != nil {
		attrs.DetailPageURL = *item.DetailPageURL
	}
	if a := item.ItemAttributes; a != nil {
		if a.ListPrice != nil {
			attrs.ListPriceAmount = a.ListPrice.Amount
			attrs.ListPriceFormatted = a.ListPrice.FormattedPrice
		}
		if a.Title != nil {
			attrs.Title = asciiTitle(*a.Title)
		}
		if a.ProductGroup != nil {
			attrs.ProductGroup = *a.ProductGroup
		}
	}

	return attrs, nil
}

// hasAncestorCategory reports whether any ancestor browse node is named exactly name.
func hasAncestorCategory(doc *goquery.Document, name string) bool {
	if doc == nil {
		return false
	}
	return doc.Find("ancestors name").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Text() == name
	}).Length() > 0
}

// asciiTitle decomposes compatibility characters and drops whatever is not printable ASCII.
func asciiTitle(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII || !unicode.IsPrint(r)
	})))

	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}
