package resolver

import (
	"context"
	"fmt"
	"strings"

	"catalog/relations/internal/client"
	"catalog/relations/internal/domain"

	log "github.com/sirupsen/logrus"
)

// ResolveParent returns the root of the variation family id belongs to.
// An item without a family is its own parent.
func (r *Resolver) ResolveParent(ctx context.Context, id domain.ASIN) (domain.ASIN, error) {
	id = id.Pad()

	group, err := r.Classify(ctx, id)
	if err != nil {
		return "", err
	}

	var parent domain.ASIN
	if group.Kind == domain.ProductGroupBook {
		parent, err = r.bookParent(ctx, id)
	} else {
		parent, err = r.variationParent(ctx, id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve parent of %s: %w", id, err)
	}

	log.Infof("Parent of %s (%s) is %s", id, group, parent)
	return parent, nil
}

// bookParent follows the authority-title relation. Books share a synthetic,
// non-buyable record as their family root.
func (r *Resolver) bookParent(ctx context.Context, id domain.ASIN) (domain.ASIN, error) {
	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:           id.String(),
		ResponseGroups:   []string{client.ResponseGroupRelatedItems, client.ResponseGroupItemAttributes},
		Condition:        client.ConditionAll,
		RelationshipType: client.RelationshipAuthorityTitle,
	})
	if err != nil {
		return "", err
	}

	item := resp.FirstItem()
	if item == nil || item.RelatedItems == nil || len(item.RelatedItems.RelatedItem) == 0 {
		return id, nil
	}

	related := item.RelatedItems.RelatedItem[0].Item
	if related == nil || strings.TrimSpace(related.ASIN) == "" {
		return id, nil
	}
	if group, _ := related.ProductGroup(); group != domain.ProductGroupAuthorityNonBuyableName {
		return id, nil
	}

	return domain.ASIN(related.ASIN).Pad(), nil
}

func (r *Resolver) variationParent(ctx context.Context, id domain.ASIN) (domain.ASIN, error) {
	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:         id.String(),
		ResponseGroups: []string{client.ResponseGroupVariations},
		Condition:      client.ConditionAll,
	})
	if err != nil {
		return "", err
	}

	item := resp.FirstItem()
	if item == nil || item.ParentASIN == nil || strings.TrimSpace(*item.ParentASIN) == "" {
		return id, nil
	}

	return domain.ASIN(*item.ParentASIN).Pad(), nil
}
