package resolver

import (
	"context"
	"fmt"
	"strings"

	"catalog/relations/internal/client"
	"catalog/relations/internal/domain"

	log "github.com/sirupsen/logrus"
)

// EnumerateVariations lists every member of the family rooted at parent, in response order.
// The result is never empty: a parent without siblings yields itself.
func (r *Resolver) EnumerateVariations(ctx context.Context, parent domain.ASIN) ([]domain.ASIN, error) {
	parent = parent.Pad()

	group, err := r.Classify(ctx, parent)
	if err != nil {
		return nil, err
	}

	var variations []domain.ASIN
	if group.IsFamilyRootPolicy() {
		variations, err = r.relatedVariations(ctx, parent)
	} else {
		variations, err = r.listedVariations(ctx, parent)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate variations of %s: %w", parent, err)
	}

	if len(variations) == 0 {
		variations = []domain.ASIN{parent}
	}

	log.Infof("Found %d variations for %s (%s)", len(variations), parent, group)
	return variations, nil
}

func relatedItemsRequest(parent domain.ASIN, page int) client.LookupRequest {
	return client.LookupRequest{
		ItemID:           parent.String(),
		ResponseGroups:   []string{client.ResponseGroupRelatedItems},
		Condition:        client.ConditionAll,
		RelationshipType: client.RelationshipAuthorityTitle,
		RelatedItemPage:  page,
	}
}

// relatedVariations reads the page count, then walks pages 1..count in order.
func (r *Resolver) relatedVariations(ctx context.Context, parent domain.ASIN) ([]domain.ASIN, error) {
	resp, err := r.lookup(ctx, relatedItemsRequest(parent, 0))
	if err != nil {
		return nil, err
	}

	item := resp.FirstItem()
	if item == nil || item.RelatedItems == nil {
		log.Debugf("No related items for %s", parent)
		return nil, nil
	}

	pageCount := int(item.RelatedItems.RelatedItemPageCount)
	log.Debugf("Related items for %s span %d pages", parent, pageCount)

	var variations []domain.ASIN
	for page := 1; page <= pageCount; page++ {
		onPage, err := r.relatedVariationsOnPage(ctx, parent, page)
		if err != nil {
			return nil, fmt.Errorf("page %d of %d: %w", page, pageCount, err)
		}
		variations = append(variations, onPage...)
	}

	return variations, nil
}

func (r *Resolver) relatedVariationsOnPage(ctx context.Context, parent domain.ASIN, page int) ([]domain.ASIN, error) {
	resp, err := r.lookup(ctx, relatedItemsRequest(parent, page))
	if err != nil {
		return nil, err
	}

	item := resp.FirstItem()
	if item == nil || item.RelatedItems == nil {
		return nil, nil
	}

	ids := make([]domain.ASIN, 0, len(item.RelatedItems.RelatedItem))
	for _, related := range item.RelatedItems.RelatedItem {
		if related.Item == nil || strings.TrimSpace(related.Item.ASIN) == "" {
			continue
		}
		ids = append(ids, domain.ASIN(related.Item.ASIN).Pad())
	}

	log.Debugf("Page %d of related items for %s has %d variations", page, parent, len(ids))
	return ids, nil
}

func (r *Resolver) listedVariations(ctx context.Context, parent domain.ASIN) ([]domain.ASIN, error) {
	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:         parent.String(),
		ResponseGroups: []string{client.ResponseGroupVariations},
		Condition:      client.ConditionAll,
	})
	if err != nil {
		return nil, err
	}

	item := resp.FirstItem()
	if item == nil || item.Variations == nil {
		log.Debugf("No variations listed for %s", parent)
		return nil, nil
	}

	ids := make([]domain.ASIN, 0, len(item.Variations.Item))
	for _, v := range item.Variations.Item {
		if strings.TrimSpace(v.ASIN) == "" {
			continue
		}
		ids = append(ids, domain.ASIN(v.ASIN).Pad())
	}
	return ids, nil
}
