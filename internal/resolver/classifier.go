package resolver

import (
	"context"
	"fmt"

	"catalog/relations/internal/client"
	"catalog/relations/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Classify returns the product group of id, or the Not Found group when the
// response does not carry one.
func (r *Resolver) Classify(ctx context.Context, id domain.ASIN) (domain.ProductGroup, error) {
	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:         id.String(),
		ResponseGroups: []string{client.ResponseGroupItemAttributes},
		Condition:      client.ConditionAll,
	})
	if err != nil {
		return domain.ProductGroupNotFoundValue, fmt.Errorf("failed to classify %s: %w", id, err)
	}

	raw, ok := resp.FirstItem().ProductGroup()
	if !ok {
		log.Debugf("No product group for %s", id)
		return domain.ProductGroupNotFoundValue, nil
	}

	group := domain.ParseProductGroup(raw)
	log.Debugf("Product group for %s: %s", id, group)
	return group, nil
}
