package resolver

import (
	"context"

	"catalog/relations/internal/domain"
)

// ResolveFamily resolves the parent of seed and enumerates its variations.
func (r *Resolver) ResolveFamily(ctx context.Context, seed domain.ASIN) (domain.Family, error) {
	parent, err := r.ResolveParent(ctx, seed)
	if err != nil {
		return domain.Family{}, err
	}

	variations, err := r.EnumerateVariations(ctx, parent)
	if err != nil {
		return domain.Family{}, err
	}

	return domain.Family{
		Seed:       seed.Pad(),
		Parent:     parent,
		Variations: variations,
	}, nil
}
