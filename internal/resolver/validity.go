package resolver

import (
	"context"
	"fmt"

	"catalog/relations/internal/client"
	"catalog/relations/internal/domain"
)

// InvalidParameterCode is the error code the service uses for an unknown item id.
const InvalidParameterCode = "AWS.InvalidParameterValue"

// IsValidID reports whether the service accepts id. Only transport failures are errors.
func (r *Resolver) IsValidID(ctx context.Context, id domain.ASIN) (bool, error) {
	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:         id.String(),
		ResponseGroups: []string{client.ResponseGroupItemAttributes},
	})
	if err != nil {
		return false, fmt.Errorf("failed to validate %s: %w", id, err)
	}

	return !resp.HasErrorCode(InvalidParameterCode), nil
}
