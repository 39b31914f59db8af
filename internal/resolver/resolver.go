// Package resolver walks catalog relationships: product-group classification, parent
// resolution, variation enumeration, offer aggregation and attribute extraction.
//
// Structural absence in a response (missing item, missing substructure, error marker)
// is never an error here; it degrades to a default value. Only transport failures
// (*client.RemoteError) and unparsable bodies (*client.MalformedResponseError) are returned.
package resolver

import (
	"context"

	"catalog/relations/internal/client"
)

// Invoker performs one lookup against the catalog service.
type Invoker interface {
	Invoke(ctx context.Context, req client.LookupRequest) ([]byte, error)
}

type Resolver struct {
	invoker Invoker
}

func New(invoker Invoker) *Resolver {
	return &Resolver{invoker: invoker}
}

func (r *Resolver) lookup(ctx context.Context, req client.LookupRequest) (*client.Response, error) {
	body, err := r.invoker.Invoke(ctx, req)
	if err != nil {
		return nil, err
	}
	return client.Normalize(body)
}
