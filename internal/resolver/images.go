package resolver

import (
	"context"
	"fmt"

	"catalog/relations/internal/client"
	"catalog/relations/internal/domain"

	log "github.com/sirupsen/logrus"
)

// ExtractImages returns the image size classes present for id. Each class is keyed
// by its own size; a missing item or an error marker yields an empty set.
func (r *Resolver) ExtractImages(ctx context.Context, id domain.ASIN) (domain.ImageSet, error) {
	id = id.Pad()
	images := domain.ImageSet{}

	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:         id.String(),
		ResponseGroups: []string{client.ResponseGroupImages},
		Condition:      client.ConditionAll,
	})
	if err != nil {
		return images, fmt.Errorf("failed to get images of %s: %w", id, err)
	}

	if resp.HasErrors() {
		log.Warnf("Image lookup for %s returned errors: %+v", id, resp.Errors())
		return images, nil
	}

	item := resp.FirstItem()
	if item == nil {
		return images, nil
	}

	for size, node := range map[domain.ImageSize]*client.ImageNode{
		domain.ImageSizeSmall:  item.SmallImage,
		domain.ImageSizeMedium: item.MediumImage,
		domain.ImageSizeLarge:  item.LargeImage,
	} {
		if node == nil {
			continue
		}
		images[size] = domain.Image{
			URL:    node.URL,
			Height: node.Height.Value,
			Width:  node.Width.Value,
		}
	}

	return images, nil
}
