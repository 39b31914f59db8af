package resolver

import (
	"context"
	"errors"
	"fmt"

	"catalog/relations/internal/client"
	"catalog/relations/internal/domain"

	log "github.com/sirupsen/logrus"
)

const primeEligible = "1"

// AggregateOffers returns the buy-box offer (if any) followed by every third-party offer
// in response order. The two lookups are independent: a failure in one still returns
// the other's offers alongside the error.
func (r *Resolver) AggregateOffers(ctx context.Context, item domain.Item) ([]domain.Offer, error) {
	asin := item.ASIN.Pad()
	offers := make([]domain.Offer, 0)
	var errs []error

	buybox, err := r.buyboxOffer(ctx, asin)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("buybox lookup for %s: %w", asin, err))
	case buybox != nil:
		log.Debugf("Buybox found for %s (%s)", asin, item.Name)
		offers = append(offers, *buybox)
	default:
		log.Debugf("No buybox for %s (%s)", asin, item.Name)
	}

	others, err := r.otherOffers(ctx, asin)
	if err != nil {
		errs = append(errs, fmt.Errorf("third-party offer lookup for %s: %w", asin, err))
	}
	offers = append(offers, others...)

	log.Infof("%s (%s) has %d offers", asin, item.Name, len(offers))
	return offers, errors.Join(errs...)
}

func (r *Resolver) buyboxOffer(ctx context.Context, asin domain.ASIN) (*domain.Offer, error) {
	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:         asin.String(),
		ResponseGroups: []string{client.ResponseGroupOfferListings},
	})
	if err != nil {
		return nil, err
	}

	item := resp.FirstItem()
	if item == nil || item.Offers == nil || item.Offers.TotalOffers == 0 || len(item.Offers.Offer) == 0 {
		return nil, nil
	}

	offer := toOffer(item.Offers.Offer[0], domain.OfferSourceBuybox, asin)
	return &offer, nil
}

func (r *Resolver) otherOffers(ctx context.Context, asin domain.ASIN) ([]domain.Offer, error) {
	resp, err := r.lookup(ctx, client.LookupRequest{
		ItemID:         asin.String(),
		ResponseGroups: []string{client.ResponseGroupOffers},
		Condition:      client.ConditionAll,
	})
	if err != nil {
		return nil, err
	}

	item := resp.FirstItem()
	if item == nil || item.Offers == nil {
		return nil, nil
	}

	offers := make([]domain.Offer, 0, len(item.Offers.Offer))
	for _, o := range item.Offers.Offer {
		offers = append(offers, toOffer(o, domain.OfferSourceOtherSellers, asin))
	}
	return offers, nil
}

func toOffer(o client.Offer, source domain.OfferSource, asin domain.ASIN) domain.Offer {
	offer := domain.Offer{
		Source:       source,
		Availability: domain.AvailabilityUnknown,
		ItemASIN:     asin,
	}

	if o.OfferAttributes != nil {
		offer.Condition = o.OfferAttributes.Condition
	}

	if listing := o.OfferListing; listing != nil {
		if listing.Price != nil {
			offer.PriceAmount = listing.Price.Amount
			offer.PriceFormatted = listing.Price.FormattedPrice
		}
		if listing.Availability != nil {
			offer.Availability = *listing.Availability
		}
		offer.PrimeEligible = listing.IsEligibleForPrime == primeEligible
	}

	return offer
}
