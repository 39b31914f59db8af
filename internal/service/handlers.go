package service

import (
	"context"
	"fmt"

	"catalog/relations/internal/domain"
	"catalog/relations/internal/domain/task"

	log "github.com/sirupsen/logrus"
)

const (
	stageFetch = "fetch"
	stageSave  = "save"
)

// handleFamily resolves the seed's family, stores it and fans out one ItemTask per member.
// Seeds the service rejects as ids are dropped.
func (s *Service) handleFamily(ctx context.Context, t *task.FamilyTask) error {
	seed := t.Seed.Pad()

	valid, err := s.resolver.IsValidID(ctx, seed)
	if err != nil {
		return err
	}
	if !valid {
		log.Warnf("Seed %d (%s) is not a valid item id, skipping", t.SeedIndex, seed)
		return nil
	}

	family, err := s.resolver.ResolveFamily(ctx, seed)
	if err != nil {
		return err
	}

	if err := s.repository.SaveFamily(ctx, family); err != nil {
		return err
	}

	for _, variation := range family.Variations {
		if _, err := s.queue.AddTask(ctx, &task.ItemTask{ASIN: variation, Parent: family.Parent}); err != nil {
			return fmt.Errorf("failed to enqueue item %s: %w", variation, err)
		}
	}

	log.Infof("Seed %s: parent %s with %d variations", seed, family.Parent, len(family.Variations))
	return nil
}

// retryFamily re-enqueues a failed family task until it failed more than maxFamilyRetries times.
func (s *Service) retryFamily(ctx context.Context, t *task.FamilyTask, cause error) error {
	t.RetryCount++
	t.Error = cause.Error()

	if t.RetryCount > s.maxFamilyRetries {
		log.Errorf("Giving up on seed %d (%s) after %d attempts: %v", t.SeedIndex, t.Seed, t.RetryCount, cause)
		return nil
	}

	log.Warnf("Seed %d (%s) failed, queued for retry %d: %v", t.SeedIndex, t.Seed, t.RetryCount, cause)
	if _, err := s.queue.AddTask(ctx, t); err != nil {
		return fmt.Errorf("failed to enqueue retry for seed %s: %w", t.Seed, err)
	}
	return nil
}

func (s *Service) handleItem(ctx context.Context, t *task.ItemTask) error {
	stage, err := s.collectItem(ctx, t.ASIN, t.Parent)
	if err == nil {
		return nil
	}

	log.Warnf("Item %s failed at %s, queued for retry: %v", t.ASIN, stage, err)
	return s.enqueueRetry(ctx, &task.ItemRetryTask{
		ASIN:         t.ASIN,
		Parent:       t.Parent,
		Error:        err.Error(),
		FailureStage: stage,
	})
}

// handleItemRetry gives up once the item failed more than maxItemRetries times.
func (s *Service) handleItemRetry(ctx context.Context, t *task.ItemRetryTask) error {
	t.RetryCount++
	if t.RetryCount > s.maxItemRetries {
		log.Errorf("Giving up on item %s after %d retries, last error at %s: %s",
			t.ASIN, t.RetryCount-1, t.FailureStage, t.Error)
		return nil
	}

	log.Infof("Retrying item %s (attempt %d)", t.ASIN, t.RetryCount)

	stage, err := s.collectItem(ctx, t.ASIN, t.Parent)
	if err == nil {
		log.Infof("Recovered item %s after %d attempts", t.ASIN, t.RetryCount)
		return nil
	}

	t.Error = err.Error()
	t.FailureStage = stage
	return s.enqueueRetry(ctx, t)
}

func (s *Service) enqueueRetry(ctx context.Context, t *task.ItemRetryTask) error {
	if _, err := s.queue.AddTask(ctx, t); err != nil {
		return fmt.Errorf("failed to enqueue retry for %s: %w", t.ASIN, err)
	}
	return nil
}

// collectItem fetches and stores everything about one listing. On failure it reports
// the stage that failed.
func (s *Service) collectItem(ctx context.Context, asin, parent domain.ASIN) (string, error) {
	details, err := s.fetchItem(ctx, asin, parent)
	if err != nil {
		return stageFetch, err
	}

	if err := s.repository.SaveItemDetails(ctx, details); err != nil {
		return stageSave, err
	}
	return "", nil
}

func (s *Service) fetchItem(ctx context.Context, asin, parent domain.ASIN) (*domain.ItemDetails, error) {
	attrs, err := s.resolver.ExtractAttributes(ctx, asin)
	if err != nil {
		return nil, err
	}

	images, err := s.resolver.ExtractImages(ctx, asin)
	if err != nil {
		return nil, err
	}

	offers, err := s.resolver.AggregateOffers(ctx, domain.Item{ASIN: asin, Name: attrs.Title})
	if err != nil {
		return nil, err
	}

	return &domain.ItemDetails{
		ASIN:       asin,
		Parent:     parent,
		Attributes: attrs,
		Images:     images,
		Offers:     offers,
	}, nil
}
