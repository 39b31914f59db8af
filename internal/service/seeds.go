package service

import (
	"context"
	"fmt"

	"catalog/relations/internal/domain"
	"catalog/relations/internal/domain/task"

	log "github.com/sirupsen/logrus"
)

// EnqueueSeeds adds one FamilyTask per seed, resuming after the last seed a previous
// run enqueued for the same list.
func (s *Service) EnqueueSeeds(ctx context.Context, seeds []domain.ASIN) error {
	if len(seeds) == 0 {
		log.Info("No seeds to enqueue")
		return nil
	}

	last, err := s.stateManager.GetLastEnqueuedSeed(ctx, seeds)
	if err != nil {
		return err
	}
	if last >= 0 {
		log.Infof("Continue seeding after %d of %d", last+1, len(seeds))
	}

	enqueued := 0
	for i := last + 1; i < len(seeds); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := s.queue.AddTask(ctx, &task.FamilyTask{Seed: seeds[i], SeedIndex: i}); err != nil {
			return fmt.Errorf("failed to enqueue seed %s: %w", seeds[i], err)
		}
		if err := s.stateManager.SetLastEnqueuedSeed(ctx, seeds, i); err != nil {
			return err
		}
		enqueued++
	}

	log.Infof("Enqueued %d of %d seeds", enqueued, len(seeds))
	return nil
}
