package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"catalog/relations/internal/domain/task"
	"catalog/relations/internal/queue"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	idleClaimInterval = time.Minute
	readErrorPause    = time.Second
)

// RunWorkers consumes every task stream until ctx is done.
func (s *Service) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	s.runWorkersForStream(ctx, &wg, numWorkers, task.TypeFamily)
	s.runWorkersForStream(ctx, &wg, numWorkers, task.TypeItem)
	s.runWorkersForStream(ctx, &wg, max(1, numWorkers/2), task.TypeItemRetry)

	wg.Wait()
	return nil
}

func (s *Service) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, taskType string) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.autoClaim(ctx, taskType)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-%d-%s", taskType, workerID, uuid.NewString())
			log.Infof("Starting %s worker %d as %s", taskType, workerID, consumer)

			for ctx.Err() == nil {
				msg, err := s.queue.GetTask(ctx, consumer, taskType)
				if err != nil {
					if ctx.Err() == nil {
						log.Errorf("Failed to get task from %s: %v", queue.StreamName(taskType), err)
					}
					pause(ctx, readErrorPause)
					continue
				}
				if msg == nil {
					continue
				}
				if err := s.processMessage(ctx, msg); err != nil {
					log.Errorf("Failed to process message %s: %v", msg.ID, err)
				}
			}

			log.Infof("%s worker %d stopping", taskType, workerID)
		}(i + 1)
	}
}

// autoClaim periodically takes over messages whose consumer died before acking them.
func (s *Service) autoClaim(ctx context.Context, taskType string) {
	interval := s.claimInterval
	if interval <= 0 {
		interval = idleClaimInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	consumer := fmt.Sprintf("%s-autoclaimer-%s", taskType, uuid.NewString())
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			messages, err := s.queue.AutoClaim(ctx, consumer, taskType)
			if err != nil {
				log.Errorf("Failed to auto-claim from %s: %v", queue.StreamName(taskType), err)
				continue
			}
			for _, msg := range messages {
				log.Infof("Auto-claimed message %s from %s", msg.ID, queue.StreamName(taskType))
				if err := s.processMessage(ctx, &msg); err != nil {
					log.Errorf("Failed to process auto-claimed message %s: %v", msg.ID, err)
				}
			}
		}
	}
}

// processMessage runs the task and acks it. Failed family and item tasks are re-enqueued
// with a retry count; a task whose re-enqueue fails stays pending and is auto-claimed later.
func (s *Service) processMessage(ctx context.Context, msg *redis.XMessage) error {
	taskType, data, err := queue.TaskData(*msg)
	if err != nil {
		return err
	}

	switch taskType {
	case task.TypeFamily:
		t, err := task.UnmarshalTask[*task.FamilyTask](data)
		if err != nil {
			return fmt.Errorf("failed to unmarshal family task: %w", err)
		}
		if err := s.handleFamily(ctx, t); err != nil {
			tasksProcessed.WithLabelValues(taskType, "error").Inc()
			if err := s.retryFamily(ctx, t, err); err != nil {
				return err
			}
		}

	case task.TypeItem:
		t, err := task.UnmarshalTask[*task.ItemTask](data)
		if err != nil {
			return fmt.Errorf("failed to unmarshal item task: %w", err)
		}
		if err := s.handleItem(ctx, t); err != nil {
			tasksProcessed.WithLabelValues(taskType, "error").Inc()
			return err
		}

	case task.TypeItemRetry:
		t, err := task.UnmarshalTask[*task.ItemRetryTask](data)
		if err != nil {
			return fmt.Errorf("failed to unmarshal item retry task: %w", err)
		}
		if err := s.handleItemRetry(ctx, t); err != nil {
			tasksProcessed.WithLabelValues(taskType, "error").Inc()
			return err
		}

	default:
		return fmt.Errorf("unknown task type: %s", taskType)
	}

	tasksProcessed.WithLabelValues(taskType, "done").Inc()

	if err := s.queue.AckTask(ctx, taskType, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}
	return nil
}

// pause waits for d or until ctx is done.
func pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
