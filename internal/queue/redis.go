package queue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog/relations/internal/config"
	"catalog/relations/internal/domain/task"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	StreamPrefix = "catalog:stream:"

	fieldTaskType = "task_type"
	fieldTaskData = "task_data"

	readBlock = 5 * time.Second
)

type Queue interface {
	AddTask(ctx context.Context, t task.Task) (string, error) // Returns message ID
	GetTask(ctx context.Context, consumer, taskType string) (*redis.XMessage, error)
	AckTask(ctx context.Context, taskType, msgID string) error
	AutoClaim(ctx context.Context, consumer, taskType string) ([]redis.XMessage, error)
	EnsureStreamsExist(ctx context.Context) error
}

type RedisQueue struct {
	redisClient *redis.Client
	groupName   string
	minIdleTime time.Duration
}

func NewRedisQueue(ctx context.Context, redisClient *redis.Client, cfg config.RedisConfig) (*RedisQueue, error) {
	q := &RedisQueue{
		redisClient: redisClient,
		groupName:   cfg.ConsumerGroup,
		minIdleTime: cfg.MinIdleTime,
	}

	// Workers read with XREADGROUP, so groups must exist before they start
	if err := q.EnsureStreamsExist(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure streams exist: %w", err)
	}

	return q, nil
}

// StreamName returns the stream that carries tasks of taskType.
func StreamName(taskType string) string {
	return StreamPrefix + taskType
}

// TaskData extracts the serialized task from a stream message.
func TaskData(msg redis.XMessage) (taskType string, data []byte, err error) {
	taskType, _ = msg.Values[fieldTaskType].(string)
	raw, ok := msg.Values[fieldTaskData].(string)
	if taskType == "" || !ok {
		return "", nil, fmt.Errorf("message %s has no task payload", msg.ID)
	}
	return taskType, []byte(raw), nil
}

func (q *RedisQueue) AddTask(ctx context.Context, t task.Task) (string, error) {
	taskType := t.TaskType()
	stream := StreamName(taskType)

	value, err := t.TaskValue()
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s: %w", taskType, err)
	}

	messageID, err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			fieldTaskType: taskType,
			fieldTaskData: string(value),
		},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to add task to stream %s: %w", stream, err)
	}

	log.Debugf("Added %s to %s as %s", taskType, stream, messageID)
	return messageID, nil
}

// GetTask blocks for a short while waiting for a new message. It returns nil when none arrived.
func (q *RedisQueue) GetTask(ctx context.Context, consumer, taskType string) (*redis.XMessage, error) {
	stream := StreamName(taskType)

	result, err := q.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.groupName,
		Consumer: consumer,
		Streams:  []string{stream, ">"},
		Count:    1,
		Block:    readBlock,
	}).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read from stream %s: %w", stream, err)
	}

	if len(result) == 0 || len(result[0].Messages) == 0 {
		return nil, nil
	}
	return &result[0].Messages[0], nil
}

func (q *RedisQueue) AckTask(ctx context.Context, taskType, msgID string) error {
	return q.redisClient.XAck(ctx, StreamName(taskType), q.groupName, msgID).Err()
}

// AutoClaim takes over one message another consumer left pending for longer than the configured idle time.
func (q *RedisQueue) AutoClaim(ctx context.Context, consumer, taskType string) ([]redis.XMessage, error) {
	stream := StreamName(taskType)

	messages, _, err := q.redisClient.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   stream,
		Group:    q.groupName,
		Consumer: consumer,
		MinIdle:  q.minIdleTime,
		Start:    "0-0",
		Count:    1,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to claim messages from stream %s: %w", stream, err)
	}

	return messages, nil
}

// EnsureStreamsExist creates every task stream together with the consumer group.
func (q *RedisQueue) EnsureStreamsExist(ctx context.Context) error {
	for _, taskType := range task.Types {
		stream := StreamName(taskType)

		err := q.redisClient.XGroupCreateMkStream(ctx, stream, q.groupName, "0").Err()
		if err != nil && !isBusyGroup(err) {
			return fmt.Errorf("failed to create consumer group for %s: %w", stream, err)
		}

		log.Infof("Stream %s and consumer group %s ready", stream, q.groupName)
	}
	return nil
}

func (q *RedisQueue) Close() error {
	if q.redisClient != nil {
		return q.redisClient.Close()
	}
	return nil
}

func isBusyGroup(err error) bool {
	return strings.HasPrefix(err.Error(), "BUSYGROUP")
}
