package candidateinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/talentsift/screening/pkg/kernel"
	"github.com/talentsift/screening/screening/candidate"
)

// RedisIntakeQueue implements candidate.IntakeQueue using Redis lists,
// with a sorted set holding delayed (retry) jobs.
type RedisIntakeQueue struct {
	client    *redis.Client
	queueName string
}

func NewRedisIntakeQueue(client *redis.Client, queueName string) candidate.IntakeQueue {
	return &RedisIntakeQueue{
		client:    client,
		queueName: queueName,
	}
}

func (q *RedisIntakeQueue) delayedQueue() string {
	return q.queueName + ":delayed"
}

func (q *RedisIntakeQueue) Enqueue(ctx context.Context, id kernel.IntakeJobID, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for intake job %s: %w", id, err)
	}

	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue intake job %s: %w", id, err)
	}

	return nil
}

func (q *RedisIntakeQueue) Dequeue(ctx context.Context, timeout time.Duration) ([]byte, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if err == redis.Nil { // timeout, no jobs available
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue intake job: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	return []byte(result[1]), nil
}

func (q *RedisIntakeQueue) EnqueueDelayed(ctx context.Context, id kernel.IntakeJobID, payload any, delay time.Duration) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal delayed payload for intake job %s: %w", id, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedQueue(), &redis.Z{
		Score:  score,
		Member: data,
	}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed intake job %s: %w", id, err)
	}

	return nil
}

func (q *RedisIntakeQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	now := float64(time.Now().Unix())

	jobs, err := q.client.ZRangeByScore(ctx, q.delayedQueue(), &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%f", now),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed intake jobs: %w", err)
	}

	if len(jobs) == 0 {
		return 0, nil
	}

	pipe := q.client.Pipeline()
	for _, job := range jobs {
		pipe.LPush(ctx, q.queueName, job)
		pipe.ZRem(ctx, q.delayedQueue(), job)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed intake jobs to ready: %w", err)
	}

	return len(jobs), nil
}

func (q *RedisIntakeQueue) Size(ctx context.Context) (int64, error) {
	size, err := q.client.LLen(ctx, q.queueName).Result()
	if err != nil {
		return 0, fmt.Errorf("get queue size: %w", err)
	}
	return size, nil
}
