package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// processedTTL bounds how long delivery idempotency keys are kept. Delivery
// is at-least-once; the key stops duplicates inside this window.
const processedTTL = 72 * time.Hour

// RedisQueue is a plain list-backed event queue: LPUSH to publish, BRPOP to
// consume.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	return q.client.LPush(ctx, q.key, payload).Err()
}

// Pop blocks up to timeout for the next event. A nil event with nil error
// means the timeout elapsed with an empty queue.
func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) (*Event, error) {
	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(res) != 2 {
		return nil, fmt.Errorf("unexpected brpop reply of %d elements", len(res))
	}

	var ev Event
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}
	return &ev, nil
}

// ClaimDelivery returns true when this consumer is the first to handle the
// event ID.
func (q *RedisQueue) ClaimDelivery(ctx context.Context, eventID string) (bool, error) {
	key := fmt.Sprintf("%s:done:%s", q.key, eventID)
	return q.client.SetNX(ctx, key, "1", processedTTL).Result()
}

var _ Publisher = (*RedisQueue)(nil)
