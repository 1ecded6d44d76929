package billing

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	deliveryKeyPrefix = "billing:webhook:processed:"
	// Stripe retries a failed delivery for up to three days.
	DefaultDeliveryTTL = 72 * time.Hour
)

// DeliveryLog remembers provider events that were processed successfully so
// redeliveries can be acknowledged without reapplying them.
type DeliveryLog interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	MarkProcessed(ctx context.Context, eventID string) error
}

// RedisDeliveryLog stores processed event ids as expiring Redis keys.
type RedisDeliveryLog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeliveryLog(client *redis.Client, ttl time.Duration) *RedisDeliveryLog {
	if ttl <= 0 {
		ttl = DefaultDeliveryTTL
	}
	return &RedisDeliveryLog{client: client, ttl: ttl}
}

func (l *RedisDeliveryLog) Seen(ctx context.Context, eventID string) (bool, error) {
	n, err := l.client.Exists(ctx, deliveryKeyPrefix+eventID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (l *RedisDeliveryLog) MarkProcessed(ctx context.Context, eventID string) error {
	return l.client.Set(ctx, deliveryKeyPrefix+eventID, time.Now().UTC().Format(time.RFC3339), l.ttl).Err()
}
