package live

import (
	"context"
	"encoding/json"
	"time"

	"github.com/LegoGigaBrain/vlossom-protocol-sub007/internal/logger"

	"github.com/redis/go-redis/v9"
)

// PubSubChannel is the Redis channel carrying all live booking events.
// Every API instance subscribes, so events reach clients regardless of
// which instance holds their SSE connection.
const PubSubChannel = "booking_live_broadcast"

// Publisher emits live booking events. Services hold this interface so
// tests can swap in a fake.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type redisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) Publisher {
	return &redisPublisher{client: client}
}

func (p *redisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, PubSubChannel, payload).Err()
}

// StartRedisSubscriber listens on the broadcast channel and forwards
// each event to the local hub until the context is cancelled.
func StartRedisSubscriber(ctx context.Context, client *redis.Client, hub *Hub) {
	sub := client.Subscribe(ctx, PubSubChannel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg := <-ch:
				if msg == nil {
					continue
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					logger.Warn("live subscriber dropped malformed event", "error", err)
					continue
				}
				hub.Broadcast(ev)
			}
		}
	}()
}
