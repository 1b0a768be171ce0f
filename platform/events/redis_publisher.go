package events

import (
	"context"
	"encoding/json"
	"pipeline_monitor/models"
	"pipeline_monitor/pkg/logging"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(redisClient *redis.Client) *RedisPublisher {
	return &RedisPublisher{redisClient: redisClient}
}

func (p *RedisPublisher) PublishProgressEvent(event *models.ProgressEvent) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}

	data, err := json.Marshal(event)
	if err != nil {
		logging.Logger.Error("fail PublishProgressEvent", "error", err)
		return err
	}
	ctx := context.Background()
	if err := p.redisClient.Publish(ctx, ProgressEventChannel, string(data)).Err(); err != nil {
		logging.Logger.Error("fail PublishProgressEvent", "error", err)
		return err
	}
	logging.Logger.Debug("PublishProgressEvent", "type", event.Type, "processID", event.ProcessID)
	return nil
}

func (p *RedisPublisher) SubscribeProgressEvents(ctx context.Context) (<-chan *models.ProgressEvent, error) {
	pubsub := p.redisClient.Subscribe(ctx, ProgressEventChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		logging.Logger.Error("fail SubscribeProgressEvents", "error", err)
		return nil, err
	}
	ch := make(chan *models.ProgressEvent, subscriberBuffer)

	go func() {
		defer close(ch)
		defer func(pubsub *redis.PubSub) {
			if err := pubsub.Close(); err != nil {
				logging.Logger.Error("fail closing pubsub", "error", err)
			}
		}(pubsub)

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}
				var event models.ProgressEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logging.Logger.Error("Failed to unmarshal event", "error", err)
					continue
				}

				select {
				case ch <- &event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
