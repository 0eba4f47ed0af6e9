// Package pubsub publishes per-video status updates over Redis so other
// processes (or a future live UI) can follow an upload through the
// pipeline. Redis is optional infrastructure: when it is unreachable the
// publisher degrades to a no-op and the pipeline carries on.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/mzahan/vidshare/models"
)

const (
	StatusKeyPrefix = "video:status:"
	StatusChannel   = "video:status:"
	StatusAllChan   = "video:status:all"

	statusTTL = 24 * time.Hour
)

type Publisher struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewPublisher connects to Redis and pings it. On failure it logs a
// warning and returns a disabled publisher whose methods no-op.
func NewPublisher(addr, password string, log zerolog.Logger) *Publisher {
	if addr == "" {
		return &Publisher{log: log}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).
			Msg("redis unreachable, status publishing disabled")
		_ = client.Close()
		return &Publisher{log: log}
	}

	log.Info().Str("addr", addr).Msg("redis connection established")
	return &Publisher{client: client, log: log}
}

// Enabled reports whether a Redis connection is live.
func (p *Publisher) Enabled() bool {
	return p.client != nil
}

// PublishStatus sends the update to the per-video channel and the global
// channel, and stores the latest status under a TTL key. Errors are
// logged, never returned to the pipeline.
func (p *Publisher) PublishStatus(ctx context.Context, update models.StatusUpdate) {
	if p.client == nil {
		return
	}
	if update.Timestamp.IsZero() {
		update.Timestamp = time.Now()
	}

	data, err := json.Marshal(update)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to marshal status update")
		return
	}

	channel := fmt.Sprintf("%s%s", StatusChannel, update.VideoID)
	if err := p.client.Publish(ctx, channel, data).Err(); err != nil {
		p.log.Warn().Err(err).Str("video_id", update.VideoID).
			Msg("failed to publish status update")
		return
	}
	if err := p.client.Publish(ctx, StatusAllChan, data).Err(); err != nil {
		p.log.Warn().Err(err).Msg("failed to publish to global status channel")
	}

	key := fmt.Sprintf("%s%s", StatusKeyPrefix, update.VideoID)
	if err := p.client.Set(ctx, key, data, statusTTL).Err(); err != nil {
		p.log.Warn().Err(err).Str("video_id", update.VideoID).
			Msg("failed to store latest status")
	}
}

// GetStatus returns the latest stored status for a video, or nil when
// none is stored or the publisher is disabled.
func (p *Publisher) GetStatus(ctx context.Context, videoID string) (*models.StatusUpdate, error) {
	if p.client == nil {
		return nil, nil
	}

	key := fmt.Sprintf("%s%s", StatusKeyPrefix, videoID)
	data, err := p.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var update models.StatusUpdate
	if err := json.Unmarshal(data, &update); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status: %w", err)
	}
	return &update, nil
}

// Subscribe streams status updates for one video until the context ends.
// A disabled publisher returns a channel that is already closed.
func (p *Publisher) Subscribe(ctx context.Context, videoID string) <-chan models.StatusUpdate {
	return p.subscribe(ctx, fmt.Sprintf("%s%s", StatusChannel, videoID))
}

// SubscribeAll streams every status update.
func (p *Publisher) SubscribeAll(ctx context.Context) <-chan models.StatusUpdate {
	return p.subscribe(ctx, StatusAllChan)
}

func (p *Publisher) subscribe(ctx context.Context, channel string) <-chan models.StatusUpdate {
	out := make(chan models.StatusUpdate)
	if p.client == nil {
		close(out)
		return out
	}

	sub := p.client.Subscribe(ctx, channel)
	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var update models.StatusUpdate
				if err := json.Unmarshal([]byte(msg.Payload), &update); err != nil {
					p.log.Warn().Err(err).Msg("failed to unmarshal status update")
					continue
				}
				select {
				case out <- update:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
