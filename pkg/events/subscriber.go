package events

import (
	"context"
	"encoding/json"

	"github.com/pratododia/cardapio-backend/pkg/logger"
	redisclient "github.com/pratododia/cardapio-backend/pkg/redis"
)

// Subscriber fans redis pub/sub messages out as typed menu events.
type Subscriber struct {
	client *redisclient.Client
	logg   *logger.Logger
}

// NewSubscriber builds a menu event subscriber over the shared redis client.
func NewSubscriber(client *redisclient.Client, logg *logger.Logger) *Subscriber {
	return &Subscriber{client: client, logg: logg}
}

// SubscribeMenuEvents opens a subscription and returns a channel of decoded
// events plus a cancel func the caller must invoke when done. Messages that
// fail to decode are logged and skipped.
func (s *Subscriber) SubscribeMenuEvents(ctx context.Context) (<-chan MenuEvent, func(), error) {
	sub, err := s.client.Subscribe(ctx, s.client.MenuEventsChannel())
	if err != nil {
		return nil, nil, err
	}

	out := make(chan MenuEvent)
	done := make(chan struct{})

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var event MenuEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					if s.logg != nil {
						s.logg.Error(ctx, "decode menu event", err)
					}
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				case <-done:
					return
				}
			}
		}
	}()

	cancel := func() {
		close(done)
		_ = sub.Close()
	}
	return out, cancel, nil
}
