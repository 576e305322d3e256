package profile

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mx-space/linkpage/internal/pkg/metrics"
	coreprofile "github.com/mx-space/linkpage/internal/profile"
	"go.uber.org/zap"
)

const publishTimeout = 2 * time.Second

// MetricsObserver counts committed mutations by kind.
func MetricsObserver(m *metrics.Metrics) coreprofile.Observer {
	return func(ev coreprofile.Event) {
		m.RecordMutation(string(ev.Kind))
	}
}

// Publisher is the subset of the redis client used for change events.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// RedisPublisher forwards change events as JSON on a pub/sub channel.
// Failures are logged and otherwise ignored.
type RedisPublisher struct {
	client  Publisher
	channel string
	log     *zap.Logger
}

func NewRedisPublisher(client Publisher, channel string, log *zap.Logger) *RedisPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisPublisher{client: client, channel: channel, log: log}
}

func (p *RedisPublisher) Observe(ev coreprofile.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("encode profile event", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, payload); err != nil {
		p.log.Warn("publish profile event",
			zap.String("handle", ev.Handle),
			zap.String("kind", string(ev.Kind)),
			zap.Error(err))
	}
}
