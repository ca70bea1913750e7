package service

import (
	"context"
	"encoding/json"
	"strconv"

	"go.uber.org/zap"

	"recircle-core/internal/service/mq"
	"recircle-core/internal/service/presence"
	"recircle-core/pkg/logger"
)

// Notifier publishes post-commit notification events. Delivery is
// fire-and-forget: a broker failure is logged and never unwinds the
// committed transaction that triggered it.
type Notifier struct {
	producer mq.Producer
	presence presence.Registry
}

func NewNotifier(producer mq.Producer, reg presence.Registry) *Notifier {
	return &Notifier{producer: producer, presence: reg}
}

// Emit serializes the payload and publishes it on a detached goroutine.
// recipient keys the partition so one user's notifications stay ordered.
func (n *Notifier) Emit(topic string, recipient uint64, payload interface{}) {
	if n == nil || n.producer == nil {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("notification payload marshal failed", zap.String("topic", topic), zap.Error(err))
		return
	}

	go func() {
		ctx := context.Background()

		if n.presence != nil {
			online, err := n.presence.Online(ctx, recipient)
			if err != nil {
				logger.Warn("presence lookup failed", zap.Uint64("recipient", recipient), zap.Error(err))
			} else if online {
				logger.Debug("recipient online, event eligible for live push", zap.Uint64("recipient", recipient))
			}
		}

		key := strconv.FormatUint(recipient, 10)
		if err := n.producer.Publish(ctx, topic, key, body); err != nil {
			logger.Error("notification publish failed",
				zap.String("topic", topic),
				zap.Uint64("recipient", recipient),
				zap.Error(err))
		}
	}()
}
