package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/towfit/towbar-filter-service/internal/filter"
	"github.com/towfit/towbar-filter-service/pkg/broker"
	"github.com/towfit/towbar-filter-service/pkg/logger"
	"go.uber.org/zap"
)

// CatalogListener watches catalog mutation events and drops the cached term
// lists so the widget never serves a brand or model past the event. Lag only
// delays invalidation; the cache TTL bounds staleness regardless.
type CatalogListener struct {
	consumer *broker.KafkaConsumer
	uc       filter.UseCase
	logger   logger.ZapLogger
}

func NewCatalogListener(consumer *broker.KafkaConsumer, uc filter.UseCase, logger logger.ZapLogger) *CatalogListener {
	return &CatalogListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *CatalogListener) Start(ctx context.Context) {
	l.logger.Info("Starting Catalog Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Catalog Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type CatalogEvent struct {
	EventID   string          `json:"event_id"`
	EventType string          `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

func (l *CatalogListener) processMessage(ctx context.Context, value []byte) {
	var event CatalogEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	switch event.EventType {
	case "ProductUpdated", "ProductDeleted", "TermUpdated", "TermDeleted":
	default:
		return
	}

	l.logger.Info("Invalidating term cache", zap.String("event_type", event.EventType), zap.String("event_id", event.EventID))

	if err := l.uc.InvalidateTermCache(ctx); err != nil {
		l.logger.Error("Failed to invalidate term cache",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
	}
}
