package listeners

import (
	"context"

	"go.uber.org/zap"

	"licensing-system/internal/events"
	"licensing-system/pkg/eventbus"
)

// StatsInvalidator drops cached dashboard statistics.
type StatsInvalidator interface {
	InvalidateStats(ctx context.Context) error
}

// RequestListener reacts to committed request changes: it invalidates the dashboard cache
// and writes an audit line to the application log.
type RequestListener struct {
	stats  StatsInvalidator
	logger *zap.Logger
}

func NewRequestListener(stats StatsInvalidator, logger *zap.Logger) *RequestListener {
	return &RequestListener{stats: stats, logger: logger}
}

func (l *RequestListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.RequestCreated, l.handleRequestCreated)
	bus.Subscribe(events.RequestTransitioned, l.handleRequestTransitioned)
	l.logger.Info("RequestListener subscribed",
		zap.Strings("events", []string{events.RequestCreated, events.RequestTransitioned}),
	)
}

func (l *RequestListener) handleRequestCreated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestCreatedEvent)
	if !ok {
		return nil
	}
	l.logger.Info("request submitted",
		zap.String("requestID", e.RequestID.String()),
		zap.String("number", e.RequestNumber),
		zap.Int("provinceID", e.ProvinceID),
		zap.Int64("fee", e.FeeAmount),
	)
	return l.stats.InvalidateStats(ctx)
}

func (l *RequestListener) handleRequestTransitioned(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestTransitionedEvent)
	if !ok {
		return nil
	}
	l.logger.Info("request transitioned",
		zap.String("requestID", e.RequestID.String()),
		zap.String("number", e.RequestNumber),
		zap.String("action", string(e.Action)),
		zap.String("from", e.From),
		zap.String("to", e.To),
		zap.String("actorID", e.ActorID.String()),
		zap.String("actorRole", string(e.ActorRole)),
	)
	return l.stats.InvalidateStats(ctx)
}
