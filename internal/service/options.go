package service

import (
	"log/slog"

	"thaitravel/internal/metrics"
)

// EventPublisher fans domain events out to live subscribers.
type EventPublisher interface {
	Publish(event string, payload interface{})
}

// Option configures the optional collaborators shared by every service.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	metrics        *metrics.Metrics
	events         EventPublisher
	adminUsernames map[string]struct{}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithEventPublisher(p EventPublisher) Option {
	return func(o *options) { o.events = p }
}

// WithAdminUsernames grants the admin role to these usernames when their
// account is created.
func WithAdminUsernames(usernames []string) Option {
	return func(o *options) {
		o.adminUsernames = make(map[string]struct{}, len(usernames))
		for _, u := range usernames {
			o.adminUsernames[u] = struct{}{}
		}
	}
}

func (o options) publish(event string, payload interface{}) {
	if o.events != nil {
		o.events.Publish(event, payload)
	}
}
