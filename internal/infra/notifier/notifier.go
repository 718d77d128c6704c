// Package notifier sends operational alerts from the worker to chat
// webhooks. Discord and Slack are supported; with neither configured the
// worker uses Noop.
package notifier

import (
	"context"
	"errors"
	"time"

	"newsfox/pkg/config"
)

// Alert describes a cache warm run that needs attention.
type Alert struct {
	Title   string
	Message string
	Failed  int
	Total   int
	At      time.Time
}

// Notifier delivers alerts.
type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// Noop drops every alert.
type Noop struct{}

// Notify implements Notifier.
func (Noop) Notify(context.Context, Alert) error { return nil }

// Multi delivers an alert to every notifier; all are attempted even if one fails.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, a Alert) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FromEnv builds a Notifier from DISCORD_WEBHOOK_URL and SLACK_WEBHOOK_URL.
// NOTIFY_TIMEOUT bounds each webhook call.
func FromEnv() Notifier {
	timeout := config.GetEnvDuration("NOTIFY_TIMEOUT", 10*time.Second)

	var m Multi
	if u := config.GetEnvString("DISCORD_WEBHOOK_URL", ""); u != "" {
		m = append(m, NewDiscord(u, timeout))
	}
	if u := config.GetEnvString("SLACK_WEBHOOK_URL", ""); u != "" {
		m = append(m, NewSlack(u, timeout))
	}
	switch len(m) {
	case 0:
		return Noop{}
	case 1:
		return m[0]
	}
	return m
}
