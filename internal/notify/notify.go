// Package notify abstracts the user-facing notification capability.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier raises best-effort notifications. Callers must ask for permission
// once and skip Raise entirely when it was not granted.
type Notifier interface {
	RequestPermission(ctx context.Context) bool
	Raise(title, body string)
}

// Log writes notifications to the log. Permission is always granted, which
// makes it a safe default for headless runs.
type Log struct {
	log zerolog.Logger
}

func NewLog(l zerolog.Logger) *Log { return &Log{log: l} }

func (n *Log) RequestPermission(ctx context.Context) bool { return true }

func (n *Log) Raise(title, body string) {
	n.log.Info().Str("title", title).Str("body", body).Msg("notification")
}
