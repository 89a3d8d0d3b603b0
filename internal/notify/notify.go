package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier is the user-facing message surface, the toast analog. Failures
// are delivered here exactly once and never rethrown past it.
type Notifier interface {
	Notify(c context.Context, message string)
}

// LogNotifier surfaces messages through the structured log. The shop
// daemon runs with it; UI embedders supply their own.
type LogNotifier struct{}

func (LogNotifier) Notify(c context.Context, message string) {
	zerolog.Ctx(c).Warn().Str("tag", "Notifier").Msg(message)
}
