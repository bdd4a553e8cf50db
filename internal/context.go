package internal

import (
	"context"
	"github.com/lithammer/shortuuid/v4"
	"github.com/udprelay/udprelay"
	"time"
)

var (
	CtxKeyStartTime = "ctx-key:start-time"
)

// SetupRelayContextLogger tags ctx with a session id derived from the
// relay's listener source, so every log line of one relay correlates.
func SetupRelayContextLogger(ctx context.Context, source string) context.Context {
	id := shortuuid.NewWithNamespace(source)
	ctx = context.WithValue(ctx, CtxKeyStartTime, time.Now())
	return relay.SetContextLogID(ctx, id, source)
}

// StartTimeOf reports when the relay context was set up.
func StartTimeOf(ctx context.Context) time.Time {
	if v, ok := ctx.Value(CtxKeyStartTime).(time.Time); ok {
		return v
	}
	return time.Time{}
}
