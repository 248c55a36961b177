package async

import (
	"context"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cipher/pkg/utils/errutil"
	"github.com/secmon-lab/cipher/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine with a context detached from ctx.
// Cancellation of ctx does not stop the handler; only the logger and the Sentry
// hub are carried over. Errors and panics are logged and reported, never returned.
// The returned channel is closed when the handler finishes.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) <-chan struct{} {
	bgCtx := logging.With(context.Background(), logging.From(ctx).With("task", name))
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		bgCtx = sentry.SetHubOnContext(bgCtx, hub.Clone())
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if r := recover(); r != nil {
				_ = errutil.Handle(bgCtx, goerr.New("panic in async task", goerr.V("panic", fmt.Sprint(r))), "async task panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, "async task failed")
		}
	}()

	return done
}
