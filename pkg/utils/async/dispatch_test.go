package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/cipher/pkg/utils/async"
)

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("async task did not finish")
	}
}

func TestDispatch(t *testing.T) {
	t.Run("handler outlives cancelled parent context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var handlerErr error
		done := async.Dispatch(ctx, "test", func(ctx context.Context) error {
			handlerErr = ctx.Err()
			return nil
		})
		wait(t, done)
		gt.NoError(t, handlerErr)
	})

	t.Run("errors are swallowed", func(t *testing.T) {
		done := async.Dispatch(context.Background(), "test", func(ctx context.Context) error {
			return errors.New("boom")
		})
		wait(t, done)
	})

	t.Run("panics are recovered", func(t *testing.T) {
		done := async.Dispatch(context.Background(), "test", func(ctx context.Context) error {
			panic("boom")
		})
		wait(t, done)
	})
}
