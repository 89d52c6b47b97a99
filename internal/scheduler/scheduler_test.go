package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestEvery_RunsImmediatelyAndOnTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int32

	done := make(chan struct{})
	go func() {
		Every(ctx, zap.NewNop(), 10*time.Millisecond, "count", func(context.Context) error {
			n.Add(1)
			return nil
		})
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for n.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("task ran %d times, want >= 3", n.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Every did not return after cancel")
	}
}

func TestEvery_KeepsGoingAfterError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var n atomic.Int32

	go Every(ctx, zap.NewNop(), 5*time.Millisecond, "failing", func(context.Context) error {
		n.Add(1)
		return errors.New("nope")
	})

	deadline := time.After(2 * time.Second)
	for n.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("task stopped after error")
		case <-time.After(5 * time.Millisecond):
		}
	}
}
