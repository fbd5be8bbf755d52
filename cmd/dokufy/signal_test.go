package main

// Notes:
// - OS signal delivery is not exercised; it is platform specific and
//   non-deterministic. Only cancellation through stop() and the parent is.

import (
	"context"
	"testing"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		stop         bool
		cancelParent bool
		wantDone     bool
	}{
		{name: "open until stopped"},
		{name: "stop cancels", stop: true, wantDone: true},
		{name: "parent cancels", cancelParent: true, wantDone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parent, cancel := context.WithCancel(context.Background())
			defer cancel()
			ctx, stop := notifyContext(parent)
			defer stop()

			if tt.stop {
				stop()
			}
			if tt.cancelParent {
				cancel()
			}

			done := ctx.Err() != nil
			if done != tt.wantDone {
				t.Errorf("context done = %v, want %v", done, tt.wantDone)
			}
		})
	}
}
