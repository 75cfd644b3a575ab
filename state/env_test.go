package state_test

import (
	"context"
	"testing"

	"stylecore/state"
)

func TestEnvRoundTrip(t *testing.T) {
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	if env == nil {
		t.Fatal("expected environment in context")
	}
	if env != state.EnvFromContext(ctx) {
		t.Error("same context should yield the same environment")
	}
	if env.Uptime() < 0 {
		t.Error("uptime should be non-negative")
	}
}

func TestEnvMissingPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for context without environment")
		}
	}()
	state.EnvFromContext(context.Background())
}
