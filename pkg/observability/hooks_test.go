package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	h := NoopHoistHooks{}
	h.OnCollectStart(ctx, "/ws", 3)
	h.OnCollectComplete(ctx, "/ws", 12, time.Second, nil)
	h.OnConflict(ctx, "serde", 2, 0)
	h.OnWrite(ctx, "/ws/Cargo.toml", 512, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Hoist().(NoopHoistHooks); !ok {
		t.Error("Hoist() should return NoopHoistHooks by default")
	}

	custom := &testHoistHooks{}
	SetHoistHooks(custom)
	if Hoist() != custom {
		t.Error("SetHoistHooks should set custom hooks")
	}

	Hoist().OnConflict(context.Background(), "serde", 2, 1)
	if custom.conflicts != 1 {
		t.Errorf("conflicts = %d, want 1", custom.conflicts)
	}

	Reset()
	if _, ok := Hoist().(NoopHoistHooks); !ok {
		t.Error("Reset() should restore NoopHoistHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testHoistHooks{}
	SetHoistHooks(custom)
	SetHoistHooks(nil)

	if Hoist() != custom {
		t.Error("SetHoistHooks(nil) should be ignored")
	}

	Reset()
}

type testHoistHooks struct {
	NoopHoistHooks
	conflicts int
}

func (h *testHoistHooks) OnConflict(context.Context, string, int, int) { h.conflicts++ }
