package game

import (
	"math/rand"
	"testing"

	"github.com/decker502/reflex/pkg/config"
)

// newTestScheduler builds a scheduler over the default 17-target layout
// with a deterministic random source.
func newTestScheduler(t *testing.T, seed int64) (*RetargetScheduler, *SessionState, *TargetRegistry) {
	t.Helper()

	registry := NewTargetRegistry(config.DefaultTrainerConfig(), nil)
	state := &SessionState{}
	rng := rand.New(rand.NewSource(seed))

	scheduler, err := NewRetargetScheduler(registry, state, 2.0, rng)
	if err != nil {
		t.Fatalf("NewRetargetScheduler() error: %v", err)
	}
	return scheduler, state, registry
}

// TestNewRetargetSchedulerInitialSelection verifies the initial active/next
// choice and the initial highlight.
func TestNewRetargetSchedulerInitialSelection(t *testing.T) {
	_, state, registry := newTestScheduler(t, 1)

	if state.ActiveIndex == state.NextIndex {
		t.Error("initial ActiveIndex == NextIndex")
	}
	if state.ActiveIndex < 0 || state.ActiveIndex >= registry.Count() {
		t.Errorf("initial ActiveIndex %d out of range", state.ActiveIndex)
	}
	if state.NextIndex < 0 || state.NextIndex >= registry.Count() {
		t.Errorf("initial NextIndex %d out of range", state.NextIndex)
	}

	// 初始只有主目标被点亮
	for i := 0; i < registry.Count(); i++ {
		target, _ := registry.Get(i)
		want := HighlightNeutral
		if i == state.ActiveIndex {
			want = HighlightActive
		}
		if target.State != want {
			t.Errorf("target %d: state %v, want %v", i, target.State, want)
		}
	}
}

// TestNewRetargetSchedulerTooFewTargets verifies N <= 2 is rejected.
func TestNewRetargetSchedulerTooFewTargets(t *testing.T) {
	cfg := config.DefaultTrainerConfig()
	cfg.TargetCount = 2
	cfg.Positions = cfg.Positions[:2]

	registry := NewTargetRegistry(cfg, nil)
	_, err := NewRetargetScheduler(registry, &SessionState{}, 2.0, rand.New(rand.NewSource(1)))
	if err == nil {
		t.Error("Expected configuration error for 2 targets")
	}
}

// TestNewRetargetSchedulerBadInterval verifies non-positive intervals are rejected.
func TestNewRetargetSchedulerBadInterval(t *testing.T) {
	registry := NewTargetRegistry(config.DefaultTrainerConfig(), nil)
	_, err := NewRetargetScheduler(registry, &SessionState{}, 0, rand.New(rand.NewSource(1)))
	if err == nil {
		t.Error("Expected error for zero interval")
	}
}

// TestSchedulerInvariantManyTicks verifies ActiveIndex != NextIndex after
// every transition across many interleaved ticks and seeds.
func TestSchedulerInvariantManyTicks(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		scheduler, state, _ := newTestScheduler(t, seed)

		for tick := 0; tick < 1000; tick++ {
			if tick%2 == 0 {
				scheduler.nextTick()
			} else {
				scheduler.activeTick()
			}

			if state.ActiveIndex == state.NextIndex {
				t.Fatalf("seed %d tick %d: ActiveIndex == NextIndex == %d",
					seed, tick, state.ActiveIndex)
			}
		}
	}
}

// TestNextTickOnlyMovesNext verifies nextTick never mutates the active index.
func TestNextTickOnlyMovesNext(t *testing.T) {
	scheduler, state, _ := newTestScheduler(t, 7)

	for i := 0; i < 100; i++ {
		activeBefore := state.ActiveIndex
		scheduler.nextTick()

		if state.ActiveIndex != activeBefore {
			t.Fatalf("nextTick changed ActiveIndex from %d to %d", activeBefore, state.ActiveIndex)
		}
		if state.NextIndex == state.ActiveIndex {
			t.Fatalf("nextTick selected NextIndex equal to ActiveIndex %d", state.ActiveIndex)
		}
	}
}

// TestActiveTickOnlyMovesActive verifies activeTick never mutates the next
// index, and that the new active avoids both the old active and the current
// pre-selected target.
func TestActiveTickOnlyMovesActive(t *testing.T) {
	scheduler, state, _ := newTestScheduler(t, 7)

	for i := 0; i < 100; i++ {
		activeBefore := state.ActiveIndex
		nextBefore := state.NextIndex
		scheduler.activeTick()

		if state.NextIndex != nextBefore {
			t.Fatalf("activeTick changed NextIndex from %d to %d", nextBefore, state.NextIndex)
		}
		if state.ActiveIndex == activeBefore {
			t.Fatalf("activeTick kept ActiveIndex at %d", activeBefore)
		}
		if state.ActiveIndex == state.NextIndex {
			t.Fatalf("activeTick selected ActiveIndex equal to NextIndex %d", state.NextIndex)
		}
	}
}

// TestActiveTickHighlights verifies the highlight transition of one active
// advance: old active back to neutral, new active lit.
// (Scenario: after exactly one active tick and no clicks, exactly one target
// is Active and it differs from the initial one.)
func TestActiveTickHighlights(t *testing.T) {
	scheduler, state, registry := newTestScheduler(t, 42)
	initialActive := state.ActiveIndex

	scheduler.Advance(2.0) // 恰好一个周期：nextTick + activeTick 各一次

	if state.ActiveIndex == initialActive {
		t.Errorf("active index did not move after one full interval")
	}

	activeCount := 0
	for i := 0; i < registry.Count(); i++ {
		target, _ := registry.Get(i)
		if target.State == HighlightActive {
			activeCount++
			if i != state.ActiveIndex {
				t.Errorf("target %d lit Active but ActiveIndex is %d", i, state.ActiveIndex)
			}
		}
	}
	if activeCount != 1 {
		t.Errorf("Active highlight count: got %d, want 1", activeCount)
	}
}

// TestIntervalTimerAdvance verifies period accumulation and catch-up fires.
func TestIntervalTimerAdvance(t *testing.T) {
	timer := NewIntervalTimer(2.0)

	if fires := timer.Advance(1.9); fires != 0 {
		t.Errorf("before period: got %d fires, want 0", fires)
	}
	if fires := timer.Advance(0.1); fires != 1 {
		t.Errorf("at period: got %d fires, want 1", fires)
	}

	// 一帧跨过多个周期时补齐触发次数
	if fires := timer.Advance(6.5); fires != 3 {
		t.Errorf("catch-up: got %d fires, want 3", fires)
	}
}

// TestIntervalTimerStop verifies a stopped timer never fires again.
func TestIntervalTimerStop(t *testing.T) {
	timer := NewIntervalTimer(1.0)
	timer.Stop()

	if !timer.Stopped() {
		t.Error("Stopped() should be true after Stop()")
	}
	if fires := timer.Advance(10.0); fires != 0 {
		t.Errorf("stopped timer fired %d times", fires)
	}
}

// TestSchedulerStop verifies Advance is a no-op after Stop.
func TestSchedulerStop(t *testing.T) {
	scheduler, state, _ := newTestScheduler(t, 3)
	scheduler.Stop()

	activeBefore := state.ActiveIndex
	nextBefore := state.NextIndex
	scheduler.Advance(100.0)

	if state.ActiveIndex != activeBefore || state.NextIndex != nextBefore {
		t.Error("stopped scheduler still mutated selection state")
	}
}

// TestPickExcluding verifies the exclusion constraint and the bounded
// complement fallback.
func TestPickExcluding(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 1000; i++ {
		got := pickExcluding(rng, 17, 3, 8)
		if got == 3 || got == 8 {
			t.Fatalf("pickExcluding returned excluded index %d", got)
		}
		if got < 0 || got >= 17 {
			t.Fatalf("pickExcluding returned %d out of range", got)
		}
	}

	// n=3 排除两个下标：只剩一个合法值，即使拒绝采样全部失败，
	// 补集兜底也必须返回它
	for i := 0; i < 100; i++ {
		if got := pickExcluding(rng, 3, 0, 2); got != 1 {
			t.Fatalf("pickExcluding(3, 0, 2) = %d, want 1", got)
		}
	}
}
