package game

import (
	"testing"
)

// stubResolver resolves hits against a single configured index.
type stubResolver struct {
	hitIndex int  // 命中时返回的下标
	hit      bool // 是否命中
	calls    int  // 调用次数
	askedFor int  // 最近一次被要求测试的下标
}

func (r *stubResolver) ResolvePointerHit(x, y float64, index int) (int, bool) {
	r.calls++
	r.askedFor = index
	return r.hitIndex, r.hit
}

// TestHitTesterSetsFlagOnHit verifies a resolved hit on the active target
// sets PointerOverActive.
func TestHitTesterSetsFlagOnHit(t *testing.T) {
	state := &SessionState{ActiveIndex: 5, NextIndex: 2}
	resolver := &stubResolver{hitIndex: 5, hit: true}
	tester := NewHitTester(state, resolver)

	tester.Test(PointerSample{X: 10, Y: 10, Valid: true})

	if !state.PointerOverActive {
		t.Error("PointerOverActive should be true after a hit on the active target")
	}
	if resolver.askedFor != 5 {
		t.Errorf("resolver asked for index %d, want active index 5", resolver.askedFor)
	}
}

// TestHitTesterIgnoresMiss verifies a miss leaves the flag untouched.
func TestHitTesterIgnoresMiss(t *testing.T) {
	state := &SessionState{ActiveIndex: 5}
	resolver := &stubResolver{hit: false}
	tester := NewHitTester(state, resolver)

	tester.Test(PointerSample{X: 10, Y: 10, Valid: true})

	if state.PointerOverActive {
		t.Error("PointerOverActive should stay false on a miss")
	}
}

// TestHitTesterIgnoresWrongIndex verifies a hit resolving to a different
// target does not set the flag.
func TestHitTesterIgnoresWrongIndex(t *testing.T) {
	state := &SessionState{ActiveIndex: 5}
	resolver := &stubResolver{hitIndex: 7, hit: true}
	tester := NewHitTester(state, resolver)

	tester.Test(PointerSample{X: 10, Y: 10, Valid: true})

	if state.PointerOverActive {
		t.Error("PointerOverActive should stay false when the hit index is not the active index")
	}
}

// TestHitTesterInvalidSample verifies invalid samples neither test nor
// change the previous state.
func TestHitTesterInvalidSample(t *testing.T) {
	state := &SessionState{ActiveIndex: 5}
	resolver := &stubResolver{hitIndex: 5, hit: true}
	tester := NewHitTester(state, resolver)

	tester.Test(PointerSample{Valid: false})

	if resolver.calls != 0 {
		t.Errorf("resolver called %d times for an invalid sample, want 0", resolver.calls)
	}
	if state.PointerOverActive {
		t.Error("invalid sample must not set PointerOverActive")
	}
}

// TestHitTesterStickyState verifies the flag stays true after the pointer
// moves off the active target without a click (deliberate sticky behavior).
func TestHitTesterStickyState(t *testing.T) {
	state := &SessionState{ActiveIndex: 5}
	resolver := &stubResolver{hitIndex: 5, hit: true}
	tester := NewHitTester(state, resolver)

	// 先命中
	tester.Test(PointerSample{X: 10, Y: 10, Valid: true})
	if !state.PointerOverActive {
		t.Fatal("expected hit to set PointerOverActive")
	}

	// 指针移开（不再命中），标记必须保持
	resolver.hit = false
	tester.Test(PointerSample{X: 300, Y: 300, Valid: true})
	if !state.PointerOverActive {
		t.Error("PointerOverActive must stay true until an inside click resets it")
	}

	// 采样无效的帧同样保持
	tester.Test(PointerSample{Valid: false})
	if !state.PointerOverActive {
		t.Error("PointerOverActive must survive invalid samples")
	}
}

// TestHitTesterNilResolver verifies a nil resolver does not panic.
func TestHitTesterNilResolver(t *testing.T) {
	state := &SessionState{}
	tester := NewHitTester(state, nil)

	tester.Test(PointerSample{X: 1, Y: 1, Valid: true}) // should not panic

	if state.PointerOverActive {
		t.Error("nil resolver must not set PointerOverActive")
	}
}
