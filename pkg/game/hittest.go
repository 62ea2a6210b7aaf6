package game

// PointerSample 一帧的指针采样
// Valid 为 false 表示本帧拿不到有效指针位置（指针移出窗口等）
type PointerSample struct {
	X, Y  float64
	Valid bool
}

// PointerResolver 表现层的指针命中解析
// 由场景实现：只对指定下标的目标做几何相交测试
type PointerResolver interface {
	// ResolvePointerHit 测试点 (x, y) 是否命中下标为 index 的目标
	//
	// 返回：
	//   - int: 命中目标的下标
	//   - bool: 是否命中
	ResolvePointerHit(x, y float64, index int) (int, bool)
}

// HitTester 指针悬停检测
//
// 每帧调用一次 Test。出于效率考虑只测试当前主目标的占位，不测试
// 其他目标。
//
// 注意粘滞语义：PointerOverActive 只会在这里被置
// 为 true，指针移开主目标并不会把它清回 false——复位只发生在命中
// 点击被记录之后（见 SessionRecorder.OnClick）。采样无效的帧不做任
// 何测试，沿用上一帧的结果。
type HitTester struct {
	state    *SessionState
	resolver PointerResolver
}

// NewHitTester 创建悬停检测器
func NewHitTester(state *SessionState, resolver PointerResolver) *HitTester {
	return &HitTester{
		state:    state,
		resolver: resolver,
	}
}

// Test 用本帧的指针采样更新 PointerOverActive
func (h *HitTester) Test(sample PointerSample) {
	if !sample.Valid || h.resolver == nil {
		return
	}

	index, hit := h.resolver.ResolvePointerHit(sample.X, sample.Y, h.state.ActiveIndex)
	if hit && index == h.state.ActiveIndex {
		h.state.PointerOverActive = true
	}
}
