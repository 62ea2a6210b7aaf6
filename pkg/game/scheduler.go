package game

import (
	"fmt"
	"math/rand"
)

// maxResampleAttempts 拒绝采样的重试上限
// 超过上限后改为从补集中直接选取，保证循环有界
const maxResampleAttempts = 16

// IntervalTimer 固定周期重复计时器
//
// 由场景的 Update 以累积 deltaTime 的方式驱动，到期自动重新开始。
// Stop 之后不再触发。
type IntervalTimer struct {
	period  float64 // 周期（秒）
	elapsed float64 // 当前周期内已累积的时间
	stopped bool
}

// NewIntervalTimer 创建周期计时器
func NewIntervalTimer(period float64) *IntervalTimer {
	return &IntervalTimer{period: period}
}

// Advance 累积 deltaTime 并返回本次跨过的周期数
// 一帧卡顿跨过多个周期时会返回大于 1 的触发次数，确保不漏拍
func (t *IntervalTimer) Advance(deltaTime float64) int {
	if t.stopped || t.period <= 0 {
		return 0
	}

	t.elapsed += deltaTime
	fires := 0
	for t.elapsed >= t.period {
		t.elapsed -= t.period
		fires++
	}
	return fires
}

// Stop 取消计时器，之后 Advance 恒返回 0
func (t *IntervalTimer) Stop() {
	t.stopped = true
}

// Stopped 返回计时器是否已取消
func (t *IntervalTimer) Stopped() bool {
	return t.stopped
}

// RetargetScheduler 换目标调度器
//
// 两个互相独立的周期计时器驱动两个状态转移：
//   - nextTimer 到期：预选目标前进（旧预选恢复普通色，随机选出新的
//     预选目标并点亮为 PreSelected）
//   - activeTimer 到期：主目标前进（旧主目标恢复普通色，随机选出新的
//     主目标并点亮为 Active）
//
// 采样约束：
//   - 新预选目标 != 当前主目标
//   - 新主目标 != 旧主目标 且 != 当前预选目标
//
// 不变量：每次转移之后 ActiveIndex != NextIndex
type RetargetScheduler struct {
	state    *SessionState
	registry *TargetRegistry
	rng      *rand.Rand

	nextTimer   *IntervalTimer
	activeTimer *IntervalTimer
}

// NewRetargetScheduler 创建调度器并完成初始选择
//
// 初始选择：随机选出主目标并点亮为 Active；预选目标随机选出（不等于
// 主目标）但暂不点亮，第一个周期到期后才开始显示预选色。
//
// 参数：
//   - registry: 目标注册表，Count() 必须 > 2
//   - state: 会话状态，初始下标写入其中
//   - interval: 两个计时器共用的周期 T（秒）
//   - rng: 随机源，测试可传入固定种子实现确定性
//
// 返回：
//   - *RetargetScheduler: 调度器实例
//   - error: 目标数不足以满足采样约束时返回配置错误
func NewRetargetScheduler(registry *TargetRegistry, state *SessionState, interval float64, rng *rand.Rand) (*RetargetScheduler, error) {
	n := registry.Count()

	// N <= 2 时 activeTick 需要排除两个下标，拒绝采样永远无法满足
	if n <= 2 {
		return nil, fmt.Errorf("retarget scheduler requires more than 2 targets, got %d", n)
	}

	if interval <= 0 {
		return nil, fmt.Errorf("retarget interval must be positive, got %v", interval)
	}

	state.ActiveIndex = rng.Intn(n)
	state.NextIndex = pickExcluding(rng, n, state.ActiveIndex)
	state.PointerOverActive = false

	registry.Highlight(state.ActiveIndex, HighlightActive)

	return &RetargetScheduler{
		state:       state,
		registry:    registry,
		rng:         rng,
		nextTimer:   NewIntervalTimer(interval),
		activeTimer: NewIntervalTimer(interval),
	}, nil
}

// Advance 用帧间隔驱动两个计时器，按到期次数执行状态转移
func (s *RetargetScheduler) Advance(deltaTime float64) {
	for fires := s.nextTimer.Advance(deltaTime); fires > 0; fires-- {
		s.nextTick()
	}
	for fires := s.activeTimer.Advance(deltaTime); fires > 0; fires-- {
		s.activeTick()
	}
}

// Stop 取消两个计时器（进程退出前调用）
func (s *RetargetScheduler) Stop() {
	s.nextTimer.Stop()
	s.activeTimer.Stop()
}

// nextTick 预选目标前进
func (s *RetargetScheduler) nextTick() {
	s.registry.Highlight(s.state.NextIndex, HighlightNeutral)
	s.state.NextIndex = pickExcluding(s.rng, s.registry.Count(), s.state.ActiveIndex)
	s.registry.Highlight(s.state.NextIndex, HighlightPreSelected)
}

// activeTick 主目标前进
// 新主目标同时排除旧主目标和当前预选目标，保证每轮主目标必然移动
func (s *RetargetScheduler) activeTick() {
	s.registry.Highlight(s.state.ActiveIndex, HighlightNeutral)
	s.state.ActiveIndex = pickExcluding(s.rng, s.registry.Count(), s.state.ActiveIndex, s.state.NextIndex)
	s.registry.Highlight(s.state.ActiveIndex, HighlightActive)
}

// pickExcluding 从 [0, n) 中随机选取一个不在排除列表中的下标
//
// 先用拒绝采样（排除项最多两个，期望重试次数 O(1)），超过
// maxResampleAttempts 后退化为从补集中直接选取，保证有界。
// 调用方必须保证补集非空（n > len(exclude)）。
func pickExcluding(rng *rand.Rand, n int, exclude ...int) int {
	for attempt := 0; attempt < maxResampleAttempts; attempt++ {
		candidate := rng.Intn(n)
		if !containsIndex(exclude, candidate) {
			return candidate
		}
	}

	// 兜底：构造补集后等概率选取
	candidates := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !containsIndex(exclude, i) {
			candidates = append(candidates, i)
		}
	}
	return candidates[rng.Intn(len(candidates))]
}

// containsIndex 判断下标是否在列表中
func containsIndex(list []int, index int) bool {
	for _, v := range list {
		if v == index {
			return true
		}
	}
	return false
}
