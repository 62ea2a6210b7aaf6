package game

import (
	"fmt"

	"github.com/decker502/reflex/pkg/config"
)

// HighlightState 目标的高亮状态
type HighlightState int

const (
	// HighlightNeutral 普通状态（蓝色）
	HighlightNeutral HighlightState = iota
	// HighlightActive 当前主目标（红色），玩家应尽快点击
	HighlightActive
	// HighlightPreSelected 预选目标（黄色），下一轮将成为主目标的预告
	HighlightPreSelected
)

// String 返回状态的可读名称
func (s HighlightState) String() string {
	switch s {
	case HighlightNeutral:
		return "Neutral"
	case HighlightActive:
		return "Active"
	case HighlightPreSelected:
		return "PreSelected"
	default:
		return fmt.Sprintf("HighlightState(%d)", int(s))
	}
}

// Target 单个可点击目标
// 目标集合在会话开始时一次性创建，之后不增不减
type Target struct {
	Index  int            // 稳定下标，[0, N)
	X, Y   float64        // 圆心坐标（逻辑屏幕）
	Radius float64        // 圆半径
	State  HighlightState // 当前高亮状态
}

// Contains 判断点 (px, py) 是否落在目标的圆形占位内
func (t *Target) Contains(px, py float64) bool {
	dx := px - t.X
	dy := py - t.Y
	return dx*dx+dy*dy <= t.Radius*t.Radius
}

// Highlighter 表现层高亮回调
// 注册表只负责记录状态并转发，真正的视觉变化由表现层（场景）完成
type Highlighter interface {
	// SetHighlight 更新目标的外观
	SetHighlight(index int, state HighlightState)
}

// TargetRegistry 目标注册表
//
// 职责：
//   - 持有固定的 N 个目标及其高亮状态
//   - 按下标查找目标
//   - 高亮变化时委托给表现层的 Highlighter
//
// 除下标越界检查外不做任何业务校验
type TargetRegistry struct {
	targets     []Target
	highlighter Highlighter // 可为 nil（测试或无界面模式）
}

// NewTargetRegistry 根据配置布局创建目标注册表
// 所有目标初始为 HighlightNeutral
func NewTargetRegistry(cfg *config.TrainerConfig, highlighter Highlighter) *TargetRegistry {
	targets := make([]Target, len(cfg.Positions))
	for i, pos := range cfg.Positions {
		targets[i] = Target{
			Index:  i,
			X:      pos.X,
			Y:      pos.Y,
			Radius: cfg.TargetRadius,
			State:  HighlightNeutral,
		}
	}

	return &TargetRegistry{
		targets:     targets,
		highlighter: highlighter,
	}
}

// Count 返回目标数量 N
func (r *TargetRegistry) Count() int {
	return len(r.targets)
}

// Get 按下标返回目标
//
// 返回：
//   - *Target: 目标指针（指向注册表内部存储）
//   - error: 下标越界时返回错误
func (r *TargetRegistry) Get(index int) (*Target, error) {
	if index < 0 || index >= len(r.targets) {
		return nil, fmt.Errorf("target index %d out of range [0,%d)", index, len(r.targets))
	}
	return &r.targets[index], nil
}

// Highlight 设置目标的高亮状态
//
// 副作用：通过 Highlighter 更新目标的外观
//
// 返回：
//   - error: 下标越界时返回错误
func (r *TargetRegistry) Highlight(index int, state HighlightState) error {
	if index < 0 || index >= len(r.targets) {
		return fmt.Errorf("target index %d out of range [0,%d)", index, len(r.targets))
	}

	r.targets[index].State = state
	if r.highlighter != nil {
		r.highlighter.SetHighlight(index, state)
	}
	return nil
}
