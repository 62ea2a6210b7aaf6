package game

import (
	"fmt"
	"time"
)

// EventKind 交互事件类型
type EventKind int

const (
	// EventFirstActivation 会话开始时第一个主目标出现（仅记录一次）
	EventFirstActivation EventKind = iota
	// EventClickInsideActive 点击时指针悬停在主目标上
	EventClickInsideActive
	// EventClickOutsideActive 点击时指针不在主目标上
	EventClickOutsideActive
)

// String 返回事件在数据文件里的外部名称（下游分析脚本依赖这些字符串）
func (k EventKind) String() string {
	switch k {
	case EventFirstActivation:
		return "firstRedAppears"
	case EventClickInsideActive:
		return "leftClkInsideRed"
	case EventClickOutsideActive:
		return "leftClkOutsideRed"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// ParseEventKind 把数据文件中的事件名解析回 EventKind
func ParseEventKind(s string) (EventKind, error) {
	switch s {
	case "firstRedAppears":
		return EventFirstActivation, nil
	case "leftClkInsideRed":
		return EventClickInsideActive, nil
	case "leftClkOutsideRed":
		return EventClickOutsideActive, nil
	default:
		return 0, fmt.Errorf("unknown event kind: %q", s)
	}
}

// InteractionEvent 单条交互记录
// 追加进日志后不可修改、不可删除
type InteractionEvent struct {
	Timestamp time.Time // 墙上时钟时间
	Kind      EventKind

	// SinceLastClick 距上一次任意点击的秒数，FirstActivation 事件为 nil
	SinceLastClick *float64

	// SinceLastInsideClick 距上一次命中点击的秒数，仅命中点击事件携带
	SinceLastInsideClick *float64
}

// timingSentinelOffset 计时游标的"远未来"哨兵偏移（99999 秒）
// 首次计算出的间隔必然为负，被钳到 0
const timingSentinelOffset = 99999 * time.Second

// TimingCursor 计时游标
// lastClick 在每次点击后更新；lastInsideClick 只在命中点击后更新
type TimingCursor struct {
	lastClick       time.Time
	lastInsideClick time.Time
}

// newTimingCursor 创建初始游标，两个时间戳都指向远未来
func newTimingCursor(now time.Time) TimingCursor {
	farFuture := now.Add(timingSentinelOffset)
	return TimingCursor{
		lastClick:       farFuture,
		lastInsideClick: farFuture,
	}
}

// SessionRecorder 交互事件记录器
//
// OnClick 由点击事件同步调用（帧驱动单线程，不存在并发点击）。
// 日志只追加，时间戳按调用顺序单调不减。
type SessionRecorder struct {
	state         *SessionState
	cursor        TimingCursor
	events        []InteractionEvent
	firstRecorded bool
}

// NewSessionRecorder 创建记录器
// now 用于初始化计时游标的哨兵值
func NewSessionRecorder(state *SessionState, now time.Time) *SessionRecorder {
	return &SessionRecorder{
		state:  state,
		cursor: newTimingCursor(now),
	}
}

// RecordFirstActivation 记录会话的首次主目标出现
// 只有第一次调用生效，重复调用被忽略
func (r *SessionRecorder) RecordFirstActivation(now time.Time) {
	if r.firstRecorded {
		return
	}
	r.firstRecorded = true

	r.events = append(r.events, InteractionEvent{
		Timestamp: now,
		Kind:      EventFirstActivation,
	})
}

// OnClick 处理一次点击
//
// 算法：
//  1. 读取当前 PointerOverActive
//  2. 计算距上次点击的间隔（负值钳到 0）并更新游标
//  3. 命中：追加 EventClickInsideActive（带两个间隔），更新命中游标，
//     并把 PointerOverActive 复位为 false
//  4. 未命中：追加 EventClickOutsideActive（只带总间隔）
//
// 返回追加的事件（方便调用方做音效等即时反馈）
func (r *SessionRecorder) OnClick(now time.Time) InteractionEvent {
	sinceClick := clampSeconds(now.Sub(r.cursor.lastClick))
	r.cursor.lastClick = now

	var event InteractionEvent
	if r.state.PointerOverActive {
		sinceInside := clampSeconds(now.Sub(r.cursor.lastInsideClick))
		r.cursor.lastInsideClick = now

		event = InteractionEvent{
			Timestamp:            now,
			Kind:                 EventClickInsideActive,
			SinceLastClick:       &sinceClick,
			SinceLastInsideClick: &sinceInside,
		}

		// 命中记录之后才解除悬停标记（粘滞语义的唯一复位点）
		r.state.PointerOverActive = false
	} else {
		event = InteractionEvent{
			Timestamp:      now,
			Kind:           EventClickOutsideActive,
			SinceLastClick: &sinceClick,
		}
	}

	r.events = append(r.events, event)
	return event
}

// Events 返回日志副本（调用方修改不影响内部存储）
func (r *SessionRecorder) Events() []InteractionEvent {
	events := make([]InteractionEvent, len(r.events))
	copy(events, r.events)
	return events
}

// Len 返回日志长度
func (r *SessionRecorder) Len() int {
	return len(r.events)
}

// clampSeconds 把间隔换算成秒并钳掉负值
// 防御时钟回拨或乱序带来的负间隔
func clampSeconds(d time.Duration) float64 {
	if d < 0 {
		return 0
	}
	return d.Seconds()
}
