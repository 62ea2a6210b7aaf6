// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 存储当前帧的指针状态
// 用于统一处理鼠标和触摸输入
type PointerState struct {
	// X, Y 指针位置（逻辑屏幕坐标）
	X, Y int
	// Valid 位置是否有效（指针在逻辑屏幕范围内）
	Valid bool
	// JustPressed 本帧是否刚刚发生点击/触摸
	JustPressed bool
}

// GetPointerState 获取当前帧的指针状态
//
// 同时支持鼠标和触摸输入，优先检测触摸。
// width/height 是逻辑屏幕尺寸，位置落在范围外时 Valid 为 false
// （对应指针移出窗口、ebiten 仍返回越界坐标的情况）。
func GetPointerState(width, height int) PointerState {
	state := PointerState{}

	// 首先检查触摸输入（移动设备）
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		state.JustPressed = true
		state.X, state.Y = ebiten.TouchPosition(touchIDs[0])
		state.Valid = InBounds(state.X, state.Y, width, height)
		return state
	}

	// 检查是否有活动的触摸（用于悬停检测）
	allTouchIDs := ebiten.AppendTouchIDs(nil)
	if len(allTouchIDs) > 0 {
		state.X, state.Y = ebiten.TouchPosition(allTouchIDs[0])
		state.Valid = InBounds(state.X, state.Y, width, height)
		return state
	}

	// 其次检查鼠标输入（桌面设备）
	state.X, state.Y = ebiten.CursorPosition()
	state.Valid = InBounds(state.X, state.Y, width, height)
	state.JustPressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	return state
}

// IsQuitJustPressed 检查本帧是否按下退出键（Escape）
func IsQuitJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// InBounds 判断坐标是否落在 [0,width) x [0,height) 范围内
func InBounds(x, y, width, height int) bool {
	return x >= 0 && x < width && y >= 0 && y < height
}
