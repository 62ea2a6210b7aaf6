package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., trainer field, result screen).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于支持场景在退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 玩家按 Escape 主动退出
//   - 游戏窗口被关闭
//
// 实现必须幂等：两个退出路径可能先后触发
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	// 返回 false 表示保存失败（但程序仍会正常退出）
	SaveOnExit() bool
}

// QuitRequester 是一个可选接口，场景用它向 App 申请退出进程
//
// ebiten 的主循环由 App.Update 的返回值终止，场景本身不能直接退出，
// 只能置位退出标记等 App 在当帧结束时处理
type QuitRequester interface {
	// QuitRequested 返回场景是否请求退出
	QuitRequested() bool
}
