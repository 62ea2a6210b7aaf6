package game

// SessionState 一次训练会话的共享可变状态
//
// 会话期间会变化的字段收敛为单个对象，由场景持有并显式传给各个
// 子模块。所有修改都发生在 ebiten 的 Update 回调里（单线程
// 串行），因此不需要加锁；如果未来引入并发调用方，必须为本结构和
// 事件日志加互斥保护。
//
// 字段分工：
//   - ActiveIndex / NextIndex 只由 RetargetScheduler 修改
//   - PointerOverActive 由 HitTester 置位、由 SessionRecorder 在
//     命中点击后复位
type SessionState struct {
	ActiveIndex       int  // 当前主目标下标
	NextIndex         int  // 预选目标下标，恒不等于 ActiveIndex
	PointerOverActive bool // 指针是否悬停在主目标上（粘滞，见 HitTester）
}
