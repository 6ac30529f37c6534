package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个完整的界面（本应用只有抽奖主界面）
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上一帧的秒数
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口：场景在程序退出时保存需要持久化的数据
//
// 调用时机：窗口关闭、移动端进入后台。
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
