package components

import "github.com/hajimehoshi/ebiten/v2/text/v2"

// TextInputComponent 多行文本输入框组件
// 用于编辑抽奖名单（每行一个名字）
type TextInputComponent struct {
	// Text 当前文本，行之间以 '\n' 分隔
	Text string

	Font       *text.GoTextFace
	Width      float64 // 输入框宽度（像素）
	Height     float64 // 输入框高度（像素）
	LineHeight float64 // 行高（像素）
	Padding    float64 // 内边距（像素）

	// 光标状态
	CursorVisible    bool    // 光标是否可见（闪烁效果）
	CursorBlinkTimer float64 // 光标闪烁计时器（秒）
	CursorPosition   int     // 光标位置（字符索引）

	// 输入限制
	MaxLength   int    // 最大字符数（0 = 无限制）
	Placeholder string // 占位符文本（输入框为空时显示）

	// IsFocused 是否获得焦点（接收键盘输入）
	IsFocused bool
	// Enabled 为 false 时只显示不编辑（抽奖进行中锁定名单）
	Enabled bool

	// ScrollLine 第一行可见行的行号（文本超出高度时滚动）
	ScrollLine int

	// OnChange 文本变化后回调
	OnChange func(text string)
}
