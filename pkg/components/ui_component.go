package components

// UIState UI 元素的交互状态
type UIState int

const (
	// UINormal 默认状态
	UINormal UIState = iota
	// UIHovered 指针悬停
	UIHovered
	// UIClicked 按下未抬起
	UIClicked
	// UIDisabled 禁用
	UIDisabled
)
