package config

// 布局配置常量
// 所有坐标都是逻辑分辨率下的屏幕坐标，窗口缩放由 Ebitengine 的 Layout 处理

// 逻辑分辨率
const (
	ScreenWidth  = 960
	ScreenHeight = 720
)

// 标题区
const (
	HeaderY        = 64.0
	HeaderFontSize = 44.0
	TaglineY       = 104.0
)

// Idle：名单输入区
const (
	RegistryLabelY  = 150.0
	InputX          = 180.0
	InputY          = 170.0
	InputWidth      = 600.0
	InputHeight     = 330.0
	InputFontSize   = 18.0
	InputLineHeight = 26.0
	InputPadding    = 14.0
	CounterY        = 522.0

	StartButtonWidth  = 300.0
	StartButtonHeight = 64.0
	StartButtonY      = 570.0
)

// Shuffling：漩涡
const (
	VortexCenterY = 380.0
	VortexRadius  = 230.0
	ScanCaptionY  = 640.0
)

// Scratching / Revealed：结果区
const (
	OutcomeTitleY = 150.0
	OutcomeBadgeY = 182.0
	CardTopY      = 220.0
	WinnerFontSz  = 40.0
	FortuneY      = 520.0
	FortuneWidth  = 620.0
	FortuneFontSz = 20.0

	ResetButtonWidth  = 240.0
	ResetButtonHeight = 56.0
	ResetButtonY      = 620.0
)

// CardRect 返回刮刮卡在屏幕上的显示矩形（水平居中）
func CardRect(cardW, cardH int) (x, y, w, h float64) {
	w, h = float64(cardW), float64(cardH)
	return (ScreenWidth - w) / 2, CardTopY, w, h
}

// CenteredButtonRect 返回水平居中的按钮矩形
func CenteredButtonRect(width, height, y float64) (x, top, w, h float64) {
	return (ScreenWidth - width) / 2, y, width, height
}
