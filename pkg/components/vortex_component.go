package components

import "image/color"

// VortexItemComponent 洗牌漩涡中的一个名字
// 围绕漩涡中心旋入并淡出，循环播放
type VortexItemComponent struct {
	Name  string
	Index int
	// Delay 动画开始前的等待时间（秒），实现错峰
	Delay float64
	// Period 一次旋入的时长（秒）
	Period float64
	// Size 字号
	Size  float64
	Color color.NRGBA
	// Age 自漩涡出现以来的时间（秒）
	Age float64
}
