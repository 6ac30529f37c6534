package components

// PositionComponent 实体在屏幕上的位置（逻辑坐标）
type PositionComponent struct {
	X, Y float64
}
