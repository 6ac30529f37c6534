package components

// TimerComponent 通用循环计时器
// 用于周期性行为（如闪光粒子的生成判定）
type TimerComponent struct {
	Name        string  // 计时器名称，如 "sparkle_tick"
	TargetTime  float64 // 周期（秒）
	CurrentTime float64 // 当前周期内已过时间（秒）
	IsReady     bool    // 本帧是否至少完成了一个周期
}
