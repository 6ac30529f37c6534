package game

// DrawState 抽奖流程所处阶段
type DrawState int

const (
	// DrawStateIdle 编辑名单，等待开始
	DrawStateIdle DrawState = iota
	// DrawStateShuffling 已选出中奖者，播放洗牌动画并等待祝福语
	DrawStateShuffling
	// DrawStateScratching 刮刮卡覆盖中奖者姓名
	DrawStateScratching
	// DrawStateRevealed 已揭晓
	DrawStateRevealed
)

// String 返回状态的大写名称（日志与界面共用）
func (s DrawState) String() string {
	switch s {
	case DrawStateIdle:
		return "IDLE"
	case DrawStateShuffling:
		return "SHUFFLING"
	case DrawStateScratching:
		return "SCRATCHING"
	case DrawStateRevealed:
		return "REVEALED"
	default:
		return "UNKNOWN"
	}
}

// WinnerRecord 本轮中奖记录
type WinnerRecord struct {
	Name string
	// Fortune 祝福语，同一轮的请求返回前为 nil
	Fortune *string
}
