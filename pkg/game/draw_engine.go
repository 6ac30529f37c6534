package game

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// DefaultPresentationDelay 洗牌动画的最短展示时长（秒）
const DefaultPresentationDelay = 4.0

// HypeFetcher 祝福语来源
// FetchHype 永不失败：任何错误都由实现方转换为兜底文案
type HypeFetcher interface {
	FetchHype(ctx context.Context, name string) string
}

// DrawEngine 抽奖状态机
//
// 状态流转：
//
//	Idle --StartDraw--> Shuffling --(延时结束 且 祝福语到达)--> Scratching
//	Scratching --OnSurfaceRevealed--> Revealed
//	任意状态 --Reset--> Idle
//
// 非法操作静默忽略。所有方法必须在调度器所在的主循环上调用。
type DrawEngine struct {
	scheduler *Scheduler
	hype      HypeFetcher
	rng       RandomSource

	presentationDelay float64

	state      DrawState
	winner     *WinnerRecord
	lastWinner string // 上一轮中奖者，Reset 后仍保留；空串表示尚无

	// 当前一轮的标识；异步结果与定时器都携带它，不匹配即丢弃
	drawID uuid.UUID

	delayTimer   TimerID
	delayElapsed bool
	fetched      bool
	cancelFetch  context.CancelFunc

	listeners []func(prev, next DrawState)
}

// NewDrawEngine 创建抽奖引擎
//
// 参数：
//   - scheduler: 主循环调度器
//   - hype: 祝福语来源
//   - rng: 随机源，nil 表示默认随机源
//   - presentationDelay: 洗牌展示时长（秒），<= 0 使用默认值
func NewDrawEngine(scheduler *Scheduler, hype HypeFetcher, rng RandomSource, presentationDelay float64) *DrawEngine {
	if rng == nil {
		rng = NewRandomSource()
	}
	if presentationDelay <= 0 {
		presentationDelay = DefaultPresentationDelay
	}
	return &DrawEngine{
		scheduler:         scheduler,
		hype:              hype,
		rng:               rng,
		presentationDelay: presentationDelay,
		state:             DrawStateIdle,
	}
}

// OnStateChange 注册状态变化监听器
func (e *DrawEngine) OnStateChange(fn func(prev, next DrawState)) {
	e.listeners = append(e.listeners, fn)
}

// State 返回当前状态
func (e *DrawEngine) State() DrawState {
	return e.state
}

// Winner 返回本轮中奖记录的副本；Idle 时 ok 为 false
func (e *DrawEngine) Winner() (WinnerRecord, bool) {
	if e.winner == nil {
		return WinnerRecord{}, false
	}
	return *e.winner, true
}

// LastWinner 返回最近一次选出的名字（跨轮保留）
func (e *DrawEngine) LastWinner() (string, bool) {
	return e.lastWinner, e.lastWinner != ""
}

// DrawID 返回当前一轮的标识；未在抽奖中时为 uuid.Nil
func (e *DrawEngine) DrawID() uuid.UUID {
	return e.drawID
}

// StartDraw 从名单中选出中奖者并进入 Shuffling
//
// 仅在 Idle 且名单至少 2 人时生效，返回是否开始了新一轮。
// 选中的名字与上一轮相同时顺移一位（只移一次，名单中有重复名字时仍可能连中）。
func (e *DrawEngine) StartDraw(roster []string) bool {
	if e.state != DrawStateIdle {
		log.Printf("[DrawEngine] StartDraw ignored in state %s", e.state)
		return false
	}
	if len(roster) < 2 {
		log.Printf("[DrawEngine] StartDraw ignored: roster has %d entries", len(roster))
		return false
	}

	idx := e.rng.Intn(len(roster))
	if e.lastWinner != "" && roster[idx] == e.lastWinner {
		idx = (idx + 1) % len(roster)
	}
	name := roster[idx]

	e.winner = &WinnerRecord{Name: name}
	e.lastWinner = name
	e.drawID = uuid.New()
	e.delayElapsed = false
	e.fetched = false

	log.Printf("[DrawEngine] Draw %s: selected index %d of %d", e.drawID, idx, len(roster))
	e.setState(DrawStateShuffling)

	e.startFetch(e.drawID, name)
	id := e.drawID
	e.delayTimer = e.scheduler.After(e.presentationDelay, func() {
		e.onDelayElapsed(id)
	})
	return true
}

// startFetch 在后台请求祝福语，结果回到主循环后按 DrawID 校验
func (e *DrawEngine) startFetch(id uuid.UUID, name string) {
	ctx, cancel := context.WithCancel(context.Background())
	e.cancelFetch = cancel

	var fortune string
	e.scheduler.Go(
		func() { fortune = e.hype.FetchHype(ctx, name) },
		func() {
			cancel()
			e.onFortune(id, fortune)
		},
	)
}

func (e *DrawEngine) onDelayElapsed(id uuid.UUID) {
	if id != e.drawID || e.state != DrawStateShuffling {
		return
	}
	e.delayTimer = 0
	e.delayElapsed = true
	e.maybeStartScratching()
}

func (e *DrawEngine) onFortune(id uuid.UUID, fortune string) {
	if id != e.drawID || e.winner == nil {
		log.Printf("[DrawEngine] Discarding stale hype result for draw %s", id)
		return
	}
	e.winner.Fortune = &fortune
	e.fetched = true
	e.cancelFetch = nil
	e.maybeStartScratching()
}

func (e *DrawEngine) maybeStartScratching() {
	if e.state == DrawStateShuffling && e.delayElapsed && e.fetched {
		e.setState(DrawStateScratching)
	}
}

// OnSurfaceRevealed 刮刮卡揭晓回调：Scratching → Revealed，其他状态忽略
func (e *DrawEngine) OnSurfaceRevealed() {
	if e.state != DrawStateScratching {
		return
	}
	e.setState(DrawStateRevealed)
}

// Reset 回到 Idle：清空本轮记录并取消未完成的延时与请求，保留上一轮中奖者
func (e *DrawEngine) Reset() {
	if e.delayTimer != 0 {
		e.scheduler.Cancel(e.delayTimer)
		e.delayTimer = 0
	}
	if e.cancelFetch != nil {
		e.cancelFetch()
		e.cancelFetch = nil
	}
	e.winner = nil
	e.drawID = uuid.Nil
	e.delayElapsed = false
	e.fetched = false

	if e.state != DrawStateIdle {
		e.setState(DrawStateIdle)
	}
}

func (e *DrawEngine) setState(next DrawState) {
	prev := e.state
	e.state = next
	log.Printf("[DrawEngine] %s -> %s", prev, next)
	for _, fn := range e.listeners {
		fn(prev, next)
	}
}
