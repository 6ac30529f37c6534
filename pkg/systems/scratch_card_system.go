package systems

import (
	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
	"github.com/gonewx/novadraw/pkg/utils"
)

// ScratchCardSystem 刮刮卡交互系统
//
// 职责：
//   - 把指针手势转换为 RevealSurface 的 Begin/Continue/EndStroke（视口 → 位图坐标）
//   - 每帧调用 Surface.Tick 补做限频推迟的覆盖率检测
//   - 揭晓后推进遮罩淡出
//
// 指针离开卡面即结束当前笔画；按住重新进入不会续上，必须重新按下。
type ScratchCardSystem struct {
	entityManager *ecs.EntityManager
	pointer       func() utils.PointerInput
	// onScratch 每次擦除时以视口坐标回调（用于迸出火花），可为 nil
	onScratch func(x, y float64)
}

// NewScratchCardSystem 创建刮刮卡交互系统；pointer 为 nil 时读取真实输入
func NewScratchCardSystem(em *ecs.EntityManager, pointer func() utils.PointerInput, onScratch func(x, y float64)) *ScratchCardSystem {
	if pointer == nil {
		pointer = utils.PollPointer
	}
	return &ScratchCardSystem{
		entityManager: em,
		pointer:       pointer,
		onScratch:     onScratch,
	}
}

// Update 处理指针输入并推进淡出
func (s *ScratchCardSystem) Update(deltaTime float64) {
	in := s.pointer()

	for _, id := range ecs.GetEntitiesWith1[*components.ScratchCardComponent](s.entityManager) {
		card, _ := ecs.GetComponent[*components.ScratchCardComponent](s.entityManager, id)
		if card.Surface == nil || !card.Surface.Initialized() {
			continue
		}

		if card.Fading {
			card.FadeElapsed += deltaTime
		}

		if !card.Interactive || card.Fading {
			card.Surface.EndStroke()
			continue
		}

		s.applyPointer(card, in)
		card.Surface.Tick()
	}
}

// applyPointer 根据一帧指针快照驱动笔画
func (s *ScratchCardSystem) applyPointer(card *components.ScratchCardComponent, in utils.PointerInput) {
	surface := card.Surface
	vx, vy := float64(in.X), float64(in.Y)
	inside := card.Display.Contains(vx, vy)

	switch {
	case in.JustPressed && inside:
		rx, ry := surface.ToRaster(vx, vy, card.Display)
		surface.BeginStroke(rx, ry)
		s.scratched(vx, vy)
	case in.Pressed && surface.IsStroking():
		if !inside {
			surface.EndStroke()
			return
		}
		rx, ry := surface.ToRaster(vx, vy, card.Display)
		if cx, cy, ok := surface.Cursor(); ok && cx == rx && cy == ry {
			return
		}
		surface.ContinueStroke(rx, ry)
		s.scratched(vx, vy)
	case !in.Pressed && surface.IsStroking():
		surface.EndStroke()
	}
}

func (s *ScratchCardSystem) scratched(x, y float64) {
	if s.onScratch != nil {
		s.onScratch(x, y)
	}
}

// StartFade 开始遮罩淡出并停止接受输入
func StartFade(card *components.ScratchCardComponent, duration float64) {
	card.Fading = true
	card.FadeElapsed = 0
	card.FadeDuration = duration
	card.Interactive = false
	card.Surface.EndStroke()
}
