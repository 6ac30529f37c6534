// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerInput 一帧内的指针状态（鼠标左键或第一个触点）
//
// 系统只依赖这个快照而不直接读取 ebiten，测试时可以构造任意输入序列。
type PointerInput struct {
	// X, Y 指针位置（逻辑坐标）；触点抬起那一帧为最后一次触摸位置
	X, Y int
	// Pressed 本帧是否处于按下状态
	Pressed bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚抬起
	JustReleased bool
	// Touch 是否来自触摸屏
	Touch bool
}

// 保存最后一次触摸位置（触点抬起那一帧 TouchPosition 已无效）
var lastTouchX, lastTouchY int

// PollPointer 读取当前帧的指针状态，触摸优先于鼠标
func PollPointer() PointerInput {
	if ids := ebiten.AppendTouchIDs(nil); len(ids) > 0 {
		x, y := ebiten.TouchPosition(ids[0])
		lastTouchX, lastTouchY = x, y
		return PointerInput{
			X:           x,
			Y:           y,
			Pressed:     true,
			JustPressed: inpututil.TouchPressDuration(ids[0]) == 1,
			Touch:       true,
		}
	}

	if released := inpututil.AppendJustReleasedTouchIDs(nil); len(released) > 0 {
		return PointerInput{X: lastTouchX, Y: lastTouchY, JustReleased: true, Touch: true}
	}

	x, y := ebiten.CursorPosition()
	return PointerInput{
		X:            x,
		Y:            y,
		Pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// KeyboardInput 一帧内与编辑相关的键盘状态
type KeyboardInput struct {
	// Chars 本帧输入的字符
	Chars []rune
	// 以下按键支持按住连发
	Backspace, Delete            bool
	Left, Right, Up, Down, Enter bool
	// 以下按键只在按下瞬间触发
	Home, End bool
	// Ctrl 是否按住 Control（macOS 上也接受 Command）
	Ctrl bool
	// ToggleEffects F2 刚按下
	ToggleEffects bool
}

// PollKeyboard 读取当前帧的键盘状态
func PollKeyboard() KeyboardInput {
	return KeyboardInput{
		Chars:     ebiten.AppendInputChars(nil),
		Backspace: IsKeyRepeating(ebiten.KeyBackspace),
		Delete:    IsKeyRepeating(ebiten.KeyDelete),
		Left:      IsKeyRepeating(ebiten.KeyArrowLeft),
		Right:     IsKeyRepeating(ebiten.KeyArrowRight),
		Up:        IsKeyRepeating(ebiten.KeyArrowUp),
		Down:      IsKeyRepeating(ebiten.KeyArrowDown),
		Enter:     IsKeyRepeating(ebiten.KeyEnter) || IsKeyRepeating(ebiten.KeyNumpadEnter),
		Home:      inpututil.IsKeyJustPressed(ebiten.KeyHome),
		End:       inpututil.IsKeyJustPressed(ebiten.KeyEnd),
		Ctrl:      ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta),

		ToggleEffects: inpututil.IsKeyJustPressed(ebiten.KeyF2),
	}
}

// IsKeyRepeating 按下第 1 帧触发，按住 30 帧后每 3 帧触发一次
func IsKeyRepeating(key ebiten.Key) bool {
	return RepeatTriggered(inpututil.KeyPressDuration(key))
}

// RepeatTriggered 按住连发规则（duration 为已按住的帧数）
func RepeatTriggered(duration int) bool {
	return duration == 1 || (duration >= 30 && duration%3 == 0)
}
