package systems

import (
	"log"
	"strings"

	"github.com/gonewx/novadraw/pkg/components"
	"github.com/gonewx/novadraw/pkg/ecs"
	"github.com/gonewx/novadraw/pkg/utils"
)

// cursorBlinkInterval 光标闪烁间隔（秒）
const cursorBlinkInterval = 0.5

// TextInputSystem 文本输入系统
// 处理多行输入框的键盘编辑、指针聚焦和光标闪烁
//
// Enter 插入换行；Ctrl+Enter 留给场景作为快捷键，不修改文本。
type TextInputSystem struct {
	entityManager *ecs.EntityManager
	keyboard      func() utils.KeyboardInput
	pointer       func() utils.PointerInput
}

// NewTextInputSystem 创建文本输入系统；输入源为 nil 时读取真实输入
func NewTextInputSystem(em *ecs.EntityManager, keyboard func() utils.KeyboardInput, pointer func() utils.PointerInput) *TextInputSystem {
	if keyboard == nil {
		keyboard = utils.PollKeyboard
	}
	if pointer == nil {
		pointer = utils.PollPointer
	}
	return &TextInputSystem{
		entityManager: em,
		keyboard:      keyboard,
		pointer:       pointer,
	}
}

// Update 更新文本输入系统
func (s *TextInputSystem) Update(deltaTime float64) {
	in := s.pointer()
	keys := s.keyboard()

	entities := ecs.GetEntitiesWith2[*components.TextInputComponent, *components.PositionComponent](s.entityManager)
	for _, entityID := range entities {
		input, _ := ecs.GetComponent[*components.TextInputComponent](s.entityManager, entityID)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, entityID)

		if in.JustPressed {
			inside := ButtonContains(pos.X, pos.Y, input.Width, input.Height, float64(in.X), float64(in.Y))
			if inside && input.Enabled && !input.IsFocused {
				input.IsFocused = true
				showCursor(input)
			}
		}

		if !input.IsFocused || !input.Enabled {
			input.CursorVisible = false
			continue
		}

		s.updateCursorBlink(input, deltaTime)
		s.Apply(input, keys)
	}
}

// updateCursorBlink 更新光标闪烁状态
func (s *TextInputSystem) updateCursorBlink(input *components.TextInputComponent, deltaTime float64) {
	input.CursorBlinkTimer += deltaTime
	if input.CursorBlinkTimer >= cursorBlinkInterval {
		input.CursorBlinkTimer = 0
		input.CursorVisible = !input.CursorVisible
	}
}

// Apply 把一帧键盘输入应用到输入框，返回文本是否改变
func (s *TextInputSystem) Apply(input *components.TextInputComponent, keys utils.KeyboardInput) bool {
	before := input.Text
	clampCursor(input)

	if len(keys.Chars) > 0 {
		insertText(input, string(keys.Chars))
	}
	if keys.Enter && !keys.Ctrl {
		insertText(input, "\n")
	}
	if keys.Backspace {
		deleteCharBefore(input)
	}
	if keys.Delete {
		deleteCharAfter(input)
	}
	if keys.Left && input.CursorPosition > 0 {
		input.CursorPosition--
	}
	if keys.Right && input.CursorPosition < len([]rune(input.Text)) {
		input.CursorPosition++
	}
	if keys.Up {
		moveCursorVertical(input, -1)
	}
	if keys.Down {
		moveCursorVertical(input, 1)
	}
	if keys.Home {
		line, _ := CursorLineColumn(input.Text, input.CursorPosition)
		input.CursorPosition = lineStart(input.Text, line)
	}
	if keys.End {
		line, _ := CursorLineColumn(input.Text, input.CursorPosition)
		input.CursorPosition = lineStart(input.Text, line) + len([]rune(lineAt(input.Text, line)))
	}

	if hasEdit(keys) {
		showCursor(input)
	}
	scrollToCursor(input)

	changed := input.Text != before
	if changed && input.OnChange != nil {
		input.OnChange(input.Text)
	}
	return changed
}

// SetText 替换全部文本，光标移到末尾
func (s *TextInputSystem) SetText(input *components.TextInputComponent, value string) {
	input.Text = value
	input.CursorPosition = len([]rune(value))
	scrollToCursor(input)
	if input.OnChange != nil {
		input.OnChange(value)
	}
}

func hasEdit(keys utils.KeyboardInput) bool {
	return len(keys.Chars) > 0 || keys.Enter || keys.Backspace || keys.Delete ||
		keys.Left || keys.Right || keys.Up || keys.Down || keys.Home || keys.End
}

// showCursor 编辑时光标立即可见并重新开始闪烁
func showCursor(input *components.TextInputComponent) {
	input.CursorBlinkTimer = 0
	input.CursorVisible = true
}

func clampCursor(input *components.TextInputComponent) {
	n := len([]rune(input.Text))
	if input.CursorPosition > n {
		input.CursorPosition = n
	}
	if input.CursorPosition < 0 {
		input.CursorPosition = 0
	}
}

// insertText 在光标位置插入文本，超过最大长度时截断
func insertText(input *components.TextInputComponent, value string) {
	newRunes := []rune(value)
	runes := []rune(input.Text)
	if input.MaxLength > 0 {
		room := input.MaxLength - len(runes)
		if room <= 0 {
			log.Printf("[TextInputSystem] Reached max length (%d chars)", input.MaxLength)
			return
		}
		if len(newRunes) > room {
			newRunes = newRunes[:room]
		}
	}

	result := make([]rune, 0, len(runes)+len(newRunes))
	result = append(result, runes[:input.CursorPosition]...)
	result = append(result, newRunes...)
	result = append(result, runes[input.CursorPosition:]...)

	input.Text = string(result)
	input.CursorPosition += len(newRunes)
}

// deleteCharBefore 删除光标前的字符（退格）
func deleteCharBefore(input *components.TextInputComponent) {
	if input.CursorPosition == 0 {
		return
	}
	runes := []rune(input.Text)
	input.Text = string(append(runes[:input.CursorPosition-1:input.CursorPosition-1], runes[input.CursorPosition:]...))
	input.CursorPosition--
}

// deleteCharAfter 删除光标后的字符（Delete 键）
func deleteCharAfter(input *components.TextInputComponent) {
	runes := []rune(input.Text)
	if input.CursorPosition >= len(runes) {
		return
	}
	input.Text = string(append(runes[:input.CursorPosition:input.CursorPosition], runes[input.CursorPosition+1:]...))
}

// moveCursorVertical 光标上下移动一行，列号超出目标行长度时停在行尾
func moveCursorVertical(input *components.TextInputComponent, delta int) {
	line, col := CursorLineColumn(input.Text, input.CursorPosition)
	target := line + delta
	lines := strings.Split(input.Text, "\n")
	if target < 0 || target >= len(lines) {
		return
	}
	input.CursorPosition = lineStart(input.Text, target) + min(col, len([]rune(lines[target])))
}

// CursorLineColumn 返回字符索引所在的行号与列号（均从 0 开始）
func CursorLineColumn(value string, position int) (line, col int) {
	for i, r := range []rune(value) {
		if i >= position {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return line, col
}

// lineStart 返回第 line 行首字符的索引
func lineStart(value string, line int) int {
	if line <= 0 {
		return 0
	}
	for i, r := range []rune(value) {
		if r == '\n' {
			line--
			if line == 0 {
				return i + 1
			}
		}
	}
	return len([]rune(value))
}

func lineAt(value string, line int) string {
	lines := strings.Split(value, "\n")
	if line < 0 || line >= len(lines) {
		return ""
	}
	return lines[line]
}

// VisibleLines 输入框可容纳的行数
func VisibleLines(input *components.TextInputComponent) int {
	if input.LineHeight <= 0 {
		return 1
	}
	n := int((input.Height - 2*input.Padding) / input.LineHeight)
	return max(n, 1)
}

// scrollToCursor 调整 ScrollLine 使光标所在行可见
func scrollToCursor(input *components.TextInputComponent) {
	line, _ := CursorLineColumn(input.Text, input.CursorPosition)
	visible := VisibleLines(input)
	if line < input.ScrollLine {
		input.ScrollLine = line
	}
	if line >= input.ScrollLine+visible {
		input.ScrollLine = line - visible + 1
	}
	total := strings.Count(input.Text, "\n") + 1
	if input.ScrollLine > max(total-visible, 0) {
		input.ScrollLine = max(total-visible, 0)
	}
}
