package utils

import (
	"strings"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
//
// 换行规则：
//   - 优先在空白处断行
//   - 单个单词超过最大宽度时按字符强制断行
//   - 原文中的换行符保留为段落分隔
//
// face 为 nil 或 maxWidth <= 0 时不换行。
func WrapText(textStr string, face *text.GoTextFace, maxWidth float64) []string {
	if face == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, face, maxWidth)...)
	}
	return lines
}

func wrapParagraph(paragraph string, face *text.GoTextFace, maxWidth float64) []string {
	words := strings.FieldsFunc(paragraph, unicode.IsSpace)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if MeasureText(candidate, face) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}
		// 单词本身超宽：按字符切开，最后一段留在当前行继续拼接
		if MeasureText(word, face) > maxWidth {
			pieces := breakWord(word, face, maxWidth)
			lines = append(lines, pieces[:len(pieces)-1]...)
			current = pieces[len(pieces)-1]
			continue
		}
		current = word
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// breakWord 按字符把超宽单词切成若干段
func breakWord(word string, face *text.GoTextFace, maxWidth float64) []string {
	var pieces []string
	current := ""
	for _, r := range word {
		candidate := current + string(r)
		if current != "" && MeasureText(candidate, face) > maxWidth {
			pieces = append(pieces, current)
			current = string(r)
			continue
		}
		current = candidate
	}
	return append(pieces, current)
}

// MeasureText 测量单行文本宽度
func MeasureText(textStr string, face *text.GoTextFace) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}
