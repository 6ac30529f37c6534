package utils

import (
	"strings"
	"testing"
)

// TestWrapText 测试文本换行功能
func TestWrapText(t *testing.T) {
	face := MustLoadFace(FontRegular, 20)

	tests := []struct {
		name      string
		input     string
		maxWidth  float64
		expectMin int // 期望最少的行数
		expectMax int
	}{
		{"短文本不换行", "Go Linus!", 1000, 1, 1},
		{"长文本自动换行", "Fortune favors the bold! Congratulations, Grace Hopper, the stars aligned tonight!", 200, 3, 10},
		{"保留段落", "first\nsecond", 1000, 2, 2},
		{"超长单词强制断行", strings.Repeat("W", 60), 200, 2, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := WrapText(tt.input, face, tt.maxWidth)
			if len(lines) < tt.expectMin || len(lines) > tt.expectMax {
				t.Fatalf("got %d lines %q, want %d..%d", len(lines), lines, tt.expectMin, tt.expectMax)
			}
			for _, line := range lines {
				if w := MeasureText(line, face); w > tt.maxWidth {
					t.Errorf("line %q is %.1fpx wide, max %.1f", line, w, tt.maxWidth)
				}
			}
		})
	}
}

// TestWrapTextKeepsWords 按单词换行时不丢失也不拆分单词
func TestWrapTextKeepsWords(t *testing.T) {
	face := MustLoadFace(FontRegular, 20)
	input := "The spotlight is on you, Ada Lovelace, first programmer of all time!"

	lines := WrapText(input, face, 220)
	if got := strings.Join(lines, " "); got != input {
		t.Errorf("rejoined text = %q, want %q", got, input)
	}
}

func TestWrapTextNoFace(t *testing.T) {
	lines := WrapText("anything at all", nil, 10)
	if len(lines) != 1 || lines[0] != "anything at all" {
		t.Errorf("WrapText without face = %q", lines)
	}
}

func TestLoadFace(t *testing.T) {
	for _, style := range []FontStyle{FontRegular, FontBold, FontMono} {
		face, err := LoadFace(style, 16)
		if err != nil {
			t.Fatalf("LoadFace(%d) error: %v", style, err)
		}
		if face.Source == nil || face.Size != 16 {
			t.Errorf("LoadFace(%d) = %+v", style, face)
		}
	}
}
