package utils

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// FontStyle 界面字体风格
type FontStyle int

const (
	FontRegular FontStyle = iota
	FontBold
	FontMono
)

var (
	fontOnce    sync.Once
	fontSources map[FontStyle]*text.GoTextFaceSource
	fontErr     error
)

// loadFontSources 解析内置的 Go 字体（只做一次）
func loadFontSources() {
	fontOnce.Do(func() {
		fontSources = make(map[FontStyle]*text.GoTextFaceSource, 3)
		for style, ttf := range map[FontStyle][]byte{
			FontRegular: goregular.TTF,
			FontBold:    gobold.TTF,
			FontMono:    gomono.TTF,
		} {
			src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
			if err != nil {
				fontErr = fmt.Errorf("failed to load font style %d: %w", style, err)
				return
			}
			fontSources[style] = src
		}
	})
}

// LoadFace 返回指定风格与字号的字体
func LoadFace(style FontStyle, size float64) (*text.GoTextFace, error) {
	loadFontSources()
	if fontErr != nil {
		return nil, fontErr
	}
	return &text.GoTextFace{Source: fontSources[style], Size: size}, nil
}

// MustLoadFace 同 LoadFace，失败时 panic（内置字体解析失败属于构建错误）
func MustLoadFace(style FontStyle, size float64) *text.GoTextFace {
	face, err := LoadFace(style, size)
	if err != nil {
		panic(err)
	}
	return face
}
