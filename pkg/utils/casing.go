package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DisplayName 把名字转换为界面展示用的大写形式
// 使用 Unicode 大小写规则（如 "straße" → "STRASSE"），不改变名单中保存的原值
func DisplayName(name string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(name))
}
