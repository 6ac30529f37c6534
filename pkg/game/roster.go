package game

import "strings"

// ParseRoster 把多行文本解析为抽奖名单
//
// 规则：按换行拆分，逐行去除首尾空白，丢弃空行；保留原始顺序与重复项。
// 空输入返回长度为 0 的非 nil 切片。
func ParseRoster(raw string) []string {
	roster := make([]string, 0)
	for _, line := range strings.Split(raw, "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		roster = append(roster, name)
	}
	return roster
}
