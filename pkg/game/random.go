package game

import "math/rand/v2"

// RandomSource 抽取随机下标的随机源
// 抽象为接口以便测试时注入确定性序列
type RandomSource interface {
	// Intn 返回 [0, n) 内的随机整数，n 必须大于 0
	Intn(n int) int
}

// defaultRandom 使用 math/rand/v2 的全局随机源（自动播种）
type defaultRandom struct{}

func (defaultRandom) Intn(n int) int { return rand.IntN(n) }

// NewRandomSource 返回默认随机源
func NewRandomSource() RandomSource {
	return defaultRandom{}
}

// seededRandom 固定种子的随机源，同一种子产生相同序列
type seededRandom struct {
	r *rand.Rand
}

func (s *seededRandom) Intn(n int) int { return s.r.IntN(n) }

// NewSeededRandomSource 返回固定种子的随机源（用于复现某次抽奖）
func NewSeededRandomSource(seed uint64) RandomSource {
	return &seededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
