// Package gen 提供压测用随机输入生成
package gen

import "math/rand"

// MaxInt 随机整数的绝对值上界（不含）
const MaxInt = 1_000_000

// RandomInts 生成 n 个落在 (-MaxInt, MaxInt) 内的随机整数，seed 相同则结果相同
func RandomInts(n int, seed int64) []int64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int64, n)
	for i := range out {
		out[i] = rng.Int63n(2*MaxInt-1) - (MaxInt - 1)
	}
	return out
}

// RandomIndexes 生成 n 个插入位置，第 i 个落在 [0, i] 内
func RandomIndexes(n int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(i + 1)
	}
	return out
}
