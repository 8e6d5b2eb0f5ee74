package service

import "math/rand"

// RandSource はスコアリングの揺らぎに使う乱数源
// 同一リクエストで毎回同じ並びにならないようにするための注入ポイントで、
// テストでは固定列のスタブを渡して決定的に検証する
type RandSource interface {
	// Next は [0,1) の乱数を返す
	Next() float64
}

// systemRandSource はプロセス全体の乱数源を使う本番実装
// rand のトップレベル関数は並行読み出しに対して安全
type systemRandSource struct{}

func (systemRandSource) Next() float64 {
	return rand.Float64()
}

// NewSystemRandSource は本番用の乱数源を生成する
func NewSystemRandSource() RandSource {
	return systemRandSource{}
}

// FixedRandSource は固定列を順に返す乱数源（テスト・再現用）
type FixedRandSource struct {
	Values []float64
	index  int
}

func (f *FixedRandSource) Next() float64 {
	if len(f.Values) == 0 {
		return 0.5
	}
	v := f.Values[f.index%len(f.Values)]
	f.index++
	return v
}
