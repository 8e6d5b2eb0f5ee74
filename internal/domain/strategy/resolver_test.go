package strategy

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Odekake-App/internal/domain/model"
)

func neutralVector() model.PreferenceVector {
	return model.PreferenceVector{Plan: 0.5, Social: 0.5, Immersion: 0.5, Nature: 0.5, Urban: 0.5}
}

func containsNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

func TestGetCategoryMapping(t *testing.T) {
	resolver := NewCategoryStrategyResolver()

	t.Run("中立ベクトルなら基本語彙のみ", func(t *testing.T) {
		mapping := resolver.GetCategoryMapping(model.CategoryEat, neutralVector(), false)

		assert.Equal(t, model.CategoryEat, mapping.Category)
		assert.Contains(t, mapping.Types, "restaurant")
		assert.Contains(t, mapping.Keywords, "グルメ")
		assert.Equal(t, 1.0, mapping.BaseWeight)
		// 屋外寄りのタイプは常に付く
		assert.Contains(t, mapping.Types, "park")
	})

	t.Run("自然シグナルで語彙追加と重み加算", func(t *testing.T) {
		vector := neutralVector()
		vector.Nature = 0.8

		mapping := resolver.GetCategoryMapping(model.CategoryFeel, vector, false)

		assert.Contains(t, mapping.Types, "natural_feature")
		assert.Contains(t, mapping.Keywords, "自然")
		assert.InDelta(t, 1.3, mapping.BaseWeight, 1e-9) // 1.1 + 0.2
	})

	t.Run("社交シグナルでナイトライフ系タイプが付く", func(t *testing.T) {
		vector := neutralVector()
		vector.Social = 0.9

		mapping := resolver.GetCategoryMapping(model.CategoryEat, vector, false)

		assert.Contains(t, mapping.Types, "bar")
		assert.Contains(t, mapping.Types, "night_club")
	})

	t.Run("無計画シグナルで散策系語彙が付く", func(t *testing.T) {
		vector := neutralVector()
		vector.Plan = 0.2

		mapping := resolver.GetCategoryMapping(model.CategoryPlay, vector, false)

		assert.Contains(t, mapping.Types, "tourist_attraction")
		assert.Contains(t, mapping.Keywords, "散策")
	})

	t.Run("屋内希望なら屋内タイプ、そうでなければ屋外タイプ", func(t *testing.T) {
		indoor := resolver.GetCategoryMapping(model.CategoryLearn, neutralVector(), true)
		outdoor := resolver.GetCategoryMapping(model.CategoryLearn, neutralVector(), false)

		assert.Contains(t, indoor.Types, "shopping_mall")
		assert.NotContains(t, indoor.Types, "zoo")
		assert.Contains(t, outdoor.Types, "zoo")
		assert.NotContains(t, outdoor.Types, "shopping_mall")
	})

	t.Run("追加語彙は重複排除される", func(t *testing.T) {
		vector := neutralVector()
		vector.Immersion = 0.9 // museum が learn の基本語彙と重複する

		mapping := resolver.GetCategoryMapping(model.CategoryLearn, vector, false)

		count := 0
		for _, typ := range mapping.Types {
			if typ == "museum" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})

	t.Run("追加はあっても基本語彙は削られない", func(t *testing.T) {
		vector := neutralVector()
		vector.Nature = 0.9
		vector.Social = 0.9
		vector.Immersion = 0.9
		vector.Plan = 0.1

		base := resolver.GetCategoryMapping(model.CategoryMake, neutralVector(), false)
		augmented := resolver.GetCategoryMapping(model.CategoryMake, vector, false)

		for _, typ := range base.Types {
			assert.Contains(t, augmented.Types, typ)
		}
		for _, kw := range base.Keywords {
			assert.Contains(t, augmented.Keywords, kw)
		}
	})
}

func TestGetSearchStrategies(t *testing.T) {
	resolver := NewCategoryStrategyResolver()

	t.Run("つくるカテゴリは3段階のフォールバックを持つ", func(t *testing.T) {
		strategies := resolver.GetSearchStrategies(model.CategoryMake, neutralVector())

		require.Len(t, strategies, 3)
		// 後段ほど検索半径が広がる
		assert.Less(t, strategies[0].SearchRadius, strategies[1].SearchRadius)
		assert.Less(t, strategies[1].SearchRadius, strategies[2].SearchRadius)

		// 各段に日本語を含むキーワードがある
		for _, s := range strategies {
			require.NotEmpty(t, s.Keywords)
			hasJapanese := false
			for _, kw := range s.Keywords {
				if containsNonASCII(kw) {
					hasJapanese = true
				}
			}
			assert.True(t, hasJapanese, "keywords=%v", s.Keywords)
		}
	})

	t.Run("体験没入の強いユーザーでも検索計画は2段以上", func(t *testing.T) {
		vector := neutralVector()
		vector.Immersion = 0.9

		strategies := resolver.GetSearchStrategies(model.CategoryMake, vector)
		assert.GreaterOrEqual(t, len(strategies), 2)
	})

	t.Run("社交シグナルで半径1.5倍（上限5000m）", func(t *testing.T) {
		vector := neutralVector()
		vector.Social = 0.8

		strategies := resolver.GetSearchStrategies(model.CategoryMake, vector)

		require.Len(t, strategies, 3)
		assert.Equal(t, 3000, strategies[0].SearchRadius) // 2000 * 1.5
		assert.Equal(t, 4500, strategies[1].SearchRadius) // 3000 * 1.5
		assert.Equal(t, 5000, strategies[2].SearchRadius) // 5000 * 1.5 → 上限
	})

	t.Run("自然シグナルで自然系語彙が先頭に付く", func(t *testing.T) {
		vector := neutralVector()
		vector.Nature = 0.8

		strategies := resolver.GetSearchStrategies(model.CategoryEat, vector)

		require.NotEmpty(t, strategies)
		assert.Equal(t, "park", strategies[0].PrimaryTypes[0])
		assert.Equal(t, "自然", strategies[0].Keywords[0])
	})

	t.Run("元のチェーン定義は書き換えられない", func(t *testing.T) {
		vector := neutralVector()
		vector.Nature = 0.9
		vector.Social = 0.9

		resolver.GetSearchStrategies(model.CategoryEat, vector)
		after := resolver.GetSearchStrategies(model.CategoryEat, neutralVector())

		require.NotEmpty(t, after)
		assert.Equal(t, 1500, after[0].SearchRadius)
		assert.Equal(t, "restaurant", after[0].PrimaryTypes[0])
	})
}

func TestGenerateSearchQueries(t *testing.T) {
	resolver := NewCategoryStrategyResolver()

	t.Run("中立ベクトルなら基本クエリのみ", func(t *testing.T) {
		queries := resolver.GenerateSearchQueries(model.CategoryEat, neutralVector(), "")

		require.NotEmpty(t, queries)
		for _, q := range queries {
			assert.NotContains(t, q, "group social")
			assert.NotContains(t, q, "outdoor nature")
		}
	})

	t.Run("シグナルに応じたサフィックスが全クエリに付く", func(t *testing.T) {
		vector := neutralVector()
		vector.Social = 0.8
		vector.Nature = 0.9

		queries := resolver.GenerateSearchQueries(model.CategoryPlay, vector, "")

		require.NotEmpty(t, queries)
		for _, q := range queries {
			assert.Contains(t, q, "group social")
			assert.Contains(t, q, "outdoor nature")
			assert.NotContains(t, q, "immersive experience")
		}
	})

	t.Run("地名は末尾に付く", func(t *testing.T) {
		queries := resolver.GenerateSearchQueries(model.CategoryLearn, neutralVector(), "渋谷")

		require.NotEmpty(t, queries)
		for _, q := range queries {
			assert.True(t, strings.HasSuffix(q, " 渋谷"), "query=%s", q)
		}
	})
}
