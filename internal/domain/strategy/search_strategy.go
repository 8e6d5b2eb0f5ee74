package strategy

import (
	"fmt"

	"Odekake-App/internal/domain/model"
)

const (
	socialRadiusScale = 1.5
	maxScaledRadius   = 5000
)

// buildStrategyChains はカテゴリごとのフォールバック検索チェーンを構築する
// 外部検索の語彙ではカテゴリを直接表現できないことがあるため（例:「工房体験」）、
// 見つかりにくい体験型カテゴリほど広く緩い検索へ段階的に広げてから諦める
func buildStrategyChains() map[string][]model.SearchStrategy {
	return map[string][]model.SearchStrategy{
		model.CategoryEat: {
			{
				PrimaryTypes:  []string{"restaurant", "cafe"},
				FallbackTypes: []string{"bakery", "food"},
				Keywords:      []string{"グルメ", "人気", "local food"},
				SearchRadius:  1500,
			},
			{
				PrimaryTypes:  []string{"bakery", "meal_takeaway"},
				FallbackTypes: []string{"food", "establishment"},
				Keywords:      []string{"食べ歩き", "テイクアウト", "street food"},
				SearchRadius:  3000,
			},
		},
		model.CategoryFeel: {
			{
				PrimaryTypes:  []string{"tourist_attraction", "spa"},
				FallbackTypes: []string{"art_gallery", "park"},
				Keywords:      []string{"絶景", "癒し", "scenic"},
				SearchRadius:  2000,
			},
			{
				PrimaryTypes:  []string{"park", "art_gallery"},
				FallbackTypes: []string{"point_of_interest"},
				Keywords:      []string{"景色", "relaxing", "夕日"},
				SearchRadius:  4000,
			},
		},
		model.CategoryMake: {
			// 「つくる」は直接対応するタイプがないため3段階でフォールバックする
			{
				PrimaryTypes:  []string{"tourist_attraction", "art_gallery"},
				FallbackTypes: []string{"museum"},
				Keywords:      []string{"工房", "体験教室", "workshop"},
				SearchRadius:  2000,
			},
			{
				PrimaryTypes:  []string{"point_of_interest", "shopping_mall"},
				FallbackTypes: []string{"store"},
				Keywords:      []string{"陶芸", "ガラス細工", "手作り", "craft"},
				SearchRadius:  3000,
			},
			{
				PrimaryTypes:  []string{"establishment", "tourist_attraction"},
				FallbackTypes: []string{"point_of_interest"},
				Keywords:      []string{"ものづくり体験", "文化体験", "experience"},
				SearchRadius:  5000,
			},
		},
		model.CategoryLearn: {
			{
				PrimaryTypes:  []string{"museum", "library"},
				FallbackTypes: []string{"art_gallery"},
				Keywords:      []string{"博物館", "資料館", "museum"},
				SearchRadius:  2000,
			},
			{
				PrimaryTypes:  []string{"book_store", "university"},
				FallbackTypes: []string{"tourist_attraction"},
				Keywords:      []string{"歴史", "学び", "history"},
				SearchRadius:  4000,
			},
		},
		model.CategoryPlay: {
			{
				PrimaryTypes:  []string{"amusement_park", "bowling_alley"},
				FallbackTypes: []string{"movie_theater", "karaoke"},
				Keywords:      []string{"遊び", "エンタメ", "entertainment"},
				SearchRadius:  3000,
			},
			{
				PrimaryTypes:  []string{"park", "tourist_attraction"},
				FallbackTypes: []string{"establishment"},
				Keywords:      []string{"アクティビティ", "体を動かす", "fun"},
				SearchRadius:  5000,
			},
		},
	}
}

// GetSearchStrategies はカテゴリのフォールバックチェーンをベクトルに合わせて調整して返す
// social が強い場合は半径を1.5倍（上限5000m）に広げ、
// nature が強い場合は自然系のタイプ・キーワードを先頭に追加する
func (r *CategoryStrategyResolver) GetSearchStrategies(category string, vector model.PreferenceVector) []model.SearchStrategy {
	chain := r.chains[category]
	aug := r.augmentations

	strategies := make([]model.SearchStrategy, 0, len(chain))
	for _, base := range chain {
		s := model.SearchStrategy{
			PrimaryTypes:  append([]string{}, base.PrimaryTypes...),
			FallbackTypes: append([]string{}, base.FallbackTypes...),
			Keywords:      append([]string{}, base.Keywords...),
			SearchRadius:  base.SearchRadius,
		}

		if vector.Social >= strongSignalThreshold {
			scaled := int(float64(s.SearchRadius) * socialRadiusScale)
			if scaled > maxScaledRadius {
				scaled = maxScaledRadius
			}
			s.SearchRadius = scaled
		}

		if vector.Nature >= strongSignalThreshold {
			s.PrimaryTypes = dedupStrings(append(append([]string{}, aug.natureTypes...), s.PrimaryTypes...))
			s.Keywords = dedupStrings(append(append([]string{}, aug.natureKeywords...), s.Keywords...))
		}

		strategies = append(strategies, s)
	}
	return strategies
}

// buildBaseQueries はフリーテキスト検索用のカテゴリ別クエリを構築する
// タイプ指定ではなく自由文で検索するプロバイダ向け
func buildBaseQueries() map[string][]string {
	return map[string][]string{
		model.CategoryEat:   {"おすすめ グルメ", "人気 レストラン", "best local food"},
		model.CategoryFeel:  {"絶景 スポット", "癒し スポット", "scenic spot"},
		model.CategoryMake:  {"ものづくり 体験", "工房 体験教室", "craft workshop"},
		model.CategoryLearn: {"博物館 美術館", "歴史 スポット", "museum"},
		model.CategoryPlay:  {"遊び スポット", "エンタメ", "things to do"},
	}
}

// GenerateSearchQueries はカテゴリ別のクエリにベクトルのシグナルと地名を付け足して返す
func (r *CategoryStrategyResolver) GenerateSearchQueries(category string, vector model.PreferenceVector, location string) []string {
	base := r.baseQueries[category]

	var suffix string
	if vector.Social >= strongSignalThreshold {
		suffix += " group social"
	}
	if vector.Nature >= strongSignalThreshold {
		suffix += " outdoor nature"
	}
	if vector.Immersion >= strongSignalThreshold {
		suffix += " immersive experience"
	}

	queries := make([]string, 0, len(base))
	for _, q := range base {
		query := q + suffix
		if location != "" {
			query = fmt.Sprintf("%s %s", query, location)
		}
		queries = append(queries, query)
	}
	return queries
}
