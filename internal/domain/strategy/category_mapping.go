package strategy

import (
	"Odekake-App/internal/domain/model"
)

// buildBaseMappings はカテゴリごとの基本語彙とベース重みを構築する
// 「つくる」「感じる」は手掛かりが強いカテゴリなので重みを上げている
func buildBaseMappings() map[string]model.CategoryMapping {
	return map[string]model.CategoryMapping{
		model.CategoryEat: {
			Category:   model.CategoryEat,
			Types:      []string{"restaurant", "cafe", "bakery", "food"},
			Keywords:   []string{"グルメ", "レストラン", "カフェ", "食べ歩き", "local food"},
			BaseWeight: 1.0,
		},
		model.CategoryFeel: {
			Category:   model.CategoryFeel,
			Types:      []string{"tourist_attraction", "art_gallery", "spa", "park"},
			Keywords:   []string{"絶景", "癒し", "景色", "scenic", "relaxing"},
			BaseWeight: 1.1,
		},
		model.CategoryMake: {
			Category:   model.CategoryMake,
			Types:      []string{"art_gallery", "tourist_attraction"},
			Keywords:   []string{"工房", "体験", "ものづくり", "workshop", "craft"},
			BaseWeight: 1.2,
		},
		model.CategoryLearn: {
			Category:   model.CategoryLearn,
			Types:      []string{"museum", "library", "book_store", "university"},
			Keywords:   []string{"博物館", "歴史", "学び", "museum", "history"},
			BaseWeight: 1.0,
		},
		model.CategoryPlay: {
			Category:   model.CategoryPlay,
			Types:      []string{"amusement_park", "bowling_alley", "movie_theater", "park"},
			Keywords:   []string{"遊び", "エンタメ", "アクティビティ", "entertainment", "fun"},
			BaseWeight: 1.0,
		},
	}
}

// GetCategoryMapping はカテゴリの基本語彙にベクトルのシグナルに応じた語彙を追加して返す
// 追加のみで削除はしない。最終的なタイプ・キーワードは重複排除される
func (r *CategoryStrategyResolver) GetCategoryMapping(category string, vector model.PreferenceVector, indoorPreferred bool) model.CategoryMapping {
	base := r.baseMappings[category]
	aug := r.augmentations

	types := append([]string{}, base.Types...)
	keywords := append([]string{}, base.Keywords...)
	weight := base.BaseWeight

	if vector.Nature >= strongSignalThreshold {
		types = append(types, aug.natureTypes...)
		keywords = append(keywords, aug.natureKeywords...)
		weight += 0.2
	}
	if vector.Social >= strongSignalThreshold {
		types = append(types, aug.socialTypes...)
	}
	if vector.Plan <= weakSignalThreshold {
		types = append(types, aug.freeRoamTypes...)
		keywords = append(keywords, aug.freeRoamKeywords...)
	}
	if vector.Immersion >= strongSignalThreshold {
		types = append(types, aug.immersionTypes...)
		keywords = append(keywords, aug.immersionKeywords...)
	}
	if indoorPreferred {
		types = append(types, aug.indoorTypes...)
	} else {
		types = append(types, aug.outdoorTypes...)
	}

	return model.CategoryMapping{
		Category:   category,
		Types:      dedupStrings(types),
		Keywords:   dedupStrings(keywords),
		BaseWeight: weight,
	}
}
