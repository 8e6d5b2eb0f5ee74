package strategy

import (
	"Odekake-App/internal/domain/model"
)

// 嗜好ベクトルのシグナル判定に使う閾値
const (
	strongSignalThreshold = 0.7
	weakSignalThreshold   = 0.3
)

// CategoryStrategyResolver はカテゴリと嗜好ベクトルから
// 検索語彙（CategoryMapping）と検索計画（SearchStrategy）を組み立てる
// テーブルは起動時に1回構築し、リクエスト間で共有する（読み取り専用）
type CategoryStrategyResolver struct {
	baseMappings  map[string]model.CategoryMapping
	chains        map[string][]model.SearchStrategy
	baseQueries   map[string][]string
	augmentations resolverAugmentations
}

// resolverAugmentations はベクトルのシグナルに応じて追加される語彙
// 追加のみで既存語彙を削ることはない
type resolverAugmentations struct {
	natureTypes       []string
	natureKeywords    []string
	socialTypes       []string
	freeRoamTypes     []string
	freeRoamKeywords  []string
	immersionTypes    []string
	immersionKeywords []string
	indoorTypes       []string
	outdoorTypes      []string
}

// NewCategoryStrategyResolver は語彙テーブルを構築して新しいリゾルバを生成する
func NewCategoryStrategyResolver() *CategoryStrategyResolver {
	return &CategoryStrategyResolver{
		baseMappings: buildBaseMappings(),
		chains:       buildStrategyChains(),
		baseQueries:  buildBaseQueries(),
		augmentations: resolverAugmentations{
			natureTypes:       []string{"park", "natural_feature", "campground"},
			natureKeywords:    []string{"自然", "公園", "庭園", "outdoor"},
			socialTypes:       []string{"bar", "night_club", "karaoke", "bowling_alley"},
			freeRoamTypes:     []string{"tourist_attraction", "point_of_interest"},
			freeRoamKeywords:  []string{"散策", "ぶらり", "walk"},
			immersionTypes:    []string{"museum", "art_gallery", "place_of_worship"},
			immersionKeywords: []string{"体験", "工房", "immersive"},
			indoorTypes:       []string{"shopping_mall", "museum", "aquarium", "movie_theater"},
			outdoorTypes:      []string{"park", "tourist_attraction", "zoo"},
		},
	}
}

// dedupStrings は順序を保ったまま重複を取り除く（セット扱いなので順序に意味はない）
func dedupStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
