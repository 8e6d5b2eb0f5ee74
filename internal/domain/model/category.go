package model

// CategoryConstants は診断クイズで選択できるカテゴリの定数
const (
	CategoryEat   = "eat"   // 食べる
	CategoryFeel  = "feel"  // 感じる
	CategoryMake  = "make"  // つくる
	CategoryLearn = "learn" // 学ぶ
	CategoryPlay  = "play"  // 遊ぶ
)

// CategoryNameMap はカテゴリIDから日本語名へのマッピング
var CategoryNameMap = map[string]string{
	CategoryEat:   "食べる",
	CategoryFeel:  "感じる",
	CategoryMake:  "つくる",
	CategoryLearn: "学ぶ",
	CategoryPlay:  "遊ぶ",
}

// GetCategoryJapaneseName はカテゴリIDから日本語名を取得する
func GetCategoryJapaneseName(category string) string {
	if name, ok := CategoryNameMap[category]; ok {
		return name
	}
	return category // デフォルトはそのまま返す
}

// GetAllCategories は全カテゴリの一覧を取得する
func GetAllCategories() []string {
	return []string{
		CategoryEat,
		CategoryFeel,
		CategoryMake,
		CategoryLearn,
		CategoryPlay,
	}
}

// IsValidCategory はカテゴリIDが有効かどうかを判定する
func IsValidCategory(category string) bool {
	_, ok := CategoryNameMap[category]
	return ok
}
