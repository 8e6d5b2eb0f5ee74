package service

// TraitLexicon は1つの嗜好軸（social / nature / immersion）に対応する語彙表
// Types / Keywords はその軸が強いことを示す語彙、Counter側は反対方向の語彙
// 日本語と英語の語彙が併記されており、どちらもマッチ対象になる
type TraitLexicon struct {
	Types           []string
	Keywords        []string
	CounterTypes    []string
	CounterKeywords []string
}

// 嗜好軸の名前（TraitLexicons のキー）
const (
	TraitSocial    = "social"
	TraitNature    = "nature"
	TraitImmersion = "immersion"
)

// DefaultTraitLexicons は3軸分の語彙表を返す
// 以前は各スコア計算に同じ表が重複して埋め込まれていたため、1つの設定に集約している
func DefaultTraitLexicons() map[string]TraitLexicon {
	return map[string]TraitLexicon{
		TraitSocial: {
			// みんなで楽しむ場所
			Types: []string{
				"bar", "night_club", "restaurant", "karaoke",
				"bowling_alley", "amusement_park", "izakaya",
			},
			Keywords: []string{
				"居酒屋", "バー", "宴会", "パーティー", "ビアガーデン", "食べ放題",
				"group", "party", "nightlife", "lively",
			},
			// ひとりで静かに過ごす場所
			CounterTypes: []string{
				"library", "book_store", "spa", "museum",
			},
			CounterKeywords: []string{
				"静か", "一人", "ひとり", "隠れ家", "読書",
				"quiet", "solo", "calm",
			},
		},
		TraitNature: {
			// 自然を感じる場所
			Types: []string{
				"park", "natural_feature", "campground", "zoo",
				"rv_park", "tourist_attraction",
			},
			Keywords: []string{
				"公園", "自然", "庭園", "河川敷", "山", "緑", "花",
				"garden", "river", "hiking", "outdoor", "nature",
			},
			// 屋内・都市型の場所
			CounterTypes: []string{
				"shopping_mall", "movie_theater", "department_store", "aquarium",
			},
			CounterKeywords: []string{
				"屋内", "モール", "ビル", "地下街",
				"indoor", "mall", "urban",
			},
		},
		TraitImmersion: {
			// どっぷり浸かる体験型の場所
			Types: []string{
				"art_gallery", "museum", "aquarium", "place_of_worship",
				"hindu_temple", "synagogue", "church",
			},
			Keywords: []string{
				"体験", "工房", "陶芸", "茶道", "座禅", "ものづくり", "講座",
				"workshop", "experience", "immersive", "hands-on", "craft",
			},
			// 気軽に立ち寄れる場所
			CounterTypes: []string{
				"convenience_store", "meal_takeaway", "fast_food",
			},
			CounterKeywords: []string{
				"気軽", "サクッと", "テイクアウト", "ファスト",
				"casual", "quick", "takeaway",
			},
		},
	}
}
