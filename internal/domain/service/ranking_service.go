package service

import (
	"math"
	"sort"
	"strings"
	"time"

	"Odekake-App/internal/domain/helper"
	"Odekake-App/internal/domain/model"
)

// ScoreWeights は各スコア要素の重み
type ScoreWeights struct {
	CategoryMatch float64
	Distance      float64
	PriceFit      float64
	Rating        float64
	OpenNow       float64
	SocialFit     float64
	NatureFit     float64
	ImmersionFit  float64
	BudgetFit     float64
	DurationFit   float64
}

// DurationEstimate は滞在時間見積もりのルール（キーワードが最初にマッチしたものを採用）
type DurationEstimate struct {
	Keywords []string
	Minutes  int
}

// MealWindow は時間帯ボーナスの対象となる時間枠と語彙
type MealWindow struct {
	StartHour int // この時刻以上
	EndHour   int // この時刻未満
	Types     []string
	Keywords  []string
}

// RankingConfig はランキングエンジンの設定一式
// 重み・語彙・ボーナス閾値はすべてここに集約されていて、コード変更なしに差し替えられる
type RankingConfig struct {
	Weights    ScoreWeights
	MaxResults int

	// 価格帯(0〜4)から想定金額（円）への換算表
	PriceLevelYen map[int]int

	// 滞在時間の見積もりルール（先頭から順に評価）とデフォルト値（分）
	DurationEstimates      []DurationEstimate
	DefaultDurationMinutes int

	// 嗜好軸ごとの語彙表
	Lexicons map[string]TraitLexicon

	// 多様性ボーナス
	UniqueTypes          []string
	UniqueTypeBonus      float64
	UnderratedMinRating  float64
	UnderratedMaxReviews int
	UnderratedBonus      float64
	HiddenGemMinRating   float64
	HiddenGemMaxReviews  int
	HiddenGemBonus       float64

	// 時間帯ボーナス
	MealWindows []MealWindow
	MealBonus   float64
}

// DefaultRankingConfig は標準の設定を返す
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{
		Weights: ScoreWeights{
			CategoryMatch: 0.25,
			Distance:      0.15,
			PriceFit:      0.10,
			Rating:        0.10,
			OpenNow:       0.05,
			SocialFit:     0.15,
			NatureFit:     0.10,
			ImmersionFit:  0.05,
			BudgetFit:     0.03,
			DurationFit:   0.02,
		},
		MaxResults: 10,
		PriceLevelYen: map[int]int{
			0: 500,
			1: 1500,
			2: 3000,
			3: 5000,
			4: 10000,
		},
		DurationEstimates: []DurationEstimate{
			{Keywords: []string{"tour", "experience", "workshop", "ツアー", "体験", "工房"}, Minutes: 180},
			{Keywords: []string{"restaurant", "shopping", "museum", "レストラン", "買い物", "美術館", "博物館"}, Minutes: 90},
			{Keywords: []string{"cafe", "quick", "カフェ", "サクッと"}, Minutes: 30},
		},
		DefaultDurationMinutes: 60,
		Lexicons:               DefaultTraitLexicons(),
		UniqueTypes:            []string{"art_gallery", "museum", "workshop", "spa", "onsen"},
		UniqueTypeBonus:        0.05,
		UnderratedMinRating:    4.0,
		UnderratedMaxReviews:   100,
		UnderratedBonus:        0.03,
		HiddenGemMinRating:     4.2,
		HiddenGemMaxReviews:    50,
		HiddenGemBonus:         0.08,
		MealWindows: []MealWindow{
			{StartHour: 6, EndHour: 11, Types: []string{"cafe", "bakery"}, Keywords: []string{"カフェ", "ベーカリー", "モーニング", "breakfast"}},
			{StartHour: 11, EndHour: 15, Types: []string{"restaurant", "food", "meal_takeaway"}, Keywords: []string{"レストラン", "ランチ", "定食", "lunch"}},
			{StartHour: 15, EndHour: 18, Types: []string{"cafe", "bakery"}, Keywords: []string{"カフェ", "スイーツ", "ベーカリー"}},
			{StartHour: 18, EndHour: 23, Types: []string{"restaurant", "bar", "night_club", "izakaya"}, Keywords: []string{"ディナー", "居酒屋", "バー", "dinner"}},
		},
		MealBonus: 0.05,
	}
}

// RankingEngine は候補スポットを多要素スコアで順位付けするサービス
// 設定と乱数源を起動時に1回受け取り、リクエスト間で使い回す（内部状態は持たない）
type RankingEngine struct {
	config RankingConfig
	random RandSource
	now    func() time.Time
}

// NewRankingEngine は新しいランキングエンジンを生成する（random が nil の場合は本番乱数源を使用）
func NewRankingEngine(config RankingConfig, random RandSource) *RankingEngine {
	if random == nil {
		random = NewSystemRandSource()
	}
	return &RankingEngine{
		config: config,
		random: random,
		now:    time.Now,
	}
}

// RankPlaces は各候補のスコアを計算し、降順に並べて上位 MaxResults 件を返す
// 空の候補リストは空の結果になる（エラーにはしない）
func (e *RankingEngine) RankPlaces(candidates []model.PlaceCandidate, vector model.PreferenceVector, constraints model.Constraints, mapping model.CategoryMapping) []model.ScoredPlace {
	if len(candidates) == 0 {
		return []model.ScoredPlace{}
	}

	hour := e.now().Hour()
	scored := make([]model.ScoredPlace, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, e.scorePlace(candidate, vector, constraints, mapping, hour))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > e.config.MaxResults {
		scored = scored[:e.config.MaxResults]
	}
	return scored
}

// scorePlace は1候補分のスコアと内訳を計算する
func (e *RankingEngine) scorePlace(candidate model.PlaceCandidate, vector model.PreferenceVector, constraints model.Constraints, mapping model.CategoryMapping, hour int) model.ScoredPlace {
	breakdown := model.ScoreBreakdown{
		CategoryMatch: e.categoryMatchScore(candidate, mapping),
		DistanceScore: e.distanceScore(candidate, constraints),
		PriceFit:      e.priceFitScore(candidate, constraints),
		RatingScore:   e.ratingScore(candidate),
		OpenNow:       openNowScore(candidate),
		SocialFit:     e.traitFitScore(candidate, TraitSocial, vector.Social),
		NatureFit:     e.traitFitScore(candidate, TraitNature, vector.Nature),
		ImmersionFit:  e.traitFitScore(candidate, TraitImmersion, vector.Immersion),
		BudgetFit:     e.budgetFitScore(candidate, vector.BudgetJPY),
		DurationFit:   e.durationFitScore(candidate, vector.DurationMinutes),
	}

	w := e.config.Weights
	breakdown.BaseScore = breakdown.CategoryMatch*w.CategoryMatch +
		breakdown.DistanceScore*w.Distance +
		breakdown.PriceFit*w.PriceFit +
		breakdown.RatingScore*w.Rating +
		breakdown.OpenNow*w.OpenNow +
		breakdown.SocialFit*w.SocialFit +
		breakdown.NatureFit*w.NatureFit +
		breakdown.ImmersionFit*w.ImmersionFit +
		breakdown.BudgetFit*w.BudgetFit +
		breakdown.DurationFit*w.DurationFit

	breakdown.DiversityBonus = e.diversityBonus(candidate)
	breakdown.TimeBonus = e.timeOfDayBonus(candidate, hour)
	breakdown.RandomFactor = 0.95 + e.random.Next()*0.1

	score := (breakdown.BaseScore + breakdown.DiversityBonus + breakdown.TimeBonus) * breakdown.RandomFactor

	return model.ScoredPlace{
		Place:     candidate,
		Score:     score,
		Breakdown: breakdown,
	}
}

// categoryMatchScore はカテゴリ語彙とのマッチ度を計算する
// タイプ一致は1.0、名前・住所へのキーワード部分一致は0.5で加点し、
// 3で割って1.0を上限にした後、カテゴリのベース重みを掛ける
func (e *RankingEngine) categoryMatchScore(candidate model.PlaceCandidate, mapping model.CategoryMapping) float64 {
	typeSet := make(map[string]struct{}, len(candidate.Types))
	for _, t := range candidate.Types {
		typeSet[strings.ToLower(t)] = struct{}{}
	}

	raw := 0.0
	for _, t := range mapping.Types {
		if _, ok := typeSet[strings.ToLower(t)]; ok {
			raw += 1.0
		}
	}

	text := strings.ToLower(candidate.Name + " " + candidate.Vicinity)
	for _, keyword := range mapping.Keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			raw += 0.5
		}
	}

	return math.Min(1.0, raw/3.0) * mapping.BaseWeight
}

// distanceScore は検索半径に対する近さを 0〜1 で計算する
// 距離未取得の場合は座標から再計算し、それもできなければ中立値を返す
func (e *RankingEngine) distanceScore(candidate model.PlaceCandidate, constraints model.Constraints) float64 {
	var distance float64
	switch {
	case candidate.DistanceMeters != nil:
		distance = *candidate.DistanceMeters
	case candidate.Location != nil && constraints.Location != nil:
		distance = helper.HaversineDistance(
			constraints.Location.Latitude, constraints.Location.Longitude,
			candidate.Location.Latitude, candidate.Location.Longitude,
		)
	default:
		return 0.5
	}

	if constraints.RadiusMeters <= 0 {
		return 0.5
	}
	return math.Max(0, 1-distance/float64(constraints.RadiusMeters))
}

// priceFitScore は価格帯が制約の範囲に収まっているかを計算する
// 範囲内なら1.0、外れるごとに0.3ずつ減点、価格帯不明なら中立の0.5
func (e *RankingEngine) priceFitScore(candidate model.PlaceCandidate, constraints model.Constraints) float64 {
	if candidate.PriceLevel == nil {
		return 0.5
	}
	level := *candidate.PriceLevel
	if level >= constraints.MinPriceLevel && level <= constraints.MaxPriceLevel {
		return 1.0
	}

	tierDistance := 0
	if level < constraints.MinPriceLevel {
		tierDistance = constraints.MinPriceLevel - level
	} else {
		tierDistance = level - constraints.MaxPriceLevel
	}
	return math.Max(0, 1-0.3*float64(tierDistance))
}

// ratingScore は評価値とレビュー数から正規化スコアを計算する
// レビュー数1000件で飽和する対数スケール、未評価は0.3
func (e *RankingEngine) ratingScore(candidate model.PlaceCandidate) float64 {
	if !candidate.HasRating() {
		return 0.3
	}
	volume := math.Log(1+float64(candidate.UserRatingsTotal)) / math.Log(1+1000)
	return (candidate.Rating / 5.0) * volume
}

func openNowScore(candidate model.PlaceCandidate) float64 {
	if candidate.IsOpenNow() {
		return 1.0
	}
	return 0.0
}

// traitFitScore はスポットの傾向とユーザーの嗜好スカラーとの双方向マッチを計算する
// 嗜好が強い(≥0.7)なら傾向をそのまま、弱い(≤0.3)なら補数を返し、
// 中間は中点からの距離に比例して0.5へ寄せる
func (e *RankingEngine) traitFitScore(candidate model.PlaceCandidate, trait string, userScalar float64) float64 {
	lexicon, ok := e.config.Lexicons[trait]
	if !ok {
		return 0.5
	}
	traitScore := placeTraitScore(candidate, lexicon)

	switch {
	case userScalar >= 0.7:
		return traitScore
	case userScalar <= 0.3:
		return 1 - traitScore
	}

	target := traitScore
	if userScalar < 0.5 {
		target = 1 - traitScore
	}
	intensity := math.Abs(userScalar-0.5) / 0.2
	return 0.5 + (target-0.5)*intensity
}

// placeTraitScore は語彙表からスポットの傾向を 0〜1 で計算する
// タイプ一致率とキーワード一致率の平均を取り、手掛かりが全くなければ0.5
func placeTraitScore(candidate model.PlaceCandidate, lexicon TraitLexicon) float64 {
	typeSet := make(map[string]struct{}, len(candidate.Types))
	for _, t := range candidate.Types {
		typeSet[strings.ToLower(t)] = struct{}{}
	}
	text := strings.ToLower(candidate.Name + " " + candidate.Vicinity)

	typeHits := countTypeMatches(typeSet, lexicon.Types)
	counterTypeHits := countTypeMatches(typeSet, lexicon.CounterTypes)
	keywordHits := countKeywordMatches(text, lexicon.Keywords)
	counterKeywordHits := countKeywordMatches(text, lexicon.CounterKeywords)

	var ratios []float64
	if typeHits+counterTypeHits > 0 {
		ratios = append(ratios, float64(typeHits)/float64(typeHits+counterTypeHits))
	}
	if keywordHits+counterKeywordHits > 0 {
		ratios = append(ratios, float64(keywordHits)/float64(keywordHits+counterKeywordHits))
	}
	if len(ratios) == 0 {
		return 0.5
	}

	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	return sum / float64(len(ratios))
}

func countTypeMatches(typeSet map[string]struct{}, types []string) int {
	count := 0
	for _, t := range types {
		if _, ok := typeSet[strings.ToLower(t)]; ok {
			count++
		}
	}
	return count
}

func countKeywordMatches(text string, keywords []string) int {
	count := 0
	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			count++
		}
	}
	return count
}

// budgetFitScore は価格帯から想定金額を引き、予算に対する収まり具合を計算する
// 予算の50%以内なら1.0、100%以内0.8、150%以内0.4、それ以上は0.1
func (e *RankingEngine) budgetFitScore(candidate model.PlaceCandidate, budgetJPY int) float64 {
	if candidate.PriceLevel == nil || budgetJPY <= 0 {
		return 0.5
	}
	estimatedYen, ok := e.config.PriceLevelYen[*candidate.PriceLevel]
	if !ok {
		return 0.5
	}

	ratio := float64(estimatedYen) / float64(budgetJPY)
	switch {
	case ratio <= 0.5:
		return 1.0
	case ratio <= 1.0:
		return 0.8
	case ratio <= 1.5:
		return 0.4
	default:
		return 0.1
	}
}

// durationFitScore はキーワードから滞在時間を見積もり、希望時間との差を計算する
func (e *RankingEngine) durationFitScore(candidate model.PlaceCandidate, durationMinutes int) float64 {
	if durationMinutes <= 0 {
		return 0.5
	}
	estimated := e.estimateStayMinutes(candidate)
	diff := math.Abs(float64(estimated - durationMinutes))
	return 1 - diff/math.Max(float64(estimated), float64(durationMinutes))
}

// estimateStayMinutes はタイプと名前から滞在時間（分）を見積もる
func (e *RankingEngine) estimateStayMinutes(candidate model.PlaceCandidate) int {
	text := strings.ToLower(candidate.Name + " " + strings.Join(candidate.Types, " "))
	for _, rule := range e.config.DurationEstimates {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				return rule.Minutes
			}
		}
	}
	return e.config.DefaultDurationMinutes
}

// diversityBonus は文化的にユニークなスポットと「隠れた名店」への加点を計算する
func (e *RankingEngine) diversityBonus(candidate model.PlaceCandidate) float64 {
	bonus := 0.0

	typeSet := make(map[string]struct{}, len(candidate.Types))
	for _, t := range candidate.Types {
		typeSet[strings.ToLower(t)] = struct{}{}
	}
	for _, t := range e.config.UniqueTypes {
		if _, ok := typeSet[t]; ok {
			bonus += e.config.UniqueTypeBonus
			break
		}
	}

	// 高評価かつレビューが少ない「隠れた名店」を優遇する
	if candidate.HasRating() {
		switch {
		case candidate.Rating >= e.config.HiddenGemMinRating && candidate.UserRatingsTotal < e.config.HiddenGemMaxReviews:
			bonus += e.config.HiddenGemBonus
		case candidate.Rating >= e.config.UnderratedMinRating && candidate.UserRatingsTotal < e.config.UnderratedMaxReviews:
			bonus += e.config.UnderratedBonus
		}
	}

	return bonus
}

// timeOfDayBonus は現在時刻の食事時間帯に合うスポットへの加点を計算する
func (e *RankingEngine) timeOfDayBonus(candidate model.PlaceCandidate, hour int) float64 {
	typeSet := make(map[string]struct{}, len(candidate.Types))
	for _, t := range candidate.Types {
		typeSet[strings.ToLower(t)] = struct{}{}
	}
	name := strings.ToLower(candidate.Name)

	for _, window := range e.config.MealWindows {
		if hour < window.StartHour || hour >= window.EndHour {
			continue
		}
		for _, t := range window.Types {
			if _, ok := typeSet[t]; ok {
				return e.config.MealBonus
			}
		}
		for _, keyword := range window.Keywords {
			if strings.Contains(name, strings.ToLower(keyword)) {
				return e.config.MealBonus
			}
		}
	}
	return 0.0
}
