package model

// LatLng 緯度経度を表す基本的な型（距離計算などで使用）
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Location struct {
	Latitude  float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64 `json:"longitude" validate:"required,min=-180,max=180"`
}

// ToLatLng Location を LatLng 型に変換
func (l *Location) ToLatLng() LatLng {
	if l == nil {
		return LatLng{}
	}
	return LatLng{Lat: l.Latitude, Lng: l.Longitude}
}

// Geometry PostGIS GEOMETRY型に対応する構造体
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [longitude, latitude]
}

// ToGeometry Location を PostGIS GEOMETRY 型に変換
func (l *Location) ToGeometry() *Geometry {
	return &Geometry{
		Type:        "Point",
		Coordinates: []float64{l.Longitude, l.Latitude},
	}
}

// GeometryToLocation PostGIS GEOMETRY 型から Location に変換
func GeometryToLocation(g *Geometry) *Location {
	if g == nil || len(g.Coordinates) < 2 {
		return nil
	}
	return &Location{
		Latitude:  g.Coordinates[1],
		Longitude: g.Coordinates[0],
	}
}

// PlaceCandidate は外部検索から返された、まだスコアリングされていないスポット
// 評価・価格帯・距離は取得できないことがあるためNULLABLE
type PlaceCandidate struct {
	PlaceID          string    `json:"place_id"`
	Name             string    `json:"name"`
	Vicinity         string    `json:"vicinity"`          // 住所・付近の表記
	Types            []string  `json:"types"`             // タイプタグ（複数対応）
	Rating           float64   `json:"rating"`            // 評価値（0は未評価扱い）
	UserRatingsTotal int       `json:"user_ratings_total"`
	PriceLevel       *int      `json:"price_level,omitempty"`     // 0〜4（NULLABLE）
	DistanceMeters   *float64  `json:"distance_meters,omitempty"` // 現在地からの距離（NULLABLE）
	OpenNow          *bool     `json:"open_now,omitempty"`        // 営業中フラグ（NULLABLE）
	PhotoReferences  []string  `json:"photo_references,omitempty"`
	MapsURL          string    `json:"maps_url,omitempty"`
	Location         *Location `json:"location"`
}

// ToLatLng 候補スポットの位置情報をLatLng型に変換
func (p *PlaceCandidate) ToLatLng() LatLng {
	return p.Location.ToLatLng()
}

// HasPriceLevel 価格帯が取得できているかチェック
func (p *PlaceCandidate) HasPriceLevel() bool {
	return p.PriceLevel != nil
}

// HasRating 評価が取得できているかチェック
func (p *PlaceCandidate) HasRating() bool {
	return p.Rating > 0
}

// IsOpenNow 営業中フラグ（不明な場合はfalse）
func (p *PlaceCandidate) IsOpenNow() bool {
	return p.OpenNow != nil && *p.OpenNow
}

// ScoreBreakdown はスコアの内訳（説明可能性とテストのために全要素を公開する）
type ScoreBreakdown struct {
	CategoryMatch  float64 `json:"category_match"`
	DistanceScore  float64 `json:"distance_score"`
	PriceFit       float64 `json:"price_fit"`
	RatingScore    float64 `json:"rating_score"`
	OpenNow        float64 `json:"open_now"`
	SocialFit      float64 `json:"social_fit"`
	NatureFit      float64 `json:"nature_fit"`
	ImmersionFit   float64 `json:"immersion_fit"`
	BudgetFit      float64 `json:"budget_fit"`
	DurationFit    float64 `json:"duration_fit"`
	BaseScore      float64 `json:"base_score"`      // 加重和（ボーナス適用前）
	DiversityBonus float64 `json:"diversity_bonus"` // 多様性ボーナス（加算）
	TimeBonus      float64 `json:"time_bonus"`      // 時間帯ボーナス（加算）
	RandomFactor   float64 `json:"random_factor"`   // 乱数係数 [0.95, 1.05]
}

// ScoredPlace はスコア付きのスポット
// スコアはボーナス加算と乱数係数により1.0を超えることがある（順序のみ意味を持つ）
type ScoredPlace struct {
	Place     PlaceCandidate `json:"place"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// CategoryMapping はカテゴリに対応する検索語彙とベース重み
// タイプ・キーワードは日英併記で重複排除済み（順序に意味はない）
type CategoryMapping struct {
	Category   string   `json:"category"`
	Types      []string `json:"types"`
	Keywords   []string `json:"keywords"`
	BaseWeight float64  `json:"base_weight"`
}

// SearchStrategy は外部検索プロバイダへの問い合わせ計画
// 直接対応するタイプがないカテゴリのためにフォールバック順で複数用意される
type SearchStrategy struct {
	PrimaryTypes  []string `json:"primary_types"`
	FallbackTypes []string `json:"fallback_types"`
	Keywords      []string `json:"keywords"`
	SearchRadius  int      `json:"search_radius"` // メートル
}
