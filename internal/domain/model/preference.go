package model

// PreferenceProfile は診断クイズの回答を保持する（リクエストごとに1回生成、不変）
type PreferenceProfile struct {
	Origin          *Location `json:"origin" validate:"required"`            // 必須：現在地
	Plan            float64   `json:"plan"`                                  // 0=気まま 〜 1=計画的
	Social          float64   `json:"social"`                                // 0=ひとり 〜 1=みんなで
	Immersion       float64   `json:"immersion"`                             // 0=気軽に 〜 1=どっぷり
	Nature          float64   `json:"nature"`                                // 0=都会派 〜 1=自然派
	DurationMinutes int       `json:"duration_minutes"`                      // おでかけ時間（分）
	BudgetJPY       int       `json:"budget_jpy"`                            // 予算（円）
	IndoorPreferred bool      `json:"indoor_preferred"`                      // 屋内志向かどうか
	Category        string    `json:"category" validate:"required,oneof=eat feel make learn play"` // カテゴリ
}

// PreferenceVector はスコアリング全体で使用する正規化済みの嗜好ベクトル
// 全スカラーは構築時に [0,1] にクランプされる
type PreferenceVector struct {
	Plan      float64 `json:"plan"`
	Social    float64 `json:"social"`
	Immersion float64 `json:"immersion"`
	Nature    float64 `json:"nature"`
	Urban     float64 `json:"urban"` // 1 - Nature から導出

	// スコアリング用に引き継ぐ値
	DurationMinutes int `json:"duration_minutes"`
	BudgetJPY       int `json:"budget_jpy"`
}

// Constraints はプロフィールから導出される検索のハード制約
type Constraints struct {
	RadiusMeters    int       `json:"radius_meters"`
	MinPriceLevel   int       `json:"min_price_level"`
	MaxPriceLevel   int       `json:"max_price_level"`
	IndoorPreferred bool      `json:"indoor_preferred"`
	Location        *Location `json:"location"`
}
