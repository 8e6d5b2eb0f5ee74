package model

import "time"

// RecommendationRequest はおすすめスポット生成APIのリクエストボディ
type RecommendationRequest struct {
	Latitude        float64 `json:"latitude" validate:"required,min=-90,max=90"`
	Longitude       float64 `json:"longitude" validate:"required,min=-180,max=180"`
	Plan            float64 `json:"plan"`
	Social          float64 `json:"social"`
	Immersion       float64 `json:"immersion"`
	Nature          float64 `json:"nature"`
	DurationMinutes int     `json:"duration_minutes"`
	BudgetJPY       int     `json:"budget_jpy"`
	IndoorPreferred bool    `json:"indoor_preferred"`
	Category        string  `json:"category" validate:"required"`
}

// ToProfile リクエストを嗜好プロフィールに変換
func (r *RecommendationRequest) ToProfile() *PreferenceProfile {
	return &PreferenceProfile{
		Origin: &Location{
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		},
		Plan:            r.Plan,
		Social:          r.Social,
		Immersion:       r.Immersion,
		Nature:          r.Nature,
		DurationMinutes: r.DurationMinutes,
		BudgetJPY:       r.BudgetJPY,
		IndoorPreferred: r.IndoorPreferred,
		Category:        r.Category,
	}
}

// RecommendationResult は生成されたおすすめスポット一覧（Firestoreに保存される）
type RecommendationResult struct {
	ID        string        `json:"recommendation_id" firestore:"recommendation_id"`
	Category  string        `json:"category" firestore:"category"`
	Places    []ScoredPlace `json:"places" firestore:"places"`
	CreatedAt time.Time     `json:"created_at" firestore:"created_at"`
}
