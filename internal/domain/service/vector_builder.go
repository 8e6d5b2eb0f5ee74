package service

import (
	"Odekake-App/internal/domain/model"
)

// ComputeUserVector はクイズの回答から正規化済みの嗜好ベクトルを生成する
// 純粋なコピーと導出のみで失敗しない
func ComputeUserVector(profile *model.PreferenceProfile) model.PreferenceVector {
	vector := model.PreferenceVector{
		Plan:            profile.Plan,
		Social:          profile.Social,
		Immersion:       profile.Immersion,
		Nature:          profile.Nature,
		Urban:           1 - profile.Nature,
		DurationMinutes: profile.DurationMinutes,
		BudgetJPY:       profile.BudgetJPY,
	}
	return NormalizeVector(vector)
}

// NormalizeVector は全スカラーを [0,1] にクランプする（冪等）
func NormalizeVector(v model.PreferenceVector) model.PreferenceVector {
	v.Plan = clamp01(v.Plan)
	v.Social = clamp01(v.Social)
	v.Immersion = clamp01(v.Immersion)
	v.Nature = clamp01(v.Nature)
	v.Urban = clamp01(v.Urban)
	return v
}

// ComputeConstraints はプロフィールから検索のハード制約を導出する
// 0や負の値は最小の段階に丸める（エラーにはしない）
func ComputeConstraints(profile *model.PreferenceProfile) model.Constraints {
	return model.Constraints{
		RadiusMeters:    radiusForDuration(profile.DurationMinutes),
		MinPriceLevel:   0,
		MaxPriceLevel:   maxPriceLevelForBudget(profile.BudgetJPY),
		IndoorPreferred: profile.IndoorPreferred,
		Location:        profile.Origin,
	}
}

// radiusForDuration はおでかけ時間から検索半径（メートル）を段階的に決める
func radiusForDuration(durationMinutes int) int {
	switch {
	case durationMinutes <= 60:
		return 1200
	case durationMinutes <= 180:
		return 3000
	case durationMinutes <= 300:
		return 6000
	default:
		return 10000
	}
}

// maxPriceLevelForBudget は予算から価格帯の上限を段階的に決める
func maxPriceLevelForBudget(budgetJPY int) int {
	switch {
	case budgetJPY <= 2000:
		return 1
	case budgetJPY <= 5000:
		return 2
	default:
		return 3
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
