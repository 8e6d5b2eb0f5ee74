package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"Odekake-App/internal/domain/model"
)

func TestComputeUserVector(t *testing.T) {
	t.Run("スカラーのコピーとurbanの導出", func(t *testing.T) {
		profile := &model.PreferenceProfile{
			Plan:            0.2,
			Social:          0.8,
			Immersion:       0.5,
			Nature:          0.3,
			DurationMinutes: 90,
			BudgetJPY:       3000,
		}

		vector := ComputeUserVector(profile)

		assert.Equal(t, 0.2, vector.Plan)
		assert.Equal(t, 0.8, vector.Social)
		assert.Equal(t, 0.5, vector.Immersion)
		assert.Equal(t, 0.3, vector.Nature)
		assert.InDelta(t, 0.7, vector.Urban, 1e-9)
		assert.Equal(t, 90, vector.DurationMinutes)
		assert.Equal(t, 3000, vector.BudgetJPY)
	})

	t.Run("範囲外の値はクランプされる", func(t *testing.T) {
		profile := &model.PreferenceProfile{
			Plan:      -0.5,
			Social:    1.8,
			Immersion: 2.0,
			Nature:    -1.0,
		}

		vector := ComputeUserVector(profile)

		assert.Equal(t, 0.0, vector.Plan)
		assert.Equal(t, 1.0, vector.Social)
		assert.Equal(t, 1.0, vector.Immersion)
		assert.Equal(t, 0.0, vector.Nature)
		assert.Equal(t, 1.0, vector.Urban) // 1 - (-1.0) = 2.0 → クランプ
	})
}

func TestNormalizeVector(t *testing.T) {
	t.Run("全スカラーが0〜1に収まる", func(t *testing.T) {
		vector := NormalizeVector(model.PreferenceVector{
			Plan: 1.5, Social: -0.2, Immersion: 0.4, Nature: 0.9, Urban: 3.0,
		})

		for _, v := range []float64{vector.Plan, vector.Social, vector.Immersion, vector.Nature, vector.Urban} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	})

	t.Run("冪等性: 2回適用しても結果は変わらない", func(t *testing.T) {
		vector := NormalizeVector(model.PreferenceVector{
			Plan: 1.5, Social: -0.2, Immersion: 0.4, Nature: 0.9, Urban: 3.0,
		})

		assert.Equal(t, vector, NormalizeVector(vector))
	})
}

func TestComputeConstraints(t *testing.T) {
	origin := &model.Location{Latitude: 35.6580, Longitude: 139.7016}

	t.Run("時間から半径の段階変換", func(t *testing.T) {
		testCases := []struct {
			durationMinutes int
			expectedRadius  int
		}{
			{60, 1200},
			{61, 3000},
			{180, 3000},
			{181, 6000},
			{300, 6000},
			{301, 10000},
		}

		for _, tc := range testCases {
			profile := &model.PreferenceProfile{Origin: origin, DurationMinutes: tc.durationMinutes}
			constraints := ComputeConstraints(profile)
			assert.Equal(t, tc.expectedRadius, constraints.RadiusMeters, "duration=%d", tc.durationMinutes)
		}
	})

	t.Run("予算から価格帯上限の段階変換", func(t *testing.T) {
		testCases := []struct {
			budgetJPY        int
			expectedMaxLevel int
		}{
			{2000, 1},
			{2001, 2},
			{5000, 2},
			{5001, 3},
		}

		for _, tc := range testCases {
			profile := &model.PreferenceProfile{Origin: origin, BudgetJPY: tc.budgetJPY}
			constraints := ComputeConstraints(profile)
			assert.Equal(t, tc.expectedMaxLevel, constraints.MaxPriceLevel, "budget=%d", tc.budgetJPY)
		}
	})

	t.Run("0や負の値は最小の段階に丸める", func(t *testing.T) {
		profile := &model.PreferenceProfile{Origin: origin, DurationMinutes: -30, BudgetJPY: -100}
		constraints := ComputeConstraints(profile)

		assert.Equal(t, 1200, constraints.RadiusMeters)
		assert.Equal(t, 1, constraints.MaxPriceLevel)
	})

	t.Run("最小価格帯は常に0で現在地を引き継ぐ", func(t *testing.T) {
		profile := &model.PreferenceProfile{Origin: origin, IndoorPreferred: true}
		constraints := ComputeConstraints(profile)

		assert.Equal(t, 0, constraints.MinPriceLevel)
		assert.True(t, constraints.IndoorPreferred)
		assert.Equal(t, origin, constraints.Location)
	})
}
