package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Odekake-App/internal/domain/model"
	"Odekake-App/internal/domain/service"
	"Odekake-App/internal/domain/strategy"
)

// stubPlacesRepository は検索半径ごとに返す候補を差し替えられるスタブ
type stubPlacesRepository struct {
	mu        sync.Mutex
	byRadius  map[int][]model.PlaceCandidate
	errRadius map[int]error
	calls     int
}

func (s *stubPlacesRepository) SearchByStrategy(_ context.Context, _ model.LatLng, st model.SearchStrategy) ([]model.PlaceCandidate, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	if err, ok := s.errRadius[st.SearchRadius]; ok {
		return nil, err
	}
	return s.byRadius[st.SearchRadius], nil
}

// stubResultRepository は保存と取得の挙動を差し替えられるスタブ
type stubResultRepository struct {
	saved   []*model.RecommendationResult
	saveErr error
	stored  map[string]*model.RecommendationResult
}

func (s *stubResultRepository) Save(_ context.Context, result *model.RecommendationResult) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, result)
	return nil
}

func (s *stubResultRepository) GetByID(_ context.Context, id string) (*model.RecommendationResult, error) {
	if result, ok := s.stored[id]; ok {
		return result, nil
	}
	return nil, fmt.Errorf("おすすめ結果が見つかりません: %s", id)
}

func makeCandidate(id string) model.PlaceCandidate {
	return model.PlaceCandidate{
		PlaceID:          id,
		Name:             "テストスポット " + id,
		Types:            []string{"restaurant"},
		Rating:           4.0,
		UserRatingsTotal: 100,
		Location:         &model.Location{Latitude: 35.6585, Longitude: 139.7020},
	}
}

func makeCandidates(prefix string, n int) []model.PlaceCandidate {
	candidates := make([]model.PlaceCandidate, 0, n)
	for i := 0; i < n; i++ {
		candidates = append(candidates, makeCandidate(fmt.Sprintf("%s-%d", prefix, i)))
	}
	return candidates
}

func newTestUseCase(placesRepo *stubPlacesRepository, resultRepo *stubResultRepository) RecommendationUseCase {
	engine := service.NewRankingEngine(service.DefaultRankingConfig(), &service.FixedRandSource{Values: []float64{0.5}})
	resolver := strategy.NewCategoryStrategyResolver()
	if resultRepo == nil {
		return NewRecommendationUseCase(placesRepo, nil, resolver, engine)
	}
	return NewRecommendationUseCase(placesRepo, resultRepo, resolver, engine)
}

func eatRequest() *model.RecommendationRequest {
	return &model.RecommendationRequest{
		Category:        model.CategoryEat,
		Latitude:        35.6580,
		Longitude:       139.7016,
		Plan:            0.5,
		Social:          0.5,
		Immersion:       0.5,
		Nature:          0.5,
		DurationMinutes: 90,
		BudgetJPY:       3000,
	}
}

func TestGenerateRecommendations(t *testing.T) {
	ctx := context.Background()

	// 中立ベクトルの「食べる」カテゴリは半径1500mと3000mの2段チェーンになる

	t.Run("候補が十分なら最初の戦略だけで完結する", func(t *testing.T) {
		placesRepo := &stubPlacesRepository{
			byRadius: map[int][]model.PlaceCandidate{
				1500: makeCandidates("primary", 12),
				3000: makeCandidates("fallback", 5),
			},
		}
		resultRepo := &stubResultRepository{}

		result, err := newTestUseCase(placesRepo, resultRepo).GenerateRecommendations(ctx, eatRequest())

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, model.CategoryEat, result.Category)
		assert.NotEmpty(t, result.ID)
		assert.Len(t, result.Places, 10)

		// フォールバック側の候補は使われない
		for _, scored := range result.Places {
			assert.NotContains(t, scored.Place.PlaceID, "fallback")
		}
	})

	t.Run("候補不足ならフォールバック戦略の結果もマージされる", func(t *testing.T) {
		placesRepo := &stubPlacesRepository{
			byRadius: map[int][]model.PlaceCandidate{
				1500: makeCandidates("primary", 3),
				3000: makeCandidates("fallback", 4),
			},
		}

		result, err := newTestUseCase(placesRepo, nil).GenerateRecommendations(ctx, eatRequest())

		require.NoError(t, err)
		assert.Len(t, result.Places, 7)
	})

	t.Run("重複するplace_idは1件にまとめられる", func(t *testing.T) {
		shared := makeCandidate("shared")
		placesRepo := &stubPlacesRepository{
			byRadius: map[int][]model.PlaceCandidate{
				1500: {shared, makeCandidate("only-primary")},
				3000: {shared, makeCandidate("only-fallback")},
			},
		}

		result, err := newTestUseCase(placesRepo, nil).GenerateRecommendations(ctx, eatRequest())

		require.NoError(t, err)
		assert.Len(t, result.Places, 3)
	})

	t.Run("一部の戦略が失敗しても残りの結果で継続する", func(t *testing.T) {
		placesRepo := &stubPlacesRepository{
			byRadius: map[int][]model.PlaceCandidate{
				3000: makeCandidates("fallback", 5),
			},
			errRadius: map[int]error{
				1500: fmt.Errorf("外部API一時エラー"),
			},
		}

		result, err := newTestUseCase(placesRepo, nil).GenerateRecommendations(ctx, eatRequest())

		require.NoError(t, err)
		assert.Len(t, result.Places, 5)
	})

	t.Run("全戦略が失敗した場合はエラー", func(t *testing.T) {
		searchErr := fmt.Errorf("接続タイムアウト")
		placesRepo := &stubPlacesRepository{
			errRadius: map[int]error{
				1500: searchErr,
				3000: searchErr,
			},
		}

		result, err := newTestUseCase(placesRepo, nil).GenerateRecommendations(ctx, eatRequest())

		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, searchErr)
	})

	t.Run("候補ゼロでもエラーにはせず空のおすすめを返す", func(t *testing.T) {
		placesRepo := &stubPlacesRepository{byRadius: map[int][]model.PlaceCandidate{}}

		result, err := newTestUseCase(placesRepo, nil).GenerateRecommendations(ctx, eatRequest())

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Empty(t, result.Places)
	})

	t.Run("保存の失敗はおすすめ生成の失敗にしない", func(t *testing.T) {
		placesRepo := &stubPlacesRepository{
			byRadius: map[int][]model.PlaceCandidate{1500: makeCandidates("p", 5)},
		}
		resultRepo := &stubResultRepository{saveErr: fmt.Errorf("Firestore書き込み失敗")}

		result, err := newTestUseCase(placesRepo, resultRepo).GenerateRecommendations(ctx, eatRequest())

		require.NoError(t, err)
		assert.NotNil(t, result)
	})

	t.Run("成功時は結果が保存される", func(t *testing.T) {
		placesRepo := &stubPlacesRepository{
			byRadius: map[int][]model.PlaceCandidate{1500: makeCandidates("p", 5)},
		}
		resultRepo := &stubResultRepository{}

		result, err := newTestUseCase(placesRepo, resultRepo).GenerateRecommendations(ctx, eatRequest())

		require.NoError(t, err)
		require.Len(t, resultRepo.saved, 1)
		assert.Equal(t, result.ID, resultRepo.saved[0].ID)
	})
}

func TestGetRecommendation(t *testing.T) {
	ctx := context.Background()
	placesRepo := &stubPlacesRepository{}

	t.Run("保存済みの結果を取得できる", func(t *testing.T) {
		stored := &model.RecommendationResult{ID: "rec-1", Category: model.CategoryEat}
		resultRepo := &stubResultRepository{stored: map[string]*model.RecommendationResult{"rec-1": stored}}

		result, err := newTestUseCase(placesRepo, resultRepo).GetRecommendation(ctx, "rec-1")

		require.NoError(t, err)
		assert.Equal(t, stored, result)
	})

	t.Run("存在しないIDはエラー", func(t *testing.T) {
		resultRepo := &stubResultRepository{}

		_, err := newTestUseCase(placesRepo, resultRepo).GetRecommendation(ctx, "missing")
		assert.Error(t, err)
	})

	t.Run("保存が無効な構成ではエラー", func(t *testing.T) {
		_, err := newTestUseCase(placesRepo, nil).GetRecommendation(ctx, "rec-1")
		assert.Error(t, err)
	})
}
