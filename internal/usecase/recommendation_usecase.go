package usecase

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"Odekake-App/internal/domain/helper"
	"Odekake-App/internal/domain/model"
	"Odekake-App/internal/domain/repository"
	"Odekake-App/internal/domain/service"
	"Odekake-App/internal/domain/strategy"
)

const (
	// フォールバック探索を打ち切るのに十分な候補数
	enoughCandidates = 10

	// 検索戦略を並行実行する際の同時実行数
	maxConcurrentSearches = 3
)

type RecommendationUseCase interface {
	// GenerateRecommendations はクイズの回答からおすすめスポット一覧を生成して保存する
	GenerateRecommendations(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResult, error)

	// GetRecommendation は保存済みのおすすめ結果をIDで取得する
	GetRecommendation(ctx context.Context, recommendationID string) (*model.RecommendationResult, error)
}

// recommendationUseCaseImpl はRecommendationUseCaseの実装
type recommendationUseCaseImpl struct {
	placesRepo repository.PlacesSearchRepository
	resultRepo repository.RecommendationsRepository // nilの場合は保存をスキップ
	resolver   *strategy.CategoryStrategyResolver
	engine     *service.RankingEngine
}

// NewRecommendationUseCase は新しいRecommendationUseCaseインスタンスを作成
func NewRecommendationUseCase(
	placesRepo repository.PlacesSearchRepository,
	resultRepo repository.RecommendationsRepository,
	resolver *strategy.CategoryStrategyResolver,
	engine *service.RankingEngine,
) RecommendationUseCase {
	return &recommendationUseCaseImpl{
		placesRepo: placesRepo,
		resultRepo: resultRepo,
		resolver:   resolver,
		engine:     engine,
	}
}

// GenerateRecommendations はベクトル化→検索戦略の解決→候補収集→ランキングの順で処理する
func (u *recommendationUseCaseImpl) GenerateRecommendations(ctx context.Context, req *model.RecommendationRequest) (*model.RecommendationResult, error) {
	profile := req.ToProfile()
	log.Printf("🚀 おすすめ生成開始 (カテゴリ: %s)", model.GetCategoryJapaneseName(profile.Category))

	vector := service.ComputeUserVector(profile)
	constraints := service.ComputeConstraints(profile)
	mapping := u.resolver.GetCategoryMapping(profile.Category, vector, profile.IndoorPreferred)
	strategies := u.resolver.GetSearchStrategies(profile.Category, vector)

	origin := profile.Origin.ToLatLng()
	candidates, err := u.collectCandidates(ctx, origin, strategies)
	if err != nil {
		return nil, fmt.Errorf("候補スポットの収集に失敗: %w", err)
	}
	log.Printf("✅ %d件の候補スポットを収集", len(candidates))

	annotated := helper.AddDistanceToPlaces(origin, candidates)
	ranked := u.engine.RankPlaces(annotated, vector, constraints, mapping)

	result := &model.RecommendationResult{
		ID:        uuid.New().String(),
		Category:  profile.Category,
		Places:    ranked,
		CreatedAt: time.Now(),
	}

	// 保存の失敗はおすすめ自体の失敗にはしない
	if u.resultRepo != nil {
		if err := u.resultRepo.Save(ctx, result); err != nil {
			log.Printf("⚠️ おすすめ結果の保存に失敗（処理は継続）: %v", err)
		}
	}

	log.Printf("🏆 おすすめ生成完了: %s (%d件)", result.ID, len(ranked))
	return result, nil
}

// GetRecommendation は保存済みのおすすめ結果をIDで取得する
func (u *recommendationUseCaseImpl) GetRecommendation(ctx context.Context, recommendationID string) (*model.RecommendationResult, error) {
	if u.resultRepo == nil {
		return nil, fmt.Errorf("おすすめ結果の保存が無効になっています")
	}
	return u.resultRepo.GetByID(ctx, recommendationID)
}

// searchOutcome は1戦略分の検索結果
type searchOutcome struct {
	candidates []model.PlaceCandidate
	err        error
}

// collectCandidates は検索戦略を並行実行し、フォールバック順を保って候補をマージする
// 早い段階の戦略の結果を優先し、十分な候補数が集まった時点で残りは使わない
func (u *recommendationUseCaseImpl) collectCandidates(ctx context.Context, origin model.LatLng, strategies []model.SearchStrategy) ([]model.PlaceCandidate, error) {
	if len(strategies) == 0 {
		return []model.PlaceCandidate{}, nil
	}

	log.Printf("🔍 %d個の検索戦略を並行実行", len(strategies))
	start := time.Now()

	// セマフォを使用して同時実行数を制限
	semaphore := make(chan struct{}, maxConcurrentSearches)
	outcomes := make([]searchOutcome, len(strategies))
	var wg sync.WaitGroup

	for i, s := range strategies {
		wg.Add(1)
		go func(index int, st model.SearchStrategy) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			candidates, err := u.placesRepo.SearchByStrategy(ctx, origin, st)
			outcomes[index] = searchOutcome{candidates: candidates, err: err}
		}(i, s)
	}
	wg.Wait()

	// フォールバック順（戦略の定義順）にマージし、place_idで重複排除する
	seen := make(map[string]struct{})
	var merged []model.PlaceCandidate
	var lastErr error
	for i, outcome := range outcomes {
		if outcome.err != nil {
			lastErr = outcome.err
			log.Printf("⚠️ 検索戦略%dが失敗: %v", i+1, outcome.err)
			continue
		}
		for _, candidate := range outcome.candidates {
			if _, ok := seen[candidate.PlaceID]; ok {
				continue
			}
			seen[candidate.PlaceID] = struct{}{}
			merged = append(merged, candidate)
		}
		if len(merged) >= enoughCandidates {
			break
		}
	}

	log.Printf("✅ 候補収集完了: %v", time.Since(start))

	// 全戦略が失敗した場合のみエラーを返す
	if len(merged) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return merged, nil
}
