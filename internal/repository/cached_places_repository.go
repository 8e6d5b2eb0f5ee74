package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"Odekake-App/internal/domain/model"
	"Odekake-App/internal/domain/repository"
)

const (
	placesCacheTTL     = 5 * time.Minute
	placesCacheCleanup = 10 * time.Minute
)

// CachedPlacesRepository は検索結果を短時間メモ化するデコレータ
// 同じ場所・同じ戦略での連続リクエスト（再診断など）で外部APIの呼び出しを節約する
type CachedPlacesRepository struct {
	inner repository.PlacesSearchRepository
	cache *gocache.Cache
}

func NewCachedPlacesRepository(inner repository.PlacesSearchRepository) repository.PlacesSearchRepository {
	return &CachedPlacesRepository{
		inner: inner,
		cache: gocache.New(placesCacheTTL, placesCacheCleanup),
	}
}

// SearchByStrategy はキャッシュにあればそれを返し、なければ内側の実装に委譲する
func (r *CachedPlacesRepository) SearchByStrategy(ctx context.Context, location model.LatLng, strategy model.SearchStrategy) ([]model.PlaceCandidate, error) {
	key := cacheKey(location, strategy)

	if cached, found := r.cache.Get(key); found {
		if candidates, ok := cached.([]model.PlaceCandidate); ok {
			return candidates, nil
		}
	}

	candidates, err := r.inner.SearchByStrategy(ctx, location, strategy)
	if err != nil {
		return nil, err
	}

	r.cache.Set(key, candidates, gocache.DefaultExpiration)
	return candidates, nil
}

// cacheKey は座標を約10m精度に丸めてキーにする（微小な位置の揺れでキャッシュを無駄にしない）
func cacheKey(location model.LatLng, strategy model.SearchStrategy) string {
	return fmt.Sprintf("%.4f,%.4f|%s|%s|%d",
		location.Lat, location.Lng,
		strings.Join(strategy.PrimaryTypes, ","),
		strings.Join(strategy.Keywords, ","),
		strategy.SearchRadius,
	)
}
