package repository

import (
	"context"

	"Odekake-App/internal/domain/model"
)

// PlacesSearchRepository は外部のスポット検索プロバイダへのインターフェース
// 1つの検索戦略を実行して候補スポットを返す。戦略のフォールバック順の制御は
// 呼び出し側（ユースケース）の責務
type PlacesSearchRepository interface {
	SearchByStrategy(ctx context.Context, location model.LatLng, strategy model.SearchStrategy) ([]model.PlaceCandidate, error)
}
