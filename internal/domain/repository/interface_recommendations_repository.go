package repository

import (
	"context"

	"Odekake-App/internal/domain/model"
)

// RecommendationsRepository は生成済みのおすすめ一覧を保存・取得するインターフェース
// 結果を後から開き直せるようにIDで引けるようにする
type RecommendationsRepository interface {
	Save(ctx context.Context, result *model.RecommendationResult) error
	GetByID(ctx context.Context, recommendationID string) (*model.RecommendationResult, error)
}
