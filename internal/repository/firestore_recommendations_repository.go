package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/firestore"

	"Odekake-App/internal/domain/model"
	"Odekake-App/internal/domain/repository"
)

const recommendationsCollection = "recommendations"

// FirestoreRecommendationsRepository Firestoreを使用したおすすめ結果の保存リポジトリ
// 生成した結果をIDで引けるようにして、診断結果ページの開き直しや共有に使う
type FirestoreRecommendationsRepository struct {
	client *firestore.Client
}

func NewFirestoreRecommendationsRepository(client *firestore.Client) repository.RecommendationsRepository {
	return &FirestoreRecommendationsRepository{
		client: client,
	}
}

// Save はおすすめ結果をFirestoreに保存する
func (r *FirestoreRecommendationsRepository) Save(ctx context.Context, result *model.RecommendationResult) error {
	_, err := r.client.Collection(recommendationsCollection).Doc(result.ID).Set(ctx, result)
	if err != nil {
		log.Printf("❌ Failed to save recommendation %s: %v", result.ID, err)
		return fmt.Errorf("おすすめ結果の保存に失敗しました: %w", err)
	}

	log.Printf("✅ Recommendation saved: %s (%d places)", result.ID, len(result.Places))
	return nil
}

// GetByID は指定されたIDのおすすめ結果をFirestoreから取得する
func (r *FirestoreRecommendationsRepository) GetByID(ctx context.Context, recommendationID string) (*model.RecommendationResult, error) {
	doc, err := r.client.Collection(recommendationsCollection).Doc(recommendationID).Get(ctx)
	if err != nil {
		if status := err.Error(); strings.Contains(status, "NotFound") || strings.Contains(status, "not found") {
			return nil, fmt.Errorf("おすすめ結果が見つかりません: %s", recommendationID)
		}
		return nil, fmt.Errorf("おすすめ結果の取得に失敗しました: %w", err)
	}

	var result model.RecommendationResult
	if err := doc.DataTo(&result); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}

	return &result, nil
}
