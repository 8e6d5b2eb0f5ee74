package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"Odekake-App/internal/domain/model"
	"Odekake-App/internal/usecase"
)

// RecommendationHandler はおすすめスポットAPIのハンドラー
type RecommendationHandler struct {
	recommendationUseCase usecase.RecommendationUseCase
}

// NewRecommendationHandler は新しいRecommendationHandlerインスタンスを作成
func NewRecommendationHandler(recommendationUseCase usecase.RecommendationUseCase) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUseCase: recommendationUseCase,
	}
}

// PostRecommendations はクイズの回答からおすすめスポットを生成するエンドポイント
// POST /api/recommendations
func (h *RecommendationHandler) PostRecommendations(c *gin.Context) {
	var req model.RecommendationRequest

	// リクエストボディのバインド
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return
	}

	// バリデーション
	if err := h.validateRequest(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": err.Error(),
		})
		return
	}

	// UseCase呼び出し
	result, err := h.recommendationUseCase.GenerateRecommendations(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "おすすめスポットの生成に失敗しました",
			"details": err.Error(),
		})
		return
	}

	// 成功レスポンス
	c.JSON(http.StatusOK, result)
}

// GetRecommendation は保存済みのおすすめ結果を取得するエンドポイント
// GET /api/recommendations/:id
func (h *RecommendationHandler) GetRecommendation(c *gin.Context) {
	recommendationID := strings.TrimSpace(c.Param("id"))
	if recommendationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "recommendation_idが指定されていません",
		})
		return
	}

	result, err := h.recommendationUseCase.GetRecommendation(c.Request.Context(), recommendationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "おすすめ結果が見つかりません",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// validateRequest はリクエストの内容を検証する
func (h *RecommendationHandler) validateRequest(req *model.RecommendationRequest) error {
	if !model.IsValidCategory(req.Category) {
		return fmt.Errorf("不明なカテゴリです: %s (有効: %s)", req.Category, strings.Join(model.GetAllCategories(), ", "))
	}
	if req.Latitude < -90 || req.Latitude > 90 {
		return fmt.Errorf("緯度が範囲外です: %f", req.Latitude)
	}
	if req.Longitude < -180 || req.Longitude > 180 {
		return fmt.Errorf("経度が範囲外です: %f", req.Longitude)
	}
	return nil
}
