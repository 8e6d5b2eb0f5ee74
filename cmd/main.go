package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"Odekake-App/internal/domain/repository"
	"Odekake-App/internal/domain/service"
	"Odekake-App/internal/domain/strategy"
	"Odekake-App/internal/handler"
	"Odekake-App/internal/infrastructure/database"
	"Odekake-App/internal/infrastructure/firestore"
	"Odekake-App/internal/infrastructure/maps"
	repoImpl "Odekake-App/internal/repository"
	"Odekake-App/internal/usecase"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	ctx := context.Background()

	// 候補ソースの選択: Google Places APIキーがあれば外部検索、なければ自前POIテーブル
	placesRepo, err := buildPlacesRepository()
	if err != nil {
		log.Fatalf("スポット検索ソースの初期化失敗: %v", err)
	}

	// 結果保存はFirestoreの設定がある場合のみ有効
	var resultRepo repository.RecommendationsRepository
	if projectID := os.Getenv("FIRESTORE_PROJECT_ID"); projectID != "" {
		firestoreClient, err := firestore.NewFirestoreClient(ctx, projectID)
		if err != nil {
			log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
		}
		defer firestoreClient.Close()
		resultRepo = repoImpl.NewFirestoreRecommendationsRepository(firestoreClient.GetClient())
	} else {
		fmt.Println("⚠️ FIRESTORE_PROJECT_IDが未設定のため、結果の保存をスキップします")
	}

	resolver := strategy.NewCategoryStrategyResolver()
	engine := service.NewRankingEngine(service.DefaultRankingConfig(), service.NewSystemRandSource())

	recommendationUseCase := usecase.NewRecommendationUseCase(placesRepo, resultRepo, resolver, engine)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUseCase)

	// Ginエンジンのセットアップ
	router := gin.Default()
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "Odekake-App"})
	})
	router.POST("/api/recommendations", recommendationHandler.PostRecommendations)
	router.GET("/api/recommendations/:id", recommendationHandler.GetRecommendation)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("Odekake-App server starting on :%s...\n", port)
	log.Fatal(router.Run(":" + port))
}

// buildPlacesRepository は環境変数に応じて候補スポットの検索ソースを構築する
// どのソースもキャッシュデコレータで包んで返す
func buildPlacesRepository() (repository.PlacesSearchRepository, error) {
	if apiKey := os.Getenv("GOOGLE_PLACES_API_KEY"); apiKey != "" {
		fmt.Println("Initializing Google Places provider...")
		return repoImpl.NewCachedPlacesRepository(maps.NewGooglePlacesProvider(apiKey)), nil
	}

	if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
		fmt.Println("Initializing PostgreSQL places repository...")
		postgresClient, err := database.NewPostgreSQLClient()
		if err != nil {
			return nil, fmt.Errorf("PostgreSQLクライアント初期化失敗: %w", err)
		}
		return repoImpl.NewCachedPlacesRepository(repoImpl.NewPostgresPlacesRepository(postgresClient)), nil
	}

	if os.Getenv("SUPABASE_URL") != "" {
		fmt.Println("Initializing Supabase places repository...")
		supabaseClient, err := database.NewSupabaseClient()
		if err != nil {
			return nil, fmt.Errorf("Supabaseクライアント初期化失敗: %w", err)
		}
		if err := supabaseClient.HealthCheck(); err != nil {
			return nil, fmt.Errorf("Supabaseヘルスチェック失敗: %w", err)
		}
		return repoImpl.NewCachedPlacesRepository(repoImpl.NewSupabasePlacesRepository(supabaseClient)), nil
	}

	return nil, fmt.Errorf("GOOGLE_PLACES_API_KEY・SUPABASE_URLのいずれも設定されていません")
}
