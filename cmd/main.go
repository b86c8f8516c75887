package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"CampusNav-App/internal/database"
	"CampusNav-App/internal/domain/model"
	"CampusNav-App/internal/domain/repository"
	"CampusNav-App/internal/domain/service"
	"CampusNav-App/internal/handler"
	infraDB "CampusNav-App/internal/infrastructure/database"
	infraFirestore "CampusNav-App/internal/infrastructure/firestore"
	"CampusNav-App/internal/infrastructure/location"
	"CampusNav-App/internal/infrastructure/maps"
	repoImpl "CampusNav-App/internal/repository"
	"CampusNav-App/internal/usecase"
)

// defaultRegion 初期表示のビューポート（東キャンパス全体）
var defaultRegion = model.Region{
	Latitude:       34.9820,
	Longitude:      135.9635,
	LatitudeDelta:  0.01,
	LongitudeDelta: 0.01,
}

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using system environment variables")
	}

	ctx := context.Background()

	// 建物レジストリのバックエンドを選択（DB未設定なら組み込みデータ）
	buildingsRepo := setupBuildingsRepository()
	poisRepo := repoImpl.NewStaticPOIsRepository()

	// 外部コラボレーター（Google Maps系API）
	googleMapsAPIKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	var directionsProvider repository.DirectionsProvider
	var placesProvider repository.PlacesSearchProvider
	var locationProvider repository.CurrentLocationProvider
	if googleMapsAPIKey != "" {
		directionsProvider = maps.NewGoogleDirectionsProvider(googleMapsAPIKey)
		placesProvider = maps.NewGooglePlacesProvider(googleMapsAPIKey)
		locationProvider = location.NewGoogleGeolocationProvider(googleMapsAPIKey)
	} else {
		fmt.Println("⚠️  GOOGLE_MAPS_API_KEYが設定されていません。外部検索・経路計画は無効になります")
	}

	// Firestore（計画済み経路キャッシュ、未設定なら保存なしで動作）
	var tripPlanRepo repository.TripPlanRepository
	if projectID := os.Getenv("FIRESTORE_PROJECT_ID"); projectID != "" {
		firestoreClient, err := infraFirestore.NewFirestoreClient(ctx, projectID)
		if err != nil {
			log.Fatalf("Firestoreクライアント初期化失敗: %v", err)
		}
		defer firestoreClient.Close()
		tripPlanRepo = repoImpl.NewFirestoreTripPlanRepository(firestoreClient.GetClient())
	} else {
		fmt.Println("⚠️  FIRESTORE_PROJECT_IDが設定されていません。経路計画はキャッシュなしで動作します")
	}

	// ドメインサービスとユースケース
	resolver := service.NewLocationResolver(buildingsRepo)
	searchService := service.NewSearchService(buildingsRepo, poisRepo, placesProvider)
	tripPlanUseCase := usecase.NewTripPlanUseCase(directionsProvider, tripPlanRepo)
	sessionUseCase := usecase.NewMapSessionUseCase(resolver, searchService, locationProvider, buildingsRepo, tripPlanUseCase, defaultRegion)

	// ハンドラー
	sessionHandler := handler.NewMapSessionHandler(sessionUseCase)
	buildingsHandler := handler.NewBuildingsHandler(buildingsRepo, poisRepo)
	searchHandler := handler.NewSearchHandler(searchService)
	tripPlanHandler := handler.NewTripPlanHandler(tripPlanUseCase)

	// ルーティング
	router := gin.Default()

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "CampusNav-App"})
	})

	router.POST("/map/sessions", sessionHandler.PostSession)
	router.GET("/map/sessions/:id", sessionHandler.GetSession)
	router.POST("/map/sessions/:id/events", sessionHandler.PostEvent)
	router.GET("/map/sessions/:id/suggestions", sessionHandler.GetSuggestions)
	router.POST("/map/sessions/:id/travel", sessionHandler.PostTravel)

	router.GET("/buildings", buildingsHandler.GetBuildings)
	router.GET("/buildings/:id", buildingsHandler.GetBuilding)
	router.GET("/pois", buildingsHandler.GetNearbyPOIs)
	router.GET("/search", searchHandler.GetSearchResults)

	router.POST("/trips/plans", tripPlanHandler.PostTripPlan)
	router.GET("/trips/plans/:id", tripPlanHandler.GetTripPlan)
	router.GET("/trips/modes", tripPlanHandler.GetTravelModes)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fmt.Printf("CampusNav-App server starting on :%s...\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("サーバーの起動に失敗: %v", err)
	}
}

// setupBuildingsRepository 環境変数に応じて建物レジストリのバックエンドを選択する。
// 優先順位: PostgreSQL直接接続 → Supabase(PostgREST) → 組み込みデータ。
func setupBuildingsRepository() repository.BuildingsRepository {
	if os.Getenv("SUPABASE_DB_PASSWORD") != "" {
		fmt.Println("Initializing PostgreSQL client...")
		postgresClient, err := infraDB.NewPostgreSQLClientWithRetry(5, 2*time.Second)
		if err != nil {
			log.Fatalf("PostgreSQLクライアント初期化失敗: %v", err)
		}
		fmt.Println("✅ PostgreSQL connection successful!")
		return repoImpl.NewPostgresBuildingsRepository(postgresClient)
	}

	if os.Getenv("SUPABASE_ANON_KEY") != "" {
		fmt.Println("Initializing Supabase client...")
		supabaseClient, err := database.NewSupabaseClient()
		if err != nil {
			log.Fatalf("Supabaseクライアント初期化失敗: %v", err)
		}
		if err := supabaseClient.HealthCheck(); err != nil {
			log.Fatalf("Supabaseヘルスチェック失敗: %v", err)
		}
		fmt.Println("✅ Supabase connection successful!")
		return repoImpl.NewSupabaseBuildingsRepository(supabaseClient)
	}

	fmt.Println("ℹ️  データベース未設定のため組み込みのキャンパスデータを使用します")
	return repoImpl.NewStaticBuildingsRepository()
}
