package main

import (
	"context"
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"chili_backend/internal/app/di"
	"chili_backend/internal/app/router"
	historyadapters "chili_backend/internal/feature/history/adapters"
	historyhandler "chili_backend/internal/feature/history/transport/handler"
	historyusecase "chili_backend/internal/feature/history/usecase"
	"chili_backend/internal/feature/prediction/adapters/imaging"
	predictionhandler "chili_backend/internal/feature/prediction/transport/handler"
	predictionusecase "chili_backend/internal/feature/prediction/usecase"
	"chili_backend/internal/platform/cache"
	infradb "chili_backend/internal/platform/db"
	jwtmw "chili_backend/internal/platform/jwt"
	infraredis "chili_backend/internal/platform/redis"
)

func main() {
	ctx := context.Background()

	// モデルは起動時に一度だけロードする。失敗時はプロセスを起動しない
	classifier, err := di.NewClassifier()
	if err != nil {
		log.Fatalf("model load failed: %v", err)
	}
	defer classifier.Close()
	log.Printf("model loaded: classes=%v", classifier.Labels())

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Blobストア（Azureまたはローカルディスク）
	store, err := di.NewImageStore(ctx)
	if err != nil {
		log.Fatalf("image store init failed: %v", err)
	}

	// Repository
	historyRepo := historyadapters.NewHistoryRepository(db)

	// Redisキャッシュでラップ
	cachedHistoryRepo := cache.NewCachingHistoryRepository(rdb, 0, historyRepo, "history")

	// Usecase
	predictionUC := predictionusecase.NewPredictionUsecase(imaging.NewNormalizer(), classifier)
	historyUC := historyusecase.NewHistoryUsecase(cachedHistoryRepo, store)

	// Handler
	predictionH := predictionhandler.NewPredictionHandler(predictionUC)
	historyH := historyhandler.NewHistoryHandler(historyUC)

	// JWT_SECRETチェック（未設定時は変更系エンドポイントが無認証になる）
	requireAuth := os.Getenv(jwtmw.EnvKeyJWTSecret) != ""
	if !requireAuth {
		log.Println("[WARN] JWT_SECRET is not set. History mutations are unauthenticated.")
	}

	// ルータ生成
	router := router.NewRouter(predictionH, historyH, requireAuth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
