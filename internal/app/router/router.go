// Package router はアプリケーションのHTTPルートを構成します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	historyhandler "chili_backend/internal/feature/history/transport/handler"
	predictionhandler "chili_backend/internal/feature/prediction/transport/handler"
	platformhandler "chili_backend/internal/platform/http/handler"
	jwtmw "chili_backend/internal/platform/jwt"
)

// NewRouter はルータを生成し、全エンドポイントを登録します。
// requireAuthがtrueの場合、履歴の変更系エンドポイントにBearerトークンが必要になります。
func NewRouter(prediction *predictionhandler.PredictionHandler,
	history *historyhandler.HistoryHandler, requireAuth bool) *gin.Engine {
	r := gin.Default()

	// Webフロントエンドから直接呼ばれるためCORSを許可
	r.Use(cors.Default())

	// 導通確認用
	r.GET("/", platformhandler.Index)
	r.GET("/healthz", platformhandler.Health)

	// 画像分類
	r.POST("/predict", prediction.Predict)

	// 履歴の参照
	r.GET("/history", history.List)

	// 履歴の変更。JWT_SECRET設定時のみ認証必須
	mutations := r.Group("/")
	if requireAuth {
		mutations.Use(jwtmw.AuthRequired())
	}
	{
		mutations.POST("/history", history.Add)
		mutations.DELETE("/history/:id", history.Delete)
	}

	return r
}
