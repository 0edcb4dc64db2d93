// Package handler はpredictionフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"chili_backend/internal/api"
	"chili_backend/internal/feature/prediction/domain/entity"
	"chili_backend/internal/feature/prediction/usecase"
)

// PredictionUsecase は画像分類のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PredictionUsecase interface {
	Predict(ctx context.Context, raw []byte) (*entity.ClassificationResult, error)
}

// PredictionHandler は画像分類のHTTPリクエストを処理します。
type PredictionHandler struct {
	uc PredictionUsecase
}

// NewPredictionHandler はPredictionHandlerの新しいインスタンスを生成します。
func NewPredictionHandler(uc PredictionUsecase) *PredictionHandler {
	return &PredictionHandler{uc: uc}
}

// Predict は画像をアップロードして分類します。
//
// エンドポイント: POST /predict
// Content-Type: multipart/form-data
// フィールド: file（画像ファイル、最大10MB）
func (h *PredictionHandler) Predict(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		slog.Warn("prediction request without file", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no file part"})
		return
	}
	if file.Filename == "" {
		slog.Warn("prediction request with empty filename", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no selected file"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded file", "error", err)
		}
	}()

	raw, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read uploaded file", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	result, err := h.uc.Predict(c.Request.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrMissingInput),
			errors.Is(err, usecase.ErrImageTooLarge),
			errors.Is(err, usecase.ErrImageDecode):
			// クライアント入力に起因するエラー。詳細はサーバー側のログのみに残す
			slog.Warn("prediction input rejected", "error", err, "filename", file.Filename, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid image"})
		default:
			slog.Error("prediction failed", "error", err, "filename", file.Filename)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "prediction failed"})
		}
		return
	}

	c.JSON(http.StatusOK, api.PredictionResponse{
		Class:   result.Class,
		Label:   result.Label,
		Score:   result.Confidence,
		Message: result.Message,
	})
}
