// Package handler はhistoryフィーチャーのHTTPハンドラーを提供します。
//
// キャンセルの扱い: リクエストのcontextはユースケースとドライバまで伝播されます。
// クライアントがアップロード途中で切断した場合に処理が中断されるかどうかは
// ドライバの実装に依存し、本パッケージは保証しません。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"chili_backend/internal/api"
	"chili_backend/internal/feature/history/domain/entity"
	"chili_backend/internal/feature/history/usecase"
)

// HistoryUsecase は履歴台帳のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type HistoryUsecase interface {
	Add(ctx context.Context, in usecase.AddHistoryInput) (string, error)
	List(ctx context.Context) ([]entity.History, error)
	Delete(ctx context.Context, id uint) error
}

// HistoryHandler は履歴台帳のHTTPリクエストを処理します。
type HistoryHandler struct {
	uc HistoryUsecase
}

// NewHistoryHandler はHistoryHandlerの新しいインスタンスを生成します。
func NewHistoryHandler(uc HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{uc: uc}
}

// Add は画像をアップロードして履歴を追加します。
//
// エンドポイント: POST /history
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル）、name、accuracy、date
func (h *HistoryHandler) Add(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		slog.Warn("history request without image", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "no image uploaded"})
		return
	}

	f, err := file.Open()
	if err != nil {
		slog.Error("failed to open uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close uploaded image", "error", err)
		}
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("failed to read uploaded image", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to read image"})
		return
	}

	in := usecase.AddHistoryInput{
		Filename:   file.Filename,
		Image:      data,
		Label:      c.PostForm("name"),
		Accuracy:   c.PostForm("accuracy"),
		OccurredAt: c.PostForm("date"),
	}

	ref, err := h.uc.Add(c.Request.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidFileType):
			slog.Warn("history image rejected", "error", err, "filename", file.Filename, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid file type"})
		case errors.Is(err, usecase.ErrMissingInput), errors.Is(err, usecase.ErrImageTooLarge):
			slog.Warn("history request rejected", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "missing data"})
		default:
			// アップロード・DB障害の詳細はログのみに残し、クライアントには汎用メッセージを返す
			slog.Error("history add failed", "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to add history"})
		}
		return
	}

	c.JSON(http.StatusCreated, api.AddHistoryResponse{
		Message:  "history added successfully",
		ImageRef: ref,
	})
}

// List は全履歴を日時の降順で返します。
//
// エンドポイント: GET /history
func (h *HistoryHandler) List(c *gin.Context) {
	records, err := h.uc.List(c.Request.Context())
	if err != nil {
		slog.Error("history list failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to list history"})
		return
	}

	out := make([]api.HistoryItem, 0, len(records))
	for _, r := range records {
		out = append(out, api.HistoryItem{
			ID:       r.ID,
			Image:    r.ImageRef,
			Name:     r.Label,
			Accuracy: r.Accuracy,
			Date:     r.OccurredAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Delete はIDで履歴を削除します。
//
// エンドポイント: DELETE /history/:id
func (h *HistoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		slog.Warn("history delete with invalid id", "id", c.Param("id"), "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid id"})
		return
	}

	if err := h.uc.Delete(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, usecase.ErrHistoryNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "history not found"})
			return
		}
		slog.Error("history delete failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete history"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "history deleted successfully"})
}
