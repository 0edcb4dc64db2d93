// Package usecase はhistoryフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"chili_backend/internal/feature/history/domain/entity"
)

// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
const MaxImageSize = 10 * 1024 * 1024

// allowedExtensions は保存を許可する画像拡張子の集合です。
var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
}

// HistoryRepository は履歴レコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type HistoryRepository interface {
	// Create は履歴レコードを1件のトランザクション内で挿入します。
	// 成功時、h.IDに採番されたIDが設定されます。
	Create(ctx context.Context, h *entity.History) error

	// FindAll は全履歴を日時の降順（最新が先頭）で返します。
	FindAll(ctx context.Context) ([]entity.History, error)

	// DeleteByID はIDで履歴を削除します。対象が存在しない場合、
	// ErrHistoryNotFoundを返します。
	DeleteByID(ctx context.Context, id uint) error
}

// ImageStore は画像バイト列を永続化するBlobストアを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ImageStore interface {
	// Upload は画像を保存し、取得可能な参照（URLまたはパス）を返します。
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// AddHistoryInput は履歴追加の入力です。Accuracyはフォーム値のまま受け取り、
// ユースケース内で整数として検証します。
type AddHistoryInput struct {
	Filename   string
	Image      []byte
	Label      string
	Accuracy   string
	OccurredAt string
}

// historyUsecase は履歴台帳の操作を実装します。
type historyUsecase struct {
	repo  HistoryRepository
	store ImageStore
}

// NewHistoryUsecase はhistoryUsecaseの新しいインスタンスを生成します。
func NewHistoryUsecase(repo HistoryRepository, store ImageStore) *historyUsecase {
	return &historyUsecase{repo: repo, store: store}
}

// Add は画像をBlobストアへ保存し、その参照を持つ履歴レコードを挿入します。
// 処理順序は 検証 → アップロード → トランザクション内の挿入 で固定です。
// 検証に失敗した場合、アップロードもデータベース書き込みも行われません。
// アップロード完了後にデータベースが失敗した場合、Blobは孤児として残ります
// （自動回収はせず、キーをログに記録します）。
func (u *historyUsecase) Add(ctx context.Context, in AddHistoryInput) (string, error) {
	if in.Label == "" || in.Accuracy == "" || in.OccurredAt == "" {
		return "", fmt.Errorf("%w: name, accuracy and date are required", ErrMissingInput)
	}
	if in.Filename == "" || len(in.Image) == 0 {
		return "", fmt.Errorf("%w: no image uploaded", ErrMissingInput)
	}
	if len(in.Image) > MaxImageSize {
		return "", fmt.Errorf("%w of %d bytes", ErrImageTooLarge, MaxImageSize)
	}
	ext := strings.ToLower(filepath.Ext(in.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileType, ext)
	}
	accuracy, err := strconv.Atoi(in.Accuracy)
	if err != nil {
		return "", fmt.Errorf("%w: accuracy must be a whole number", ErrMissingInput)
	}

	ref, err := u.store.Upload(ctx, in.Filename, in.Image)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}

	record := &entity.History{
		ImageRef:   ref,
		Label:      in.Label,
		Accuracy:   accuracy,
		OccurredAt: in.OccurredAt,
	}
	if err := u.repo.Create(ctx, record); err != nil {
		// アップロード済みのBlobは孤児になる。手動回収できるよう参照を記録する
		slog.Error("history insert failed after upload", "image_ref", ref, "error", err)
		return "", fmt.Errorf("history insert failed: %w", err)
	}

	return ref, nil
}

// List は全履歴を日時の降順で返します。ページングは行いません。
func (u *historyUsecase) List(ctx context.Context) ([]entity.History, error) {
	return u.repo.FindAll(ctx)
}

// Delete はIDで履歴を削除します。参照先の画像Blobは削除しません。
func (u *historyUsecase) Delete(ctx context.Context, id uint) error {
	return u.repo.DeleteByID(ctx, id)
}
