package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"chili_backend/internal/feature/history/usecase"
)

// LocalStore はローカルディスクのディレクトリに画像を保存します。
// 単一ホスト構成向けのデフォルト実装で、参照として公開パスを返します。
type LocalStore struct {
	dir      string
	basePath string
}

// LocalStoreがImageStoreを実装していることをコンパイル時に検証します。
var _ usecase.ImageStore = (*LocalStore)(nil)

// NewLocalStore は保存先ディレクトリを作成し、LocalStoreの新しいインスタンスを生成します。
// basePathは参照の先頭に付く公開パスです（空の場合は "/"）。
func NewLocalStore(dir, basePath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	if basePath == "" {
		basePath = "/"
	}
	return &LocalStore{dir: dir, basePath: basePath}, nil
}

// Upload は画像をディスクへ書き込み、公開パス形式の参照を返します。
func (s *LocalStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	key, err := objectKey(filename)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", key, err)
	}

	return path.Join(s.basePath, key), nil
}
