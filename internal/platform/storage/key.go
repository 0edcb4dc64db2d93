package storage

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// objectKey はアップロードされたファイル名から衝突しないBlobキーを導出します。
// 元のファイル名は拡張子のみ引き継ぎ、本体はUUIDに置き換えます。
func objectKey(filename string) (string, error) {
	if filename == "" {
		return "", ErrEmptyKey
	}
	if strings.Contains(filename, "..") {
		return "", ErrInvalidKey
	}
	ext := strings.ToLower(filepath.Ext(filename))
	return uuid.NewString() + ext, nil
}
