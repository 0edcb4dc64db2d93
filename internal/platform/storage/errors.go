// Package storage はアップロード画像のBlobストア実装を提供します。
// Azure Blob Storageとローカルディスクの2つの実装があり、起動時に選択されます。
package storage

import "errors"

var (
	// ErrEmptyKey is returned when an upload is attempted without a filename.
	ErrEmptyKey = errors.New("blob key is empty")

	// ErrInvalidKey is returned when the filename would escape the store's namespace.
	ErrInvalidKey = errors.New("blob key contains an invalid path")
)
