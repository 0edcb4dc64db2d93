package storage

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"chili_backend/internal/feature/history/usecase"
)

// AzureStore はAzure Blob Storageに画像を保存します。
type AzureStore struct {
	client    *azblob.Client
	container string
}

// AzureStoreがImageStoreを実装していることをコンパイル時に検証します。
var _ usecase.ImageStore = (*AzureStore)(nil)

// NewAzureStore は接続文字列からAzureStoreの新しいインスタンスを生成します。
// 接続はまだ確立されません。コンテナの準備はEnsureContainerで行います。
func NewAzureStore(connectionString, container string) (*AzureStore, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &AzureStore{client: client, container: container}, nil
}

// EnsureContainer はコンテナが存在しない場合に作成します。
func (s *AzureStore) EnsureContainer(ctx context.Context) error {
	_, err := s.client.CreateContainer(ctx, s.container, nil)
	if err != nil {
		if !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return fmt.Errorf("create container %s: %w", s.container, err)
		}
	}
	slog.Info("storage container ready", "container", s.container)
	return nil
}

// Upload は画像をBlobとして保存し、そのURLを返します。
func (s *AzureStore) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	key, err := objectKey(filename)
	if err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	opts := &azblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	if _, err := s.client.UploadBuffer(ctx, s.container, key, data, opts); err != nil {
		return "", fmt.Errorf("upload blob %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.client.URL(), "/"), s.container, key), nil
}
