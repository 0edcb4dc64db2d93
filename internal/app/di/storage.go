// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"os"

	historyusecase "chili_backend/internal/feature/history/usecase"
	"chili_backend/internal/platform/storage"
)

// NewImageStore creates an ImageStore implementation.
// If an Azure connection string is configured, it returns the Azure-backed store.
// Otherwise, it falls back to local disk, matching the original single-host deployment.
func NewImageStore(ctx context.Context) (historyusecase.ImageStore, error) {
	if conn := os.Getenv("AZURE_STORAGE_CONNECTION_STRING"); conn != "" {
		container := getenv("AZURE_STORAGE_CONTAINER", "history-images")
		store, err := storage.NewAzureStore(conn, container)
		if err != nil {
			return nil, err
		}
		if err := store.EnsureContainer(ctx); err != nil {
			return nil, err
		}
		return store, nil
	}

	dir := getenv("UPLOAD_DIR", "./public")
	basePath := getenv("PUBLIC_BASE_PATH", "/")
	return storage.NewLocalStore(dir, basePath)
}

// getenv returns the environment value or the fallback when unset.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
