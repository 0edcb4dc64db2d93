package di

import (
	"chili_backend/internal/feature/prediction/adapters/onnx"
)

// NewClassifier loads the ONNX model from the configured paths.
// The model is loaded exactly once at process start; a load failure is fatal
// to startup, never a per-request error.
func NewClassifier() (*onnx.Classifier, error) {
	modelPath := getenv("MODEL_PATH", "models/chili_cnn.onnx")
	metadataPath := getenv("MODEL_METADATA_PATH", "models/chili_cnn_metadata.json")
	return onnx.NewClassifier(modelPath, metadataPath)
}
