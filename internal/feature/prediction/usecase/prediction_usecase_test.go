package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chili_backend/internal/feature/prediction/domain/entity"
)

// mockNormalizer is a mock implementation of the Normalizer interface.
type mockNormalizer struct {
	// NormalizeFunc is called when the Normalize method is invoked.
	NormalizeFunc func(raw []byte) ([]float32, error)
}

// Normalize is the mock implementation of the Normalize method.
func (m *mockNormalizer) Normalize(raw []byte) ([]float32, error) {
	if m.NormalizeFunc != nil {
		return m.NormalizeFunc(raw)
	}
	return []float32{0.5, 0.5, 0.5}, nil
}

// mockClassifier is a mock implementation of the Classifier interface.
type mockClassifier struct {
	// ClassifyFunc is called when the Classify method is invoked.
	ClassifyFunc func(ctx context.Context, tensor []float32) ([]float32, error)
	// LabelsFunc is called when the Labels method is invoked.
	LabelsFunc func() []string
}

// Classify is the mock implementation of the Classify method.
func (m *mockClassifier) Classify(ctx context.Context, tensor []float32) ([]float32, error) {
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, tensor)
	}
	return []float32{1.0}, nil
}

// Labels is the mock implementation of the Labels method.
func (m *mockClassifier) Labels() []string {
	if m.LabelsFunc != nil {
		return m.LabelsFunc()
	}
	return nil
}

// TestPredictionUsecase_Predict_Gate は信頼度ゲートと多数決の動作を
// テーブル駆動テストで検証します。
func TestPredictionUsecase_Predict_Gate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		dist           []float32
		labels         []string
		wantClass      int
		wantLabel      string
		wantConfidence float32
		wantMessage    string
	}{
		{
			name:           "success: confident prediction passes the gate",
			dist:           []float32{0.05, 0.9, 0.05},
			labels:         []string{"unripe", "ripe", "rotten"},
			wantClass:      1,
			wantLabel:      "ripe",
			wantConfidence: 0.9,
		},
		{
			name:           "success: confidence exactly at the threshold passes",
			dist:           []float32{0.7, 0.2, 0.1},
			labels:         []string{"unripe", "ripe", "rotten"},
			wantClass:      0,
			wantLabel:      "unripe",
			wantConfidence: 0.7,
		},
		{
			name:           "success: low confidence yields the sentinel class",
			dist:           []float32{0.4, 0.35, 0.25},
			labels:         []string{"unripe", "ripe", "rotten"},
			wantClass:      entity.SentinelClass,
			wantConfidence: 0.4,
			wantMessage:    SentinelMessage,
		},
		{
			name:           "success: uniform distribution picks the lowest index and is gated",
			dist:           []float32{0.25, 0.25, 0.25, 0.25},
			labels:         []string{"a", "b", "c", "d"},
			wantClass:      entity.SentinelClass,
			wantConfidence: 0.25,
			wantMessage:    SentinelMessage,
		},
		{
			name:           "success: tie at the top picks the lowest index",
			dist:           []float32{0.1, 0.45, 0.45},
			labels:         []string{"unripe", "ripe", "rotten"},
			wantClass:      entity.SentinelClass,
			wantConfidence: 0.45,
			wantMessage:    SentinelMessage,
		},
		{
			name:           "success: confident tie picks the lowest index",
			dist:           []float32{0.8, 0.8},
			labels:         []string{"unripe", "ripe"},
			wantClass:      0,
			wantLabel:      "unripe",
			wantConfidence: 0.8,
		},
		{
			name:           "success: class index beyond the label list leaves the label empty",
			dist:           []float32{0.1, 0.9},
			labels:         []string{"unripe"},
			wantClass:      1,
			wantLabel:      "",
			wantConfidence: 0.9,
		},
		{
			name:           "success: no labels configured",
			dist:           []float32{0.95, 0.05},
			labels:         nil,
			wantClass:      0,
			wantLabel:      "",
			wantConfidence: 0.95,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			classifier := &mockClassifier{
				ClassifyFunc: func(ctx context.Context, tensor []float32) ([]float32, error) {
					return tt.dist, nil
				},
				LabelsFunc: func() []string { return tt.labels },
			}
			uc := NewPredictionUsecase(&mockNormalizer{}, classifier)

			result, err := uc.Predict(context.Background(), []byte{0xFF, 0xD8, 0xFF})

			require.NoError(t, err)
			assert.Equal(t, tt.wantClass, result.Class)
			assert.Equal(t, tt.wantLabel, result.Label)
			assert.InDelta(t, tt.wantConfidence, result.Confidence, 1e-6)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

// TestPredictionUsecase_Predict_Errors は入力・パイプラインの失敗時の
// エラー伝搬をテーブル駆動テストで検証します。
func TestPredictionUsecase_Predict_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        []byte
		normalizer *mockNormalizer
		classifier *mockClassifier
		wantErr    error
	}{
		{
			name:    "failure: empty input",
			raw:     nil,
			wantErr: ErrMissingInput,
		},
		{
			name:    "failure: oversized input",
			raw:     make([]byte, MaxImageSize+1),
			wantErr: ErrImageTooLarge,
		},
		{
			name: "failure: undecodable image",
			raw:  []byte("not an image"),
			normalizer: &mockNormalizer{
				NormalizeFunc: func(raw []byte) ([]float32, error) {
					return nil, ErrImageDecode
				},
			},
			wantErr: ErrImageDecode,
		},
		{
			name: "failure: inference error",
			raw:  []byte{0xFF, 0xD8, 0xFF},
			classifier: &mockClassifier{
				ClassifyFunc: func(ctx context.Context, tensor []float32) ([]float32, error) {
					return nil, ErrInference
				},
			},
			wantErr: ErrInference,
		},
		{
			name: "failure: empty output distribution",
			raw:  []byte{0xFF, 0xD8, 0xFF},
			classifier: &mockClassifier{
				ClassifyFunc: func(ctx context.Context, tensor []float32) ([]float32, error) {
					return []float32{}, nil
				},
			},
			wantErr: ErrInference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			normalizer := tt.normalizer
			if normalizer == nil {
				normalizer = &mockNormalizer{}
			}
			classifier := tt.classifier
			if classifier == nil {
				classifier = &mockClassifier{}
			}
			uc := NewPredictionUsecase(normalizer, classifier)

			result, err := uc.Predict(context.Background(), tt.raw)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestPredictionUsecase_Predict_PassesTensor は正規化結果がそのまま
// 分類器へ渡されることを検証します。
func TestPredictionUsecase_Predict_PassesTensor(t *testing.T) {
	t.Parallel()

	tensor := []float32{0.1, 0.2, 0.3}
	var gotTensor []float32

	normalizer := &mockNormalizer{
		NormalizeFunc: func(raw []byte) ([]float32, error) { return tensor, nil },
	}
	classifier := &mockClassifier{
		ClassifyFunc: func(ctx context.Context, got []float32) ([]float32, error) {
			gotTensor = got
			return []float32{0.9, 0.1}, nil
		},
	}
	uc := NewPredictionUsecase(normalizer, classifier)

	_, err := uc.Predict(context.Background(), []byte{0xFF, 0xD8, 0xFF})

	require.NoError(t, err)
	assert.Equal(t, tensor, gotTensor)
}

// TestPredictionUsecase_Predict_WrappedErrors はラップされたエラーも
// errors.Isで判別できることを検証します。
func TestPredictionUsecase_Predict_WrappedErrors(t *testing.T) {
	t.Parallel()

	classifier := &mockClassifier{
		ClassifyFunc: func(ctx context.Context, tensor []float32) ([]float32, error) {
			return nil, errors.Join(ErrInference, errors.New("session run failed"))
		},
	}
	uc := NewPredictionUsecase(&mockNormalizer{}, classifier)

	_, err := uc.Predict(context.Background(), []byte{0xFF, 0xD8, 0xFF})

	assert.ErrorIs(t, err, ErrInference)
}
