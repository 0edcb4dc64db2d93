// Package onnx は学習済みONNXモデルを安定した推論contractの背後に包みます。
package onnx

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"chili_backend/internal/feature/prediction/usecase"
)

// Metadata はモデルアーティファクトと共に配置されるメタデータJSONです。
type Metadata struct {
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
	ImageSize   int      `json:"image_size"`
}

// Classifier はONNX Runtimeセッションを保持する分類器です。
// モデルはプロセス起動時に一度だけロードされ、以後は読み取り専用です。
// 推論ごとにテンソルを生成するため、並行呼び出しにロックは不要です。
type Classifier struct {
	session  *ort.DynamicAdvancedSession
	metadata Metadata
	inputLen int
}

var _ usecase.Classifier = (*Classifier)(nil)

// ONNX Runtime環境はプロセス全体で一度だけ初期化する
var (
	initOnce sync.Once
	initErr  error
)

// loadMetadata はモデルメタデータJSONを読み込んで検証します。
func loadMetadata(path string) (Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to read model metadata: %w", err)
	}
	var metadata Metadata
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return Metadata{}, fmt.Errorf("failed to parse model metadata: %w", err)
	}
	if len(metadata.InputShape) == 0 || len(metadata.OutputShape) == 0 {
		return Metadata{}, fmt.Errorf("model metadata is missing input or output shape")
	}
	return metadata, nil
}

// NewClassifier はモデルとメタデータをロードしてClassifierを生成します。
// ロード失敗はプロセス起動の失敗として扱われるべきで、リクエスト単位では
// リトライされません。
func NewClassifier(modelPath, metadataPath string) (*Classifier, error) {
	metadata, err := loadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}

	initOnce.Do(func() {
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize ONNX environment: %w", initErr)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	inputLen := 1
	for _, dim := range metadata.InputShape {
		inputLen *= int(dim)
	}

	return &Classifier{
		session:  session,
		metadata: metadata,
		inputLen: inputLen,
	}, nil
}

// Classify はテンソルに対する推論を実行し、クラスごとの確率分布を返します。
// テンソル長がモデルの入力contractと一致しない場合、usecase.ErrInferenceを返します。
func (c *Classifier) Classify(ctx context.Context, tensor []float32) ([]float32, error) {
	if len(tensor) != c.inputLen {
		return nil, fmt.Errorf("%w: expected %d input values, got %d",
			usecase.ErrInference, c.inputLen, len(tensor))
	}

	input, err := ort.NewTensor(ort.NewShape(c.metadata.InputShape...), tensor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInference, err)
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(c.metadata.OutputShape...))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInference, err)
	}
	defer output.Destroy()

	if err := c.session.Run(
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{output},
	); err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrInference, err)
	}

	// 出力テンソルはこの関数を抜けると破棄されるためコピーして返す
	data := output.GetData()
	dist := make([]float32, len(data))
	copy(dist, data)
	return dist, nil
}

// Labels はモデルメタデータに含まれるクラス表示名を返します。
func (c *Classifier) Labels() []string {
	return c.metadata.Classes
}

// Close はONNXセッションを解放します。
func (c *Classifier) Close() {
	if c.session != nil {
		c.session.Destroy()
	}
}
