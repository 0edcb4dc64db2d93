// Package usecase はpredictionフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"chili_backend/internal/feature/prediction/domain/entity"
)

const (
	// MaxImageSize は画像アップロードの最大サイズ（10MB）です。
	MaxImageSize = 10 * 1024 * 1024
	// ConfidenceThreshold は分類を採用する最小信頼度です。
	// この値未満の場合、結果はSentinelClassとして報告されます（閾値ちょうどは採用）。
	ConfidenceThreshold float32 = 0.7
	// SentinelMessage は信頼度ゲートで棄却された場合のメッセージです。
	SentinelMessage = "not the target subject"
)

// Normalizer は画像バイト列をモデル入力テンソルへ変換します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Normalizer interface {
	// Normalize はデコード・リサイズ・正規化を行い、(1, H, W, 3) 形状の
	// フラットなテンソルを返します。値域は[0,1]です。
	Normalize(raw []byte) ([]float32, error)
}

// Classifier は学習済みモデルを安定したcontractの背後に包みます。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Classifier interface {
	// Classify はテンソルに対する推論を実行し、クラスごとの確率分布を返します。
	// ロード済みモデルは読み取り専用のため、並行呼び出しに対して安全である必要があります。
	Classify(ctx context.Context, tensor []float32) ([]float32, error)
	// Labels はモデルメタデータに含まれるクラス表示名を返します。空でも構いません。
	Labels() []string
}

// predictionUsecase は画像分類パイプラインを実装します。
type predictionUsecase struct {
	normalizer Normalizer
	classifier Classifier
}

// NewPredictionUsecase はpredictionUsecaseの新しいインスタンスを生成します。
func NewPredictionUsecase(n Normalizer, c Classifier) *predictionUsecase {
	return &predictionUsecase{normalizer: n, classifier: c}
}

// Predict は生の画像バイト列を分類します。
// normalize → classify → argmax の順で処理し、最大確率が閾値未満の場合は
// SentinelClassと説明メッセージを返します。リトライは行いません。
func (u *predictionUsecase) Predict(ctx context.Context, raw []byte) (*entity.ClassificationResult, error) {
	if len(raw) == 0 {
		return nil, ErrMissingInput
	}
	if len(raw) > MaxImageSize {
		return nil, fmt.Errorf("%w of %d bytes", ErrImageTooLarge, MaxImageSize)
	}

	tensor, err := u.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}

	dist, err := u.classifier.Classify(ctx, tensor)
	if err != nil {
		return nil, err
	}
	if len(dist) == 0 {
		return nil, fmt.Errorf("%w: empty output distribution", ErrInference)
	}

	// argmax。同値の場合は最も小さいインデックスを採用
	best := 0
	for i, p := range dist {
		if p > dist[best] {
			best = i
		}
	}
	confidence := dist[best]

	if confidence < ConfidenceThreshold {
		return &entity.ClassificationResult{
			Class:      entity.SentinelClass,
			Confidence: confidence,
			Message:    SentinelMessage,
		}, nil
	}

	result := &entity.ClassificationResult{Class: best, Confidence: confidence}
	if labels := u.classifier.Labels(); best < len(labels) {
		result.Label = labels[best]
	}
	return result, nil
}
