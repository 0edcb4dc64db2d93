// Package entity はpredictionフィーチャーのドメインモデルを定義します。
package entity

// SentinelClass は信頼度ゲートで棄却された入力を表す予約クラスインデックスです。
const SentinelClass = -1

// ClassificationResult は1回の推論の結果を表します。
type ClassificationResult struct {
	Class      int     // 予測クラスのインデックス（信頼度が閾値未満の場合はSentinelClass）
	Label      string  // 予測クラスの表示名（モデルメタデータにある場合のみ）
	Confidence float32 // 出力分布の最大確率（0.0 ~ 1.0）
	Message    string  // 棄却時の説明メッセージ
}
