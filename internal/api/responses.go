// Package api はクライアントと交換するリクエスト/レスポンスのペイロードを定義します。
package api

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は成功時の共通メッセージレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// PredictionResponse は分類結果のレスポンスです。
// 信頼度が閾値未満の場合、Classは-1となりMessageが設定されます。
type PredictionResponse struct {
	Class   int     `json:"class"`
	Label   string  `json:"label,omitempty"`
	Score   float32 `json:"score"`
	Message string  `json:"message,omitempty"`
}

// AddHistoryResponse は履歴追加成功時のレスポンスです。
type AddHistoryResponse struct {
	Message  string `json:"message"`
	ImageRef string `json:"image"`
}

// HistoryItem は履歴一覧の1件を表します。
type HistoryItem struct {
	ID       uint   `json:"id"`
	Image    string `json:"image"`
	Name     string `json:"name"`
	Accuracy int    `json:"accuracy"`
	Date     string `json:"date"`
}
