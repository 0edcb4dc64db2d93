// Package entity はhistoryフィーチャーのドメインモデルを定義します。
package entity

// History は過去の分類イベント1件を表します。
// 画像のバイト列そのものは保持せず、Blobストアへの参照のみを持ちます。
type History struct {
	ID         uint   // データベース採番の一意なID
	ImageRef   string // 保存済み画像への参照（URLまたはパス）。内容は検査しない
	Label      string // 呼び出し元が指定したクラス名
	Accuracy   int    // 呼び出し元が指定した信頼度（整数パーセント）。再計算はしない
	OccurredAt string // 呼び出し元が指定した日時文字列。一覧の唯一のソートキー
}
