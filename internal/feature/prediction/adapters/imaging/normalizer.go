// Package imaging はアップロードされた画像をモデル入力テンソルへ変換します。
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"

	"chili_backend/internal/feature/prediction/usecase"
)

const (
	// TargetSize はモデル入力の1辺のピクセル数です。
	TargetSize = 256
	// Channels はモデル入力のチャンネル数（RGB）です。
	Channels = 3
)

// Normalizer はstdlibの画像コーデックとLanczosリサイズで前処理を行います。
type Normalizer struct{}

var _ usecase.Normalizer = (*Normalizer)(nil)

// NewNormalizer はNormalizerの新しいインスタンスを生成します。
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize は画像バイト列を形状(1, 256, 256, 3)のテンソルへ変換します。
// カラーモードに関わらずRGBの3チャンネルとして読み出し、画素値を[0,1]へ
// 線形スケールします。デコード不能な場合はusecase.ErrImageDecodeを返します。
// 副作用はありません。
func (n *Normalizer) Normalize(raw []byte) ([]float32, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", usecase.ErrImageDecode, err)
	}

	resized := resize.Resize(TargetSize, TargetSize, img, resize.Lanczos3)
	bounds := resized.Bounds()

	out := make([]float32, TargetSize*TargetSize*Channels)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			// RGBA()は16bit値を返すため65535で割ると[0,1]になる
			r, g, b, _ := resized.At(x, y).RGBA()
			out[i] = float32(r) / 65535.0
			out[i+1] = float32(g) / 65535.0
			out[i+2] = float32(b) / 65535.0
			i += Channels
		}
	}
	return out, nil
}
