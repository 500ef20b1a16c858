package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxAvatarSide = 512
	webpQuality   = 80
)

// NormalizeAvatar decodifica a imagem enviada, reduz para no máximo
// 512px no maior lado e reencoda em webp. Retorna os bytes prontos
// para upload.
func NormalizeAvatar(input []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxAvatarSide || h > maxAvatarSide {
		if w >= h {
			h = h * maxAvatarSide / w
			w = maxAvatarSide
		} else {
			w = w * maxAvatarSide / h
			h = maxAvatarSide
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
