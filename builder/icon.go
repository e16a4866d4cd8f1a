package builder

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
)

// maxIconDimension is the largest edge the platform accepts for guild
// icons, emojis and avatars before it re-encodes server-side.
const maxIconDimension = 256

// IconDataURI reads an already-encoded image and wraps it in the data
// URI form the icon and avatar endpoints expect.
func IconDataURI(contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read icon: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("empty icon data")
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ScaledIconDataURI decodes an image, downscales it to fit the
// platform's icon dimensions and returns it as a PNG data URI. Images
// already small enough are re-encoded unscaled.
func ScaledIconDataURI(r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode icon: %w", err)
	}

	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return "", errors.New("invalid icon dimensions")
	}

	scale := float64(maxIconDimension) / float64(maxInt(width, height))
	if scale > 1 {
		scale = 1
	}
	newW := int(float64(width) * scale)
	newH := int(float64(height) * scale)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return "", fmt.Errorf("encode icon: %w", err)
	}
	return IconDataURI("image/png", &buf)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
