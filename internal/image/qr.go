package imagepkg

import (
	"bytes"
	"errors"
	"image/png"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

var ErrEmptyQRContent = errors.New("qr content is empty")

// GenerateQRPNG returns PNG bytes of a QR code for the given text, typically
// the card's public share link.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyQRContent
	}
	if size <= 0 {
		size = 256
	}
	pngBytes, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, err
	}
	// validate png decode
	if _, err := png.Decode(bytes.NewReader(pngBytes)); err != nil {
		return nil, err
	}
	return pngBytes, nil
}
