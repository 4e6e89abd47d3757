package imagepkg

import (
	"bytes"
	"fmt"
	"image"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// LoadTemplate reads and decodes a language template from the template
// directory. A missing or undecodable asset is an error for the request;
// there is no fallback image.
func LoadTemplate(dir, filename string) (image.Image, error) {
	path := filepath.Join(dir, filename)
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("template asset %s: %w", path, err)
	}
	return img, nil
}

// EncodePNG flattens a composed card to PNG bytes for attachment or upload.
func EncodePNG(img image.Image) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding card: %w", err)
	}
	return buf.Bytes(), nil
}
