package images

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Image is a decoded image re-encoded into a blob a model can accept
type Image struct {
	Data     []byte
	MIMEType string
	Width    int
	Height   int
}

// Load decodes the image at path, applying EXIF orientation, and re-encodes it.
// PNG and GIF sources become PNG so palettes and transparency survive; everything else becomes JPEG.
func Load(path string) (*Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}

	format, mimeType := imaging.JPEG, "image/jpeg"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".gif":
		format, mimeType = imaging.PNG, "image/png"
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(95)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &Image{
		Data:     buf.Bytes(),
		MIMEType: mimeType,
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
	}, nil
}
