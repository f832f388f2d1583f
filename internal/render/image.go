package render

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// LoadImage decodes the image at path, applying any EXIF orientation.
func LoadImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", path, err)
	}
	return img, nil
}
