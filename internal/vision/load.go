// Package vision loads the benchmark input images. Decode failures are
// collected, not dropped: the filename still flows into diagnostic records
// even when no pixel data could be produced.
package vision

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// Image is one input image: the base filename plus its decoded pixels.
// Data is nil when decoding failed; Err then explains why.
type Image struct {
	Name string
	Data image.Image
	Err  error
}

// Valid reports whether the image decoded successfully.
func (i *Image) Valid() bool {
	return i.Data != nil
}

// Load decodes every path, in order. Each path yields exactly one entry
// regardless of outcome, so downstream record counts never shrink.
func Load(paths []string) []Image {
	images := make([]Image, 0, len(paths))
	for _, p := range paths {
		img, err := decode(p)
		images = append(images, Image{
			Name: filepath.Base(p),
			Data: img,
			Err:  err,
		})
	}
	return images
}

// AnyValid reports whether at least one image decoded successfully.
func AnyValid(images []Image) bool {
	for i := range images {
		if images[i].Valid() {
			return true
		}
	}
	return false
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
