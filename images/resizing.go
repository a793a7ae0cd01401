package images

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Size is a (height, width) pair, following the row-major convention of masks and tensors.
type Size struct {
	Height int `json:"height" yaml:"height"`
	Width  int `json:"width" yaml:"width"`
}

// IsZero reports whether no size was given.
func (s Size) IsZero() bool {
	return s.Height == 0 && s.Width == 0
}

func (s Size) validate() error {
	if s.Height <= 0 || s.Width <= 0 {
		return errors.Errorf("invalid dimensions: height=%d, width=%d", s.Height, s.Width)
	}
	return nil
}

// ResizeImage resizes img to the given size with bilinear interpolation.
//
// Arguments:
//   - img: The image to resize.
//   - size: The target (height, width).
//
// Returns:
//   - image.Image: The resized image.
//   - error: An error if the size is not positive.
func ResizeImage(img image.Image, size Size) (image.Image, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}
	if err := size.validate(); err != nil {
		return nil, err
	}
	return resize.Resize(uint(size.Width), uint(size.Height), img, resize.Bilinear), nil
}

// resizeRGBA is used by the stitcher, which always works on RGBA canvases.
func resizeRGBA(img image.Image, size Size) (*image.RGBA, error) {
	if err := size.validate(); err != nil {
		return nil, err
	}
	return transform.Resize(img, size.Width, size.Height, transform.Linear), nil
}
