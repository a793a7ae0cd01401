// Package images - image read/write, normalization and stitching helpers for
// dataset preparation.
package images

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/anthonynsimon/bild/clone"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	"gorgonia.org/tensor"
)

// Image represents an encoded image with a format, data, width, and height.
type Image struct {
	// The format of the image.
	Format ImageFormat `json:"format" yaml:"format"`
	// The data of the image.
	Data []byte `json:"data" yaml:"data"`
	// The width of the image, filled in by Decode.
	Width int `json:"width" yaml:"width"`
	// The height of the image, filled in by Decode.
	Height int `json:"height" yaml:"height"`
}

// ReadOptions controls how ReadImage lays out the returned tensor.
type ReadOptions struct {
	// Color loads RGB when true and grayscale otherwise.
	Color bool `json:"color" yaml:"color"`
	// ChannelsFirst returns color images as (C, H, W) instead of (H, W, C).
	// It has no effect on grayscale images, which are always (H, W).
	ChannelsFirst bool `json:"channels_first" yaml:"channels_first"`
	// Resize, when non-zero, resizes with bilinear interpolation before the
	// layout is applied.
	Resize Size `json:"resize" yaml:"resize"`
}

// Decode decodes the image data and records its dimensions.
//
// JPEG orientation tags are honoured. WebP goes through the dedicated
// decoder, every other format through the registered image decoders.
//
// Returns:
//   - image.Image: The decoded image.
//   - error: An error if the data is empty or cannot be decoded.
func (i *Image) Decode() (image.Image, error) {
	if len(i.Data) == 0 {
		return nil, errors.New("image data is empty")
	}

	var (
		img image.Image
		err error
	)
	if i.Format == FormatWebP {
		img, err = webp.Decode(bytes.NewReader(i.Data))
	} else {
		img, err = imaging.Decode(bytes.NewReader(i.Data), imaging.AutoOrientation(true))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s image", i.Format)
	}

	i.Width = img.Bounds().Dx()
	i.Height = img.Bounds().Dy()
	return img, nil
}

// LoadImage reads and decodes the image file at path.
func LoadImage(path string) (image.Image, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read image %q", path)
	}

	return (&Image{Format: format, Data: data}).Decode()
}

// ReadImage reads an image file and returns it as a float32 tensor with
// pixel values in [0, 255].
//
// Arguments:
//   - path: The image filename. The format is taken from the extension.
//   - opts: Color mode, channel layout and optional resize.
//
// Returns:
//   - *tensor.Dense: (H, W, 3), (3, H, W) or (H, W) depending on opts.
//   - error: An error if the file cannot be read or decoded.
//
// @example
//
//	t, err := ReadImage("frame-0001.jpg", ReadOptions{Color: true, ChannelsFirst: true})
//	fmt.Println(t.Shape()) // (3, 1080, 1920)
func ReadImage(path string, opts ReadOptions) (*tensor.Dense, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return ImageToTensor(img, opts)
}

// ImageToTensor converts a decoded image following the ReadImage conventions.
func ImageToTensor(img image.Image, opts ReadOptions) (*tensor.Dense, error) {
	if img == nil {
		return nil, errors.New("image is nil")
	}

	if !opts.Resize.IsZero() {
		resized, err := ResizeImage(img, opts.Resize)
		if err != nil {
			return nil, err
		}
		img = resized
	}

	rgba := clone.AsRGBA(img)
	b := rgba.Bounds()
	h, w := b.Dy(), b.Dx()

	if !opts.Color {
		data := make([]float32, h*w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				gray := color.GrayModel.Convert(rgba.RGBAAt(b.Min.X+x, b.Min.Y+y)).(color.Gray)
				data[y*w+x] = float32(gray.Y)
			}
		}
		return tensor.New(tensor.WithShape(h, w), tensor.WithBacking(data)), nil
	}

	data := make([]float32, 3*h*w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := rgba.RGBAAt(b.Min.X+x, b.Min.Y+y)
			rgb := [3]float32{float32(p.R), float32(p.G), float32(p.B)}
			for c, v := range rgb {
				if opts.ChannelsFirst {
					data[c*h*w+y*w+x] = v
				} else {
					data[(y*w+x)*3+c] = v
				}
			}
		}
	}

	if opts.ChannelsFirst {
		return tensor.New(tensor.WithShape(3, h, w), tensor.WithBacking(data)), nil
	}
	return tensor.New(tensor.WithShape(h, w, 3), tensor.WithBacking(data)), nil
}

// TensorToImage is the inverse of ImageToTensor. Values are rounded and
// clamped to [0, 255]. A (H, W) tensor yields *image.Gray, a color tensor
// yields an opaque *image.NRGBA.
func TensorToImage(t *tensor.Dense, channelsFirst bool) (image.Image, error) {
	data, err := float32Data(t)
	if err != nil {
		return nil, err
	}

	shape := t.Shape()
	switch {
	case len(shape) == 2:
		h, w := shape[0], shape[1]
		img := image.NewGray(image.Rect(0, 0, w, h))
		for i, v := range data {
			img.Pix[i] = toByte(v)
		}
		return img, nil
	case len(shape) == 3 && channelsFirst && shape[0] == 3:
		h, w := shape[1], shape[2]
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				o := img.PixOffset(x, y)
				for c := 0; c < 3; c++ {
					img.Pix[o+c] = toByte(data[c*h*w+y*w+x])
				}
				img.Pix[o+3] = 255
			}
		}
		return img, nil
	case len(shape) == 3 && !channelsFirst && shape[2] == 3:
		h, w := shape[0], shape[1]
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				o := img.PixOffset(x, y)
				for c := 0; c < 3; c++ {
					img.Pix[o+c] = toByte(data[(y*w+x)*3+c])
				}
				img.Pix[o+3] = 255
			}
		}
		return img, nil
	default:
		return nil, errors.Errorf("unsupported tensor shape %v", shape)
	}
}

// WriteImage encodes img to path, choosing the encoder from the extension.
func WriteImage(path string, img image.Image) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == FormatWebP {
		return errors.Wrap(ErrUnsupportedFormat, "webp encoding")
	}

	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "failed to write image %q", path)
	}
	return nil
}

func float32Data(t *tensor.Dense) ([]float32, error) {
	if t == nil {
		return nil, errors.New("tensor is nil")
	}
	if t.IsView() {
		t = t.Materialize().(*tensor.Dense)
	}
	data, ok := t.Data().([]float32)
	if !ok {
		return nil, errors.Errorf("expected float32 tensor, got %v", t.Dtype())
	}
	return data, nil
}

func toByte(v float32) uint8 {
	r := math.Round(float64(v))
	switch {
	case r < 0:
		return 0
	case r > 255:
		return 255
	}
	return uint8(r)
}
