// Package tensors - per-channel resize and crop of (C, H, W) float32 tensors.
package tensors

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// ErrInvalidShape is returned for tensors that are not 3D float32 (C, H, W).
var ErrInvalidShape = errors.New("expected a (C, H, W) float32 tensor")

// tap holds the two source indexes and the weight of the second one for a
// single destination coordinate.
type tap struct {
	i0, i1 int
	w      float32
}

// ResizeTensor resizes each channel of a (C, H, W) tensor independently.
//
// Interpolation is bilinear with half-pixel centers and edge clamping, the
// same convention as OpenCV's INTER_LINEAR.
//
// Arguments:
//   - t: The (C, H, W) float32 tensor.
//   - height: The new height.
//   - width: The new width.
//
// Returns:
//   - *tensor.Dense: A new (C, height, width) tensor.
//   - error: ErrInvalidShape for bad input, or an error for non-positive sizes.
//
// @example
//
//	resized, err := ResizeTensor(features, 224, 224)
func ResizeTensor(t *tensor.Dense, height, width int) (*tensor.Dense, error) {
	data, c, h, w, err := unpack(t)
	if err != nil {
		return nil, err
	}
	if height <= 0 || width <= 0 {
		return nil, errors.Errorf("invalid dimensions: height=%d, width=%d", height, width)
	}

	ys := taps(h, height)
	xs := taps(w, width)

	out := make([]float32, c*height*width)
	for ch := 0; ch < c; ch++ {
		src := data[ch*h*w : (ch+1)*h*w]
		dst := out[ch*height*width : (ch+1)*height*width]
		for y, ty := range ys {
			row0 := src[ty.i0*w : (ty.i0+1)*w]
			row1 := src[ty.i1*w : (ty.i1+1)*w]
			for x, tx := range xs {
				top := row0[tx.i0]*(1-tx.w) + row0[tx.i1]*tx.w
				bottom := row1[tx.i0]*(1-tx.w) + row1[tx.i1]*tx.w
				dst[y*width+x] = top*(1-ty.w) + bottom*ty.w
			}
		}
	}

	return tensor.New(tensor.WithShape(c, height, width), tensor.WithBacking(out)), nil
}

// CropTensor returns a copy of t[:, h1:h2, w1:w2].
//
// Arguments:
//   - t: The (C, H, W) float32 tensor.
//   - h1, h2: The row range, half-open.
//   - w1, w2: The column range, half-open.
//
// Returns:
//   - *tensor.Dense: A new (C, h2-h1, w2-w1) tensor that shares no memory with t.
//   - error: An error if the ranges are empty or out of bounds.
func CropTensor(t *tensor.Dense, h1, h2, w1, w2 int) (*tensor.Dense, error) {
	data, c, h, w, err := unpack(t)
	if err != nil {
		return nil, err
	}
	if h1 < 0 || h2 > h || h1 >= h2 || w1 < 0 || w2 > w || w1 >= w2 {
		return nil, errors.Errorf("crop indexes (%d:%d, %d:%d) out of range for %dx%d", h1, h2, w1, w2, h, w)
	}

	ch, cw := h2-h1, w2-w1
	out := make([]float32, 0, c*ch*cw)
	for k := 0; k < c; k++ {
		plane := data[k*h*w : (k+1)*h*w]
		for y := h1; y < h2; y++ {
			out = append(out, plane[y*w+w1:y*w+w2]...)
		}
	}

	return tensor.New(tensor.WithShape(c, ch, cw), tensor.WithBacking(out)), nil
}

func unpack(t *tensor.Dense) (data []float32, c, h, w int, err error) {
	if t == nil {
		return nil, 0, 0, 0, errors.Wrap(ErrInvalidShape, "tensor is nil")
	}
	if t.IsView() {
		t = t.Materialize().(*tensor.Dense)
	}

	shape := t.Shape()
	if len(shape) != 3 {
		return nil, 0, 0, 0, errors.Wrapf(ErrInvalidShape, "got shape %v", shape)
	}
	data, ok := t.Data().([]float32)
	if !ok {
		return nil, 0, 0, 0, errors.Wrapf(ErrInvalidShape, "got dtype %v", t.Dtype())
	}
	return data, shape[0], shape[1], shape[2], nil
}

func taps(src, dst int) []tap {
	scale := float32(src) / float32(dst)
	out := make([]tap, dst)
	for i := range out {
		pos := (float32(i)+0.5)*scale - 0.5
		if pos <= 0 {
			out[i] = tap{}
			continue
		}
		if pos >= float32(src-1) {
			out[i] = tap{i0: src - 1, i1: src - 1}
			continue
		}
		i0 := int(math32.Floor(pos))
		out[i] = tap{i0: i0, i1: i0 + 1, w: pos - float32(i0)}
	}
	return out
}
