package images

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"
)

// NormalizationType defines how pixel values are normalized.
type NormalizationType int

const (
	// NormalizeNone keeps pixel values as 0-255.
	NormalizeNone NormalizationType = iota
	// NormalizeZeroToOne scales pixel values to [0, 1].
	NormalizeZeroToOne
	// NormalizeMinusOneToOne scales pixel values to [-1, 1].
	NormalizeMinusOneToOne
)

// Normalize rescales a 0-255 float32 tensor in place.
//
// Arguments:
//   - t: The tensor returned by ReadImage.
//   - mode: The target range.
//
// Returns:
//   - error: An error if t is not float32 or mode is unknown.
func Normalize(t *tensor.Dense, mode NormalizationType) error {
	if t == nil {
		return errors.New("tensor is nil")
	}
	if t.IsView() {
		return errors.New("cannot normalize a view in place")
	}
	data, ok := t.Data().([]float32)
	if !ok {
		return errors.Errorf("expected float32 tensor, got %v", t.Dtype())
	}

	switch mode {
	case NormalizeNone:
	case NormalizeZeroToOne:
		for i, v := range data {
			data[i] = v / 255.0
		}
	case NormalizeMinusOneToOne:
		for i, v := range data {
			data[i] = v/127.5 - 1.0
		}
	default:
		return errors.Errorf("unknown normalization type %d", mode)
	}
	return nil
}
