package bbox

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// DrawMat renders the rectangle into an OpenCV Mat. The frame is modified in place.
//
// Filled covers the same pixels as Draw: the far corner is exclusive. OpenCV
// treats the second corner as inclusive, so it is pulled in by one pixel
// before delegating. Outlines follow OpenCV's stroke, which is centered on
// the edge rather than drawn inside it.
//
// Arguments:
//   - frame: The caller-owned Mat to draw on.
//   - c: The color. gocv maps it to BGR, so single channel Mats take c.B.
//   - thickness: The outline width in pixels, or Filled.
//
// Returns:
//   - error: ErrEmptyFrame if frame is nil or empty.
func (r Rectangle) DrawMat(frame *gocv.Mat, c color.RGBA, thickness int) error {
	if frame == nil || frame.Empty() {
		return ErrEmptyFrame
	}

	box := r.ImageRect()
	if box.Empty() || (thickness < 1 && thickness != Filled) {
		return nil
	}

	inclusive := image.Rectangle{Min: box.Min, Max: box.Max.Sub(image.Pt(1, 1))}
	gocv.Rectangle(frame, inclusive, c, thickness)
	return nil
}

// BinaryMaskMat is BinaryMask for OpenCV consumers. The returned Mat is
// CV_8UC1 and must be closed by the caller.
func (r Rectangle) BinaryMaskMat(height, width int) (gocv.Mat, error) {
	if err := r.checkMaskShape(height, width); err != nil {
		return gocv.NewMat(), err
	}

	mask := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width, gocv.MatTypeCV8UC1)
	if mask.Empty() {
		// Zero-sized canvas, nothing to fill.
		return mask, nil
	}

	if err := r.DrawMat(&mask, color.RGBA{R: 255, G: 255, B: 255, A: 255}, Filled); err != nil {
		mask.Close()
		return gocv.NewMat(), err
	}
	return mask, nil
}
