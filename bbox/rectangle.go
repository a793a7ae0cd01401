// Package bbox - axis-aligned bounding box geometry for annotation pipelines.
package bbox

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Filled is the thickness value that fills the interior instead of drawing an outline.
const Filled = -1

var (
	// ErrNotRectangle is returned when a dynamically typed value is not a Rectangle.
	ErrNotRectangle = errors.New("value is not a Rectangle")
	// ErrMaskTooSmall is returned when a mask canvas cannot hold the rectangle's max corner.
	ErrMaskTooSmall = errors.New("mask shape is smaller than Rectangle size")
	// ErrEmptyFrame is returned when drawing onto an empty Mat.
	ErrEmptyFrame = errors.New("frame is empty")
)

// Rectangle is an immutable axis-aligned box defined by its top-left and
// bottom-right corners.
//
// Corners are not required to be ordered: a Rectangle with max < min is
// constructible and has negative sides. Area and IntersectWith do not
// normalize such rectangles, so their results are only geometric when
// min <= max on both axes.
type Rectangle struct {
	xMin, yMin, xMax, yMax int
	// Sides are fixed at construction.
	xSide, ySide int
}

// Bounds clips the output of ResizeSidesWithin.
type Bounds struct {
	XMin, YMin, XMax, YMax int
}

// NewRectangle creates a Rectangle from its corner coordinates.
//
// Arguments:
//   - xMin, yMin: The top-left corner.
//   - xMax, yMax: The bottom-right corner.
//
// Returns:
//   - Rectangle: The rectangle with its sides computed once.
//
// @example
//
//	r := NewRectangle(0, 0, 10, 4)
//	fmt.Println(r.Area()) // 40
func NewRectangle(xMin, yMin, xMax, yMax int) Rectangle {
	return Rectangle{
		xMin:  xMin,
		yMin:  yMin,
		xMax:  xMax,
		yMax:  yMax,
		xSide: xMax - xMin,
		ySide: yMax - yMin,
	}
}

// FromImageRect converts an image.Rectangle without canonicalizing it.
func FromImageRect(r image.Rectangle) Rectangle {
	return NewRectangle(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func (r Rectangle) XMin() int  { return r.xMin }
func (r Rectangle) YMin() int  { return r.yMin }
func (r Rectangle) XMax() int  { return r.xMax }
func (r Rectangle) YMax() int  { return r.yMax }
func (r Rectangle) XSide() int { return r.xSide }
func (r Rectangle) YSide() int { return r.ySide }

// TLCorner returns the top-left corner.
func (r Rectangle) TLCorner() image.Point {
	return image.Pt(r.xMin, r.yMin)
}

// BRCorner returns the bottom-right corner.
func (r Rectangle) BRCorner() image.Point {
	return image.Pt(r.xMax, r.yMax)
}

// Coords returns (xMin, yMin, xMax, yMax).
func (r Rectangle) Coords() [4]int {
	return [4]int{r.xMin, r.yMin, r.xMax, r.yMax}
}

// Area returns xSide * ySide. It is negative for a rectangle inverted on one axis.
func (r Rectangle) Area() float64 {
	return float64(r.xSide * r.ySide)
}

// ImageRect returns the rectangle as an image.Rectangle. The corners are kept
// as-is, so an inverted Rectangle yields an empty image.Rectangle.
func (r Rectangle) ImageRect() image.Rectangle {
	return image.Rectangle{Min: r.TLCorner(), Max: r.BRCorner()}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("Rectangle(%d, %d, %d, %d)", r.xMin, r.yMin, r.xMax, r.yMax)
}

// IntersectWith computes the intersection area between r and other in pixels.
//
// The overlap extents are dx = min(xMax) - max(xMin) and dy likewise. When
// both are >= 0 the area is dx * dy, otherwise 0. Touching rectangles give 0.
//
// Arguments:
//   - other: The second rectangle.
//
// Returns:
//   - float64: The intersection area.
//
// @example
//
//	a := NewRectangle(0, 0, 100, 100)
//	b := NewRectangle(50, 50, 150, 150)
//	area := a.IntersectWith(b) // 2500
func (r Rectangle) IntersectWith(other Rectangle) float64 {
	dx := min(r.xMax, other.xMax) - max(r.xMin, other.xMin)
	dy := min(r.yMax, other.yMax) - max(r.yMin, other.yMin)
	if dx >= 0 && dy >= 0 {
		return float64(dx * dy)
	}
	return 0
}

// IntersectWithAny is IntersectWith for values whose type is only known at
// runtime, such as decoded annotations. It accepts Rectangle and non-nil
// *Rectangle values and fails with ErrNotRectangle for anything else.
func (r Rectangle) IntersectWithAny(v any) (float64, error) {
	switch other := v.(type) {
	case Rectangle:
		return r.IntersectWith(other), nil
	case *Rectangle:
		if other != nil {
			return r.IntersectWith(*other), nil
		}
	}
	return 0, errors.Wrapf(ErrNotRectangle, "cannot compute intersection with %T", v)
}

// ResizeSides scales both sides by ratio while keeping the center in place.
//
// A ratio of 2 doubles each side, 0.5 halves it and 1 leaves the rectangle
// unchanged. The per-axis offset |ratio*side - side| / 2 is signed by
// sign(ratio - 1) and truncated toward zero before being applied, so odd
// sides can lose a pixel.
//
// Arguments:
//   - ratio: The resize multiplier, in (0, +inf).
//
// Returns:
//   - Rectangle: A new rectangle. The receiver is not modified.
//
// @example
//
//	r := NewRectangle(10, 10, 20, 20)
//	r.ResizeSides(2)   // Rectangle(5, 5, 25, 25)
//	r.ResizeSides(0.5) // Rectangle(12, 12, 18, 18)
func (r Rectangle) ResizeSides(ratio float64) Rectangle {
	offX, offY := r.resizeOffsets(ratio)
	return NewRectangle(r.xMin-offX, r.yMin-offY, r.xMax+offX, r.yMax+offY)
}

// ResizeSidesWithin is ResizeSides followed by clipping to b. Mins are
// floored at the lower bounds and maxes capped at the upper bounds, each
// axis independently. Bounds tighter than the resized box can yield a
// degenerate or inverted rectangle.
func (r Rectangle) ResizeSidesWithin(ratio float64, b Bounds) Rectangle {
	resized := r.ResizeSides(ratio)
	return NewRectangle(
		max(resized.xMin, b.XMin),
		max(resized.yMin, b.YMin),
		min(resized.xMax, b.XMax),
		min(resized.yMax, b.YMax),
	)
}

func (r Rectangle) resizeOffsets(ratio float64) (int, int) {
	var sign float64
	switch {
	case ratio > 1:
		sign = 1
	case ratio < 1:
		sign = -1
	}

	xSide, ySide := float64(r.xSide), float64(r.ySide)
	offX := abs(ratio*xSide-xSide) / 2
	offY := abs(ratio*ySide-ySide) / 2

	// int() truncates toward zero for negative offsets as well.
	return int(offX * sign), int(offY * sign)
}

// Draw renders the rectangle into frame. The frame is modified in place.
//
// With thickness >= 1 an outline band of that width is drawn inside the
// half-open box [min, max). With thickness == Filled the interior is filled.
// Other thickness values, and empty or inverted rectangles, draw nothing.
// Drawing is clipped to frame's bounds.
//
// Arguments:
//   - frame: The caller-owned image to draw on.
//   - c: The color, converted to frame's color model.
//   - thickness: The outline width in pixels, or Filled.
//
// Draw holds no lock; concurrent calls on the same frame must be synchronized
// by the caller.
func (r Rectangle) Draw(frame draw.Image, c color.Color, thickness int) {
	box := r.ImageRect()
	if box.Empty() || (thickness < 1 && thickness != Filled) {
		return
	}

	src := image.NewUniform(c)
	if thickness == Filled || 2*thickness >= box.Dx() || 2*thickness >= box.Dy() {
		draw.Draw(frame, box, src, image.Point{}, draw.Src)
		return
	}

	t := thickness
	bands := []image.Rectangle{
		{Min: box.Min, Max: image.Pt(box.Max.X, box.Min.Y+t)},
		{Min: image.Pt(box.Min.X, box.Max.Y-t), Max: box.Max},
		{Min: image.Pt(box.Min.X, box.Min.Y+t), Max: image.Pt(box.Min.X+t, box.Max.Y-t)},
		{Min: image.Pt(box.Max.X-t, box.Min.Y+t), Max: image.Pt(box.Max.X, box.Max.Y-t)},
	}
	for _, band := range bands {
		draw.Draw(frame, band, src, image.Point{}, draw.Src)
	}
}

// BinaryMask allocates a height x width mask with the rectangle's interior
// [xMin, xMax) x [yMin, yMax) set to 255 and everything else 0.
//
// The canvas is checked against the absolute max corner rather than the
// rectangle's size, so a rectangle far from the origin needs a
// correspondingly large mask.
//
// Arguments:
//   - height: The mask height in pixels.
//   - width: The mask width in pixels.
//
// Returns:
//   - *image.Gray: The newly allocated mask.
//   - error: ErrMaskTooSmall when height < yMax or width < xMax.
//
// @example
//
//	mask, err := NewRectangle(2, 2, 10, 10).BinaryMask(20, 20)
//	// mask.GrayAt(2, 2).Y == 255, mask.GrayAt(10, 10).Y == 0
func (r Rectangle) BinaryMask(height, width int) (*image.Gray, error) {
	if err := r.checkMaskShape(height, width); err != nil {
		return nil, err
	}

	mask := image.NewGray(image.Rect(0, 0, width, height))
	r.Draw(mask, color.Gray{Y: 255}, Filled)
	return mask, nil
}

func (r Rectangle) checkMaskShape(height, width int) error {
	if height < 0 || width < 0 || height < r.yMax || width < r.xMax {
		return errors.Wrapf(ErrMaskTooSmall, "mask %dx%d cannot hold %s", height, width, r)
	}
	return nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
