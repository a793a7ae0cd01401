package bbox

import (
	"fmt"
)

// BoundingBox represents a detection with its label, confidence, and float coordinates.
type BoundingBox struct {
	Label          string
	Confidence     float32
	X1, Y1, X2, Y2 float32
}

func (b *BoundingBox) String() string {
	return fmt.Sprintf("Object %s (confidence %f): (%f, %f), (%f, %f)",
		b.Label, b.Confidence, b.X1, b.Y1, b.X2, b.Y2)
}

// ToRectangle truncates the coordinates toward zero. Corners are not
// reordered, so an inverted box stays inverted.
//
// @example
//
//	box := BoundingBox{X1: 100.5, Y1: 100.5, X2: 200.5, Y2: 300.5}
//	box.ToRectangle() // Rectangle(100, 100, 200, 300)
func (b *BoundingBox) ToRectangle() Rectangle {
	return NewRectangle(int(b.X1), int(b.Y1), int(b.X2), int(b.Y2))
}

// Intersection returns the overlap area of the two boxes after truncation.
func (b *BoundingBox) Intersection(other *BoundingBox) float64 {
	return b.ToRectangle().IntersectWith(other.ToRectangle())
}

// Union returns the area covered by either box after truncation.
func (b *BoundingBox) Union(other *BoundingBox) float64 {
	return b.ToRectangle().Area() + other.ToRectangle().Area() - b.Intersection(other)
}

// IoU calculates the Intersection over Union between two boxes.
//
// This won't be entirely precise due to the truncation to integral
// rectangles, but it is only used to estimate which boxes overlap too much.
func (b *BoundingBox) IoU(other *BoundingBox) float64 {
	return IoU(b.ToRectangle(), other.ToRectangle())
}

// IoU is the intersection area of a and b divided by the area of their union.
//
// Returns 0 when the rectangles do not overlap or the union is not positive.
//
// @example
//
//	a := NewRectangle(0, 0, 10, 10)
//	b := NewRectangle(5, 5, 15, 15)
//	IoU(a, b) // 25 / 175 = 0.142857
func IoU(a, b Rectangle) float64 {
	inter := a.IntersectWith(b)
	if inter == 0 {
		return 0
	}
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}
