// Package images - geometry and model input preparation.
package images

import "github.com/chewxy/math32"

// Rect is a lightweight bounding box with float32 corner coordinates.
// X2/Y2 are the far edges, so X2 >= X1 and Y2 >= Y1 for well-formed boxes.
// Coordinates are either in letterboxed-canvas space or original-image
// space; the two must never be mixed in one comparison.
type Rect struct {
	X1, Y1, X2, Y2 float32
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float32 {
	return r.X2 - r.X1
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float32 {
	return r.Y2 - r.Y1
}

// Area returns the area of the rectangle in square pixels.
func (r Rect) Area() float32 {
	return r.Width() * r.Height()
}

// IoU (Intersection over Union) measures the extent of overlap between two
// bounding boxes as a value in [0, 1]: 1.0 means the boxes are identical,
// 0.0 means they do not overlap at all.
//
// The intersection's top-left corner is the maximum of the two top-left
// corners and its bottom-right corner is the minimum of the two bottom-right
// corners; when that yields a non-positive width or height the boxes are
// disjoint and the result is 0 immediately, which also keeps the area
// formula away from negative extents. Two degenerate (zero-area) boxes
// produce a zero union and are likewise defined to have IoU 0 rather than
// dividing by zero.
func IoU(a, b Rect) float32 {
	ix1 := math32.Max(a.X1, b.X1)
	iy1 := math32.Max(a.Y1, b.Y1)
	ix2 := math32.Min(a.X2, b.X2)
	iy2 := math32.Min(a.Y2, b.Y2)

	if ix1 >= ix2 || iy1 >= iy2 {
		return 0
	}

	intersection := (ix2 - ix1) * (iy2 - iy1)
	union := a.Area() + b.Area() - intersection
	if union == 0 {
		return 0
	}

	return intersection / union
}
