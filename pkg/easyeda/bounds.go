package easyeda

import "math"

// BoundingBox tracks the extent of converted geometry in EasyEDA units.
type BoundingBox struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

// NewBoundingBox creates an empty bounding box
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		MinX: math.Inf(1),
		MaxX: math.Inf(-1),
		MinY: math.Inf(1),
		MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether nothing has been added yet.
func (bb BoundingBox) IsEmpty() bool {
	return math.IsInf(bb.MinX, 1)
}

// ExpandAround grows the box to include a rectangle of the given half
// extents centered on (x, y).
func (bb *BoundingBox) ExpandAround(x, y, halfWidth, halfHeight float64) {
	if v := x - halfWidth; v < bb.MinX {
		bb.MinX = v
	}
	if v := x + halfWidth; v > bb.MaxX {
		bb.MaxX = v
	}
	if v := y - halfHeight; v < bb.MinY {
		bb.MinY = v
	}
	if v := y + halfHeight; v > bb.MaxY {
		bb.MaxY = v
	}
}

// Center returns the center point of the bounding box
func (bb BoundingBox) Center() (float64, float64) {
	return (bb.MinX + bb.MaxX) / 2, (bb.MinY + bb.MaxY) / 2
}

// Width returns the width of the bounding box
func (bb BoundingBox) Width() float64 {
	return bb.MaxX - bb.MinX
}

// Height returns the height of the bounding box
func (bb BoundingBox) Height() float64 {
	return bb.MaxY - bb.MinY
}
