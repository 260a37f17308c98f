package easyeda

import (
	"strconv"
	"strings"

	"github.com/OpenTraceLab/kicad2easyeda/pkg/kicad/footprint"
)

const fieldSep = "~"

// Shape is one EasyEDA primitive. String renders its delimited form.
type Shape interface {
	Kind() string
	ID() string
	String() string
}

// PadKind is the EasyEDA outline of a pad.
type PadKind string

const (
	PadEllipse PadKind = "ELLIPSE"
	PadRect    PadKind = "RECT"
	PadOval    PadKind = "OVAL"
)

// PadKindFor maps a KiCad pad shape to EasyEDA. Unknown shapes become ellipses.
func PadKindFor(shape footprint.PadShape) PadKind {
	switch shape {
	case footprint.ShapeCircle:
		return PadEllipse
	case footprint.ShapeRect:
		return PadRect
	case footprint.ShapeOval:
		return PadOval
	default:
		return PadEllipse
	}
}

// Pad is a converted pad:
// PAD~shape~x~y~width~height~layer~net~number~holeR~points~rotation~id~holeLength~holePoints~plated~locked
type Pad struct {
	Shape   PadKind
	X, Y    float64
	Width   float64
	Height  float64
	LayerID string
	Number  string

	// HoleRadius is nil for pads without a hole, which EasyEDA writes as 0.
	HoleRadius *float64
	Plated     bool
	Seq        int
}

func (p Pad) Kind() string { return "PAD" }
func (p Pad) ID() string   { return shapeID(p.Seq) }

func (p Pad) String() string {
	hole := "0"
	if p.HoleRadius != nil {
		hole = FormatFloat(*p.HoleRadius)
	}
	return strings.Join([]string{
		p.Kind(),
		string(p.Shape),
		FormatFloat(p.X),
		FormatFloat(p.Y),
		FormatFloat(p.Width),
		FormatFloat(p.Height),
		p.LayerID,
		"",
		p.Number,
		hole,
		"",
		"0",
		p.ID(),
		"",
		"",
		yesNo(p.Plated),
		"0",
	}, fieldSep)
}

// Circle is a converted circle: CIRCLE~cx~cy~r~strokeWidth~layer~id~locked
type Circle struct {
	CX, CY      float64
	Radius      float64
	StrokeWidth float64
	LayerID     string
	Seq         int
}

func (c Circle) Kind() string { return "CIRCLE" }
func (c Circle) ID() string   { return shapeID(c.Seq) }

func (c Circle) String() string {
	return strings.Join([]string{
		c.Kind(),
		FormatFloat(c.CX),
		FormatFloat(c.CY),
		FormatFloat(c.Radius),
		FormatFloat(c.StrokeWidth),
		c.LayerID,
		c.ID(),
		"0",
	}, fieldSep)
}

func shapeID(seq int) string {
	return "gge" + strconv.Itoa(seq)
}

func yesNo(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}
