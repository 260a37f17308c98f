package easyeda

import (
	"io"
	"log/slog"

	"github.com/OpenTraceLab/kicad2easyeda/pkg/kicad/footprint"
)

// Circles are drawn with a 0.15mm outline.
const (
	circleStrokeMM   = 0.15
	strokeUnitsPerMM = 3.937
)

// circleStrokeWidth is computed at run time so it carries the float64
// product (0.5905499999999999) rather than the exact constant.
var circleStrokeWidth = func() float64 {
	w := circleStrokeMM
	return w * strokeUnitsPerMM
}()

// Result is the output of converting one footprint.
type Result struct {
	Shapes []Shape
	Bounds BoundingBox
}

// Strings renders every shape in emission order. Never nil.
func (r Result) Strings() []string {
	out := make([]string, 0, len(r.Shapes))
	for _, s := range r.Shapes {
		out = append(out, s.String())
	}
	return out
}

// Converter accumulates shapes and the bounding box for one footprint.
// A Converter must not be reused across footprints.
type Converter struct {
	shapes []Shape
	bounds BoundingBox
	seq    int
	log    *slog.Logger
}

// NewConverter creates a converter with an empty bounding box. A nil logger
// discards debug output.
func NewConverter(logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{bounds: NewBoundingBox(), log: logger}
}

func (c *Converter) next() int {
	c.seq++
	return c.seq
}

// AddPad converts a pad and returns the shapes it produced.
//
// The bounding box always grows by the pad, but only through-hole pads with
// a drill and connect pads on a front or back copper layer produce shapes.
func (c *Converter) AddPad(pad footprint.Pad) []Shape {
	x := Convert(pad.Position.X)
	y := Convert(pad.Position.Y)
	width := Convert(pad.Size.Width)
	height := Convert(pad.Size.Height)
	drill := Convert(pad.Drill)

	c.bounds.ExpandAround(x, y, width/2, height/2)

	kind := PadKindFor(pad.Shape)
	layer := ResolvePadLayer(pad)
	if layer.ZeroDrill {
		drill = 0
	}

	var out []Shape
	if drill > 0 && pad.Type == footprint.PadThroughHole {
		hole := drill / 2
		out = append(out, Pad{
			Shape:      kind,
			X:          x,
			Y:          y,
			Width:      width,
			Height:     height,
			LayerID:    layer.LayerID,
			Number:     pad.Number,
			HoleRadius: &hole,
			Plated:     layer.Plated,
			Seq:        c.next(),
		})
	}

	for _, id := range ExtraCopperLayers(pad) {
		out = append(out, Pad{
			Shape:   kind,
			X:       x,
			Y:       y,
			Width:   width,
			Height:  height,
			LayerID: id,
			Number:  pad.Number,
			Seq:     c.next(),
		})
	}

	if len(out) == 0 {
		c.log.Debug("pad produced no shapes", "number", pad.Number, "type", pad.Type, "drill", pad.Drill)
	}
	c.shapes = append(c.shapes, out...)
	return out
}

// AddCircle converts a circle onto the document layer.
func (c *Converter) AddCircle(circle footprint.Circle) Shape {
	cx := Convert(circle.Center.X)
	cy := Convert(circle.Center.Y)
	r := Convert(circle.Radius)

	c.bounds.ExpandAround(cx, cy, r, r)

	s := Circle{
		CX:          cx,
		CY:          cy,
		Radius:      r,
		StrokeWidth: circleStrokeWidth,
		LayerID:     LayerDocument,
		Seq:         c.next(),
	}
	c.shapes = append(c.shapes, s)
	return s
}

// Result returns the shapes emitted so far and the current bounding box.
func (c *Converter) Result() Result {
	shapes := make([]Shape, len(c.shapes))
	copy(shapes, c.shapes)
	return Result{Shapes: shapes, Bounds: c.bounds}
}

// ConvertFootprint converts every pad, then every circle, of fp with a fresh
// converter.
func ConvertFootprint(fp *footprint.Footprint, logger *slog.Logger) Result {
	c := NewConverter(logger)
	for _, pad := range fp.Pads {
		c.AddPad(pad)
	}
	for _, circle := range fp.Circles {
		c.AddCircle(circle)
	}
	res := c.Result()
	if res.Bounds.IsEmpty() {
		c.log.Debug("converted footprint", "name", fp.Name, "shapes", len(res.Shapes))
	} else {
		c.log.Debug("converted footprint", "name", fp.Name, "shapes", len(res.Shapes),
			"width", res.Bounds.Width(), "height", res.Bounds.Height())
	}
	return res
}
