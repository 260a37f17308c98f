// Package footprint extracts pads, circles and metadata from KiCad footprint
// files (.kicad_mod).
//
// Extraction is permissive: only the constructs the converter needs are
// recognized, and anything that does not match is skipped without error.
package footprint

import "math"

// Copper layer names recognized when associating a pad with a side of the board.
const (
	LayerFrontCopper = "F.Cu"
	LayerBackCopper  = "B.Cu"
	LayerAllCopper   = "*.Cu"

	// LayerComments is the layer every extracted circle is assigned to.
	LayerComments = "Cmts.User"
)

// DefaultLayerWindow is the number of characters after a pad match that are
// searched for a copper layer name.
const DefaultLayerWindow = 200

// PadType is the mount kind of a pad as written in the file.
type PadType string

const (
	PadThroughHole   PadType = "thru_hole"
	PadSMD           PadType = "smd"
	PadConnect       PadType = "connect"
	PadNPThroughHole PadType = "np_thru_hole"
)

// PadShape is the outline of a pad as written in the file.
type PadShape string

const (
	ShapeCircle PadShape = "circle"
	ShapeRect   PadShape = "rect"
	ShapeOval   PadShape = "oval"
)

// Position is a 2D coordinate in millimeters
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Size represents pad dimensions in millimeters
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Pad is a single copper contact of the footprint.
type Pad struct {
	Number   string   `yaml:"number"`
	Type     PadType  `yaml:"type"`
	Shape    PadShape `yaml:"shape"`
	Position Position `yaml:"at"`
	Size     Size     `yaml:"size"`
	Drill    float64  `yaml:"drill"`

	// Layers holds at most one copper layer name found near the pad
	// definition. Nil when none was found.
	Layers []string `yaml:"layers,omitempty"`
}

// HasLayer reports whether the pad is associated with the named layer.
func (p Pad) HasLayer(name string) bool {
	for _, l := range p.Layers {
		if l == name {
			return true
		}
	}
	return false
}

// Circle is an fp_circle graphic. KiCad defines it by its center and a point
// on the circumference.
type Circle struct {
	Center Position `yaml:"center"`
	End    Position `yaml:"end"`
	Radius float64  `yaml:"radius"`
	Layer  string   `yaml:"layer"`
}

func newCircle(center, end Position) Circle {
	dx := end.X - center.X
	dy := end.Y - center.Y
	return Circle{
		Center: center,
		End:    end,
		Radius: math.Sqrt(dx*dx + dy*dy),
		Layer:  LayerComments,
	}
}

// Footprint is the result of extracting a .kicad_mod file.
// Pads and circles keep the order they appear in the source.
type Footprint struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Pads        []Pad    `yaml:"pads"`
	Circles     []Circle `yaml:"circles"`
}
