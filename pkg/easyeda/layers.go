package easyeda

import "github.com/OpenTraceLab/kicad2easyeda/pkg/kicad/footprint"

// EasyEDA layer ids used by converted shapes.
const (
	LayerTop        = "1"
	LayerBottom     = "2"
	LayerMulti      = "11"
	LayerDocument   = "12"
	defaultPadLayer = LayerTop
)

// copperLayerIDs maps KiCad copper layer names to EasyEDA ids.
var copperLayerIDs = map[string]string{
	footprint.LayerFrontCopper: LayerTop,
	footprint.LayerBackCopper:  LayerBottom,
	footprint.LayerAllCopper:   LayerMulti,
	footprint.LayerComments:    LayerDocument,
}

// LayerTable is the layer section written into every document.
var LayerTable = []string{
	"1~TopLayer~#FF0000~true~true~true~",
	"2~BottomLayer~#0000FF~true~false~true~",
	"3~TopSilkLayer~#FFCC00~true~false~true~",
	"4~BottomSilkLayer~#66CC33~true~false~true~",
	"5~TopPasteMaskLayer~#808080~true~false~true~",
	"6~BottomPasteMaskLayer~#800000~true~false~true~",
	"7~TopSolderMaskLayer~#800080~true~false~true~0.3",
	"8~BottomSolderMaskLayer~#AA00FF~true~false~true~0.3",
	"9~Ratlines~#6464FF~false~false~true~",
	"10~BoardOutLine~#FF00FF~true~true~true~",
	"11~Multi-Layer~#C0C0C0~true~false~true~",
	"12~Document~#FFFFFF~true~false~true~",
	"13~TopAssembly~#33CC99~false~false~false~",
	"14~BottomAssembly~#5555FF~false~false~false~",
	"15~Mechanical~#33CC99~false~false~false~",
}

// ObjectTable is the object visibility section written into every document.
var ObjectTable = []string{
	"All~true~false",
	"Component~true~true",
	"Prefix~true~true",
	"Name~true~false",
	"Track~true~true",
	"Pad~true~true",
	"Via~true~true",
	"Hole~true~true",
	"Copper_Area~true~true",
	"Circle~true~true",
	"Arc~true~true",
	"Solid_Region~true~true",
	"Text~true~true",
	"Dimension~true~true",
	"Rect~true~true",
}

// PadLayer is where a pad lands in EasyEDA and whether its hole is plated.
type PadLayer struct {
	LayerID string
	Plated  bool

	// ZeroDrill is set when the pad's drill must be ignored.
	ZeroDrill bool
}

// ResolvePadLayer applies the pad layer rules:
// through-hole pads go to the multi-layer with a plated hole, connect pads
// go to the copper side they were found on (top by default) without a hole,
// and everything else falls back to a plated multi-layer pad.
func ResolvePadLayer(pad footprint.Pad) PadLayer {
	switch pad.Type {
	case footprint.PadThroughHole:
		return PadLayer{LayerID: LayerMulti, Plated: true}
	case footprint.PadConnect:
		id := defaultPadLayer
		if pad.HasLayer(footprint.LayerFrontCopper) {
			id = LayerTop
		} else if pad.HasLayer(footprint.LayerBackCopper) {
			id = LayerBottom
		}
		return PadLayer{LayerID: id, ZeroDrill: true}
	default:
		return PadLayer{LayerID: LayerMulti, Plated: true}
	}
}

// ExtraCopperLayers returns one layer id per front or back copper layer of a
// connect pad, in the pad's layer order. Other pads get none.
func ExtraCopperLayers(pad footprint.Pad) []string {
	if pad.Type != footprint.PadConnect {
		return nil
	}
	var ids []string
	for _, name := range pad.Layers {
		if name != footprint.LayerFrontCopper && name != footprint.LayerBackCopper {
			continue
		}
		if id, ok := LayerID(name); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// LayerID looks up the EasyEDA id of a KiCad layer name.
func LayerID(kicadLayer string) (string, bool) {
	id, ok := copperLayerIDs[kicadLayer]
	return id, ok
}
