package easyeda

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/kicad2easyeda/pkg/kicad/footprint"
)

func thruHolePad(number string, x, y float64) footprint.Pad {
	return footprint.Pad{
		Number:   number,
		Type:     footprint.PadThroughHole,
		Shape:    footprint.ShapeCircle,
		Position: footprint.Position{X: x, Y: y},
		Size:     footprint.Size{Width: 1.7, Height: 1.7},
		Drill:    1,
		Layers:   []string{footprint.LayerAllCopper},
	}
}

func TestResolvePadLayer(t *testing.T) {
	tests := []struct {
		name string
		pad  footprint.Pad
		want PadLayer
	}{
		{
			name: "through hole",
			pad:  footprint.Pad{Type: footprint.PadThroughHole},
			want: PadLayer{LayerID: LayerMulti, Plated: true},
		},
		{
			name: "connect on front",
			pad:  footprint.Pad{Type: footprint.PadConnect, Layers: []string{footprint.LayerFrontCopper}},
			want: PadLayer{LayerID: LayerTop, ZeroDrill: true},
		},
		{
			name: "connect on back",
			pad:  footprint.Pad{Type: footprint.PadConnect, Layers: []string{footprint.LayerBackCopper}},
			want: PadLayer{LayerID: LayerBottom, ZeroDrill: true},
		},
		{
			name: "connect without layers defaults to top",
			pad:  footprint.Pad{Type: footprint.PadConnect},
			want: PadLayer{LayerID: LayerTop, ZeroDrill: true},
		},
		{
			name: "smd falls back to multi layer",
			pad:  footprint.Pad{Type: footprint.PadSMD, Layers: []string{footprint.LayerFrontCopper}},
			want: PadLayer{LayerID: LayerMulti, Plated: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolvePadLayer(tt.pad))
		})
	}
}

func TestExtraCopperLayers(t *testing.T) {
	pad := footprint.Pad{Type: footprint.PadConnect, Layers: []string{footprint.LayerBackCopper}}
	assert.Equal(t, []string{LayerBottom}, ExtraCopperLayers(pad))

	pad.Layers = []string{footprint.LayerAllCopper}
	assert.Empty(t, ExtraCopperLayers(pad))

	pad.Type = footprint.PadThroughHole
	pad.Layers = []string{footprint.LayerFrontCopper}
	assert.Nil(t, ExtraCopperLayers(pad))
}

func TestLayerID(t *testing.T) {
	id, ok := LayerID(footprint.LayerBackCopper)
	assert.True(t, ok)
	assert.Equal(t, LayerBottom, id)

	id, ok = LayerID(footprint.LayerComments)
	assert.True(t, ok)
	assert.Equal(t, LayerDocument, id)

	_, ok = LayerID("In1.Cu")
	assert.False(t, ok)
}

func TestAddPadThroughHole(t *testing.T) {
	c := NewConverter(nil)
	shapes := c.AddPad(thruHolePad("1", 1, 2))

	require.Len(t, shapes, 1)
	pad, ok := shapes[0].(Pad)
	require.True(t, ok, "shape is %T", shapes[0])
	assert.True(t, pad.Plated)
	assert.Equal(t, LayerMulti, pad.LayerID)
	require.NotNil(t, pad.HoleRadius)
	assert.Equal(t, Convert(1)/2, *pad.HoleRadius)
	assert.Equal(t, "PAD~ELLIPSE~3.94~7.87~6.69~6.69~11~~1~1.97~~0~gge1~~~Y~0", pad.String())
}

func TestAddPadThroughHoleWithoutDrill(t *testing.T) {
	c := NewConverter(nil)
	pad := thruHolePad("1", 0, 0)
	pad.Drill = 0

	assert.Empty(t, c.AddPad(pad))
	assert.False(t, c.Result().Bounds.IsEmpty(), "skipped pad still extends the bounds")
}

func TestAddPadConnect(t *testing.T) {
	c := NewConverter(nil)
	shapes := c.AddPad(footprint.Pad{
		Number:   "1",
		Type:     footprint.PadConnect,
		Shape:    footprint.ShapeRect,
		Position: footprint.Position{X: 0, Y: 0},
		Size:     footprint.Size{Width: 5, Height: 5},
		Drill:    2.5,
		Layers:   []string{footprint.LayerFrontCopper},
	})

	require.Len(t, shapes, 1)
	pad := shapes[0].(Pad)
	assert.Equal(t, LayerTop, pad.LayerID)
	assert.False(t, pad.Plated)
	assert.Nil(t, pad.HoleRadius)
	assert.Equal(t, "PAD~RECT~0.0~0.0~19.69~19.69~1~~1~0~~0~gge1~~~N~0", pad.String())
}

func TestAddPadConnectAllCopperEmitsNothing(t *testing.T) {
	c := NewConverter(nil)
	shapes := c.AddPad(footprint.Pad{
		Number: "1",
		Type:   footprint.PadConnect,
		Size:   footprint.Size{Width: 1, Height: 1},
		Layers: []string{footprint.LayerAllCopper},
	})
	assert.Empty(t, shapes)
}

func TestAddPadSMDEmitsNothing(t *testing.T) {
	c := NewConverter(nil)
	shapes := c.AddPad(footprint.Pad{
		Number:   "4",
		Type:     footprint.PadSMD,
		Shape:    footprint.ShapeOval,
		Position: footprint.Position{X: 10, Y: 10},
		Size:     footprint.Size{Width: 1, Height: 1},
		Drill:    0.5,
	})
	assert.Empty(t, shapes)

	x, half := 39.37, 1.97
	res := c.Result()
	assert.Equal(t, x-half, res.Bounds.MinX)
	assert.Equal(t, x+half, res.Bounds.MaxX)
}

func TestAddCircle(t *testing.T) {
	c := NewConverter(nil)
	circle := footprint.Extract(`(fp_circle (center 0 0) (end 1 0))`).Circles[0]
	require.Equal(t, 1.0, circle.Radius)

	shape := c.AddCircle(circle)
	got := shape.(Circle)
	assert.Equal(t, LayerDocument, got.LayerID)
	assert.Equal(t, 3.94, got.Radius)
	assert.Equal(t, "CIRCLE~0.0~0.0~3.94~0.5905499999999999~12~gge1~0", got.String())

	bounds := c.Result().Bounds
	assert.Equal(t, BoundingBox{MinX: -3.94, MaxX: 3.94, MinY: -3.94, MaxY: 3.94}, bounds)
}

func TestConvertFootprintSequence(t *testing.T) {
	fp := &footprint.Footprint{
		Pads: []footprint.Pad{
			thruHolePad("1", 0, 0),
			{Number: "2", Type: footprint.PadSMD, Size: footprint.Size{Width: 1, Height: 1}},
			{
				Number: "3", Type: footprint.PadConnect, Size: footprint.Size{Width: 1, Height: 1},
				Layers: []string{footprint.LayerBackCopper},
			},
		},
		Circles: []footprint.Circle{{Radius: 1, Layer: footprint.LayerComments}},
	}

	res := ConvertFootprint(fp, nil)
	require.Len(t, res.Shapes, 3)

	wantIDs := []string{"gge1", "gge2", "gge3"}
	wantKinds := []string{"PAD", "PAD", "CIRCLE"}
	for i, s := range res.Shapes {
		assert.Equal(t, wantIDs[i], s.ID())
		assert.Equal(t, wantKinds[i], s.Kind())
	}
	assert.Equal(t, LayerBottom, res.Shapes[1].(Pad).LayerID)
}

func TestConvertFootprintEmpty(t *testing.T) {
	res := ConvertFootprint(&footprint.Footprint{}, nil)
	assert.True(t, res.Bounds.IsEmpty())
	assert.NotNil(t, res.Strings())
	assert.Empty(t, res.Strings())
}

func TestConvertFootprintLogsExtent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fp := &footprint.Footprint{Name: "MH", Pads: []footprint.Pad{thruHolePad("1", 0, 0)}}
	res := ConvertFootprint(fp, logger)
	assert.Equal(t, 6.69, res.Bounds.Width())
	assert.Equal(t, 6.69, res.Bounds.Height())
	assert.Contains(t, buf.String(), "width=6.69 height=6.69")

	buf.Reset()
	ConvertFootprint(&footprint.Footprint{Name: "Empty"}, logger)
	assert.Contains(t, buf.String(), "name=Empty shapes=0")
	assert.NotContains(t, buf.String(), "width=")
}

func TestConvertersAreIndependent(t *testing.T) {
	fp := &footprint.Footprint{Pads: []footprint.Pad{thruHolePad("1", 0, 0)}}
	first := ConvertFootprint(fp, nil)
	second := ConvertFootprint(fp, nil)
	assert.Equal(t, first.Strings(), second.Strings())
	assert.Equal(t, "gge1", second.Shapes[0].ID())
}
