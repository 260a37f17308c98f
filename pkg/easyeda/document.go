package easyeda

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"unicode/utf16"
)

// Canvas placement of the footprint origin.
const (
	CanvasOriginX = 4000
	CanvasOriginY = 3000
)

const (
	docTypeFootprint = "4"
	editorVersion    = "6.5.0"
)

// Options holds the document metadata that is not derived from the footprint.
type Options struct {
	Prefix      string
	Contributor string
}

// DefaultOptions returns the metadata EasyEDA expects for imported footprints.
func DefaultOptions() Options {
	return Options{
		Prefix:      "FP?",
		Contributor: "KiCad Converter",
	}
}

// CPara is the component parameter block of the header.
type CPara struct {
	Package     string `json:"package"`
	Pre         string `json:"pre"`
	Contributor string `json:"Contributor"`
}

// Head is the document header.
type Head struct {
	DocType       string `json:"docType"`
	EditorVersion string `json:"editorVersion"`
	NewGID        bool   `json:"newgId"`
	CPara         CPara  `json:"c_para"`
	HasIDFlag     bool   `json:"hasIdFlag"`
	X             int    `json:"x"`
	Y             int    `json:"y"`
}

// Document is a complete EasyEDA footprint file.
type Document struct {
	Head    Head     `json:"head"`
	Canvas  string   `json:"canvas"`
	Shape   []string `json:"shape"`
	Layers  []string `json:"layers"`
	Objects []string `json:"objects"`

	originX, originY float64
}

// Assemble builds the document for a converted footprint. The origin is the
// center of the converted geometry offset into the canvas, or the canvas
// origin itself when nothing was converted.
func Assemble(name string, res Result, opts Options) *Document {
	ox, oy := float64(CanvasOriginX), float64(CanvasOriginY)
	if !res.Bounds.IsEmpty() {
		cx, cy := res.Bounds.Center()
		ox += cx
		oy += cy
	}

	x, y := int(ox), int(oy)
	return &Document{
		Head: Head{
			DocType:       docTypeFootprint,
			EditorVersion: editorVersion,
			NewGID:        true,
			CPara: CPara{
				Package:     name,
				Pre:         opts.Prefix,
				Contributor: opts.Contributor,
			},
			HasIDFlag: true,
			X:         x,
			Y:         y,
		},
		Canvas:  canvas(x, y),
		Shape:   res.Strings(),
		Layers:  append([]string(nil), LayerTable...),
		Objects: append([]string(nil), ObjectTable...),
		originX: ox,
		originY: oy,
	}
}

// canvas renders the CA~ descriptor: canvas size, colors, grid, units,
// zoom and rotation step, then the origin.
func canvas(x, y int) string {
	return "CA~2000~2000~#000000~yes~#FFFFFF~10~1000~1000~line~0.5~mil~1~45~visible~0.5~" +
		strconv.Itoa(x) + "~" + strconv.Itoa(y)
}

// Origin returns the untruncated origin.
func (d *Document) Origin() (float64, float64) {
	return d.originX, d.originY
}

// Marshal encodes the document as two-space indented JSON with non-ASCII
// characters escaped and no trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// WriteFile writes the encoded document to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// escapeNonASCII replaces DEL and every non-ASCII rune with a \uXXXX
// escape, using surrogate pairs outside the basic multilingual plane. Such
// runes only occur inside JSON strings, so the result stays valid JSON.
func escapeNonASCII(data []byte) []byte {
	if isASCII(data) {
		return data
	}
	out := make([]byte, 0, len(data)+16)
	for _, r := range string(data) {
		if r < 0x7f {
			out = append(out, byte(r))
			continue
		}
		if r > 0xFFFF {
			r1, r2 := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, r1, r2)
			continue
		}
		out = fmt.Appendf(out, `\u%04x`, r)
	}
	return out
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x7f {
			return false
		}
	}
	return true
}
