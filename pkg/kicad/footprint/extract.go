package footprint

import (
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	wordPattern         = regexp.MustCompile(`^\w+$`)
	numberPattern       = regexp.MustCompile(`^[-\d.]+$`)
	numberPrefixPattern = regexp.MustCompile(`^[-\d.]+`)
)

// copperLayerPriority is the order in which layer names are looked for in the
// text following a pad.
var copperLayerPriority = []string{LayerFrontCopper, LayerBackCopper, LayerAllCopper}

// Options tunes extraction.
type Options struct {
	// LayerWindow is how many characters after a pad match are searched for
	// a copper layer name. Zero means DefaultLayerWindow.
	LayerWindow int

	// Logger receives debug output about skipped constructs. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns the options used by Extract.
func DefaultOptions() Options {
	return Options{LayerWindow: DefaultLayerWindow}
}

// Extract pulls the footprint name, description, pads and circles out of
// KiCad footprint text using default options.
func Extract(text string) *Footprint {
	return ExtractWithOptions(text, DefaultOptions())
}

// ExtractWithOptions is Extract with explicit options.
//
// It never fails: constructs that do not match their rules are skipped and a
// lexing problem only truncates the scan.
func ExtractWithOptions(text string, opts Options) *Footprint {
	if opts.LayerWindow <= 0 {
		opts.LayerWindow = DefaultLayerWindow
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	tokens, err := Tokenize(text)
	if err != nil {
		logger.Debug("footprint scan truncated", "error", err, "tokens", len(tokens))
	}

	s := &scanner{text: text, toks: tokens, window: opts.LayerWindow, log: logger}
	return &Footprint{
		Name:        s.name(),
		Description: s.description(),
		Pads:        s.pads(),
		Circles:     s.circles(),
	}
}

// scanner matches construct rules against a token stream. Each rule takes
// the index of its first token and returns the index after the match.
type scanner struct {
	text   string
	toks   []Token
	window int
	log    *slog.Logger
}

func (s *scanner) at(i int) (Token, bool) {
	if i < 0 || i >= len(s.toks) {
		return Token{}, false
	}
	return s.toks[i], true
}

func (s *scanner) kind(i int, k Kind) (int, bool) {
	tok, ok := s.at(i)
	if !ok || tok.Kind != k {
		return i, false
	}
	return i + 1, true
}

// optSpace skips a whitespace run if there is one.
func (s *scanner) optSpace(i int) int {
	if next, ok := s.kind(i, KindSpace); ok {
		return next
	}
	return i
}

// open matches "(" immediately followed by the keyword.
func (s *scanner) open(i int, keyword string) (int, bool) {
	i, ok := s.kind(i, KindLParen)
	if !ok {
		return i, false
	}
	tok, ok := s.at(i)
	if !ok || tok.Kind != KindAtom || tok.Value != keyword {
		return i, false
	}
	return i + 1, true
}

func (s *scanner) word(i int) (string, int, bool) {
	tok, ok := s.at(i)
	if !ok || tok.Kind != KindAtom || !wordPattern.MatchString(tok.Value) {
		return "", i, false
	}
	return tok.Value, i + 1, true
}

// quoted matches a non-empty string literal.
func (s *scanner) quoted(i int) (string, int, bool) {
	tok, ok := s.at(i)
	if !ok || tok.Kind != KindString {
		return "", i, false
	}
	v := unquote(tok.Value)
	if v == "" {
		return "", i, false
	}
	return v, i + 1, true
}

func (s *scanner) number(i int) (float64, int, bool) {
	tok, ok := s.at(i)
	if !ok || tok.Kind != KindAtom || !numberPattern.MatchString(tok.Value) {
		return 0, i, false
	}
	v, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0, i, false
	}
	return v, i + 1, true
}

// pair matches two whitespace-separated numbers, each preceded by whitespace.
func (s *scanner) pair(i int) (float64, float64, int, bool) {
	var ok bool
	if i, ok = s.kind(i, KindSpace); !ok {
		return 0, 0, i, false
	}
	a, i, ok := s.number(i)
	if !ok {
		return 0, 0, i, false
	}
	if i, ok = s.kind(i, KindSpace); !ok {
		return 0, 0, i, false
	}
	b, i, ok := s.number(i)
	if !ok {
		return 0, 0, i, false
	}
	return a, b, i, true
}

// name matches: footprint "<name>"
func (s *scanner) name() string {
	for i, tok := range s.toks {
		if tok.Kind != KindAtom || tok.Value != "footprint" {
			continue
		}
		j, ok := s.kind(i+1, KindSpace)
		if !ok {
			continue
		}
		if v, _, ok := s.quoted(j); ok {
			return v
		}
	}
	return ""
}

// description matches: (descr "<text>")
func (s *scanner) description() string {
	for i := range s.toks {
		j, ok := s.open(i, "descr")
		if !ok {
			continue
		}
		if j, ok = s.kind(j, KindSpace); !ok {
			continue
		}
		v, j, ok := s.quoted(j)
		if !ok {
			continue
		}
		if _, ok := s.kind(j, KindRParen); ok {
			return v
		}
	}
	return ""
}

// padHead matches: (pad "<number>" <type> <shape>
func (s *scanner) padHead(i int) (Pad, int, bool) {
	var pad Pad
	i, ok := s.open(i, "pad")
	if !ok {
		return pad, i, false
	}
	if i, ok = s.kind(i, KindSpace); !ok {
		return pad, i, false
	}
	if pad.Number, i, ok = s.quoted(i); !ok {
		return pad, i, false
	}
	if i, ok = s.kind(i, KindSpace); !ok {
		return pad, i, false
	}
	typ, i, ok := s.word(i)
	if !ok {
		return pad, i, false
	}
	if i, ok = s.kind(i, KindSpace); !ok {
		return pad, i, false
	}
	shape, i, ok := s.word(i)
	if !ok {
		return pad, i, false
	}
	pad.Type = PadType(typ)
	pad.Shape = PadShape(shape)
	return pad, i, true
}

// position matches: (at <x> <y> ...)
// Anything between y and the closing parenthesis is ignored, and y only
// needs a numeric prefix.
func (s *scanner) position(i int) (Position, int, bool) {
	var pos Position
	i, ok := s.open(i, "at")
	if !ok {
		return pos, i, false
	}
	if i, ok = s.kind(i, KindSpace); !ok {
		return pos, i, false
	}
	if pos.X, i, ok = s.number(i); !ok {
		return pos, i, false
	}
	if i, ok = s.kind(i, KindSpace); !ok {
		return pos, i, false
	}

	tok, ok := s.at(i)
	if !ok || tok.Kind != KindAtom {
		return pos, i, false
	}
	prefix := numberPrefixPattern.FindString(tok.Value)
	if prefix == "" {
		return pos, i, false
	}
	y, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return pos, i, false
	}
	pos.Y = y

	for i++; i < len(s.toks); i++ {
		if s.toks[i].Kind == KindRParen {
			return pos, i + 1, true
		}
	}
	return pos, i, false
}

// size matches: (size <w> <h>)
func (s *scanner) size(i int) (Size, int, bool) {
	i, ok := s.open(i, "size")
	if !ok {
		return Size{}, i, false
	}
	w, h, i, ok := s.pair(i)
	if !ok {
		return Size{}, i, false
	}
	if i, ok = s.kind(i, KindRParen); !ok {
		return Size{}, i, false
	}
	return Size{Width: w, Height: h}, i, true
}

// drill matches: (drill <d>)
func (s *scanner) drill(i int) (float64, int, bool) {
	i, ok := s.open(i, "drill")
	if !ok {
		return 0, i, false
	}
	if i, ok = s.kind(i, KindSpace); !ok {
		return 0, i, false
	}
	d, i, ok := s.number(i)
	if !ok {
		return 0, i, false
	}
	if i, ok = s.kind(i, KindRParen); !ok {
		return 0, i, false
	}
	return d, i, true
}

// pad matches a pad head followed by its at, size and drill sub-constructs,
// in that order, separated only by whitespace.
func (s *scanner) pad(i int) (Pad, int, bool) {
	pad, i, ok := s.padHead(i)
	if !ok {
		return pad, i, false
	}
	if pad.Position, i, ok = s.position(s.optSpace(i)); !ok {
		return pad, i, false
	}
	if pad.Size, i, ok = s.size(s.optSpace(i)); !ok {
		return pad, i, false
	}
	if pad.Drill, i, ok = s.drill(s.optSpace(i)); !ok {
		return pad, i, false
	}
	return pad, i, true
}

func (s *scanner) pads() []Pad {
	var pads []Pad
	for i := 0; i < len(s.toks); {
		pad, next, ok := s.pad(i)
		if !ok {
			if _, _, head := s.padHead(i); head {
				s.log.Debug("skipping pad without at/size/drill", "offset", s.toks[i].Start)
			}
			i++
			continue
		}

		start := s.toks[i].Start
		end := s.toks[next-1].End
		if layer := s.copperLayerNear(start, end); layer != "" {
			pad.Layers = []string{layer}
		}
		pads = append(pads, pad)
		i = next
	}
	return pads
}

// copperLayerNear searches the matched text plus the following window of
// characters for a copper layer name. It can pick up a layer from a later
// construct on dense input.
func (s *scanner) copperLayerNear(start, end int) string {
	limit := end
	for n := 0; n < s.window && limit < len(s.text); n++ {
		_, size := utf8.DecodeRuneInString(s.text[limit:])
		limit += size
	}
	region := s.text[start:limit]
	for _, name := range copperLayerPriority {
		if strings.Contains(region, name) {
			return name
		}
	}
	return ""
}

// circle matches: (fp_circle (center <x> <y>) (end <x> <y>)
func (s *scanner) circle(i int) (Circle, int, bool) {
	i, ok := s.open(i, "fp_circle")
	if !ok {
		return Circle{}, i, false
	}

	if i, ok = s.open(s.optSpace(i), "center"); !ok {
		return Circle{}, i, false
	}
	cx, cy, i, ok := s.pair(i)
	if !ok {
		return Circle{}, i, false
	}
	if i, ok = s.kind(i, KindRParen); !ok {
		return Circle{}, i, false
	}

	if i, ok = s.open(s.optSpace(i), "end"); !ok {
		return Circle{}, i, false
	}
	ex, ey, i, ok := s.pair(i)
	if !ok {
		return Circle{}, i, false
	}
	if i, ok = s.kind(i, KindRParen); !ok {
		return Circle{}, i, false
	}

	return newCircle(Position{X: cx, Y: cy}, Position{X: ex, Y: ey}), i, true
}

func (s *scanner) circles() []Circle {
	var circles []Circle
	for i := 0; i < len(s.toks); {
		c, next, ok := s.circle(i)
		if !ok {
			i++
			continue
		}
		circles = append(circles, c)
		i = next
	}
	return circles
}
