// Package easyeda converts extracted KiCad footprints into EasyEDA footprint
// documents: tilde-delimited shape strings wrapped in a JSON document.
package easyeda

import (
	"math"
	"strconv"
	"strings"
)

// EasyEDA works in units of 10 mil.
const (
	milPerMM     = 39.3701
	milPerUnit   = 10.0
	unitDecimals = 2
)

// Convert maps millimeters to EasyEDA units rounded to two decimals.
//
// Rounding works on the exact decimal expansion of the binary value, so
// 2.675 (stored as 2.67499...) rounds down and exact ties go to even.
func Convert(mm float64) float64 {
	v := mm * milPerMM / milPerUnit
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', unitDecimals, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}

// FormatFloat renders a float the way EasyEDA shape strings carry them:
// shortest round-trip digits, ".0" on integral values, and exponent form
// below 1e-4 or from 1e16 on.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
