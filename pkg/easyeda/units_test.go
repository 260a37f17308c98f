package easyeda

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		mm   float64
		want float64
	}{
		{0, 0},
		{1, 3.94},
		{2, 7.87},
		{1.7, 6.69},
		{-1.27, -5},
		{2.54, 10},
		{0.125, 0.49},
		{100, 393.7},
		{1e-9, 0},
		{3.175, 12.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Convert(tt.mm), "Convert(%v)", tt.mm)
	}
}

func TestConvertMonotonic(t *testing.T) {
	prev := Convert(-10)
	for mm := -10.0; mm <= 10; mm += 0.01 {
		got := Convert(mm)
		assert.GreaterOrEqual(t, got, prev, "Convert(%v)", mm)
		prev = got
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{math.Copysign(0, -1), "-0.0"},
		{3.94, "3.94"},
		{10, "10.0"},
		{-5, "-5.0"},
		{1.97, "1.97"},
		{3.935, "3.935"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{123456789012345.6, "123456789012345.6"},
		{1e16, "1e+16"},
		{0.15 * 3.937, "0.59055"},
		{circleStrokeWidth, "0.5905499999999999"},
		{math.Inf(1), "inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in), "FormatFloat(%v)", tt.in)
	}
}
