package common

import (
	"math"
	"testing"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1.4, 1},
		{1.5, 2},
		{2.5, 3},
		{1599.99, 1600},
		{-1.5, -1},
	}
	for _, tt := range tests {
		if got := RoundHalfUp(tt.in); got != tt.want {
			t.Errorf("RoundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestScaleToPixels(t *testing.T) {
	if got := ScaleToPixels(800, 2); got != 1600 {
		t.Errorf("ScaleToPixels(800, 2) = %d, want 1600", got)
	}
	if got := ScaleToPixels(333.5, 1.5); got != 500 {
		t.Errorf("ScaleToPixels(333.5, 1.5) = %d, want 500", got)
	}
	if got := ScaleToPixels(640, 0); got != 640 {
		t.Errorf("ScaleToPixels with zero ratio = %d, want 640", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.2, "0.2"},
		{45, "45"},
		{5.0, "5"},
		{1.25, "1.25"},
		{-0.0, "0"},
		{-3, "-3"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
		{1e21, "1e+21"},
		{-2.5e22, "-2.5e+22"},
		{1.5e-7, "1.5e-7"},
		{1e-6, "0.000001"},
		{123456789012345680000, "123456789012345680000"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "b", "c"); got != "b" {
		t.Errorf("Coalesce = %q, want b", got)
	}
	if got := Coalesce(0, 0); got != 0 {
		t.Errorf("Coalesce of zeros = %d, want 0", got)
	}
}
