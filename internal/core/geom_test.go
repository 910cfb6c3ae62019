package core

import (
	"math"
	"testing"
)

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 4, 5)
	if r.Right() != 6 || r.Bottom() != 8 {
		t.Errorf("edges = (%d, %d), want (6, 8)", r.Right(), r.Bottom())
	}
	if r.Empty() {
		t.Error("4x5 rect should not be empty")
	}
	if !NewRect(0, 0, 0, 3).Empty() {
		t.Error("zero width rect should be empty")
	}
}

func TestRectClip(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want Rect
	}{
		{"inside", NewRect(1, 1, 3, 3), NewRect(1, 1, 3, 3)},
		{"left overhang", NewRect(-2, 0, 5, 2), NewRect(0, 0, 3, 2)},
		{"bottom right overhang", NewRect(8, 8, 5, 5), NewRect(8, 8, 2, 2)},
		{"covers everything", NewRect(-5, -5, 20, 20), NewRect(0, 0, 10, 10)},
		{"fully outside", NewRect(12, 0, 3, 3), NewRect(12, 0, 0, 0)},
		{"above", NewRect(0, -4, 3, 2), NewRect(0, 0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Clip(10, 10)
			if got != tt.want {
				t.Errorf("Clip = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	tests := []struct {
		a, b, t, want float64
	}{
		{0, 10, 0, 0},
		{0, 10, 0.5, 5},
		{0, 10, 1, 10},
		{0, -40, 0.25, -10},
		{0, 10, 2, 10}, // clamped above
		{0, 10, -1, 0}, // clamped below
		{90, -40, 1, -40},
	}

	for _, tt := range tests {
		if got := Lerp(tt.a, tt.b, tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Lerp(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
		}
	}
}

func TestClampF(t *testing.T) {
	if got := ClampF(5, 0, 1); got != 1 {
		t.Errorf("ClampF(5, 0, 1) = %v", got)
	}
	if got := ClampF(-5, 0, 1); got != 0 {
		t.Errorf("ClampF(-5, 0, 1) = %v", got)
	}
	if got := ClampF(0.3, 0, 1); got != 0.3 {
		t.Errorf("ClampF(0.3, 0, 1) = %v", got)
	}
}

func TestMax(t *testing.T) {
	if Max(3, 7) != 7 || Max(7, 3) != 7 || Max(-1, -1) != -1 {
		t.Error("Max returned the wrong value")
	}
}
