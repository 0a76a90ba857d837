package utils

import (
	"math"
	"testing"
)

func TestDistanceZeroAtSamePoint(t *testing.T) {
	if d := Distance(0, 0, 0, 0); d != 0 {
		t.Fatalf("Distance(0,0,0,0) = %v, want 0", d)
	}
	if d := Distance(37.5665, 126.978, 37.5665, 126.978); d != 0 {
		t.Fatalf("distance between identical coordinates = %v, want 0", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	// Seoul City Hall to Busan Station.
	a := Distance(37.5665, 126.978, 35.1151, 129.0422)
	b := Distance(35.1151, 129.0422, 37.5665, 126.978)
	if a != b {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
	if a < 300 || a > 340 {
		t.Fatalf("Seoul-Busan distance %v km implausible", a)
	}
}

func TestDistanceRoundedToTwoDecimals(t *testing.T) {
	d := Distance(37.5665, 126.978, 37.57, 126.98)
	if got := math.Round(d*100) / 100; got != d {
		t.Fatalf("distance %v not rounded to two decimals", d)
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(0.42); got != "420m" {
		t.Fatalf("FormatDistance(0.42) = %q, want 420m", got)
	}
	if got := FormatDistance(3.5); got != "3.5km" {
		t.Fatalf("FormatDistance(3.5) = %q, want 3.5km", got)
	}
}
