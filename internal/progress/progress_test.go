package progress

import "testing"

func TestRangeScopedRescales(t *testing.T) {
	r := Range{Lo: 0.5, Hi: 0.6}
	var got float64
	sink := r.Scoped(func(message string, progress float64) {
		got = progress
	})

	sink("halfway", 0.5)
	want := 0.55
	if got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Scoped progress = %v, want %v", got, want)
	}
}

func TestRangeScopedClampsOutOfBounds(t *testing.T) {
	r := Range{Lo: 0.2, Hi: 0.4}
	var got float64
	sink := r.Scoped(func(_ string, progress float64) { got = progress })

	sink("over", 1.5)
	if got != 0.4 {
		t.Errorf("expected clamped progress at Hi (0.4), got %v", got)
	}

	sink("under", -1.0)
	if got != 0.2 {
		t.Errorf("expected clamped progress at Lo (0.2), got %v", got)
	}
}

func TestRangeScopedNilParentIsSafe(t *testing.T) {
	r := Range{Lo: 0, Hi: 1}
	sink := r.Scoped(nil)
	sink("no panic", 0.5) // must not panic
}

func TestNoopDiscards(t *testing.T) {
	Noop("anything", 0.5) // must not panic
}
