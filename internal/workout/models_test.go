package workout

import (
	"errors"
	"math"
	"testing"
	"time"
)

func fixedFactory(t *testing.T, months []string, at time.Time) Factory {
	t.Helper()
	f := NewFactory(months)
	f.now = func() time.Time { return at }
	return f
}

func TestRunningFactory(t *testing.T) {
	f := fixedFactory(t, nil, time.Date(2026, time.June, 5, 10, 0, 0, 0, time.UTC))

	w, err := f.Running(Coords{Lat: 10, Lng: 20}, 5, 30, 150)
	if err != nil {
		t.Fatalf("running: %v", err)
	}
	if w.ID == "" {
		t.Fatalf("expected id")
	}
	if w.Kind != KindRunning {
		t.Fatalf("unexpected kind %q", w.Kind)
	}
	if w.PaceMinKm != 6.0 {
		t.Fatalf("expected pace 6.0, got %v", w.PaceMinKm)
	}
	if w.Label != "Running on June 5" {
		t.Fatalf("unexpected label %q", w.Label)
	}
	if w.Clicks != 0 {
		t.Fatalf("expected zero clicks")
	}
}

func TestCyclingFactory(t *testing.T) {
	f := fixedFactory(t, nil, time.Date(2026, time.January, 12, 0, 0, 0, 0, time.UTC))

	w, err := f.Cycling(Coords{}, 20, 60, 300)
	if err != nil {
		t.Fatalf("cycling: %v", err)
	}
	if w.SpeedKmH != 20.0 {
		t.Fatalf("expected speed 20.0, got %v", w.SpeedKmH)
	}
	if w.Label != "Cycling on January 12" {
		t.Fatalf("unexpected label %q", w.Label)
	}

	// Elevation gain may be negative.
	w, err = f.Cycling(Coords{}, 10, 30, -50)
	if err != nil {
		t.Fatalf("negative elevation: %v", err)
	}
	if w.ElevationGain != -50 {
		t.Fatalf("expected elevation -50")
	}
}

func TestFactoryValidation(t *testing.T) {
	f := NewFactory(nil)

	_, err := f.Running(Coords{}, -1, 30, 150)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0] != "distance" {
		t.Fatalf("unexpected fields %v", verr.Fields)
	}

	_, err = f.Running(Coords{}, math.NaN(), 0, math.Inf(1))
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error")
	}
	if len(verr.Fields) != 3 {
		t.Fatalf("expected all three fields flagged, got %v", verr.Fields)
	}

	if _, err = f.Cycling(Coords{}, 20, 0, 100); err == nil {
		t.Fatalf("expected zero duration rejected")
	}
	if _, err = f.Cycling(Coords{}, 20, 60, math.Inf(-1)); err == nil {
		t.Fatalf("expected non-finite elevation rejected")
	}
}

func TestFactoryCustomMonths(t *testing.T) {
	months := []string{"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
		"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"}
	f := fixedFactory(t, months, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC))

	w, err := f.Running(Coords{}, 1, 10, 100)
	if err != nil {
		t.Fatalf("running: %v", err)
	}
	if w.Label != "Running on Mart 3" {
		t.Fatalf("unexpected label %q", w.Label)
	}
}

func TestFactoryBadMonthListFallsBack(t *testing.T) {
	f := fixedFactory(t, []string{"only", "five", "month", "names", "here"},
		time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC))

	w, err := f.Cycling(Coords{}, 1, 10, 0)
	if err != nil {
		t.Fatalf("cycling: %v", err)
	}
	if w.Label != "Cycling on December 31" {
		t.Fatalf("unexpected label %q", w.Label)
	}
}

func TestRecomputeUnknownKind(t *testing.T) {
	w := Workout{Kind: "swimming"}
	err := w.Recompute()
	var uerr *UnknownVariantError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected unknown variant error, got %v", err)
	}
	if uerr.Kind != "swimming" {
		t.Fatalf("unexpected kind %q", uerr.Kind)
	}
}

func TestClick(t *testing.T) {
	w := Workout{}
	w.Click()
	w.Click()
	if w.Clicks != 2 {
		t.Fatalf("expected 2 clicks, got %d", w.Clicks)
	}
}
