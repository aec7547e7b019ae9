package workout

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindRunning Kind = "running"
	KindCycling Kind = "cycling"

	// KindAll is only valid as a filter/sort selector, never on an entity.
	KindAll Kind = "all"
)

// DefaultMonths is the English month list used for labels unless the
// factory is given another locale.
var DefaultMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Workout is one recorded session. Kind selects the variant: Cadence and
// PaceMinKm are meaningful for running, ElevationGain and SpeedKmH for
// cycling. The remaining fields are shared.
type Workout struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	Coords      Coords    `json:"coords"`
	DistanceKm  float64   `json:"distance_km"`
	DurationMin float64   `json:"duration_min"`
	Label       string    `json:"label"`
	Clicks      int       `json:"clicks"`

	From         string   `json:"from,omitempty"`
	To           string   `json:"to,omitempty"`
	TemperatureC *float64 `json:"temperature_c,omitempty"`

	Cadence       float64 `json:"cadence,omitempty"`
	ElevationGain float64 `json:"elevation_gain,omitempty"`

	PaceMinKm float64 `json:"pace_min_km,omitempty"`
	SpeedKmH  float64 `json:"speed_kmh,omitempty"`
}

// Factory builds fully-initialized workouts. Months must hold 12 names in
// calendar order; anything else falls back to DefaultMonths.
type Factory struct {
	months []string
	now    func() time.Time
}

func NewFactory(months []string) Factory {
	if len(months) != 12 {
		months = DefaultMonths
	}
	return Factory{months: months, now: time.Now}
}

func (f Factory) Running(coords Coords, distanceKm, durationMin, cadence float64) (Workout, error) {
	var fields []string
	fields = appendInvalid(fields, "distance", distanceKm)
	fields = appendInvalid(fields, "duration", durationMin)
	fields = appendInvalid(fields, "cadence", cadence)
	if len(fields) > 0 {
		return Workout{}, &ValidationError{Fields: fields}
	}

	w := f.base(KindRunning, coords, distanceKm, durationMin)
	w.Cadence = cadence
	w.PaceMinKm = durationMin / distanceKm
	return w, nil
}

func (f Factory) Cycling(coords Coords, distanceKm, durationMin, elevationGain float64) (Workout, error) {
	var fields []string
	fields = appendInvalid(fields, "distance", distanceKm)
	fields = appendInvalid(fields, "duration", durationMin)
	if !isFinite(elevationGain) {
		fields = append(fields, "elevation")
	}
	if len(fields) > 0 {
		return Workout{}, &ValidationError{Fields: fields}
	}

	w := f.base(KindCycling, coords, distanceKm, durationMin)
	w.ElevationGain = elevationGain
	w.SpeedKmH = distanceKm / (durationMin / 60)
	return w, nil
}

func (f Factory) base(kind Kind, coords Coords, distanceKm, durationMin float64) Workout {
	now := f.now()
	return Workout{
		ID:          uuid.NewString(),
		Kind:        kind,
		CreatedAt:   now,
		Coords:      coords,
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Label:       f.label(kind, now),
	}
}

func (f Factory) label(kind Kind, at time.Time) string {
	name := string(kind)
	return fmt.Sprintf("%s%s on %s %d",
		strings.ToUpper(name[:1]), name[1:], f.months[at.Month()-1], at.Day())
}

// Recompute re-derives the variant metric from the shared fields. It is the
// dispatch point that restores variant behavior for records loaded from a
// blob, and rejects records whose discriminator is unknown.
func (w *Workout) Recompute() error {
	switch w.Kind {
	case KindRunning:
		if w.DistanceKm != 0 {
			w.PaceMinKm = w.DurationMin / w.DistanceKm
		}
	case KindCycling:
		if w.DurationMin != 0 {
			w.SpeedKmH = w.DistanceKm / (w.DurationMin / 60)
		}
	default:
		return &UnknownVariantError{Kind: string(w.Kind)}
	}
	return nil
}

func (w *Workout) Click() {
	w.Clicks++
}

func appendInvalid(fields []string, name string, v float64) []string {
	if !isFinite(v) || v <= 0 {
		return append(fields, name)
	}
	return fields
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
