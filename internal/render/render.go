// Package render keeps the map and list collaborators consistent with the
// workout collection. Rendering is full-refresh: tear everything down, then
// draw the filtered/sorted view in order. Collections are small enough that
// diffing would buy nothing.
package render

import "backend-waytrack/internal/workout"

const (
	IconRunning = "🏃‍♂️"
	IconCycling = "🚴‍♀️"
)

// MarkerHandle is whatever the map collaborator hands back for a placed
// marker; the reconciler only stores and returns it.
type MarkerHandle interface{}

type Popup struct {
	Icon  string       `json:"icon"`
	Label string       `json:"label"`
	Kind  workout.Kind `json:"type"`
}

type MapView interface {
	AddMarker(coords workout.Coords, popup Popup) MarkerHandle
	RemoveMarker(h MarkerHandle)
	FitBounds(handles []MarkerHandle)
	SetView(coords workout.Coords, zoom int)
}

// Row is one list entry. Variant fields are populated per kind: pace and
// cadence for running, speed and elevation gain for cycling.
type Row struct {
	ID            string       `json:"id"`
	Kind          workout.Kind `json:"type"`
	Icon          string       `json:"icon"`
	Label         string       `json:"label"`
	DistanceKm    float64      `json:"distance_km"`
	DurationMin   float64      `json:"duration_min"`
	PaceMinKm     float64      `json:"pace_min_km,omitempty"`
	Cadence       float64      `json:"cadence,omitempty"`
	SpeedKmH      float64      `json:"speed_kmh,omitempty"`
	ElevationGain float64      `json:"elevation_gain,omitempty"`
	From          string       `json:"from,omitempty"`
	To            string       `json:"to,omitempty"`
	TemperatureC  *float64     `json:"temperature_c,omitempty"`
}

type ListView interface {
	AppendRow(r Row)
	RemoveRow(id string)
	Clear()
	SetToolsVisible(visible bool)
}

// Reconciler owns the marker registry. Invariant: the registry keys are
// exactly the ids of currently rendered workouts.
type Reconciler struct {
	mapView MapView
	list    ListView
	markers map[string]MarkerHandle
}

func New(mapView MapView, list ListView) *Reconciler {
	return &Reconciler{
		mapView: mapView,
		list:    list,
		markers: map[string]MarkerHandle{},
	}
}

// Refresh removes every marker and row, then renders view in order.
// total is the full collection size, which alone decides tools visibility.
func (r *Reconciler) Refresh(view []workout.Workout, total int) {
	for id, h := range r.markers {
		r.mapView.RemoveMarker(h)
		delete(r.markers, id)
	}
	r.list.Clear()

	for _, w := range view {
		r.renderMarker(w)
		r.list.AppendRow(RowFor(w))
	}
	r.list.SetToolsVisible(total > 0)
}

// RenderWorkout draws the marker and row for a single workout without
// touching the rest of the view.
func (r *Reconciler) RenderWorkout(w workout.Workout, total int) {
	r.renderMarker(w)
	r.list.AppendRow(RowFor(w))
	r.list.SetToolsVisible(total > 0)
}

func (r *Reconciler) RemoveWorkout(id string, total int) {
	if h, ok := r.markers[id]; ok {
		r.mapView.RemoveMarker(h)
		delete(r.markers, id)
	}
	r.list.RemoveRow(id)
	r.list.SetToolsVisible(total > 0)
}

// UpdateTools recomputes the tools affordance without redrawing anything,
// for mutations whose entity is filtered out of the current view.
func (r *Reconciler) UpdateTools(total int) {
	r.list.SetToolsVisible(total > 0)
}

func (r *Reconciler) Clear() {
	r.Refresh(nil, 0)
}

// FitToMarkers asks the map to frame everything currently rendered.
func (r *Reconciler) FitToMarkers() {
	if len(r.markers) == 0 {
		return
	}
	handles := make([]MarkerHandle, 0, len(r.markers))
	for _, h := range r.markers {
		handles = append(handles, h)
	}
	r.mapView.FitBounds(handles)
}

func (r *Reconciler) FocusOn(w workout.Workout, zoom int) {
	r.mapView.SetView(w.Coords, zoom)
}

// MarkerIDs exposes the registry key set for invariant checks.
func (r *Reconciler) MarkerIDs() []string {
	ids := make([]string, 0, len(r.markers))
	for id := range r.markers {
		ids = append(ids, id)
	}
	return ids
}

// renderMarker replaces any marker already registered for the id, so
// re-rendering an existing workout never duplicates its marker.
func (r *Reconciler) renderMarker(w workout.Workout) {
	if h, ok := r.markers[w.ID]; ok {
		r.mapView.RemoveMarker(h)
	}
	r.markers[w.ID] = r.mapView.AddMarker(w.Coords, Popup{
		Icon:  IconFor(w.Kind),
		Label: w.Label,
		Kind:  w.Kind,
	})
}

func IconFor(kind workout.Kind) string {
	if kind == workout.KindCycling {
		return IconCycling
	}
	return IconRunning
}

func RowFor(w workout.Workout) Row {
	row := Row{
		ID:           w.ID,
		Kind:         w.Kind,
		Icon:         IconFor(w.Kind),
		Label:        w.Label,
		DistanceKm:   w.DistanceKm,
		DurationMin:  w.DurationMin,
		From:         w.From,
		To:           w.To,
		TemperatureC: w.TemperatureC,
	}
	switch w.Kind {
	case workout.KindRunning:
		row.PaceMinKm = w.PaceMinKm
		row.Cadence = w.Cadence
	case workout.KindCycling:
		row.SpeedKmH = w.SpeedKmH
		row.ElevationGain = w.ElevationGain
	}
	return row
}
