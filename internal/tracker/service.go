package tracker

import (
	"context"
	"log"
	"sync"

	"backend-waytrack/internal/blob"
	"backend-waytrack/internal/render"
	"backend-waytrack/internal/workout"

	"github.com/google/uuid"
)

// LookupClient is the enrichment collaborator; lookup.Client satisfies it.
type LookupClient interface {
	ReverseGeocode(ctx context.Context, coords workout.Coords) (string, error)
	CurrentTemperature(ctx context.Context, coords workout.Coords) (float64, error)
}

type FormValues struct {
	Type      string  `json:"type"`
	Distance  float64 `json:"distance"`
	Duration  float64 `json:"duration"`
	Cadence   float64 `json:"cadence"`
	Elevation float64 `json:"elevation"`
	From      string  `json:"from"`
	To        string  `json:"to"`
}

// FormSession is the open form: the coordinates captured from the map click
// that triggered it, prefill values, and, when the form was opened by an
// edit, the id of the workout it will replace.
type FormSession struct {
	Coords       workout.Coords `json:"coords"`
	Values       FormValues     `json:"values"`
	EditID       string         `json:"edit_id,omitempty"`
	TemperatureC *float64       `json:"temperature_c,omitempty"`
}

// Service orchestrates user actions against the collection, the blob store
// and the reconciler. The domain model assumes serialized events, so one
// mutex keeps the concurrent HTTP surface honest.
type Service struct {
	mu      sync.Mutex
	factory workout.Factory
	col     *workout.Collection
	store   blob.Store
	rec     *render.Reconciler
	lookup  LookupClient
	zoom    int

	formOpen   bool
	form       FormSession
	filter     workout.Kind
	clearToken string
}

func NewService(factory workout.Factory, store blob.Store, rec *render.Reconciler, lookup LookupClient, zoom int) *Service {
	return &Service{
		factory: factory,
		col:     workout.NewCollection(),
		store:   store,
		rec:     rec,
		lookup:  lookup,
		zoom:    zoom,
		filter:  workout.KindAll,
	}
}

// Bootstrap loads the persisted blob, rebuilds the collection and renders
// it. A missing blob is a first run; an unreadable one degrades to an empty
// collection rather than failing startup.
func (s *Service) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if ok {
		items, dropped, err := workout.Decode(data)
		if err != nil {
			log.Printf("workout blob unreadable, starting empty: %v", err)
		}
		for i := range dropped {
			log.Printf("dropping persisted record: %v", &dropped[i])
		}
		for _, w := range items {
			if err := s.col.Insert(w); err != nil {
				log.Printf("skipping persisted record %s: %v", w.ID, err)
			}
		}
	}

	s.rec.Refresh(s.col.FilterByKind(s.filter), s.col.Len())
	s.rec.FitToMarkers()
	return nil
}

// OpenForm shows the form for a map click at coords and kicks off the
// best-effort enrichment lookups.
func (s *Service) OpenForm(coords workout.Coords) FormSession {
	s.mu.Lock()
	s.formOpen = true
	s.form = FormSession{Coords: coords}
	s.clearToken = ""
	form := s.form
	s.mu.Unlock()

	s.enrich(coords)
	return form
}

// enrich prefills form fields from the lookup collaborators. Results are
// last-write-wins over interim user edits, and a result arriving after the
// form was hidden is discarded.
func (s *Service) enrich(coords workout.Coords) {
	if s.lookup == nil {
		return
	}
	go func() {
		label, err := s.lookup.ReverseGeocode(context.Background(), coords)
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.formOpen && s.form.Coords == coords {
			s.form.Values.From = label
		}
		s.mu.Unlock()
	}()
	go func() {
		temp, err := s.lookup.CurrentTemperature(context.Background(), coords)
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.formOpen && s.form.Coords == coords {
			s.form.TemperatureC = &temp
		}
		s.mu.Unlock()
	}()
}

func (s *Service) CancelForm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formOpen = false
	s.form = FormSession{}
}

func (s *Service) Form() (FormSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form, s.formOpen
}

// Submit validates the form and inserts the resulting workout. When the
// form was opened by an edit, the staged original is removed in the same
// step, so an abandoned edit never loses data. On validation failure the
// form stays open with its data intact.
func (s *Service) Submit(ctx context.Context, values FormValues) (workout.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.formOpen {
		return workout.Workout{}, workout.ErrFormHidden
	}
	s.clearToken = ""

	var (
		w   workout.Workout
		err error
	)
	switch workout.Kind(values.Type) {
	case workout.KindRunning:
		w, err = s.factory.Running(s.form.Coords, values.Distance, values.Duration, values.Cadence)
	case workout.KindCycling:
		w, err = s.factory.Cycling(s.form.Coords, values.Distance, values.Duration, values.Elevation)
	default:
		err = &workout.ValidationError{Fields: []string{"type"}}
	}
	if err != nil {
		return workout.Workout{}, err
	}
	w.From = values.From
	w.To = values.To
	w.TemperatureC = s.form.TemperatureC

	snapshot := s.col.All()
	editID := s.form.EditID
	if editID != "" {
		s.col.RemoveByID(editID)
	}
	if err := s.col.Insert(w); err != nil {
		s.col.Reset(snapshot)
		return workout.Workout{}, err
	}
	if err := s.persist(ctx); err != nil {
		s.col.Reset(snapshot)
		return workout.Workout{}, err
	}

	if editID != "" {
		s.rec.RemoveWorkout(editID, s.col.Len())
	}
	if s.visible(w) {
		s.rec.RenderWorkout(w, s.col.Len())
	} else {
		s.rec.UpdateTools(s.col.Len())
	}

	s.formOpen = false
	s.form = FormSession{}
	return w, nil
}

// Edit opens the form pre-filled from the workout and stages it for
// replacement. The original stays in the collection, on the map and in the
// list until a valid resubmission swaps it out.
func (s *Service) Edit(id string) (FormSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.col.FindByID(id)
	if !ok {
		return FormSession{}, workout.ErrNotFound
	}
	s.clearToken = ""
	s.formOpen = true
	s.form = FormSession{
		Coords:       w.Coords,
		EditID:       w.ID,
		TemperatureC: w.TemperatureC,
		Values: FormValues{
			Type:      string(w.Kind),
			Distance:  w.DistanceKm,
			Duration:  w.DurationMin,
			Cadence:   w.Cadence,
			Elevation: w.ElevationGain,
			From:      w.From,
			To:        w.To,
		},
	}
	return s.form, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.col.All()
	if !s.col.RemoveByID(id) {
		return workout.ErrNotFound
	}
	s.clearToken = ""
	if err := s.persist(ctx); err != nil {
		s.col.Reset(snapshot)
		return err
	}
	if s.form.EditID == id {
		s.formOpen = false
		s.form = FormSession{}
	}
	s.rec.RemoveWorkout(id, s.col.Len())
	return nil
}

// RequestClear starts the two-step delete-all protocol and returns the
// confirmation token. Any other mutating call voids the pending request.
func (s *Service) RequestClear() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearToken = uuid.NewString()
	return s.clearToken
}

func (s *Service) ConfirmClear(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.clearToken == "" || token != s.clearToken {
		return workout.ErrNoPendingClear
	}
	s.clearToken = ""

	snapshot := s.col.All()
	s.col.Clear()
	if err := s.persist(ctx); err != nil {
		s.col.Reset(snapshot)
		return err
	}
	s.formOpen = false
	s.form = FormSession{}
	s.rec.Clear()
	return nil
}

// ChangeSort reorders the collection, persists the new order and refreshes
// the view.
func (s *Service) ChangeSort(ctx context.Context, key workout.SortKey, dir workout.SortDirection) ([]workout.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.col.All()
	s.col.SortBy(key, dir)
	s.clearToken = ""
	if err := s.persist(ctx); err != nil {
		s.col.Reset(snapshot)
		return nil, err
	}
	view := s.col.FilterByKind(s.filter)
	s.rec.Refresh(view, s.col.Len())
	return view, nil
}

// ChangeFilter switches the active filter and refreshes. The stored order
// is untouched, so nothing is persisted.
func (s *Service) ChangeFilter(kind workout.Kind) []workout.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = kind
	view := s.col.FilterByKind(kind)
	s.rec.Refresh(view, s.col.Len())
	return view
}

// Click records an interaction and recenters the map on the workout.
func (s *Service) Click(ctx context.Context, id string) (workout.Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.col.All()
	w, ok := s.col.Click(id)
	if !ok {
		return workout.Workout{}, workout.ErrNotFound
	}
	if err := s.persist(ctx); err != nil {
		s.col.Reset(snapshot)
		return workout.Workout{}, err
	}
	s.rec.FocusOn(w, s.zoom)
	return w, nil
}

func (s *Service) Get(id string) (workout.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col.FindByID(id)
}

// Workouts returns the current filtered view in collection order.
func (s *Service) Workouts() []workout.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.col.FilterByKind(s.filter)
}

func (s *Service) persist(ctx context.Context) error {
	data, err := workout.Encode(s.col)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, data)
}

func (s *Service) visible(w workout.Workout) bool {
	return s.filter == workout.KindAll || s.filter == "" || w.Kind == s.filter
}
