package workout

import "sort"

type SortKey string

const (
	SortNone      SortKey = "all"
	SortDistance  SortKey = "distance"
	SortDuration  SortKey = "duration"
	SortCadence   SortKey = "cadence"
	SortElevation SortKey = "elevation"
)

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Collection is the ordered set of workouts. Insertion order is the natural
// order; SortBy reorders in place and that order is what gets persisted.
// Callers own the synchronization: mutations are assumed non-overlapping.
type Collection struct {
	items []Workout
}

func NewCollection() *Collection {
	return &Collection{}
}

// Insert appends. A duplicate id refuses the insert and leaves the
// collection untouched; ids are generated, so this guards an invariant
// rather than a user path.
func (c *Collection) Insert(w Workout) error {
	if _, ok := c.FindByID(w.ID); ok {
		return ErrDuplicateID
	}
	c.items = append(c.items, w)
	return nil
}

func (c *Collection) RemoveByID(id string) bool {
	for i, w := range c.items {
		if w.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func (c *Collection) Clear() {
	c.items = nil
}

func (c *Collection) FindByID(id string) (Workout, bool) {
	for _, w := range c.items {
		if w.ID == id {
			return w, true
		}
	}
	return Workout{}, false
}

// Click increments the interaction counter of the stored entity and returns
// the updated copy.
func (c *Collection) Click(id string) (Workout, bool) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Click()
			return c.items[i], true
		}
	}
	return Workout{}, false
}

// Reset replaces the contents wholesale. Mutating operations snapshot with
// All and restore with Reset when persistence fails, keeping every mutation
// all-or-nothing.
func (c *Collection) Reset(items []Workout) {
	c.items = make([]Workout, len(items))
	copy(c.items, items)
}

func (c *Collection) Len() int {
	return len(c.items)
}

// All returns a copy of the collection in its current order.
func (c *Collection) All() []Workout {
	out := make([]Workout, len(c.items))
	copy(out, c.items)
	return out
}

// SortBy reorders the collection in place. Variant-specific keys read 0 for
// the other variant, ties keep their prior relative order, and an unknown or
// "all" key leaves the order alone.
func (c *Collection) SortBy(key SortKey, dir SortDirection) {
	value := sortValue(key)
	if value == nil {
		return
	}
	sort.SliceStable(c.items, func(i, j int) bool {
		a, b := value(c.items[i]), value(c.items[j])
		if dir == Descending {
			return a > b
		}
		return a < b
	})
}

// FilterByKind returns the subsequence matching kind, or the full sequence
// for KindAll. The underlying collection is never mutated.
func (c *Collection) FilterByKind(kind Kind) []Workout {
	if kind == KindAll || kind == "" {
		return c.All()
	}
	var out []Workout
	for _, w := range c.items {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

func sortValue(key SortKey) func(Workout) float64 {
	switch key {
	case SortDistance:
		return func(w Workout) float64 { return w.DistanceKm }
	case SortDuration:
		return func(w Workout) float64 { return w.DurationMin }
	case SortCadence:
		return func(w Workout) float64 {
			if w.Kind == KindRunning {
				return w.Cadence
			}
			return 0
		}
	case SortElevation:
		return func(w Workout) float64 {
			if w.Kind == KindCycling {
				return w.ElevationGain
			}
			return 0
		}
	}
	return nil
}
