package workout

import "encoding/json"

// Encode serializes the collection, in its current order, to the blob
// format: a JSON array of structural records carrying the type
// discriminator on each entry.
func Encode(c *Collection) ([]byte, error) {
	return json.Marshal(c.All())
}

// Decode rebuilds typed workouts from a blob. Plain unmarshalling recovers
// the fields but not the variant, so every record passes through Recompute,
// which dispatches on the discriminator and re-derives the variant metric.
// Records with an unknown discriminator are dropped and returned in the
// second value; the rest of the blob still loads. An empty blob is a first
// run, and an unreadable one is reported as PersistenceReadError so the
// caller can degrade to an empty collection.
func Decode(blob []byte) ([]Workout, []UnknownVariantError, error) {
	if len(blob) == 0 {
		return nil, nil, nil
	}

	var records []Workout
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, nil, &PersistenceReadError{Err: err}
	}

	var (
		out     []Workout
		dropped []UnknownVariantError
	)
	for _, rec := range records {
		if err := rec.Recompute(); err != nil {
			dropped = append(dropped, UnknownVariantError{Kind: string(rec.Kind)})
			continue
		}
		out = append(out, rec)
	}
	return out, dropped, nil
}
