// Package blob persists the serialized workout collection as a single
// opaque value behind one key. Backends only move bytes; the codec in the
// workout package owns the format.
package blob

import "context"

type Store interface {
	// Load returns the stored blob. ok is false when nothing has been
	// stored yet, which is not an error.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	Save(ctx context.Context, data []byte) error
}
