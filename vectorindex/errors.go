package vectorindex

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrInconsistentEntries is returned when Build is given entries that
	// cannot form a coherent index (missing records or vectors, mixed
	// vector dimensions).
	ErrInconsistentEntries = errors.New("inconsistent index entries")
)
