// Package vectorindex provides an in-memory nearest-neighbor index over
// embedded feedback records.
//
// The index is built once from (record, vector) pairs and is immutable
// afterwards, so concurrent queries need no locking. Lookups rank entries by
// cosine similarity with a brute-force scan; at the collection sizes this
// system ingests, a scan beats maintaining a graph index.
package vectorindex
