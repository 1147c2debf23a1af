// Package cache provides a bucketed, time-bounded memoization layer.
//
// A Manager owns one bucket per cache type. Each bucket holds at most
// MaxSize entries; inserting into a full bucket evicts the entry that was
// inserted earliest. Entries older than TTL are treated as absent and are
// deleted when read. Reads never refresh an entry's position or timestamp.
//
// Memoize wraps a function so that repeated calls with equal arguments
// within the TTL return the first result without recomputation. Keys are
// the bucket name joined with the JSON encoding of the arguments; map keys
// are encoded in sorted order, so argument maps that differ only in
// insertion order share a key.
package cache
