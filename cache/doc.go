// Package cache memoizes expansion results for the lifetime of a loaded
// thesaurus.
//
// Two stores are available. The unbounded store is a mutex-guarded map and
// never evicts. The bounded store keeps a fixed number of entries using
// ristretto's admission and eviction policy. Eviction only costs repeated
// work: results are deterministic, so a recomputed entry equals the evicted
// one.
//
// Concurrent misses on the same request are collapsed with singleflight, so
// at most one computation per request is in flight.
package cache
