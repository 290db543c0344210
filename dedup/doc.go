// Package dedup implements the fingerprint-based admission filter: a set
// of task fingerprints over a single named collection in the backing
// store.
//
// [Filter.Seen] computes a task's fingerprint and records it in one atomic
// store round trip, reporting whether the fingerprint was already present.
// Two concurrent admissions of the same fingerprint can never both observe
// "not seen": the store's set-add-if-absent primitive provides the mutual
// exclusion, so the filter is safe across processes.
//
// Fingerprinting is pluggable via [Fingerprinter]; the default hashes the
// task name and payload with SHA-256. Hosts with their own notion of
// duplicate (e.g. canonicalized URLs) supply their own.
package dedup
