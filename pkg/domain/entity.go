// Package domain holds the persistent entities of the banking domain and the
// invariants they carry. Entities are plain records; balance arithmetic and the
// account-holder partial update are the only behavior they expose.
package domain

// Versioned is implemented by entities guarded by an optimistic concurrency
// version column. Updates to a Versioned entity are compare-and-swap: the write
// only lands if the stored version still matches the one that was read.
type Versioned interface {
	// EntityVersion returns the version the entity was loaded with.
	EntityVersion() uint
	// BumpVersion advances the version prior to an update.
	BumpVersion()
}
