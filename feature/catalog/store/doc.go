// Package store persists the mirrored EPREL catalog.
//
// Every write is an idempotent upsert keyed by the EPREL-side identifier, so
// replaying a page after a crash converges to the same rows. Product upserts
// cascade into supplier rows and the category attribute side tables, and the
// batch path commits partial pages by rolling individual failures back to
// savepoints. The package also owns the sync bookkeeping tables: jobs,
// per-category checkpoints and aggregate statistics.
package store
