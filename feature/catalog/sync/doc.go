// Package sync orchestrates catalog synchronization runs.
//
// A run walks one or more product groups strictly sequentially, one page at a
// time, upserting each page as a batch and checkpointing after every page.
// Checkpoints make runs resumable across process restarts: with resume
// enabled, a category picks up at the page after its latest in-flight
// checkpoint. Each run is recorded as a sync job with a terminal status of
// completed, failed or interrupted.
package sync
