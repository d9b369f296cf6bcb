// Package syncer reconciles the local store with the remote document store.
//
// A run for one scope is a fixed pipeline of four phases:
//
//	PushSubjects -> PushEvents -> PullSubjects -> PullEvents
//
// A push phase uploads every dirty record concurrently, waits for all of
// them, then clears the dirty flag of the records that were acknowledged.
// A pull phase fetches documents newer than the local watermark (the
// greatest updatedAt stored for the scope) and writes them locally as clean
// rows. The first failing phase stops the run; phases already completed
// stay applied, so a retry never duplicates work.
//
// Runs are not reentrant per scope: a second Run for a scope that is
// already syncing fails fast with common.ErrSyncInProgress.
package syncer
