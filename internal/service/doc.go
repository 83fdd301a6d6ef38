// Package service turns pairs of scan snapshots into reports.
//
// DiffService loads snapshots through an adapter.Loader, runs
// reconcile.Reconcile and wraps the result in a Report: metadata for both
// scans, a per-kind summary and the deltas the caller asked to see.
//
// # Filtering
//
// The show filter selects which delta kinds end up in Report.Deltas. The
// summary always counts every delta so callers can tell what was hidden.
// An empty filter shows everything.
//
// # Events
//
// Every generated report, and every comparison that failed, is published on
// the EventBus. Folder watch mode subscribes to it to print fresh reports.
package service
