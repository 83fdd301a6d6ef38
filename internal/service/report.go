package service

import (
	"time"

	"scandiff/internal/domain"
	"scandiff/internal/reconcile"
)

// SnapshotInfo describes one side of a comparison
type SnapshotInfo struct {
	Path        string    `json:"path" yaml:"path"`
	StartTime   time.Time `json:"start_time" yaml:"start_time"`
	Fingerprint string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	HostCount   int       `json:"host_count" yaml:"host_count"`
}

// StartTimeString formats the start time like domain.Snapshot does
func (s SnapshotInfo) StartTimeString() string {
	snap := domain.Snapshot{StartTime: s.StartTime}
	return snap.StartTimeString()
}

func snapshotInfo(s *domain.Snapshot) SnapshotInfo {
	return SnapshotInfo{
		Path:        s.Path,
		StartTime:   s.StartTime,
		Fingerprint: s.Fingerprint,
		HostCount:   len(s.Hosts),
	}
}

// Summary counts deltas per kind before filtering
type Summary struct {
	Gone      int `json:"gone" yaml:"gone"`
	New       int `json:"new" yaml:"new"`
	Changed   int `json:"changed" yaml:"changed"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
}

// Total returns the number of deltas counted
func (s Summary) Total() int {
	return s.Gone + s.New + s.Changed + s.Unchanged
}

// Count returns the counter for kind
func (s Summary) Count(kind reconcile.DeltaKind) int {
	switch kind {
	case reconcile.DeltaGone:
		return s.Gone
	case reconcile.DeltaNew:
		return s.New
	case reconcile.DeltaChanged:
		return s.Changed
	case reconcile.DeltaUnchanged:
		return s.Unchanged
	default:
		return 0
	}
}

func (s *Summary) add(kind reconcile.DeltaKind) {
	switch kind {
	case reconcile.DeltaGone:
		s.Gone++
	case reconcile.DeltaNew:
		s.New++
	case reconcile.DeltaChanged:
		s.Changed++
	case reconcile.DeltaUnchanged:
		s.Unchanged++
	}
}

// Report is the result of comparing two snapshots
type Report struct {
	ID          string                `json:"id" yaml:"id"`
	GeneratedAt time.Time             `json:"generated_at" yaml:"generated_at"`
	Old         SnapshotInfo          `json:"old" yaml:"old"`
	New         SnapshotInfo          `json:"new" yaml:"new"`
	Shown       []reconcile.DeltaKind `json:"shown" yaml:"shown"`
	Summary     Summary               `json:"summary" yaml:"summary"`
	Deltas      []reconcile.Delta     `json:"deltas" yaml:"deltas"`
}

// HasChanges reports whether anything besides unchanged hosts was found
func (r *Report) HasChanges() bool {
	return r.Summary.Gone+r.Summary.New+r.Summary.Changed > 0
}
