package reconcile

import (
	"fmt"
	"strings"

	"scandiff/internal/domain"
)

// DeltaKind classifies what happened to a host between two snapshots
type DeltaKind string

const (
	// DeltaGone - host was in the old snapshot and has no match in the new one
	DeltaGone DeltaKind = "gone"
	// DeltaNew - host is in the new snapshot and has no match in the old one
	DeltaNew DeltaKind = "new"
	// DeltaChanged - host matched and at least one field differs
	DeltaChanged DeltaKind = "changed"
	// DeltaUnchanged - host matched and every field is the same
	DeltaUnchanged DeltaKind = "unchanged"
)

// AllKinds lists every delta kind in report order
var AllKinds = []DeltaKind{DeltaGone, DeltaNew, DeltaChanged, DeltaUnchanged}

// ParseDeltaKind converts a user-supplied category name to a DeltaKind
func ParseDeltaKind(s string) (DeltaKind, error) {
	kind := DeltaKind(strings.ToLower(strings.TrimSpace(s)))
	for _, k := range AllKinds {
		if k == kind {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown delta kind %q (want one of gone, new, changed, unchanged)", s)
}

// Delta is the outcome for one host. Kind selects the payload:
// Changed carries Diff, every other kind carries Host.
type Delta struct {
	Kind DeltaKind    `json:"kind" yaml:"kind"`
	Host *domain.Host `json:"host,omitempty" yaml:"host,omitempty"`
	Diff *HostDiff    `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// Title returns the header label for the delta
func (d Delta) Title() string {
	if d.Kind == DeltaChanged && d.Diff != nil {
		return d.Diff.Title
	}
	if d.Host != nil {
		return d.Host.Title()
	}
	return domain.Host{}.Title()
}

func hostDelta(kind DeltaKind, h domain.Host) Delta {
	clone := h.Clone()
	return Delta{Kind: kind, Host: &clone}
}

// Reconcile compares two snapshots' hosts and classifies every host.
//
// Output order: all Gone deltas in old-snapshot order, then all New deltas in
// new-snapshot order, then one Changed or Unchanged delta per remaining new
// host in new-snapshot order. Each remaining new host is compared against the
// first matching old host.
func Reconcile(oldHosts, newHosts []domain.Host) []Delta {
	var deltas []Delta

	for _, oldHost := range oldHosts {
		if _, ok := firstMatch(oldHost, newHosts); !ok {
			deltas = append(deltas, hostDelta(DeltaGone, oldHost))
		}
	}

	remaining := make([]domain.Host, 0, len(newHosts))
	for _, newHost := range newHosts {
		if _, ok := firstMatch(newHost, oldHosts); !ok {
			deltas = append(deltas, hostDelta(DeltaNew, newHost))
			continue
		}
		remaining = append(remaining, newHost)
	}

	for _, newHost := range remaining {
		oldHost, _ := firstMatch(newHost, oldHosts)
		diff := Diff(oldHost, newHost)
		if diff.Empty() {
			deltas = append(deltas, hostDelta(DeltaUnchanged, newHost))
			continue
		}
		deltas = append(deltas, Delta{Kind: DeltaChanged, Diff: &diff})
	}

	return deltas
}
