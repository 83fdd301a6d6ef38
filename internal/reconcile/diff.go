package reconcile

import (
	"sort"

	"scandiff/internal/domain"
)

// StatusChange holds the old and new host status
type StatusChange struct {
	Old domain.HostStatus `json:"old" yaml:"old"`
	New domain.HostStatus `json:"new" yaml:"new"`
}

// PortChange holds the ports that differ between two hosts.
// Ports present unchanged on both sides have already been removed.
type PortChange struct {
	Old []domain.Port `json:"old" yaml:"old"`
	New []domain.Port `json:"new" yaml:"new"`
}

// AddressChange holds the full old and new address lists
type AddressChange struct {
	Old []domain.Address `json:"old" yaml:"old"`
	New []domain.Address `json:"new" yaml:"new"`
}

// HostnameChange holds the full old and new hostname lists
type HostnameChange struct {
	Old []domain.Hostname `json:"old" yaml:"old"`
	New []domain.Hostname `json:"new" yaml:"new"`
}

// HostDiff is the field-level difference between two matched hosts.
// A nil field means that field is the same on both sides.
type HostDiff struct {
	Title     string          `json:"title" yaml:"title"`
	Status    *StatusChange   `json:"status,omitempty" yaml:"status,omitempty"`
	Ports     *PortChange     `json:"ports,omitempty" yaml:"ports,omitempty"`
	Addresses *AddressChange  `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	Hostnames *HostnameChange `json:"hostnames,omitempty" yaml:"hostnames,omitempty"`
}

// Empty reports whether the two hosts were identical in every field
func (d HostDiff) Empty() bool {
	return d.Status == nil && d.Ports == nil && d.Addresses == nil && d.Hostnames == nil
}

// Diff compares an old and a new record of the same host.
// The title is taken from the newer record.
func Diff(oldHost, newHost domain.Host) HostDiff {
	diff := HostDiff{Title: newHost.Title()}

	if !sameStatus(oldHost.Status, newHost.Status) {
		diff.Status = &StatusChange{Old: oldHost.Status, New: newHost.Status}
	}

	if !samePortSet(oldHost.Ports, newHost.Ports) {
		oldPorts, newPorts := SuppressPortNoise(oldHost.Ports, newHost.Ports)
		diff.Ports = &PortChange{Old: oldPorts, New: newPorts}
	}

	if !sameAddressSet(oldHost.Addresses, newHost.Addresses) {
		diff.Addresses = &AddressChange{
			Old: append([]domain.Address(nil), oldHost.Addresses...),
			New: append([]domain.Address(nil), newHost.Addresses...),
		}
	}

	if !sameHostnameSet(oldHost.Hostnames, newHost.Hostnames) {
		diff.Hostnames = &HostnameChange{
			Old: append([]domain.Hostname(nil), oldHost.Hostnames...),
			New: append([]domain.Hostname(nil), newHost.Hostnames...),
		}
	}

	return diff
}

// SuppressPortNoise removes from each side every port that has a counterpart
// on the other side with the same protocol, number and status. Service info
// is ignored here, so a port whose only change is service detection drops out
// of both lists while the diff itself still records that ports changed.
// Both sides are filtered against the unfiltered other side, which makes the
// operation idempotent.
func SuppressPortNoise(oldPorts, newPorts []domain.Port) ([]domain.Port, []domain.Port) {
	return withoutCounterparts(oldPorts, newPorts), withoutCounterparts(newPorts, oldPorts)
}

func withoutCounterparts(ports, other []domain.Port) []domain.Port {
	kept := make([]domain.Port, 0, len(ports))
	for _, p := range ports {
		if !hasCounterpart(p, other) {
			kept = append(kept, domain.ClonePorts([]domain.Port{p})[0])
		}
	}
	return kept
}

func hasCounterpart(p domain.Port, ports []domain.Port) bool {
	for _, q := range ports {
		if p.Protocol == q.Protocol && p.Number == q.Number && p.Status == q.Status {
			return true
		}
	}
	return false
}

// sameStatus compares state and reason
func sameStatus(a, b domain.HostStatus) bool {
	return a.State == b.State && a.Reason == b.Reason
}

// samePortSet compares port lists regardless of order. Both lists are
// stable-sorted by port number only, then compared element by element on
// every field including service info. Ports sharing a number keep their
// input order.
func samePortSet(a, b []domain.Port) bool {
	if len(a) != len(b) {
		return false
	}

	left := sortedByNumber(a)
	right := sortedByNumber(b)
	for i := range left {
		if !samePort(left[i], right[i]) {
			return false
		}
	}
	return true
}

func sortedByNumber(ports []domain.Port) []domain.Port {
	sorted := append([]domain.Port(nil), ports...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Number < sorted[j].Number
	})
	return sorted
}

// samePort is full structural equality of two ports
func samePort(a, b domain.Port) bool {
	if a.Protocol != b.Protocol || a.Number != b.Number || a.Status != b.Status {
		return false
	}
	if (a.Service == nil) != (b.Service == nil) {
		return false
	}
	return a.Service == nil || *a.Service == *b.Service
}

// sameAddressSet is set equality: every address of a is in b and vice versa
func sameAddressSet(a, b []domain.Address) bool {
	return containsAll(a, b) && containsAll(b, a)
}

// sameHostnameSet is set equality over hostnames
func sameHostnameSet(a, b []domain.Hostname) bool {
	return containsAll(a, b) && containsAll(b, a)
}

func containsAll[T comparable](items, set []T) bool {
	for _, item := range items {
		found := false
		for _, candidate := range set {
			if item == candidate {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
