package reconcile

import "scandiff/internal/domain"

// SameHost reports whether two host records describe the same machine.
// Hosts match when any address (IP or MAC) appears in both address lists.
// Hostnames are not used: round-robin DNS lets unrelated hosts share a name.
//
// The relation is symmetric but not transitive, so a host with several
// addresses can match more than one host of the other snapshot. Callers
// take the first match in snapshot order and do not report the ambiguity.
func SameHost(a, b domain.Host) bool {
	for _, addrA := range a.Addresses {
		for _, addrB := range b.Addresses {
			if addrA == addrB {
				return true
			}
		}
	}
	return false
}

// firstMatch returns the first host in hosts that matches h
func firstMatch(h domain.Host, hosts []domain.Host) (domain.Host, bool) {
	for _, candidate := range hosts {
		if SameHost(h, candidate) {
			return candidate, true
		}
	}
	return domain.Host{}, false
}
