package domain

import "time"

// Snapshot is one completed scan: the hosts it discovered and where it came from
type Snapshot struct {
	Path        string    `json:"path" yaml:"path"`
	StartTime   time.Time `json:"start_time" yaml:"start_time"`
	Fingerprint string    `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
	Hosts       []Host    `json:"hosts" yaml:"hosts"`
}

// HasStartTime reports whether the scan recorded a start timestamp
func (s *Snapshot) HasStartTime() bool {
	return !s.StartTime.IsZero() && s.StartTime.Unix() > 0
}

// StartTimeString formats the start time, or a placeholder when unknown
func (s *Snapshot) StartTimeString() string {
	if !s.HasStartTime() {
		return "<unknown start time>"
	}
	return s.StartTime.UTC().Format("2006-01-02 15:04:05 UTC")
}
