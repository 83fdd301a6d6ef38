package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"scandiff/internal/domain"
	"scandiff/internal/reconcile"
)

func sampleHost() domain.Host {
	return domain.Host{
		Status: domain.HostStatus{State: "up", Reason: "syn-ack"},
		Ports: []domain.Port{
			{Protocol: "tcp", Number: 22, Status: domain.PortStatus{State: "open", Reason: "syn-ack"}, Service: &domain.ServiceInfo{Name: "ssh"}},
			{Protocol: "tcp", Number: 80, Status: domain.PortStatus{State: "closed", Reason: "conn-refused"}},
		},
		Addresses: []domain.Address{domain.IPAddress("10.0.0.1"), domain.MACAddress("AA:BB:CC:DD:EE:FF")},
		Hostnames: []domain.Hostname{{Name: "box.lan"}},
	}
}

func TestPort(t *testing.T) {
	tests := []struct {
		name string
		port domain.Port
		want string
	}{
		{
			name: "with service",
			port: domain.Port{Protocol: "tcp", Number: 443, Status: domain.PortStatus{State: "open", Reason: "syn-ack"}, Service: &domain.ServiceInfo{Name: "https"}},
			want: "tcp 443 (syn-ack) [https]",
		},
		{
			name: "without service",
			port: domain.Port{Protocol: "udp", Number: 53, Status: domain.PortStatus{State: "open", Reason: "udp-response"}},
			want: "udp 53 (udp-response)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Port(tt.port))
		})
	}
}

func TestHost(t *testing.T) {
	want := "Status: up (syn-ack)\n" +
		"Ports: tcp 22 (syn-ack) [ssh], tcp 80 (conn-refused)\n" +
		"Addresses: 10.0.0.1, AA:BB:CC:DD:EE:FF\n" +
		"Hostnames: box.lan\n"

	assert.Equal(t, want, Host(sampleHost()))
}

func TestHost_EmptyListsUsePlaceholder(t *testing.T) {
	out := Host(domain.Host{Status: domain.HostStatus{State: "down", Reason: "no-response"}})

	assert.Equal(t, "Status: down (no-response)\n"+
		"Ports: <nothing to show>\n"+
		"Addresses: <nothing to show>\n"+
		"Hostnames: <nothing to show>\n", out)
}

func TestDiff_OnlyChangedFields(t *testing.T) {
	d := reconcile.HostDiff{
		Title: "box.lan (10.0.0.1)",
		Status: &reconcile.StatusChange{
			Old: domain.HostStatus{State: "up", Reason: "syn-ack"},
			New: domain.HostStatus{State: "down", Reason: "no-response"},
		},
		Ports: &reconcile.PortChange{
			Old: []domain.Port{},
			New: []domain.Port{{Protocol: "tcp", Number: 443, Status: domain.PortStatus{State: "open", Reason: "syn-ack"}}},
		},
	}

	want := "Status: up (syn-ack) => down (no-response)\n" +
		"Ports: <nothing to show> => tcp 443 (syn-ack)\n"

	assert.Equal(t, want, Diff(d))
}

func TestDiff_Empty(t *testing.T) {
	assert.Equal(t, "", Diff(reconcile.HostDiff{}))
}

func TestDelta(t *testing.T) {
	h := sampleHost()
	diff := reconcile.HostDiff{
		Title:     "box.lan (10.0.0.1)",
		Hostnames: &reconcile.HostnameChange{Old: nil, New: h.Hostnames},
	}

	tests := []struct {
		name  string
		delta reconcile.Delta
		want  string
	}{
		{
			name:  "changed",
			delta: reconcile.Delta{Kind: reconcile.DeltaChanged, Diff: &diff},
			want:  "Changed Host: box.lan (10.0.0.1)\nHostnames: <nothing to show> => box.lan\n",
		},
		{
			name:  "gone omits block",
			delta: reconcile.Delta{Kind: reconcile.DeltaGone, Host: &h},
			want:  "Gone Host: box.lan (10.0.0.1)\n",
		},
		{
			name:  "new includes block",
			delta: reconcile.Delta{Kind: reconcile.DeltaNew, Host: &h},
			want:  "New Host: box.lan (10.0.0.1)\n" + Host(h),
		},
		{
			name:  "unchanged includes block",
			delta: reconcile.Delta{Kind: reconcile.DeltaUnchanged, Host: &h},
			want:  "Unchanged Host: box.lan (10.0.0.1)\n" + Host(h),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Delta(tt.delta))
		})
	}
}

func TestDelta_EveryKindRenders(t *testing.T) {
	h := sampleHost()
	diff := reconcile.Diff(domain.Host{Addresses: h.Addresses}, h)

	for _, kind := range reconcile.AllKinds {
		d := reconcile.Delta{Kind: kind, Host: &h}
		if kind == reconcile.DeltaChanged {
			d = reconcile.Delta{Kind: kind, Diff: &diff}
		}
		out := Delta(d)
		assert.True(t, strings.HasPrefix(out, KindLabel(kind)+" Host: "), out)
	}
}

func TestDelta_UnknownKindPanics(t *testing.T) {
	assert.Panics(t, func() {
		Delta(reconcile.Delta{Kind: "renamed"})
	})
	// no case folding
	assert.Panics(t, func() {
		Delta(reconcile.Delta{Kind: "GONE"})
	})
	assert.Panics(t, func() {
		KindLabel(" new")
	})
}
