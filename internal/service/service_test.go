package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scandiff/internal/adapter"
	"scandiff/internal/domain"
	"scandiff/internal/reconcile"
)

// stubLoader serves snapshots from memory
type stubLoader struct {
	snapshots map[string]*domain.Snapshot
	pair      [2]*domain.Snapshot
	pairErr   error
}

func (l *stubLoader) Name() string { return "stub" }

func (l *stubLoader) Matches(string) bool { return true }

func (l *stubLoader) Load(path string) (*domain.Snapshot, error) {
	if s, ok := l.snapshots[path]; ok {
		return s, nil
	}
	return nil, &adapter.ScanError{Kind: adapter.ReadFailure, Path: path, Err: errors.New("no such file")}
}

func (l *stubLoader) LatestPair(string) (*domain.Snapshot, *domain.Snapshot, error) {
	if l.pairErr != nil {
		return nil, nil, l.pairErr
	}
	return l.pair[0], l.pair[1], nil
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(loader adapter.Loader, bus *EventBus) *DiffService {
	return NewDiffService(loader, bus,
		WithLogger(quietLogger()),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func ipHost(addr string, ports ...domain.Port) domain.Host {
	return domain.Host{
		Status:    domain.HostStatus{State: "up", Reason: "syn-ack"},
		Addresses: []domain.Address{domain.IPAddress(addr)},
		Ports:     ports,
	}
}

func openTCP(n int) domain.Port {
	return domain.Port{Protocol: "tcp", Number: n, Status: domain.PortStatus{State: "open", Reason: "syn-ack"}}
}

// fixture: one gone, one new, one changed, one unchanged
func fixtureSnapshots() (*domain.Snapshot, *domain.Snapshot) {
	older := &domain.Snapshot{
		Path:        "old.xml",
		StartTime:   time.Unix(100, 0),
		Fingerprint: "aaaa",
		Hosts: []domain.Host{
			ipHost("10.0.0.1", openTCP(22)),
			ipHost("10.0.0.2", openTCP(80)),
			ipHost("10.0.0.3"),
		},
	}
	newer := &domain.Snapshot{
		Path:        "new.xml",
		StartTime:   time.Unix(200, 0),
		Fingerprint: "bbbb",
		Hosts: []domain.Host{
			ipHost("10.0.0.1", openTCP(22)),
			ipHost("10.0.0.2", openTCP(80), openTCP(443)),
			ipHost("10.0.0.4"),
		},
	}
	return older, newer
}

func kindsOf(deltas []reconcile.Delta) []reconcile.DeltaKind {
	out := make([]reconcile.DeltaKind, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, d.Kind)
	}
	return out
}

func TestDiffService_Compare(t *testing.T) {
	svc := newTestService(&stubLoader{}, nil)
	older, newer := fixtureSnapshots()

	report := svc.Compare(older, newer, nil)

	_, err := uuid.Parse(report.ID)
	assert.NoError(t, err)
	assert.Equal(t, fixedNow, report.GeneratedAt)
	assert.Equal(t, SnapshotInfo{Path: "old.xml", StartTime: time.Unix(100, 0), Fingerprint: "aaaa", HostCount: 3}, report.Old)
	assert.Equal(t, SnapshotInfo{Path: "new.xml", StartTime: time.Unix(200, 0), Fingerprint: "bbbb", HostCount: 3}, report.New)
	assert.Equal(t, reconcile.AllKinds, report.Shown)
	assert.Equal(t, Summary{Gone: 1, New: 1, Changed: 1, Unchanged: 1}, report.Summary)
	assert.Equal(t, 4, report.Summary.Total())
	assert.True(t, report.HasChanges())
	assert.Equal(t, []reconcile.DeltaKind{
		reconcile.DeltaGone, reconcile.DeltaNew, reconcile.DeltaUnchanged, reconcile.DeltaChanged,
	}, kindsOf(report.Deltas))
}

func TestDiffService_CompareShowFilter(t *testing.T) {
	tests := []struct {
		name      string
		show      []reconcile.DeltaKind
		wantKinds []reconcile.DeltaKind
		wantShown []reconcile.DeltaKind
	}{
		{
			name:      "gone and new",
			show:      []reconcile.DeltaKind{reconcile.DeltaNew, reconcile.DeltaGone},
			wantKinds: []reconcile.DeltaKind{reconcile.DeltaGone, reconcile.DeltaNew},
			wantShown: []reconcile.DeltaKind{reconcile.DeltaGone, reconcile.DeltaNew},
		},
		{
			name:      "changed only with duplicates",
			show:      []reconcile.DeltaKind{reconcile.DeltaChanged, reconcile.DeltaChanged},
			wantKinds: []reconcile.DeltaKind{reconcile.DeltaChanged},
			wantShown: []reconcile.DeltaKind{reconcile.DeltaChanged},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&stubLoader{}, nil)
			older, newer := fixtureSnapshots()

			report := svc.Compare(older, newer, tt.show)
			assert.Equal(t, tt.wantKinds, kindsOf(report.Deltas))
			assert.Equal(t, tt.wantShown, report.Shown)
			// summary counts hidden deltas too
			assert.Equal(t, 4, report.Summary.Total())
		})
	}
}

func TestDiffService_CompareIdentical(t *testing.T) {
	svc := newTestService(&stubLoader{}, nil)
	older, _ := fixtureSnapshots()

	report := svc.Compare(older, older, nil)
	assert.False(t, report.HasChanges())
	assert.Equal(t, 3, report.Summary.Unchanged)
}

func TestDiffService_CompareFiles(t *testing.T) {
	older, newer := fixtureSnapshots()
	loader := &stubLoader{snapshots: map[string]*domain.Snapshot{"old.xml": older, "new.xml": newer}}
	bus := NewEventBus()
	events := make(chan Event, 4)
	bus.Subscribe(events)

	svc := newTestService(loader, bus)

	report, err := svc.CompareFiles(context.Background(), "old.xml", "new.xml", nil)
	require.NoError(t, err)
	assert.Equal(t, "old.xml", report.Old.Path)

	ev := <-events
	assert.Equal(t, EventReportGenerated, ev.Type)
	assert.Same(t, report, ev.Report)

	_, err = svc.CompareFiles(context.Background(), "old.xml", "missing.xml", nil)
	assert.True(t, adapter.IsReadFailure(err))

	ev = <-events
	assert.Equal(t, EventCompareFailed, ev.Type)
	assert.Error(t, ev.Err)
}

func TestDiffService_CompareFilesCancelled(t *testing.T) {
	svc := newTestService(&stubLoader{}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.CompareFiles(ctx, "old.xml", "new.xml", nil)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = svc.CompareDir(ctx, "scans", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDiffService_CompareDir(t *testing.T) {
	older, newer := fixtureSnapshots()

	svc := newTestService(&stubLoader{pair: [2]*domain.Snapshot{older, newer}}, nil)
	report, err := svc.CompareDir(context.Background(), "scans", []reconcile.DeltaKind{reconcile.DeltaNew})
	require.NoError(t, err)
	assert.Equal(t, "new.xml", report.New.Path)
	assert.Equal(t, []reconcile.DeltaKind{reconcile.DeltaNew}, kindsOf(report.Deltas))

	svc = newTestService(&stubLoader{pairErr: adapter.ErrNotEnoughScans}, nil)
	_, err = svc.CompareDir(context.Background(), "scans", nil)
	assert.ErrorIs(t, err, adapter.ErrNotEnoughScans)
	assert.Contains(t, err.Error(), "scans")
}

func TestParseShow(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []reconcile.DeltaKind
		wantErr bool
	}{
		{name: "empty", input: nil, want: nil},
		{name: "all", input: []string{"new", "ALL"}, want: nil},
		{name: "kinds", input: []string{"Gone", " changed "}, want: []reconcile.DeltaKind{reconcile.DeltaGone, reconcile.DeltaChanged}},
		{name: "unknown", input: []string{"moved"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShow(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSummaryCount(t *testing.T) {
	s := Summary{Gone: 1, New: 2, Changed: 3, Unchanged: 4}
	assert.Equal(t, 1, s.Count(reconcile.DeltaGone))
	assert.Equal(t, 2, s.Count(reconcile.DeltaNew))
	assert.Equal(t, 3, s.Count(reconcile.DeltaChanged))
	assert.Equal(t, 4, s.Count(reconcile.DeltaUnchanged))
	assert.Equal(t, 0, s.Count("moved"))
}

func TestEventBus_SlowSubscriberSkipped(t *testing.T) {
	bus := NewEventBus()
	full := make(chan Event) // unbuffered, nobody reading
	ready := make(chan Event, 1)
	bus.Subscribe(full)
	bus.Subscribe(ready)

	bus.Publish(Event{Type: EventReportGenerated})

	select {
	case ev := <-ready:
		assert.Equal(t, EventReportGenerated, ev.Type)
	default:
		t.Fatal("buffered subscriber should receive the event")
	}
}
