package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"scandiff/internal/adapter"
	"scandiff/internal/domain"
	"scandiff/internal/reconcile"
)

// DiffService compares scan snapshots and builds reports
type DiffService struct {
	loader   adapter.Loader
	eventBus *EventBus
	log      logrus.FieldLogger
	now      func() time.Time
}

// Option configures a DiffService
type Option func(*DiffService)

// WithLogger sets the service logger
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *DiffService) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the report timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *DiffService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewDiffService creates a new diff service
func NewDiffService(loader adapter.Loader, eventBus *EventBus, opts ...Option) *DiffService {
	s := &DiffService{
		loader:   loader,
		eventBus: eventBus,
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compare reconciles two snapshots and keeps the delta kinds listed in show.
// An empty show keeps every kind.
func (s *DiffService) Compare(older, newer *domain.Snapshot, show []reconcile.DeltaKind) *Report {
	deltas := reconcile.Reconcile(older.Hosts, newer.Hosts)
	shown := normalizeShow(show)

	report := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: s.now().UTC(),
		Old:         snapshotInfo(older),
		New:         snapshotInfo(newer),
		Shown:       shown,
		Deltas:      make([]reconcile.Delta, 0, len(deltas)),
	}

	for _, d := range deltas {
		report.Summary.add(d.Kind)
		if includes(shown, d.Kind) {
			report.Deltas = append(report.Deltas, d)
		}
	}

	s.log.WithFields(logrus.Fields{
		"report":    report.ID,
		"gone":      report.Summary.Gone,
		"new":       report.Summary.New,
		"changed":   report.Summary.Changed,
		"unchanged": report.Summary.Unchanged,
	}).Debug("Compared snapshots")

	s.publish(Event{Type: EventReportGenerated, Report: report})
	return report
}

// CompareFiles loads two scan files and compares them
func (s *DiffService) CompareFiles(ctx context.Context, oldPath, newPath string, show []reconcile.DeltaKind) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	older, err := s.loader.Load(oldPath)
	if err != nil {
		return nil, s.fail(err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	newer, err := s.loader.Load(newPath)
	if err != nil {
		return nil, s.fail(err)
	}

	return s.Compare(older, newer, show), nil
}

// CompareDir compares the two most recent scans in dir
func (s *DiffService) CompareDir(ctx context.Context, dir string, show []reconcile.DeltaKind) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	older, newer, err := s.loader.LatestPair(dir)
	if err != nil {
		return nil, s.fail(fmt.Errorf("compare %s: %w", dir, err))
	}

	return s.Compare(older, newer, show), nil
}

func (s *DiffService) fail(err error) error {
	s.publish(Event{Type: EventCompareFailed, Err: err})
	return err
}

func (s *DiffService) publish(event Event) {
	if s.eventBus != nil {
		s.eventBus.Publish(event)
	}
}

// normalizeShow returns the kinds to keep in report order without duplicates
func normalizeShow(show []reconcile.DeltaKind) []reconcile.DeltaKind {
	if len(show) == 0 {
		return append([]reconcile.DeltaKind(nil), reconcile.AllKinds...)
	}
	kinds := make([]reconcile.DeltaKind, 0, len(reconcile.AllKinds))
	for _, k := range reconcile.AllKinds {
		if includes(show, k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func includes(kinds []reconcile.DeltaKind, kind reconcile.DeltaKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// ParseShow converts category names to delta kinds. Empty input yields nil (all kinds).
func ParseShow(names []string) ([]reconcile.DeltaKind, error) {
	var kinds []reconcile.DeltaKind
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return nil, nil
		}
		kind, err := reconcile.ParseDeltaKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
