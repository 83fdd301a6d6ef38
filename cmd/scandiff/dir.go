package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"scandiff/internal/codec"
	"scandiff/internal/reconcile"
	"scandiff/internal/service"
	"scandiff/internal/watcher"
)

func newDirCmd(a *app) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "dir <scan-folder>",
		Short: "Compare the two most recent scans in a folder",
		Long: `Compare the two scans with the latest start times in a folder.

With --watch, keep running and print a fresh report whenever a new scan
file is written to the folder.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			show, err := a.showKinds()
			if err != nil {
				return err
			}
			exp, err := a.exporter()
			if err != nil {
				return err
			}

			if !watch {
				report, err := a.newService(nil).CompareDir(cmd.Context(), args[0], show)
				if err != nil {
					return err
				}
				return a.write(exp, report)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.watchDir(ctx, args[0], show, exp)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-run the comparison when new scans arrive")
	return cmd
}

// watchDir reports on the folder once, then again after every change, until ctx ends
func (a *app) watchDir(ctx context.Context, dir string, show []reconcile.DeltaKind, exp codec.Exporter) error {
	bus := service.NewEventBus()
	events := make(chan service.Event, 16)
	bus.Subscribe(events)
	svc := a.newService(bus)

	w := watcher.New(dir, a.loader().Matches, func(string) {
		// results arrive on the event bus
		_, _ = svc.CompareDir(ctx, dir, show)
	}).WithDebounce(a.cfg.WatchDebounce()).WithLogger(a.log)

	errc := make(chan error, 1)
	go func() { errc <- w.Watch(ctx) }()

	select {
	case <-w.Ready():
	case err := <-errc:
		return err
	}
	_, _ = svc.CompareDir(ctx, dir, show)

	for {
		select {
		case ev := <-events:
			a.handleEvent(exp, ev)
		case err := <-errc:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func (a *app) handleEvent(exp codec.Exporter, ev service.Event) {
	switch ev.Type {
	case service.EventReportGenerated:
		if err := a.write(exp, ev.Report); err != nil {
			a.log.WithError(err).Error("Failed to write report")
		}
	case service.EventCompareFailed:
		a.log.WithError(ev.Err).Warn("Comparison skipped")
	}
}
