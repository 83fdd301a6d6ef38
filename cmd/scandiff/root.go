package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"scandiff/internal/adapter"
	"scandiff/internal/codec"
	"scandiff/internal/config"
	"scandiff/internal/logger"
	"scandiff/internal/reconcile"
	"scandiff/internal/service"
)

// app holds state shared by every subcommand
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	format     string
	color      bool
	show       []string
	logLevel   string
	outputPath string

	cfg       *config.Config
	cfgSource string
	log       *logger.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "scandiff",
		Short: "Compare two nmap scans",
		Long: `scandiff compares two nmap XML scans of the same network and reports
which hosts are gone, which are new, and how matched hosts changed.

Hosts are matched across scans when they share any address.

Examples:
  scandiff diff monday.xml tuesday.xml
  scandiff dir ./scans --watch
  scandiff diff old.xml new.xml --format json --show gone,new`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.log != nil {
				return a.log.Close()
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	a.bindFlags(root.PersistentFlags())

	root.AddCommand(
		newDiffCmd(a),
		newDirCmd(a),
		newRenderCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.configPath, "config", "", "config file (default: search "+config.EnvConfigPath+", ./"+config.ConfigFileName+", XDG, /etc)")
	fs.StringVarP(&a.format, "format", "f", "", "output format: text, json, yaml")
	fs.BoolVar(&a.color, "color", false, "styled text output")
	fs.StringSliceVar(&a.show, "show", nil, "delta kinds to show: gone, new, changed, unchanged, all")
	fs.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVarP(&a.outputPath, "output", "o", "", "write the report to a file instead of stdout")
}

// setup loads config, applies flag overrides and builds the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	if a.configPath != "" {
		a.cfg, a.cfgSource, err = config.LoadFromPath(a.configPath)
	} else {
		a.cfg, a.cfgSource, err = config.Load()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		a.cfg.Output.Format = config.ParseFormat(a.format)
	}
	if flags.Changed("color") {
		a.cfg.Output.Color = a.color
	}
	if flags.Changed("show") {
		a.cfg.Output.Show = a.show
	}
	if flags.Changed("log-level") {
		a.cfg.Log.Level = a.logLevel
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.log, err = logger.New(a.cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if a.cfgSource != "" {
		a.log.WithField("path", a.cfgSource).Debug("Loaded config")
	}
	a.log.Debug(a.cfg.Summary())
	return nil
}

func (a *app) showKinds() ([]reconcile.DeltaKind, error) {
	return service.ParseShow(a.cfg.Output.Show)
}

func (a *app) exporter() (codec.Exporter, error) {
	return codec.ExporterFor(string(a.cfg.Output.Format), a.cfg.Output.Color)
}

func (a *app) loader() *adapter.NmapLoader {
	return adapter.NewNmapLoader(
		adapter.WithExtensions(a.cfg.ScanDir.Extensions...),
		adapter.WithLogger(a.log),
	)
}

func (a *app) newService(bus *service.EventBus) *service.DiffService {
	return service.NewDiffService(a.loader(), bus, service.WithLogger(a.log))
}

// write exports report to --output or stdout
func (a *app) write(exp codec.Exporter, report *service.Report) error {
	if a.outputPath == "" {
		return exp.Export(report, a.stdout)
	}

	f, err := os.Create(a.outputPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := exp.Export(report, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	a.log.WithField("path", a.outputPath).Info("Wrote report")
	return nil
}
