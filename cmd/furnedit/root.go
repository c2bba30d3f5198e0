package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"furnedit/internal/config"
	"furnedit/internal/logging"
	"furnedit/internal/store"
	"furnedit/internal/trace"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	v          *viper.Viper
	configFile string
	viz        int
	dryRun     bool
}

// env is the wiring every subcommand runs against.
type env struct {
	cfg      config.Config
	log      *zap.Logger
	store    *store.Store
	recorder *trace.Recorder
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{v: config.New()}

	root := &cobra.Command{
		Use:   "furnedit",
		Short: "Edit the layers of furniture visualization files",
		Long: `furnedit edits the layer and visualization sections of furniture JSON
documents, either interactively (furnedit edit) or one change at a time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "config file (default $HOME/.config/furnedit/config.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-file", "", "write logs to this file")
	pf.String("dir", "", "directory relative file names resolve against")
	_ = opts.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = opts.v.BindPFlag("log.file", pf.Lookup("log-file"))
	_ = opts.v.BindPFlag("dir", pf.Lookup("dir"))

	root.AddCommand(
		newEditCmd(opts),
		newLayersCmd(opts),
		newAddLayerCmd(opts),
		newDeleteLayerCmd(opts),
		newSetLayerCmd(opts),
		newSetVizCmd(opts),
	)
	return root
}

// addVizFlag registers --viz, 1-based like the selector labels.
func addVizFlag(cmd *cobra.Command, opts *rootOptions) {
	cmd.Flags().IntVar(&opts.viz, "viz", 1, "visualization number (1-based)")
}

func addDryRunFlag(cmd *cobra.Command, opts *rootOptions) {
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the merge patch instead of writing the file")
}

// setup loads config and builds the logger, store and trace recorder.
func (o *rootOptions) setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load(o.v, o.configFile)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	st, err := store.New(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	rec, err := trace.New(ctx, trace.Options{
		Endpoint:    cfg.OTLP.Endpoint,
		Insecure:    cfg.OTLP.Insecure,
		ServiceName: cfg.Service.Name,
	})
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}
	return &env{cfg: cfg, log: log, store: st, recorder: rec}, nil
}

func (e *env) close(ctx context.Context) {
	if err := e.recorder.Shutdown(ctx); err != nil {
		e.log.Warn("trace shutdown failed", zap.Error(err))
	}
	_ = e.log.Sync()
}

// vizIndex converts the 1-based --viz flag to an index.
func (o *rootOptions) vizIndex() int {
	return o.viz - 1
}
