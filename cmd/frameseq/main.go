// Command frameseq parses, chunks and expands frame sequences.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/geofduf/frame-sequence/internal/config"
	"github.com/geofduf/frame-sequence/sequence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	configPath string
	verbose    bool

	cfg     *config.Config
	presets *sequence.Store
	logger  *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:           "frameseq",
		Short:         "Parse, chunk and expand frame sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "frameseq.yaml", "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		a.newInfoCmd(),
		a.newChunksCmd(),
		a.newExpandCmd(),
		a.newPermuteCmd(),
		a.newSampleCmd(),
		a.newScanCmd(),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	zc := zap.NewProductionConfig()
	zc.Encoding = cfg.Logging.Encoding
	zc.Level, err = zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	a.presets, err = cfg.Store()
	if err != nil {
		return err
	}
	a.logger.Debug("Configuration loaded",
		zap.String("path", a.configPath),
		zap.Int("presets", a.presets.Len()),
		zap.Stringer("strategy", cfg.Chunking.Strategy))
	return nil
}

// sequence resolves a command line argument: @name looks up a preset, anything
// else is parsed as a spec with the configured chunking applied.
func (a *app) sequence(arg string) (*sequence.Sequence, error) {
	if name, ok := strings.CutPrefix(arg, "@"); ok {
		s, found := a.presets.Get(name)
		if !found {
			return nil, fmt.Errorf("unknown preset %q", name)
		}
		a.logger.Debug("Resolved preset", zap.String("name", name), zap.Stringer("sequence", s))
		return s, nil
	}
	s, err := sequence.NewFromSpec(arg)
	if err != nil {
		return nil, err
	}
	a.cfg.Chunking.Apply(s)
	return s, nil
}
