package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/geofduf/frame-sequence/sequence"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// manifestNamespace seeds the name-based chunk IDs.
var manifestNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("frameseq:chunk"))

type info struct {
	Sequence     string   `yaml:"sequence"`
	Frames       int      `yaml:"frames"`
	Start        int      `yaml:"start"`
	End          int      `yaml:"end"`
	Progression  bool     `yaml:"progression"`
	Progressions []string `yaml:"progressions"`
}

type manifest struct {
	Source    string            `yaml:"source"`
	Strategy  sequence.Strategy `yaml:"strategy"`
	ChunkSize int               `yaml:"chunk_size"`
	Chunks    []chunkEntry      `yaml:"chunks"`
}

type chunkEntry struct {
	ID       string `yaml:"id"`
	Index    int    `yaml:"index"`
	Sequence string `yaml:"sequence"`
	Frames   int    `yaml:"frames"`
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func writeLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <spec>",
		Short: "Describe a frame sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sequence(args[0])
			if err != nil {
				return err
			}
			out := info{
				Sequence:    s.String(),
				Frames:      s.Len(),
				Start:       s.Start(),
				End:         s.End(),
				Progression: s.IsProgression(),
			}
			for _, p := range s.Progressions() {
				out.Progressions = append(out.Progressions, p.String())
			}
			return writeYAML(cmd.OutOrStdout(), out)
		},
	}
}

func (a *app) newChunksCmd() *cobra.Command {
	var (
		size      int
		strategy  string
		maxChunks int
		best      bool
	)
	cmd := &cobra.Command{
		Use:   "chunks <spec>",
		Short: "Split a frame sequence into chunks and print a YAML manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sequence(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("size") {
				s.SetChunkSize(size)
			}
			if strategy != "" {
				x, err := sequence.ParseStrategy(strategy)
				if err != nil {
					return err
				}
				s.SetChunkStrategy(x)
			}
			if maxChunks > 0 {
				s.CapChunkCount(maxChunks)
			}
			if best {
				s.SetChunkSize(s.BestChunkSize())
			}

			m := manifest{
				Source:    s.String(),
				Strategy:  s.ChunkStrategy(),
				ChunkSize: s.ChunkSize(),
			}
			for i, c := range s.Chunks() {
				id := uuid.NewSHA1(manifestNamespace, fmt.Appendf(nil, "%s#%d", m.Source, i))
				m.Chunks = append(m.Chunks, chunkEntry{
					ID:       id.String(),
					Index:    i,
					Sequence: c.String(),
					Frames:   c.Len(),
				})
			}
			a.logger.Info("Chunked sequence",
				zap.String("source", m.Source),
				zap.Int("chunks", len(m.Chunks)),
				zap.Int("chunk_size", m.ChunkSize))
			return writeYAML(cmd.OutOrStdout(), m)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "frames per chunk, 0 for a single chunk")
	cmd.Flags().StringVar(&strategy, "strategy", "", "linear, cycle, cycle_progressions or progressions")
	cmd.Flags().IntVar(&maxChunks, "max-chunks", 0, "raise the chunk size to produce at most this many chunks")
	cmd.Flags().BoolVar(&best, "best", false, "balance chunk sizes without changing the chunk count")
	return cmd
}

func (a *app) newExpandCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "expand <spec> <template>...",
		Short: "Expand filename templates over a frame sequence",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sequence(args[0])
			if err != nil {
				return err
			}
			templates := args[1:]
			var names []string
			switch style {
			case "hash":
				for _, t := range templates {
					x, err := s.Expand(t)
					if err != nil {
						return err
					}
					names = append(names, x...)
				}
			case "dollar":
				names, err = s.ExpandDollarF(templates...)
			case "format":
				names, err = s.ExpandFormat(templates...)
			default:
				return fmt.Errorf("unknown style %q", style)
			}
			if err != nil {
				return err
			}
			a.logger.Debug("Expanded templates", zap.Strings("templates", templates), zap.Int("names", len(names)))
			return writeLines(cmd.OutOrStdout(), names)
		},
	}
	cmd.Flags().StringVar(&style, "style", "hash", "template style: hash, dollar or format")
	return cmd
}

func (a *app) newPermuteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "permute <template> <name=spec>...",
		Short: "Expand %(name)d tokens over every combination of parameters",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := make([]sequence.Param, 0, len(args)-1)
			for _, arg := range args[1:] {
				name, spec, ok := strings.Cut(arg, "=")
				if !ok || name == "" {
					return fmt.Errorf("invalid parameter %q, want name=spec", arg)
				}
				params = append(params, sequence.Param{Name: name, Spec: spec})
			}
			names, err := sequence.Permutations(args[0], params...)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for name := range names {
				if _, err := fmt.Fprintln(w, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func (a *app) newSampleCmd() *cobra.Command {
	var (
		count int
		fml   bool
	)
	cmd := &cobra.Command{
		Use:   "sample <spec>",
		Short: "Pick evenly spread frames from a sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sequence(args[0])
			if err != nil {
				return err
			}
			var x *sequence.Sequence
			if fml {
				x = s.CalcFML(count)
			} else {
				x = s.Subsample(count)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), x)
			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of frames to pick")
	cmd.Flags().BoolVar(&fml, "fml", false, "always include the first and last frames")
	return cmd
}

func (a *app) newScanCmd() *cobra.Command {
	var prefix, ext string
	cmd := &cobra.Command{
		Use:   "scan <dir>",
		Short: "Build a sequence from the numbered files of a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sequence.NewFromFiles(listDir, args[0], prefix, ext)
			if err != nil {
				return err
			}
			a.logger.Debug("Scanned directory", zap.String("dir", args[0]), zap.Int("frames", s.Len()))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
			return err
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "filename prefix before the frame number")
	cmd.Flags().StringVar(&ext, "ext", "", "filename suffix after the frame number, including the dot")
	return cmd
}

// listDir lists the regular files of dir whose names carry prefix and extension.
func listDir(dir, prefix, extension string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.Type().IsRegular() && strings.HasPrefix(name, prefix) && strings.HasSuffix(name, extension) {
			names = append(names, name)
		}
	}
	return names, nil
}
