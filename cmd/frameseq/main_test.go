package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/geofduf/frame-sequence/internal/config"
	"github.com/geofduf/frame-sequence/sequence"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// run executes the root command with a config file holding presets and
// returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvChunkSize, "")
	t.Setenv(config.EnvChunkStrategy, "")
	t.Setenv(config.EnvLogLevel, "")

	cfg := config.DefaultConfig()
	cfg.Logging.Level = "error"
	cfg.Presets = map[string]string{"shot010": "1001-1010", "stills": "1,50,100"}
	path := filepath.Join(t.TempDir(), "frameseq.yaml")
	require.NoError(t, cfg.Save(path))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInfoCmd(t *testing.T) {
	out, err := run(t, "info", "1-10x2, 20")
	require.NoError(t, err)
	var got info
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 6, got.Frames)
	assert.Equal(t, 1, got.Start)
	assert.Equal(t, 20, got.End)
	assert.False(t, got.Progression)
	assert.Equal(t, "1-9x2,20", got.Sequence)
}

func TestInfoCmdPreset(t *testing.T) {
	out, err := run(t, "info", "@shot010")
	require.NoError(t, err)
	assert.Contains(t, out, "sequence: 1001-1010")
	assert.Contains(t, out, "progression: true")

	_, err = run(t, "info", "@missing")
	assert.ErrorContains(t, err, "unknown preset")
}

func TestInfoCmdInvalid(t *testing.T) {
	_, err := run(t, "info", "1-10x0")
	assert.ErrorIs(t, err, sequence.ErrInvalidSpec)
}

func TestChunksCmd(t *testing.T) {
	out, err := run(t, "chunks", "1-20", "--size", "8", "--strategy", "cycle")
	require.NoError(t, err)
	var got manifest
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "1-20", got.Source)
	assert.Equal(t, sequence.StrategyCycle, got.Strategy)
	assert.Equal(t, 8, got.ChunkSize)

	var specs []string
	for i, c := range got.Chunks {
		assert.Equal(t, i, c.Index)
		assert.NotEmpty(t, c.ID)
		specs = append(specs, c.Sequence)
	}
	if diff := cmp.Diff([]string{"1-19x3", "2-20x3", "3-18x3"}, specs); diff != "" {
		t.Fatalf("chunk specs mismatch (-want +got):\n%s", diff)
	}

	again, err := run(t, "chunks", "1-20", "--size", "8", "--strategy", "cycle")
	require.NoError(t, err)
	assert.Equal(t, out, again, "chunk ids should be deterministic")
}

func TestChunksCmdMaxChunks(t *testing.T) {
	out, err := run(t, "chunks", "1-100", "--size", "10", "--max-chunks", "4")
	require.NoError(t, err)
	var got manifest
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 25, got.ChunkSize)
	assert.Len(t, got.Chunks, 4)

	_, err = run(t, "chunks", "1-10", "--strategy", "zigzag")
	assert.ErrorIs(t, err, sequence.ErrInvalidConstruction)
}

func TestChunksCmdBest(t *testing.T) {
	out, err := run(t, "chunks", "1-100", "--size", "76", "--best")
	require.NoError(t, err)
	var got manifest
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 50, got.ChunkSize)
	require.Len(t, got.Chunks, 2)
	assert.Equal(t, 50, got.Chunks[1].Frames)
}

func TestExpandCmd(t *testing.T) {
	tests := []struct {
		id   int
		args []string
		want []string
	}{
		{1, []string{"expand", "8-10", "img.####.exr"}, []string{"img.0008.exr", "img.0009.exr", "img.0010.exr"}},
		{2, []string{"expand", "8-9", "a.$F2.exr", "b.$F.exr", "--style", "dollar"}, []string{"a.08.exr", "a.09.exr", "b.8.exr", "b.9.exr"}},
		{3, []string{"expand", "1,3", "f_{frame:03d}.png", "--style", "format"}, []string{"f_001.png", "f_003.png"}},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		if err != nil {
			t.Fatalf("test %d: got error %s, want error nil", tt.id, err)
		}
		if diff := cmp.Diff(tt.want, strings.Fields(out)); diff != "" {
			t.Fatalf("test %d: mismatch (-want +got):\n%s", tt.id, diff)
		}
	}

	_, err := run(t, "expand", "1-3", "plain.exr")
	assert.ErrorIs(t, err, sequence.ErrInvalidTemplate)
	_, err = run(t, "expand", "1-3", "a.#.exr", "--style", "pound")
	assert.Error(t, err)
}

func TestPermuteCmd(t *testing.T) {
	out, err := run(t, "permute", "tile_%(u)d_%(v)d.tif", "u=1-2", "v=5")
	require.NoError(t, err)
	assert.Equal(t, []string{"tile_1_5.tif", "tile_2_5.tif"}, strings.Fields(out))

	_, err = run(t, "permute", "tile_%(u)d.tif", "u")
	assert.ErrorContains(t, err, "name=spec")
}

func TestSampleCmd(t *testing.T) {
	tests := []struct {
		id   int
		args []string
		want []int
	}{
		{1, []string{"sample", "1-10", "-n", "3"}, []int{2, 6, 9}},
		{2, []string{"sample", "1-100", "-n", "3", "--fml"}, []int{1, 51, 100}},
		{3, []string{"sample", "@stills"}, []int{50}},
	}
	for _, tt := range tests {
		out, err := run(t, tt.args...)
		if err != nil {
			t.Fatalf("test %d: got error %s, want error nil", tt.id, err)
		}
		got, err := sequence.NewFromSpec(strings.TrimSpace(out))
		require.NoError(t, err, "test %d", tt.id)
		assert.Equal(t, tt.want, got.Frames(), "test %d", tt.id)
	}
}

func TestScanCmd(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img.0001.exr", "img.0002.exr", "img.0003.exr", "img.0007.exr", "other.0004.exr", "img.0005.png"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "img.0009.exr"), 0755))

	out, err := run(t, "scan", dir, "--prefix", "img.", "--ext", ".exr")
	require.NoError(t, err)
	assert.Equal(t, "1-3,7", strings.TrimSpace(out))

	_, err = run(t, "scan", dir, "--prefix", "none.", "--ext", ".exr")
	assert.ErrorIs(t, err, sequence.ErrInvalidSpec)
	_, err = run(t, "scan", filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
