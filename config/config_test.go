package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"honnef.co/go/outline"
)

func TestDefault(t *testing.T) {
	seg, err := Default().Segmentation()
	require.NoError(t, err)
	assert.Equal(t, outline.Adaptive, seg.Kind)
	assert.Equal(t, outline.DefaultSegmentation.AngleTolerance, seg.AngleTolerance)
	assert.Equal(t, outline.DefaultMaxDepth, seg.MaxDepth)
	assert.False(t, Default().IgnoreStyles)
}

func TestSegmentation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want outline.Segmentation
	}{
		{"fixed count", Config{Policy: "fixed-count", Steps: 8}, outline.SegmentFixedCount(8)},
		{"fixed length", Config{Policy: "fixed-length", StepLength: 2.5}, outline.SegmentFixedLength(2.5)},
		{"adaptive", Config{Policy: "adaptive", AngleTolerance: 0.1, MaxDepth: 4},
			outline.Segmentation{Kind: outline.Adaptive, AngleTolerance: 0.1, MaxDepth: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.Segmentation()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSegmentationInvalid(t *testing.T) {
	for _, cfg := range []Config{
		{Policy: "bogus"},
		{Policy: "fixed-count", Steps: 0},
		{Policy: "fixed-length", StepLength: -1},
		{Policy: "adaptive", AngleTolerance: 0},
		{Policy: "adaptive", AngleTolerance: 0.1, MaxDepth: -1},
	} {
		_, err := cfg.Segmentation()
		assert.ErrorIs(t, err, outline.ErrInvalidConfiguration, "%+v", cfg)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "outline.toml", `
policy = "fixed-length"
step_length = 4.0
ignore_styles = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fixed-length", cfg.Policy)
	assert.Equal(t, 4.0, cfg.StepLength)
	assert.True(t, cfg.IgnoreStyles)
	// Unset fields keep their defaults.
	assert.Equal(t, Default().AngleTolerance, cfg.AngleTolerance)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "outline.yaml", "policy: fixed-count\nsteps: 12\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	seg, err := cfg.Segmentation()
	require.NoError(t, err)
	assert.Equal(t, outline.SegmentFixedCount(12), seg)
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "outline.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(writeFile(t, "outline.json", "{}"))
	assert.ErrorIs(t, err, outline.ErrInvalidConfiguration)

	_, err = Load(writeFile(t, "outline.toml", `policy = "fixed-count"`+"\nsteps = 0\n"))
	assert.ErrorIs(t, err, outline.ErrInvalidConfiguration)

	_, err = Load(writeFile(t, "outline.toml", "policy = [\n"))
	assert.ErrorIs(t, err, outline.ErrInvalidConfiguration)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("OUTLINE_POLICY", "fixed-count")
	t.Setenv("OUTLINE_STEPS", "7")
	cfg, err := FromEnv("OUTLINE", Default())
	require.NoError(t, err)
	assert.Equal(t, "fixed-count", cfg.Policy)
	assert.Equal(t, 7, cfg.Steps)
	assert.Equal(t, Default().StepLength, cfg.StepLength)

	t.Setenv("OUTLINE_STEPS", "seven")
	_, err = FromEnv("OUTLINE", Default())
	assert.ErrorIs(t, err, outline.ErrInvalidConfiguration)
}

func TestSettings(t *testing.T) {
	var s Settings
	assert.Equal(t, Default(), s.Load())
	assert.Equal(t, outline.DefaultSegmentation.Kind, s.Segmentation().Kind)

	require.NoError(t, s.Store(Config{Policy: "fixed-count", Steps: 3, IgnoreStyles: true}))
	assert.Equal(t, outline.SegmentFixedCount(3), s.Segmentation())
	assert.True(t, s.IgnoreStyles())

	err := s.Store(Config{Policy: "fixed-count"})
	assert.ErrorIs(t, err, outline.ErrInvalidConfiguration)
	assert.Equal(t, 3, s.Load().Steps, "rejected store must not change settings")

	_, err = NewSettings(Config{})
	assert.Error(t, err)
}

// replaceFile replaces the file at path atomically, so that a watcher never
// observes it truncated.
func replaceFile(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func TestWatch(t *testing.T) {
	path := writeFile(t, "outline.toml", `policy = "adaptive"`+"\nangle_tolerance = 0.1\n")
	s, err := NewSettings(Default())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, path, s) }()

	// The watcher may not be registered yet when the first write happens,
	// so keep rewriting until the change is observed.
	require.Eventually(t, func() bool {
		_ = replaceFile(path, `policy = "fixed-count"`+"\nsteps = 5\n")
		return s.Segmentation() == outline.SegmentFixedCount(5)
	}, 5*time.Second, 50*time.Millisecond)

	// Invalid files are ignored.
	require.NoError(t, replaceFile(path, `policy = "nope"`))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, outline.SegmentFixedCount(5), s.Segmentation())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancellation")
	}
}
