package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"honnef.co/go/outline"
)

// decoder is implemented by the TOML and YAML decoders.
type decoder interface {
	Decode(v any) error
}

type decoderFunc func(r io.Reader) decoder

func newDecoderFunc[T decoder](f func(r io.Reader) T) decoderFunc {
	return func(r io.Reader) decoder { return f(r) }
}

var decoders = map[string]decoderFunc{
	".toml": newDecoderFunc(toml.NewDecoder),
	".yaml": newDecoderFunc(yaml.NewDecoder),
	".yml":  newDecoderFunc(yaml.NewDecoder),
}

// Load reads a configuration file, choosing TOML or YAML by the file's
// extension. Fields missing from the file keep their [Default] values. The
// result is validated; invalid values yield an error wrapping
// [outline.ErrInvalidConfiguration].
func Load(path string) (Config, error) {
	f, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return Config{}, fmt.Errorf("config: unsupported file type %q: %w", filepath.Ext(path), outline.ErrInvalidConfiguration)
	}
	fp, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer fp.Close()
	return read(bufio.NewReader(fp), f, path)
}

func read(r io.Reader, f decoderFunc, name string) (Config, error) {
	cfg := Default()
	// An empty YAML document reports io.EOF.
	if err := f(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decoding %s: %w: %w", name, outline.ErrInvalidConfiguration, err)
	}
	if _, err := cfg.Segmentation(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv overrides the fields of base with the environment variables
// prefix_POLICY, prefix_STEPS, prefix_STEP_LENGTH, prefix_ANGLE_TOLERANCE,
// prefix_DISTANCE_TOLERANCE, prefix_MAX_DEPTH and prefix_IGNORE_STYLES.
// Variables that are not set leave the field unchanged.
func FromEnv(prefix string, base Config) (Config, error) {
	cfg := base
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w: %w", outline.ErrInvalidConfiguration, err)
	}
	if _, err := cfg.Segmentation(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
