package config

import (
	"sync/atomic"

	"honnef.co/go/outline"
)

// Settings holds the active configuration. It is safe for concurrent use; a
// stored configuration is seen by every later Load.
//
// The zero value holds [Default].
type Settings struct {
	cfg atomic.Pointer[Config]
}

// NewSettings returns settings holding c, which must be valid.
func NewSettings(c Config) (*Settings, error) {
	var s Settings
	if err := s.Store(c); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load returns the active configuration.
func (s *Settings) Load() Config {
	if c := s.cfg.Load(); c != nil {
		return *c
	}
	return Default()
}

// Store validates c and makes it the active configuration. Invalid
// configurations are rejected and leave the settings unchanged.
func (s *Settings) Store(c Config) error {
	if _, err := c.Segmentation(); err != nil {
		return err
	}
	s.cfg.Store(&c)
	return nil
}

// Segmentation returns the active segmentation policy.
func (s *Settings) Segmentation() outline.Segmentation {
	seg, err := s.Load().Segmentation()
	if err != nil {
		// Store only accepts valid configurations.
		return outline.DefaultSegmentation
	}
	return seg
}

// IgnoreStyles reports whether renderers should ignore embedded styles.
func (s *Settings) IgnoreStyles() bool {
	return s.Load().IgnoreStyles
}
