// Package profile locates and loads the local Radicle profile: the home
// directory holding keys, node state, storage and caches. A profile is
// loaded once at startup and passed into the service as a read-only
// capability.
package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/radview/internal/cob"
)

// HintError is a failure with an actionable remediation hint, kept separate
// from the error message so callers can render them independently.
type HintError struct {
	Err  error
	Hint string
}

func (e *HintError) Error() string { return e.Err.Error() }
func (e *HintError) Unwrap() error { return e.Err }

// Home is the root of a Radicle home directory (usually ~/.radicle).
type Home string

func (h Home) Path() string        { return string(h) }
func (h Home) StoragePath() string { return filepath.Join(string(h), "storage") }
func (h Home) NodeDBPath() string  { return filepath.Join(string(h), "node", "node.db") }
func (h Home) CobsDBPath() string  { return filepath.Join(string(h), "cache", "cobs.db") }
func (h Home) ConfigPath() string  { return filepath.Join(string(h), "config.json") }
func (h Home) keyPath() string     { return filepath.Join(string(h), "keys", "radicle.pub") }

// Config is the profile's config.json, reduced to the fields radview reads.
type Config struct {
	Node struct {
		Alias string `koanf:"alias"`
	} `koanf:"node"`
}

// Profile is a loaded local profile.
type Profile struct {
	Home   Home
	Config Config
}

// DefaultHome resolves the home directory: $RAD_HOME when set, otherwise
// ~/.radicle.
func DefaultHome() (Home, error) {
	if dir := os.Getenv("RAD_HOME"); dir != "" {
		return Home(dir), nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return Home(filepath.Join(dir, ".radicle")), nil
}

// Load loads the profile at the default home.
func Load() (*Profile, error) {
	home, err := DefaultHome()
	if err != nil {
		return nil, err
	}
	return LoadAt(home)
}

// LoadAt loads the profile rooted at home. A missing profile yields a
// HintError telling the user how to create one.
func LoadAt(home Home) (*Profile, error) {
	if _, err := os.Stat(home.ConfigPath()); err != nil {
		return nil, &HintError{
			Err:  fmt.Errorf("radicle profile not found in %q", home.Path()),
			Hint: "To set up your Radicle profile, run `rad auth`.",
		}
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(home.ConfigPath()), json.Parser()); err != nil {
		return nil, fmt.Errorf("loading profile config: %w", err)
	}
	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("parsing profile config: %w", err)
	}

	return &Profile{Home: home, Config: config}, nil
}

// NID returns the node id of this profile, read from its public key file.
func (p *Profile) NID() (cob.NodeID, error) {
	raw, err := os.ReadFile(p.Home.keyPath())
	if err != nil {
		return "", fmt.Errorf("reading node key: %w", err)
	}
	nid := strings.TrimSpace(string(raw))
	if nid == "" {
		return "", fmt.Errorf("node key file %q is empty", p.Home.keyPath())
	}
	return cob.NodeID(nid), nil
}
