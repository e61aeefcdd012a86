package project

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded razor.toml plus where it was found. Relative
// directories in the config resolve against Root.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config is the decoded razor.toml content.
type Config struct {
	Project   ProjectConfig   `toml:"project"`
	Fixtures  FixturesConfig  `toml:"fixtures"`
	Baselines BaselinesConfig `toml:"baselines"`
	Passes    PassesConfig    `toml:"passes"`
	Limits    LimitsConfig    `toml:"limits"`
}

type ProjectConfig struct {
	Name string `toml:"name"`
}

type FixturesConfig struct {
	Dir string `toml:"dir"`
	Ext string `toml:"ext"`
}

type BaselinesConfig struct {
	Dir string `toml:"dir"`
}

type PassesConfig struct {
	Disabled []string `toml:"disabled"`
}

type LimitsConfig struct {
	// MaxDiagnostics caps per-document diagnostic collection.
	// 0 keeps the pipeline default.
	MaxDiagnostics int `toml:"max_diagnostics"`
}

const (
	defaultFixturesDir  = "testdata/vectors"
	defaultBaselinesDir = "testdata/baselines"
	defaultFixtureExt   = ".tree"
)

// Load finds and decodes the nearest manifest above startDir.
// ok is false when no manifest exists; err covers lookup and decode
// failures.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadFile(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadFile decodes and validates one manifest file.
func LoadFile(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return nil, fmt.Errorf("%s: missing [project].name", path)
	}
	if cfg.Limits.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: [limits].max_diagnostics must not be negative", path)
	}
	if cfg.Fixtures.Ext != "" && !strings.HasPrefix(cfg.Fixtures.Ext, ".") {
		return nil, fmt.Errorf("%s: [fixtures].ext must start with '.'", path)
	}
	cfg.applyDefaults()

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve path: %w", path, err)
	}
	return &Manifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
	}, nil
}

func (c *Config) applyDefaults() {
	if c.Fixtures.Dir == "" {
		c.Fixtures.Dir = defaultFixturesDir
	}
	if c.Fixtures.Ext == "" {
		c.Fixtures.Ext = defaultFixtureExt
	}
	if c.Baselines.Dir == "" {
		c.Baselines.Dir = defaultBaselinesDir
	}
}

// PassDisabled reports whether the named pass is listed in
// [passes].disabled.
func (c *Config) PassDisabled(name string) bool {
	return slices.Contains(c.Passes.Disabled, name)
}

// FixturesDir returns the fixture vector directory resolved against Root.
func (m *Manifest) FixturesDir() string {
	return m.resolve(m.Config.Fixtures.Dir)
}

// BaselinesDir returns the recorded baseline directory resolved against
// Root.
func (m *Manifest) BaselinesDir() string {
	return m.resolve(m.Config.Baselines.Dir)
}

func (m *Manifest) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, filepath.FromSlash(dir))
}
