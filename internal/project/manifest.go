// Package project locates and loads the lumina.toml manifest that anchors a
// project: package identity, build entry and output settings, and the dev
// server address.
package project

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the decoded lumina.toml content.
type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
	Serve   ServeConfig   `toml:"serve"`
}

// PackageConfig identifies the project.
type PackageConfig struct {
	Name string `toml:"name"`
}

// BuildConfig controls the build command. Entry is the source file or
// directory compiled by default; Out is where artifacts are written.
type BuildConfig struct {
	Entry string `toml:"entry"`
	Out   string `toml:"out"`
}

// ServeConfig controls the dev server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// Manifest bundles a decoded config with its location.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Load decodes the manifest at path and applies defaults for omitted
// fields.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package] section", path)
	}
	if cfg.Package.Name == "" {
		return nil, fmt.Errorf("%s: package.name must not be empty", path)
	}
	applyDefaults(&cfg)
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadFrom finds and decodes the nearest manifest above startDir. The bool
// result reports whether a manifest exists at all.
func LoadFrom(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindLuminaToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Build.Entry == "" {
		cfg.Build.Entry = "src"
	}
	if cfg.Build.Out == "" {
		cfg.Build.Out = "dist"
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = "127.0.0.1:3000"
	}
}

// EntryPath returns the build entry resolved against the project root.
func (m *Manifest) EntryPath() string {
	if filepath.IsAbs(m.Config.Build.Entry) {
		return m.Config.Build.Entry
	}
	return filepath.Join(m.Root, m.Config.Build.Entry)
}

// OutPath returns the output directory resolved against the project root.
func (m *Manifest) OutPath() string {
	if filepath.IsAbs(m.Config.Build.Out) {
		return m.Config.Build.Out
	}
	return filepath.Join(m.Root, m.Config.Build.Out)
}
