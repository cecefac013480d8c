package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the per-project configuration file.
const ManifestName = "flint.toml"

// Manifest holds a project's lint configuration.
type Manifest struct {
	// TargetVersion is the language version reachability is evaluated
	// against, e.g. "0.4.0".
	TargetVersion string
	// MaxDiagnostics caps the bag size per file.
	MaxDiagnostics int
	// Disabled lists severity-scoped codes (e.g. "I392") to drop from
	// output.
	Disabled []string
	// Roots are directories whose sources belong to the project.
	Roots []string
}

// DefaultManifest is used when no flint.toml is present.
func DefaultManifest() Manifest {
	return Manifest{
		TargetVersion:  "0.4.0",
		MaxDiagnostics: 100,
		Roots:          []string{"."},
	}
}

// ErrCheckSectionMissing indicates that [check] is missing in a manifest.
var ErrCheckSectionMissing = errors.New("missing [check]")

type manifestFile struct {
	Check struct {
		TargetVersion  string   `toml:"target_version"`
		MaxDiagnostics int      `toml:"max_diagnostics"`
		Disabled       []string `toml:"disabled"`
		Roots          []string `toml:"roots"`
	} `toml:"check"`
}

// LoadManifest parses a flint.toml [check] section.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("check") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrCheckSectionMissing)
	}
	m := DefaultManifest()
	if meta.IsDefined("check", "target_version") {
		m.TargetVersion = strings.TrimSpace(cfg.Check.TargetVersion)
	}
	if meta.IsDefined("check", "max_diagnostics") && cfg.Check.MaxDiagnostics > 0 {
		m.MaxDiagnostics = cfg.Check.MaxDiagnostics
	}
	if meta.IsDefined("check", "disabled") {
		m.Disabled = cfg.Check.Disabled
	}
	if meta.IsDefined("check", "roots") && len(cfg.Check.Roots) > 0 {
		m.Roots = cfg.Check.Roots
	}
	return m, nil
}

// FindManifest walks upward from dir looking for flint.toml. The returned
// bool reports whether one was found.
func FindManifest(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DisabledSet normalizes the disabled code list for O(1) lookup.
func (m Manifest) DisabledSet() map[string]struct{} {
	if len(m.Disabled) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(m.Disabled))
	for _, code := range m.Disabled {
		set[strings.ToUpper(strings.TrimSpace(code))] = struct{}{}
	}
	return set
}
