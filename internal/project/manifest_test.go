package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[check]
target_version = "0.3.0"
max_diagnostics = 25
disabled = ["I392", "w441"]
roots = ["src", "test"]
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.TargetVersion != "0.3.0" || m.MaxDiagnostics != 25 {
		t.Fatalf("manifest = %+v", m)
	}
	if len(m.Roots) != 2 || m.Roots[0] != "src" {
		t.Fatalf("roots = %v", m.Roots)
	}
	set := m.DisabledSet()
	if _, ok := set["I392"]; !ok {
		t.Fatalf("disabled set = %v", set)
	}
	if _, ok := set["W441"]; !ok {
		t.Fatalf("disabled codes not normalized: %v", set)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[check]\n")
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultManifest()
	if m.TargetVersion != def.TargetVersion || m.MaxDiagnostics != def.MaxDiagnostics {
		t.Fatalf("manifest = %+v, want defaults %+v", m, def)
	}
	if m.DisabledSet() != nil {
		t.Fatalf("empty disabled list should map to nil set")
	}
}

func TestLoadManifestMissingCheckSection(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[other]\nx = 1\n")
	_, err := LoadManifest(path)
	if !errors.Is(err, ErrCheckSectionMissing) {
		t.Fatalf("err = %v, want ErrCheckSectionMissing", err)
	}
}

func TestLoadManifestBadTOML(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "not toml :::\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[check]\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path, ok := FindManifest(nested)
	if !ok {
		t.Fatalf("manifest not found from nested dir")
	}
	if filepath.Dir(path) != root {
		t.Fatalf("found %s, want manifest in %s", path, root)
	}
}

func TestFindManifestAbsent(t *testing.T) {
	if path, ok := FindManifest(t.TempDir()); ok {
		t.Fatalf("unexpectedly found %s", path)
	}
}
