package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"flint/internal/diag"
	"flint/internal/parser"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestAnalyzeSource(t *testing.T) {
	res := AnalyzeSource("none", `test = "Hello" + "World"`, &Options{})
	if res.Err != nil {
		t.Fatalf("err = %v", res.Err)
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("diags = %v", res.Bag.Items())
	}
	got := diag.FormatLine("none", res.Bag.Items()[0])
	want := "none:1 E422 : string uses * to concatenate"
	if got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

func TestAnalyzeSourceNilOptions(t *testing.T) {
	res := AnalyzeSource("x.jl", "x = 1\nprintln(x)\n", nil)
	if res.Err != nil || res.Bag.Len() != 0 {
		t.Fatalf("res = %+v", res)
	}
}

func TestMaxDiagnosticsCapsBag(t *testing.T) {
	src := ""
	for i := 0; i < 10; i++ {
		src += "lintpragma(\"Error me problem\")\n"
	}
	res := AnalyzeSource("many.jl", src, &Options{MaxDiagnostics: 3})
	if res.Bag.Len() != 3 {
		t.Fatalf("got %d diagnostics, want capped at 3", res.Bag.Len())
	}
}

func TestDisabledTagsFiltered(t *testing.T) {
	src := "function f(x)\ny = 1\nz = \"a\" + \"b\"\nreturn z\nend\n"
	opts := &Options{Disabled: map[string]struct{}{"I392": {}, "I393": {}}}
	res := AnalyzeSource("f.jl", src, opts)
	for _, d := range res.Bag.Items() {
		tag := diag.Tag(d.Severity, d.Code)
		if tag == "I392" || tag == "I393" {
			t.Fatalf("disabled tag %s leaked: %v", tag, res.Bag.Items())
		}
	}
	if !res.Bag.HasErrors() {
		t.Fatalf("E422 should survive filtering: %v", res.Bag.Items())
	}
}

func TestTargetVersionThreadsThrough(t *testing.T) {
	src := "if VERSION >= v\"0.4.0\"\nnewapi()\nelse\noldapi()\nend\n"
	res := AnalyzeSource("v.jl", src, &Options{TargetVersion: "0.5.0"})
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Symbol != "newapi" {
		t.Fatalf("diags = %v", res.Bag.Items())
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	key := CacheKey([]byte("content"), "0.4.0")

	if _, ok := cache.Load(key, 100); ok {
		t.Fatalf("unexpected hit on empty cache")
	}

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.ErrStringConcatPlus, 1, "", "string uses * to concatenate"))
	cache.Store(key, bag)

	loaded, ok := cache.Load(key, 100)
	if !ok {
		t.Fatalf("expected hit after store")
	}
	if loaded.Len() != 1 || loaded.Items()[0] != bag.Items()[0] {
		t.Fatalf("loaded = %v, want %v", loaded.Items(), bag.Items())
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := cache.Load(key, 100); ok {
		t.Fatalf("hit after clear")
	}
}

func TestCacheKeySensitivity(t *testing.T) {
	base := CacheKey([]byte("src"), "0.4.0")
	if CacheKey([]byte("src2"), "0.4.0") == base {
		t.Fatalf("content change must change the key")
	}
	if CacheKey([]byte("src"), "0.5.0") == base {
		t.Fatalf("target version change must change the key")
	}
	if CacheKey([]byte("src"), "0.4.0") != base {
		t.Fatalf("key must be deterministic")
	}
}

func TestAnalyzeFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.jl", `s = "x" + "y"`)
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	opts := &Options{Cache: cache}

	first := AnalyzeFile(path, opts)
	if first.Err != nil || first.Bag.Len() != 1 {
		t.Fatalf("first = %+v", first)
	}
	second := AnalyzeFile(path, opts)
	if second.Err != nil || second.Bag.Len() != 1 {
		t.Fatalf("second = %+v", second)
	}
	if second.Bag.Items()[0] != first.Bag.Items()[0] {
		t.Fatalf("cached result differs: %v vs %v", second.Bag.Items(), first.Bag.Items())
	}
}

func TestScanIncludes(t *testing.T) {
	forms := parser.ParseFile("include(\"a.jl\")\nx = 1\ninclude(\"b.jl\")\nprintln(x)\n")
	got := ScanIncludes(forms)
	if len(got) != 2 || got[0] != "a.jl" || got[1] != "b.jl" {
		t.Fatalf("includes = %v", got)
	}

	// computed paths are not followed
	forms = parser.ParseFile("include(name)\n")
	if got := ScanIncludes(forms); len(got) != 0 {
		t.Fatalf("computed include followed: %v", got)
	}
}

func TestAnalyzePackageFollowsIncludes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.jl", `s = "x" + "y"`)
	entry := writeFile(t, dir, "main.jl", "include(\"lib.jl\")\nx = 1\nprintln(x)\n")

	results := AnalyzePackage(entry, &Options{})
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Path != entry || results[0].Bag.Len() != 0 {
		t.Fatalf("entry result = %+v", results[0])
	}
	if results[1].Bag.Len() != 1 {
		t.Fatalf("lib result = %+v", results[1])
	}
}

func TestAnalyzePackageBreaksCycles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jl", "include(\"b.jl\")\n")
	writeFile(t, dir, "b.jl", "include(\"a.jl\")\n")

	results := AnalyzePackage(filepath.Join(dir, "a.jl"), &Options{})
	if len(results) != 2 {
		t.Fatalf("cycle not broken: %d results", len(results))
	}
}

func TestAnalyzePackageMissingInclude(t *testing.T) {
	dir := t.TempDir()
	entry := writeFile(t, dir, "main.jl", "include(\"missing.jl\")\n")
	results := AnalyzePackage(entry, &Options{})
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[1].Err == nil {
		t.Fatalf("missing include should surface an error")
	}
}

func TestListSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.jl", "")
	writeFile(t, dir, "a.jl", "")
	writeFile(t, dir, "notes.txt", "")
	hidden := filepath.Join(dir, ".git")
	if err := os.MkdirAll(hidden, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, hidden, "c.jl", "")

	files, err := ListSourceFiles(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v", files)
	}
	if filepath.Base(files[0]) != "a.jl" || filepath.Base(files[1]) != "b.jl" {
		t.Fatalf("files not sorted: %v", files)
	}
}

func TestAnalyzeFilesParallel(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.jl", "b.jl", "c.jl"} {
		paths = append(paths, writeFile(t, dir, name, `s = "x" + "y"`))
	}
	events := make(chan Event, len(paths))
	results, err := AnalyzeFiles(context.Background(), paths, &Options{}, events)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	close(events)
	if len(results) != 3 {
		t.Fatalf("results = %+v", results)
	}
	for i, res := range results {
		if res.Path != paths[i] {
			t.Fatalf("result %d out of order: %s", i, res.Path)
		}
		if res.Bag.Len() != 1 {
			t.Fatalf("result %d = %+v", i, res)
		}
	}
	seen := 0
	for ev := range events {
		if ev.Diags != 1 || ev.Err != nil {
			t.Fatalf("event = %+v", ev)
		}
		seen++
	}
	if seen != 3 {
		t.Fatalf("got %d events, want 3", seen)
	}
}
