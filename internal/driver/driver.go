package driver

import (
	"io"
	"os"

	"flint/internal/ast"
	"flint/internal/diag"
	"flint/internal/lint"
	"flint/internal/parser"
)

// Options configures analysis runs started through the driver. The hook
// registry and target version are fixed before any file is analyzed and
// never mutated afterwards; everything else is per-run private state.
type Options struct {
	TargetVersion  string
	MaxDiagnostics int
	Hooks          []lint.Hook
	SideChannel    io.Writer
	// Disabled drops diagnostics whose severity-scoped tag (e.g. "I392")
	// is in the set. Applied after analysis, the engine stays unaware.
	Disabled map[string]struct{}
	// Cache, when non-nil, short-circuits repeat runs on unchanged files.
	Cache *DiskCache
}

func (o *Options) maxDiagnostics() int {
	if o == nil || o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}

func (o *Options) target() lint.Version {
	if o == nil {
		return lint.Version{}
	}
	v, _ := lint.ParseVersion(o.TargetVersion)
	return v
}

// Result is one file's outcome.
type Result struct {
	Path string
	Bag  *diag.Bag
	Err  error
}

// AnalyzeSource parses and analyzes one source payload. The path is used
// only for attribution; no file I/O happens here.
func AnalyzeSource(path, src string, opts *Options) Result {
	forms := parser.ParseFile(src)
	return analyzeForms(path, forms, opts)
}

func analyzeForms(path string, forms []*ast.Node, opts *Options) Result {
	bag := diag.NewBag(opts.maxDiagnostics())
	var hooks []lint.Hook
	var side io.Writer
	if opts != nil {
		hooks = opts.Hooks
		side = opts.SideChannel
	}
	a := lint.New(lint.Options{
		Reporter:    diag.BagReporter{Bag: bag},
		Hooks:       hooks,
		Target:      opts.target(),
		SideChannel: side,
	})
	err := a.File(forms)
	if opts != nil && len(opts.Disabled) > 0 {
		bag = filterDisabled(bag, opts.Disabled)
	}
	return Result{Path: path, Bag: bag, Err: err}
}

func filterDisabled(bag *diag.Bag, disabled map[string]struct{}) *diag.Bag {
	out := diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if _, drop := disabled[diag.Tag(d.Severity, d.Code)]; drop {
			continue
		}
		out.Add(d)
	}
	return out
}

// AnalyzeFile reads and analyzes one file, consulting the disk cache when
// configured.
func AnalyzeFile(path string, opts *Options) Result {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{Path: path, Err: err}
	}
	if opts != nil && opts.Cache != nil {
		key := CacheKey(data, opts.TargetVersion)
		if bag, ok := opts.Cache.Load(key, opts.maxDiagnostics()); ok {
			return Result{Path: path, Bag: bag}
		}
		res := AnalyzeSource(path, string(data), opts)
		if res.Err == nil {
			opts.Cache.Store(key, res.Bag)
		}
		return res
	}
	return AnalyzeSource(path, string(data), opts)
}
