package driver

import (
	"os"
	"path/filepath"

	"flint/internal/ast"
	"flint/internal/parser"
)

// ScanIncludes collects the string arguments of top-level include(...)
// calls, in source order. Only literal paths are followed; computed ones
// are outside what static analysis can resolve.
func ScanIncludes(forms []*ast.Node) []string {
	var paths []string
	var visit func(*ast.Node)
	visit = func(n *ast.Node) {
		if n == nil {
			return
		}
		if n.Kind == ast.KindCall && n.Name == "include" {
			if first := n.First(); first != nil && first.Kind == ast.KindString {
				paths = append(paths, first.Str)
			}
		}
		for _, child := range n.Args {
			visit(child)
		}
	}
	for _, form := range forms {
		visit(form)
	}
	return paths
}

// AnalyzePackage analyzes entry and every file reachable through its
// include graph, depth-first in include order, each file as an independent
// run. Cycles and repeat includes are visited once.
func AnalyzePackage(entry string, opts *Options) []Result {
	visited := make(map[string]struct{})
	var results []Result

	var analyze func(path string)
	analyze = func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if _, done := visited[abs]; done {
			return
		}
		visited[abs] = struct{}{}

		data, err := os.ReadFile(path)
		if err != nil {
			results = append(results, Result{Path: path, Err: err})
			return
		}
		forms := parser.ParseFile(string(data))
		results = append(results, analyzeForms(path, forms, opts))

		base := filepath.Dir(path)
		for _, inc := range ScanIncludes(forms) {
			next := inc
			if !filepath.IsAbs(next) {
				next = filepath.Join(base, next)
			}
			analyze(next)
		}
	}
	analyze(entry)
	return results
}
