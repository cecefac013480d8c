// Package lint implements the analysis engine: a scoped traversal of the
// syntax tree that maintains a stack of lexical frames, resolves symbols,
// tracks approximate types across reassignment, interprets in-source lint
// directives, evaluates version-guarded branches for reachability and
// offers unrecognized macro invocations to registered extension hooks.
//
// The engine is single-threaded per file and keeps no cross-file state;
// independent files may be analyzed concurrently with one Analyzer each.
package lint
