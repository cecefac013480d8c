package lint

import (
	"errors"
	"fmt"
	"io"

	"flint/internal/ast"
	"flint/internal/diag"
)

// ErrMalformedTree is returned when the input tree violates traversal
// invariants (a node kind missing mandatory children). It fails the one
// file being analyzed, never a multi-file run.
var ErrMalformedTree = errors.New("malformed syntax tree")

type treeError struct {
	kind ast.Kind
	line int
}

func (e *treeError) Error() string {
	return fmt.Sprintf("%v: node %s at line %d has missing mandatory children", ErrMalformedTree, e.kind, e.line)
}

func (e *treeError) Unwrap() error { return ErrMalformedTree }

// Options configures one analysis run.
type Options struct {
	Reporter diag.Reporter
	// Hooks are tried in registration order on macro-invocation nodes the
	// engine does not recognize itself.
	Hooks []Hook
	// Target is the language version reachability is evaluated against.
	Target Version
	// SideChannel receives "Print me" directive output. Nil discards.
	SideChannel io.Writer
}

type guardFrame struct {
	guard  Guard
	inElse bool
}

// Analyzer performs one single-threaded recursive-descent visit per file.
// It owns the call stack for the duration of the file and hands all
// findings to the configured Reporter.
type Analyzer struct {
	stack    *Stack
	reporter diag.Reporter
	hooks    []Hook
	target   Version
	out      io.Writer

	muteAll     int // inside a literal-bool dead branch
	muteVersion int // inside a version-dead branch
	guards      []guardFrame
}

func New(opts Options) *Analyzer {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = diag.BagReporter{}
	}
	a := &Analyzer{
		reporter: reporter,
		hooks:    opts.Hooks,
		target:   opts.Target,
		out:      opts.SideChannel,
	}
	a.stack = NewStack(reporterFunc(a.report))
	return a
}

// reporterFunc adapts the analyzer's own mute-aware report entry point so
// the stack's sweeps go through the same gate as every other check.
type reporterFunc func(sev diag.Severity, code diag.Code, line int, symbol, msg string)

func (f reporterFunc) Report(sev diag.Severity, code diag.Code, line int, symbol, msg string) {
	f(sev, code, line, symbol, msg)
}

func (a *Analyzer) report(sev diag.Severity, code diag.Code, line int, symbol, msg string) {
	if a.muteAll > 0 {
		return
	}
	a.reporter.Report(sev, code, line, symbol, msg)
}

// File analyzes a file's top-level forms. The global frame persists across
// all of them and is finalized without an unused sweep: module-level
// bindings are visible to other files and cannot be proven dead here.
func (a *Analyzer) File(forms []*ast.Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if te, ok := r.(*treeError); ok {
				err = te
				return
			}
			panic(r)
		}
	}()
	for _, form := range forms {
		a.walk(form)
	}
	return nil
}

func (a *Analyzer) malformed(node *ast.Node) {
	panic(&treeError{kind: node.Kind, line: node.Line})
}

func (a *Analyzer) walk(node *ast.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.KindAssign:
		a.walkAssign(node)
	case ast.KindIdent:
		a.walkIdentUse(node)
	case ast.KindCall:
		a.walkCall(node)
	case ast.KindMacroCall:
		a.walkMacroCall(node)
	case ast.KindFunction:
		a.walkFunction(node)
	case ast.KindTypeDecl:
		a.walkTypeDecl(node)
	case ast.KindIf:
		a.walkIf(node)
	case ast.KindWhile:
		a.walkLoop(node)
	case ast.KindFor:
		a.walkFor(node)
	case ast.KindModule:
		a.walkModule(node)
	case ast.KindUsing, ast.KindImport:
		a.walkUsing(node)
	case ast.KindDict:
		a.checkDict(node, false)
		a.walkChildren(node)
	case ast.KindTypedDict:
		a.checkDict(node, true)
		a.walkChildren(node)
	case ast.KindRange:
		a.checkRange(node)
		a.walkChildren(node)
	default:
		// unknown or payload-only kinds: default-recurse, no diagnosing
		a.walkChildren(node)
	}
}

func (a *Analyzer) walkChildren(node *ast.Node) {
	for _, child := range node.Args {
		a.walk(child)
	}
}

// markUse resolves name's root and marks a variable binding used.
// Returns false when the name is not bound anywhere.
func (a *Analyzer) markUse(name string) bool {
	root := rootSymbol(name)
	if info := a.stack.Resolve(root); info != nil {
		info.Used = true
		return true
	}
	if a.stack.ResolveAny(root) {
		return true
	}
	return IsBuiltin(root)
}

func (a *Analyzer) walkIdentUse(node *ast.Node) {
	if a.markUse(node.Name) {
		return
	}
	root := rootSymbol(node.Name)
	if a.muteVersion > 0 {
		// resolution failures in a version-dead branch are contingent on
		// the configured target and stay silent
		return
	}
	if a.stack.Suppressed(SuppressUndefined, root) {
		return
	}
	a.report(diag.SevError, diag.ErrUndefinedSymbol, node.Line, root,
		"use of undefined symbol "+root)
}

func (a *Analyzer) walkAssign(node *ast.Node) {
	if len(node.Args) == 0 {
		a.malformed(node)
	}
	if len(node.Args) == 1 {
		// declaration-only form (local x)
		lhs := node.Args[0]
		if lhs.Kind == ast.KindIdent {
			a.stack.Declare(lhs.Name, lhs.TypeAnn, lhs.Line, false)
		}
		return
	}
	lhs, rhs := node.Args[0], node.Args[1]

	// short-form function definition: f(x) = expr
	if lhs.Kind == ast.KindCall && lhs.Name != "" {
		a.walkShortFunction(node, lhs, rhs)
		return
	}

	a.walk(rhs)
	observed := a.InferType(rhs)

	switch lhs.Kind {
	case ast.KindIdent:
		name := lhs.Name
		if root := rootSymbol(name); root != name {
			// field assignment a.b = x: a use of the root, no new binding
			a.walkIdentUse(ast.Ident(lhs.Line, root))
			return
		}
		a.stack.Declare(name, lhs.TypeAnn, lhs.Line, false)
		a.stack.RecordAssignment(name, observed, node.Line)
		if a.muteAll > 0 {
			// bindings introduced in dead code cannot be live; keep them
			// resolvable but out of unused accounting
			if info := a.stack.Resolve(name); info != nil {
				info.Used = true
			}
		}
	case ast.KindTuple:
		for _, elem := range lhs.Args {
			if elem.Kind != ast.KindIdent {
				continue
			}
			a.stack.Declare(elem.Name, elem.TypeAnn, elem.Line, false)
			a.stack.RecordAssignment(elem.Name, Unknown(), node.Line)
			if a.muteAll > 0 {
				if info := a.stack.Resolve(elem.Name); info != nil {
					info.Used = true
				}
			}
		}
	default:
		// indexed or otherwise opaque target: treat as uses only
		a.walk(lhs)
	}
}

func (a *Analyzer) walkShortFunction(node, lhs, rhs *ast.Node) {
	a.stack.DeclareFunction(lhs.Name)
	a.stack.Push(FrameFunction)
	for _, arg := range lhs.Args {
		if arg.Kind == ast.KindIdent {
			a.stack.Declare(arg.Name, arg.TypeAnn, arg.Line, true)
		}
	}
	a.walk(rhs)
	a.stack.Pop()
}

func (a *Analyzer) walkCall(node *ast.Node) {
	if node.Name == pragmaName {
		if d := TryParseDirective(node); d != nil {
			a.applyDirective(d)
			return
		}
		// malformed directive body: non-fatal, offer to hooks like any
		// unrecognized macro invocation
		if a.offerToHooks(node) {
			return
		}
		a.report(diag.SevInfo, diag.InfoBadPragma, node.Line, "",
			"unrecognized lint directive")
		a.walkChildren(node)
		return
	}

	a.checkStringConcat(node)
	a.checkBitwiseBool(node)
	a.checkDeprecated(node)

	if node.Name != "" && !isOperatorName(node.Name) {
		if _, dep := deprecated[node.Name]; !dep && !a.markUse(node.Name) {
			root := rootSymbol(node.Name)
			if a.muteVersion == 0 && !a.stack.Suppressed(SuppressUndefined, root) {
				a.report(diag.SevError, diag.ErrUndefinedSymbol, node.Line, root,
					"use of undefined symbol "+root)
			}
		}
	}
	a.walkChildren(node)
}

func (a *Analyzer) walkMacroCall(node *ast.Node) {
	if d := TryParseDirective(node); d != nil {
		a.applyDirective(d)
		return
	}
	// the engine recognizes no other macros itself; first claimant wins
	if a.offerToHooks(node) {
		return
	}
	a.walkChildren(node)
}

func (a *Analyzer) walkFunction(node *ast.Node) {
	if len(node.Args) != 2 {
		a.malformed(node)
	}
	if node.Name != "" {
		a.stack.DeclareFunction(node.Name)
	}
	a.stack.Push(FrameFunction)
	a.declareParams(node.Args[0])
	a.walk(node.Args[1])
	a.stack.Pop()
}

func (a *Analyzer) walkModule(node *ast.Node) {
	if node.Name != "" {
		a.stack.DeclareFunction(node.Name)
	}
	a.stack.Push(FrameModule)
	a.walkChildren(node)
	a.stack.Pop()
}

func (a *Analyzer) walkUsing(node *ast.Node) {
	// an imported module name becomes resolvable in the current frame
	if node.Name != "" {
		a.stack.DeclareFunction(rootSymbol(node.Name))
	}
}

func (a *Analyzer) walkLoop(node *ast.Node) {
	if len(node.Args) != 2 {
		a.malformed(node)
	}
	a.walk(node.Args[0])
	a.stack.Push(FrameBlock)
	a.walk(node.Args[1])
	a.stack.Pop()
}

func (a *Analyzer) walkFor(node *ast.Node) {
	if len(node.Args) != 2 {
		a.malformed(node)
	}
	a.stack.Push(FrameBlock)
	iter := node.Args[0]
	if iter != nil && iter.Kind == ast.KindAssign && len(iter.Args) == 2 {
		a.walk(iter.Args[1])
		if lhs := iter.Args[0]; lhs.Kind == ast.KindIdent {
			info := a.stack.Declare(lhs.Name, lhs.TypeAnn, lhs.Line, false)
			info.Used = true // loop variables are not held to unused accounting
		}
	} else {
		a.walk(iter)
	}
	a.walk(node.Args[1])
	a.stack.Pop()
}

func (a *Analyzer) walkIf(node *ast.Node) {
	if len(node.Args) < 2 {
		a.malformed(node)
	}
	cond := node.Args[0]
	then := node.Args[1]
	var alt *ast.Node
	if len(node.Args) > 2 {
		alt = node.Args[2]
	}

	// literal boolean test: one branch is provably dead
	if cond != nil && cond.Kind == ast.KindBool {
		a.walkLiteralBranches(cond, then, alt)
		return
	}

	if guard, ok := ExtractGuard(cond); ok {
		a.walkGuardedBranches(guard, cond, then, alt)
		return
	}

	a.walk(cond)
	a.walk(then)
	a.walk(alt)
}

func (a *Analyzer) walkLiteralBranches(cond, then, alt *ast.Node) {
	live, dead := then, alt
	if !cond.Bool {
		live, dead = alt, then
	}
	if dead != nil && !a.stack.Suppressed(SuppressDeadCode, "") {
		a.report(diag.SevWarning, diag.WarnDeadBranch, dead.Line, "",
			"unreachable branch: condition is always "+fmt.Sprint(cond.Bool))
	}
	a.walk(live)
	if dead != nil {
		// keep symbol bookkeeping alive so later references resolve, but
		// nothing in here can diagnose or count as unused
		a.muteAll++
		a.stack.muteUnused++
		a.walk(dead)
		a.stack.muteUnused--
		a.muteAll--
	}
}

func (a *Analyzer) walkGuardedBranches(guard Guard, cond, then, alt *ast.Node) {
	branch := Classify(cond, a.target)
	a.walk(cond)

	walkBranch := func(n *ast.Node, inElse, live bool) {
		if n == nil {
			return
		}
		a.guards = append(a.guards, guardFrame{guard: guard, inElse: inElse})
		if !live {
			a.muteVersion++
		}
		a.walk(n)
		if !live {
			a.muteVersion--
		}
		a.guards = a.guards[:len(a.guards)-1]
	}

	thenLive := branch != BranchLiveElse
	elseLive := branch != BranchLiveThen
	walkBranch(then, false, thenLive)
	walkBranch(alt, true, elseLive)
}

// isOperatorName distinguishes operator callees ("+", "&&") from named
// functions ("push!", "Base.show"): identifiers start with a letter or
// underscore, operators never do.
func isOperatorName(name string) bool {
	if name == "" {
		return true
	}
	ch := name[0]
	ident := ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch >= 0x80
	return !ident
}
