package lint

import (
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
)

// Hook is the collaborator contract. The analyzer offers a hook every
// macro-invocation node it does not itself recognize, including reserved
// directive calls whose body failed to parse.
//
// Returning true means the hook fully analyzed the node; the engine then
// neither applies default handling nor recurses into the node's children
// (the hook recurses itself via Context.Walk when needed). Returning false
// passes the node to the next registered hook, and finally to default
// handling (recurse, no diagnostic).
type Hook interface {
	TryClaim(node *ast.Node, ctx *Context) bool
}

// HookFunc adapts a plain function to the Hook interface.
type HookFunc func(node *ast.Node, ctx *Context) bool

func (f HookFunc) TryClaim(node *ast.Node, ctx *Context) bool {
	return f(node, ctx)
}

// Context is the capability surface handed to hooks. It wraps the live
// analyzer state; everything a hook declares lands in the real call stack
// so later built-in checks (unused, undefined) see it.
type Context struct {
	a *Analyzer
}

// ExtensionData returns the current frame's open bookkeeping map. The
// engine's own checks never read it.
func (c *Context) ExtensionData() map[string]any {
	return c.a.stack.Top().Ext
}

// Report emits a diagnostic equivalent to an internally produced one.
func (c *Context) Report(sev diag.Severity, code diag.Code, line int, symbol, msg string) {
	c.a.report(sev, code, line, symbol, msg)
}

// DeclareLocal registers a synthesized local binding. With global set the
// binding lands in frame 0 instead of the current frame.
func (c *Context) DeclareLocal(name string, global bool) {
	fr := c.a.stack.Top()
	if global {
		fr = c.a.stack.Global()
	}
	if _, ok := fr.Vars[name]; !ok {
		fr.Vars[name] = &VarInfo{Inferred: Unknown(), Used: true}
	}
}

// DeclareFunction registers a synthesized function name in the current frame.
func (c *Context) DeclareFunction(name string) {
	c.a.stack.DeclareFunction(name)
}

// DeclareType registers a synthesized type root in the current frame.
func (c *Context) DeclareType(root string) {
	c.a.stack.DeclareType(root)
}

// Walk recurses into a node with the engine's own traversal.
func (c *Context) Walk(node *ast.Node) {
	c.a.walk(node)
}

// TargetVersion returns the configured target version of this run.
func (c *Context) TargetVersion() Version {
	return c.a.target
}

// offerToHooks tries each registered hook in registration order. A hook
// panicking mid-callback is a recoverable analysis anomaly: it is reported
// as a lint-engine warning at the node's line and treated as "not mine".
func (a *Analyzer) offerToHooks(node *ast.Node) bool {
	for _, hook := range a.hooks {
		if a.tryClaim(hook, node) {
			return true
		}
	}
	return false
}

func (a *Analyzer) tryClaim(hook Hook, node *ast.Node) (claimed bool) {
	defer func() {
		if r := recover(); r != nil {
			a.report(diag.SevWarning, diag.WarnHookFailure, node.Line, node.Name,
				fmt.Sprintf("extension hook failed on %s: %v", node.Kind, r))
			claimed = false
		}
	}()
	return hook.TryClaim(node, &Context{a: a})
}
