package lint

import (
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
)

// walkTypeDecl analyzes a type definition: collects declared fields, then
// checks every nested function presumed to be a constructor (its body calls
// the reserved object-construction primitive).
func (a *Analyzer) walkTypeDecl(node *ast.Node) {
	if len(node.Args) != 1 {
		a.malformed(node)
	}
	if node.Name != "" {
		a.stack.DeclareType(node.Name)
	}
	a.stack.Push(FrameType)

	body := node.Args[0]
	fields := 0
	for _, stmt := range body.Args {
		if stmt.Kind == ast.KindIdent {
			fields++
		}
	}
	for _, stmt := range body.Args {
		switch stmt.Kind {
		case ast.KindIdent:
			// field declaration, nothing to analyze
		case ast.KindFunction:
			a.checkConstructor(node.Name, fields, stmt)
			a.walk(stmt)
		default:
			a.walk(stmt)
		}
	}
	a.stack.Pop()
}

// checkConstructor applies the three constructor policies: the name must
// match the enclosing type, every new() call must supply one argument per
// declared field, and every code path must return the constructed value.
func (a *Analyzer) checkConstructor(typeName string, fields int, fn *ast.Node) {
	if len(fn.Args) != 2 {
		return
	}
	body := fn.Args[1]
	newCalls := collectNewCalls(body)
	if len(newCalls) == 0 {
		return // not a constructor
	}

	if typeName != "" && fn.Name != "" && fn.Name != typeName {
		a.report(diag.SevError, diag.ErrCtorNameMismatch, fn.Line, fn.Name,
			"constructor "+fn.Name+" does not match type name "+typeName)
	}
	for _, call := range newCalls {
		if hasVariadicArg(call) {
			continue
		}
		if len(call.Args) != fields {
			a.report(diag.SevError, diag.ErrCtorArgCount, call.Line, typeName,
				fmt.Sprintf("constructor passes %d arguments for %d declared fields",
					len(call.Args), fields))
		}
	}
	a.checkConstructorReturns(typeName, body)
}

// checkConstructorReturns flags code paths that end without the constructed
// value: an explicit return of something other than new(...), or a body
// whose final statement neither returns nor produces the construction.
func (a *Analyzer) checkConstructorReturns(typeName string, body *ast.Node) {
	returns := collectReturns(body)
	for _, ret := range returns {
		value := ret.First()
		if value == nil || !isNewProducing(value) {
			a.report(diag.SevWarning, diag.WarnCtorNoReturn, ret.Line, typeName,
				"constructor path does not return the constructed value")
			return
		}
	}
	if len(returns) > 0 || len(body.Args) == 0 {
		return
	}
	last := body.Args[len(body.Args)-1]
	if isNewProducing(last) {
		return
	}
	if last.Kind == ast.KindAssign && len(last.Args) == 2 && isNewProducing(last.Args[1]) {
		// the assignment's value is the construction and falls out of the body
		return
	}
	a.report(diag.SevWarning, diag.WarnCtorNoReturn, last.Line, typeName,
		"constructor path does not return the constructed value")
}

func isNewProducing(n *ast.Node) bool {
	return n != nil && n.Kind == ast.KindCall && n.Name == "new"
}

func hasVariadicArg(call *ast.Node) bool {
	for _, arg := range call.Args {
		if arg.Variadic {
			return true
		}
	}
	return false
}

func collectNewCalls(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	var visit func(*ast.Node)
	visit = func(n *ast.Node) {
		if n == nil {
			return
		}
		if n.Kind == ast.KindFunction {
			return // nested closures construct on their own behalf
		}
		if isNewProducing(n) {
			out = append(out, n)
		}
		for _, child := range n.Args {
			visit(child)
		}
	}
	for _, child := range n.Args {
		visit(child)
	}
	return out
}

func collectReturns(n *ast.Node) []*ast.Node {
	var out []*ast.Node
	var visit func(*ast.Node)
	visit = func(n *ast.Node) {
		if n == nil {
			return
		}
		if n.Kind == ast.KindFunction {
			return
		}
		if n.Kind == ast.KindReturn {
			out = append(out, n)
		}
		for _, child := range n.Args {
			visit(child)
		}
	}
	for _, child := range n.Args {
		visit(child)
	}
	return out
}
