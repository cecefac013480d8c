package ast

// Constructors used by the parser and by tests that assemble trees by hand.

func IntLit(line int, v int64) *Node {
	return &Node{Kind: KindInt, Line: line, Int: v}
}

func FloatLit(line int, v float64) *Node {
	return &Node{Kind: KindFloat, Line: line, Float: v}
}

func StringLit(line int, v string) *Node {
	return &Node{Kind: KindString, Line: line, Str: v}
}

func BoolLit(line int, v bool) *Node {
	return &Node{Kind: KindBool, Line: line, Bool: v}
}

func SymbolLit(line int, v string) *Node {
	return &Node{Kind: KindSymbol, Line: line, Str: v}
}

func VersionLit(line int, v string) *Node {
	return &Node{Kind: KindVersion, Line: line, Str: v}
}

func Ident(line int, name string) *Node {
	return &Node{Kind: KindIdent, Line: line, Name: name}
}

func Assign(line int, lhs, rhs *Node) *Node {
	return &Node{Kind: KindAssign, Line: line, Args: []*Node{lhs, rhs}}
}

func Call(line int, callee string, args ...*Node) *Node {
	return &Node{Kind: KindCall, Line: line, Name: callee, Args: args}
}

func MacroCall(line int, name string, args ...*Node) *Node {
	return &Node{Kind: KindMacroCall, Line: line, Name: name, Args: args}
}

func Block(line int, stmts ...*Node) *Node {
	return &Node{Kind: KindBlock, Line: line, Args: stmts}
}

func Pair(line int, key, value *Node) *Node {
	return &Node{Kind: KindPair, Line: line, Args: []*Node{key, value}}
}

func If(line int, cond, then *Node, alt *Node) *Node {
	args := []*Node{cond, then}
	if alt != nil {
		args = append(args, alt)
	}
	return &Node{Kind: KindIf, Line: line, Args: args}
}

func Param(line int, name string) *Node {
	return &Node{Kind: KindParam, Line: line, Name: name}
}

func Function(line int, name string, params *Node, body *Node) *Node {
	return &Node{Kind: KindFunction, Line: line, Name: name, Args: []*Node{params, body}}
}

func Return(line int, value *Node) *Node {
	n := &Node{Kind: KindReturn, Line: line}
	if value != nil {
		n.Args = []*Node{value}
	}
	return n
}
