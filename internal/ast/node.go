package ast

// Kind enumerates the construct kinds the analyzer dispatches on.
type Kind uint8

const (
	KindInvalid Kind = iota

	// Literals
	KindInt
	KindFloat
	KindString
	KindBool
	KindSymbol  // :name
	KindVersion // v"0.4.0"

	KindIdent

	KindAssign // Args[0] = lhs, Args[1] = rhs
	KindCall   // Name = callee or operator, Args = operands
	KindMacroCall

	KindFunction // Name, Args[0] = params tuple, Args[1] = body block
	KindTypeDecl // Name, Args[0] = body block
	KindParams   // parameter list of a function
	KindParam    // one parameter: Name, optional Args[0] = default

	KindIf    // Args[0] = cond, Args[1] = then, optional Args[2] = else
	KindWhile // Args[0] = cond, Args[1] = body
	KindFor   // Args[0] = iteration spec, Args[1] = body
	KindBlock

	KindTuple
	KindVect      // [a, b, c]
	KindDict      // { k => v, ... } heterogeneous-type literal syntax
	KindTypedDict // [ k => v, ... ] uniform-type literal syntax
	KindPair      // k => v
	KindRange     // start:stop or start:step:stop

	KindModule // Name, Args[0] = body block
	KindUsing  // Name = module path
	KindImport // Name = module path

	KindReturn // optional Args[0]
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindBool:      "bool",
	KindSymbol:    "symbol",
	KindVersion:   "version",
	KindIdent:     "ident",
	KindAssign:    "assign",
	KindCall:      "call",
	KindMacroCall: "macrocall",
	KindFunction:  "function",
	KindTypeDecl:  "typedecl",
	KindParams:    "params",
	KindParam:     "param",
	KindIf:        "if",
	KindWhile:     "while",
	KindFor:       "for",
	KindBlock:     "block",
	KindTuple:     "tuple",
	KindVect:      "vect",
	KindDict:      "dict",
	KindTypedDict: "typeddict",
	KindPair:      "pair",
	KindRange:     "range",
	KindModule:    "module",
	KindUsing:     "using",
	KindImport:    "import",
	KindReturn:    "return",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Node is one element of the parsed tree. The analyzer borrows nodes
// read-only; the parser (or any front end) owns them.
//
// Every node carries a stable Line used for diagnostic attribution.
type Node struct {
	Kind Kind
	Line int

	Name string // identifier text, callee/operator, definition or module name

	// Literal payloads
	Str   string // string/symbol/version literal text
	Int   int64
	Float float64
	Bool  bool

	// Optional type annotation root symbol (x::Int, parametric types by root)
	TypeAnn string

	// Parameter flags
	Variadic bool
	Keyword  bool

	Args []*Node
}

// First returns the first child or nil.
func (n *Node) First() *Node {
	if n == nil || len(n.Args) == 0 {
		return nil
	}
	return n.Args[0]
}

// IsLiteral reports whether the node is a plain literal value.
func (n *Node) IsLiteral() bool {
	if n == nil {
		return false
	}
	switch n.Kind {
	case KindInt, KindFloat, KindString, KindBool, KindSymbol, KindVersion:
		return true
	}
	return false
}

// IsOperator reports whether a call node invokes the named operator.
func (n *Node) IsOperator(op string) bool {
	return n != nil && n.Kind == KindCall && n.Name == op
}
