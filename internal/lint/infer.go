package lint

import "flint/internal/ast"

// TypeTag is the small tagged variant used for heuristic type tracking.
// There is deliberately no lattice here: a type is either a known concrete
// root symbol, unknown, or top (gave up after conflicting observations).
type TypeTag uint8

const (
	TypeUnknown TypeTag = iota
	TypeTop
	TypeConcrete
)

type Type struct {
	Tag  TypeTag
	Name string
}

func Unknown() Type             { return Type{Tag: TypeUnknown} }
func Top() Type                 { return Type{Tag: TypeTop} }
func Concrete(name string) Type { return Type{Tag: TypeConcrete, Name: name} }

func (t Type) String() string {
	switch t.Tag {
	case TypeConcrete:
		return t.Name
	case TypeTop:
		return "Any"
	}
	return "Unknown"
}

// widening is the short explicit table of accepted concrete transitions.
// Anything not listed counts as instability when the concrete root changes.
var widening = map[[2]string]bool{
	{"Bool", "Int"}:        true,
	{"Int8", "Int"}:        true,
	{"Int16", "Int"}:       true,
	{"Int32", "Int"}:       true,
	{"Int", "Int64"}:       true,
	{"Int64", "Int"}:       true,
	{"Float32", "Float64"}: true,
}

// Widens reports whether moving from prev to next is an accepted widening.
func Widens(prev, next Type) bool {
	if prev.Tag != TypeConcrete || next.Tag != TypeConcrete {
		return true
	}
	return widening[[2]string{prev.Name, next.Name}]
}

// subtypes maps abstract annotation roots to the concrete roots they admit.
var subtypes = map[string]map[string]bool{
	"Integer": {"Int": true, "Int64": true, "Int32": true, "Bool": true},
	"Real":    {"Int": true, "Int64": true, "Float64": true, "Float32": true},
	"Number":  {"Int": true, "Int64": true, "Float64": true, "Float32": true},
	"Any":     nil, // admits everything
}

// Fits reports whether a concrete observation fits a declared root.
func Fits(declared string, observed Type) bool {
	if declared == "" || declared == "Any" || observed.Tag != TypeConcrete {
		return true
	}
	if declared == observed.Name {
		return true
	}
	admits, ok := subtypes[declared]
	if !ok {
		return true // unknown annotation, assume the author knows better
	}
	return admits[observed.Name]
}

// InferType computes the best-effort approximate type of an expression at
// the current point of analysis. It is heuristic by design: anything not
// obviously typed is Unknown, never a guess.
func (a *Analyzer) InferType(node *ast.Node) Type {
	if node == nil {
		return Unknown()
	}
	switch node.Kind {
	case ast.KindInt:
		return Concrete("Int")
	case ast.KindFloat:
		return Concrete("Float64")
	case ast.KindString:
		return Concrete("String")
	case ast.KindBool:
		return Concrete("Bool")
	case ast.KindSymbol:
		return Concrete("Symbol")
	case ast.KindVersion:
		return Concrete("VersionNumber")
	case ast.KindVect:
		return Concrete("Vector")
	case ast.KindTuple:
		return Concrete("Tuple")
	case ast.KindDict, ast.KindTypedDict:
		return Concrete("Dict")
	case ast.KindRange:
		return Concrete("Range")
	case ast.KindIdent:
		if info := a.stack.Resolve(rootSymbol(node.Name)); info != nil {
			if info.DeclaredType != "" {
				return Concrete(info.DeclaredType)
			}
			return info.Inferred
		}
		return Unknown()
	case ast.KindCall:
		return a.inferCall(node)
	}
	return Unknown()
}

func (a *Analyzer) inferCall(node *ast.Node) Type {
	switch node.Name {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||", "!":
		return Concrete("Bool")
	case "+", "-", "*", "/":
		return a.inferArith(node)
	case "&", "|":
		lhs := a.InferType(node.First())
		if len(node.Args) == 2 {
			rhs := a.InferType(node.Args[1])
			if lhs == Concrete("Bool") && rhs == Concrete("Bool") {
				return Concrete("Bool")
			}
		}
		return a.inferArith(node)
	}
	// a constructor call yields the constructed type
	if _, ok := a.resolveType(node.Name); ok {
		return Concrete(rootSymbol(node.Name))
	}
	if ret, ok := builtinReturns[node.Name]; ok {
		return Concrete(ret)
	}
	return Unknown()
}

func (a *Analyzer) inferArith(node *ast.Node) Type {
	if len(node.Args) == 0 {
		return Unknown()
	}
	result := a.InferType(node.Args[0])
	for _, arg := range node.Args[1:] {
		t := a.InferType(arg)
		result = joinArith(result, t)
	}
	return result
}

func joinArith(lhs, rhs Type) Type {
	if lhs.Tag != TypeConcrete || rhs.Tag != TypeConcrete {
		return Unknown()
	}
	if lhs.Name == rhs.Name {
		return lhs
	}
	numeric := map[string]bool{"Int": true, "Int64": true, "Float64": true, "Float32": true, "Bool": true}
	if numeric[lhs.Name] && numeric[rhs.Name] {
		if lhs.Name == "Float64" || rhs.Name == "Float64" {
			return Concrete("Float64")
		}
		return Concrete("Int")
	}
	return Unknown()
}

func (a *Analyzer) resolveType(name string) (string, bool) {
	root := rootSymbol(name)
	for i := a.stack.Depth() - 1; i >= 0; i-- {
		if _, ok := a.stack.frames[i].Types[root]; ok {
			return root, true
		}
	}
	return "", false
}

// rootSymbol strips a dotted qualification down to its final segment for
// resolution purposes (Base.show resolves via Base).
func rootSymbol(name string) string {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}
