package lint

import (
	"fmt"

	"flint/internal/ast"
	"flint/internal/diag"
)

// checkStringConcat flags + applied to string operands; the language
// concatenates with *.
func (a *Analyzer) checkStringConcat(node *ast.Node) {
	if node.Name != "+" || len(node.Args) < 2 {
		return
	}
	strOperands := 0
	for _, arg := range node.Args {
		if a.InferType(arg) == Concrete("String") {
			strOperands++
		}
	}
	if strOperands >= 2 {
		a.report(diag.SevError, diag.ErrStringConcatPlus, node.Line, "",
			"string uses * to concatenate")
	}
}

// checkBitwiseBool suggests the short-circuit forms when a bitwise
// operator is applied to boolean-typed operands.
func (a *Analyzer) checkBitwiseBool(node *ast.Node) {
	if (node.Name != "&" && node.Name != "|") || len(node.Args) != 2 {
		return
	}
	lhs := a.InferType(node.Args[0])
	rhs := a.InferType(node.Args[1])
	if lhs != Concrete("Bool") || rhs != Concrete("Bool") {
		return
	}
	suggest := "&&"
	if node.Name == "|" {
		suggest = "||"
	}
	a.report(diag.SevInfo, diag.InfoBitwiseBool, node.Line, node.Name,
		"bitwise "+node.Name+" on boolean operands, use "+suggest+" instead")
}

// checkDeprecated flags calls into the retired API table.
func (a *Analyzer) checkDeprecated(node *ast.Node) {
	replacement, ok := deprecated[node.Name]
	if !ok {
		return
	}
	if a.stack.Suppressed(SuppressDeprecated, node.Name) {
		return
	}
	a.report(diag.SevWarning, diag.WarnDeprecated, node.Line, node.Name,
		node.Name+" is deprecated, use "+replacement+" instead")
}

// checkDict scans a dictionary literal's key-value pairs. Duplicate literal
// keys always warn. Under the uniform-type literal syntax mixed value types
// are an error; under the heterogeneous syntax uniform value types are a
// performance info.
func (a *Analyzer) checkDict(node *ast.Node, uniformSyntax bool) {
	seen := make(map[string]bool)
	valueTypes := make(map[string]bool)
	allConcrete := true
	pairs := 0
	for _, elem := range node.Args {
		if elem.Kind != ast.KindPair || len(elem.Args) != 2 {
			continue
		}
		pairs++
		key, value := elem.Args[0], elem.Args[1]
		if repr, ok := literalKeyRepr(key); ok {
			if seen[repr] {
				a.report(diag.SevWarning, diag.WarnDupDictKey, elem.Line, repr,
					"duplicate key "+repr+" in dictionary literal")
			}
			seen[repr] = true
		}
		t := a.InferType(value)
		if t.Tag == TypeConcrete {
			valueTypes[t.Name] = true
		} else {
			allConcrete = false
		}
	}
	if pairs < 2 {
		return
	}
	if uniformSyntax && len(valueTypes) > 1 {
		a.report(diag.SevError, diag.ErrDictValueTypes, node.Line, "",
			"mixed value types in a uniform-type dictionary literal")
	}
	if !uniformSyntax && allConcrete && len(valueTypes) == 1 {
		a.report(diag.SevInfo, diag.InfoUntypedDict, node.Line, "",
			"dictionary values all share one type, prefer the uniform-type literal")
	}
}

func literalKeyRepr(key *ast.Node) (string, bool) {
	if key == nil {
		return "", false
	}
	switch key.Kind {
	case ast.KindSymbol:
		return ":" + key.Str, true
	case ast.KindString:
		return "\"" + key.Str + "\"", true
	case ast.KindInt:
		return fmt.Sprintf("%d", key.Int), true
	case ast.KindBool:
		return fmt.Sprintf("%t", key.Bool), true
	}
	return "", false
}

// checkRange flags range literals whose direction implied by the start and
// stop literals conflicts with the explicit or implied step.
func (a *Analyzer) checkRange(node *ast.Node) {
	var start, stop, step *ast.Node
	switch len(node.Args) {
	case 2:
		start, stop = node.Args[0], node.Args[1]
	case 3:
		start, step, stop = node.Args[0], node.Args[1], node.Args[2]
	default:
		return
	}
	sv, ok1 := intLiteral(start)
	ev, ok2 := intLiteral(stop)
	if !ok1 || !ok2 {
		return
	}
	stepv := int64(1)
	if step != nil {
		v, ok := intLiteral(step)
		if !ok {
			return
		}
		stepv = v
	}
	if stepv == 0 {
		a.report(diag.SevWarning, diag.WarnRangeStep, node.Line, "",
			"range step is zero")
		return
	}
	if (stepv > 0 && sv > ev) || (stepv < 0 && sv < ev) {
		a.report(diag.SevWarning, diag.WarnRangeStep, node.Line, "",
			fmt.Sprintf("range %d:%d never iterates with step %d", sv, ev, stepv))
	}
}

func intLiteral(n *ast.Node) (int64, bool) {
	if n == nil {
		return 0, false
	}
	switch n.Kind {
	case ast.KindInt:
		return n.Int, true
	case ast.KindCall:
		// unary minus over an int literal
		if n.Name == "-" && len(n.Args) == 1 && n.Args[0].Kind == ast.KindInt {
			return -n.Args[0].Int, true
		}
	}
	return 0, false
}
