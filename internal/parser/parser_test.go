package parser

import (
	"testing"

	"flint/internal/ast"
)

func parseOne(t *testing.T, src string) *ast.Node {
	t.Helper()
	forms := ParseFile(src)
	if len(forms) != 1 {
		t.Fatalf("%q: got %d top-level forms, want 1", src, len(forms))
	}
	return forms[0]
}

func TestAssignment(t *testing.T) {
	node := parseOne(t, "x = 1\n")
	if node.Kind != ast.KindAssign || len(node.Args) != 2 {
		t.Fatalf("node = %+v", node)
	}
	lhs, rhs := node.Args[0], node.Args[1]
	if lhs.Kind != ast.KindIdent || lhs.Name != "x" {
		t.Fatalf("lhs = %+v", lhs)
	}
	if rhs.Kind != ast.KindInt || rhs.Int != 1 {
		t.Fatalf("rhs = %+v", rhs)
	}
}

func TestBinaryPrecedence(t *testing.T) {
	node := parseOne(t, "x = 1 + 2 * 3\n")
	rhs := node.Args[1]
	if rhs.Kind != ast.KindCall || rhs.Name != "+" {
		t.Fatalf("rhs = %+v", rhs)
	}
	mul := rhs.Args[1]
	if mul.Kind != ast.KindCall || mul.Name != "*" {
		t.Fatalf("multiplication should bind tighter, got %+v", mul)
	}
}

func TestStringConcatShape(t *testing.T) {
	node := parseOne(t, "test = \"Hello\" + \"World\"\n")
	rhs := node.Args[1]
	if rhs.Kind != ast.KindCall || rhs.Name != "+" || len(rhs.Args) != 2 {
		t.Fatalf("rhs = %+v", rhs)
	}
	if rhs.Args[0].Kind != ast.KindString || rhs.Args[1].Kind != ast.KindString {
		t.Fatalf("operands = %+v, %+v", rhs.Args[0], rhs.Args[1])
	}
	if rhs.Line != 1 {
		t.Fatalf("line = %d, want 1", rhs.Line)
	}
}

func TestFunctionDefinition(t *testing.T) {
	node := parseOne(t, "function f(x, y::Int; z=1)\nreturn x\nend\n")
	if node.Kind != ast.KindFunction || node.Name != "f" || len(node.Args) != 2 {
		t.Fatalf("node = %+v", node)
	}
	params := node.Args[0]
	if params.Kind != ast.KindParams || len(params.Args) != 3 {
		t.Fatalf("params = %+v", params)
	}
	if params.Args[1].TypeAnn != "Int" {
		t.Fatalf("annotation = %q, want Int", params.Args[1].TypeAnn)
	}
	if !params.Args[2].Keyword || len(params.Args[2].Args) != 1 {
		t.Fatalf("keyword param = %+v", params.Args[2])
	}
	body := node.Args[1]
	if body.Kind != ast.KindBlock || len(body.Args) != 1 || body.Args[0].Kind != ast.KindReturn {
		t.Fatalf("body = %+v", body)
	}
}

func TestVariadicParam(t *testing.T) {
	node := parseOne(t, "function f(xs...)\nreturn xs\nend\n")
	params := node.Args[0]
	if len(params.Args) != 1 || !params.Args[0].Variadic {
		t.Fatalf("params = %+v", params)
	}
}

func TestShortFormFunction(t *testing.T) {
	node := parseOne(t, "f(x) = x + 1\n")
	if node.Kind != ast.KindAssign {
		t.Fatalf("node = %+v", node)
	}
	lhs := node.Args[0]
	if lhs.Kind != ast.KindCall || lhs.Name != "f" || len(lhs.Args) != 1 {
		t.Fatalf("lhs = %+v", lhs)
	}
}

func TestIfElseifElse(t *testing.T) {
	node := parseOne(t, "if a\nx = 1\nelseif b\nx = 2\nelse\nx = 3\nend\n")
	if node.Kind != ast.KindIf || len(node.Args) != 3 {
		t.Fatalf("node = %+v", node)
	}
	nested := node.Args[2]
	if nested.Kind != ast.KindIf || len(nested.Args) != 3 {
		t.Fatalf("elseif should nest as an if, got %+v", nested)
	}
}

func TestVersionGuardShape(t *testing.T) {
	node := parseOne(t, "if VERSION >= v\"0.4.0\"\nx = 1\nend\n")
	cond := node.Args[0]
	if cond.Kind != ast.KindCall || cond.Name != ">=" {
		t.Fatalf("cond = %+v", cond)
	}
	if cond.Args[0].Kind != ast.KindIdent || cond.Args[0].Name != "VERSION" {
		t.Fatalf("lhs = %+v", cond.Args[0])
	}
	if cond.Args[1].Kind != ast.KindVersion || cond.Args[1].Str != "0.4.0" {
		t.Fatalf("rhs = %+v", cond.Args[1])
	}
}

func TestForRange(t *testing.T) {
	node := parseOne(t, "for i = 1:10\nprintln(i)\nend\n")
	if node.Kind != ast.KindFor {
		t.Fatalf("node = %+v", node)
	}
	iter := node.Args[0]
	if iter.Kind != ast.KindAssign {
		t.Fatalf("iter = %+v", iter)
	}
	rng := iter.Args[1]
	if rng.Kind != ast.KindRange || len(rng.Args) != 2 {
		t.Fatalf("range = %+v", rng)
	}
}

func TestSteppedRange(t *testing.T) {
	node := parseOne(t, "r = 10:-1:1\n")
	rng := node.Args[1]
	if rng.Kind != ast.KindRange || len(rng.Args) != 3 {
		t.Fatalf("range = %+v", rng)
	}
	step := rng.Args[1]
	if step.Kind != ast.KindCall || step.Name != "-" {
		t.Fatalf("step = %+v", step)
	}
}

func TestDictLiterals(t *testing.T) {
	node := parseOne(t, "d = { :a=>1, :b=>2 }\n")
	dict := node.Args[1]
	if dict.Kind != ast.KindDict || len(dict.Args) != 2 {
		t.Fatalf("brace dict = %+v", dict)
	}
	pair := dict.Args[0]
	if pair.Kind != ast.KindPair || pair.Args[0].Kind != ast.KindSymbol || pair.Args[0].Str != "a" {
		t.Fatalf("pair = %+v", pair)
	}

	node = parseOne(t, "d = [ \"k\"=>1 ]\n")
	if node.Args[1].Kind != ast.KindTypedDict {
		t.Fatalf("bracket dict = %+v", node.Args[1])
	}

	node = parseOne(t, "v = [1, 2, 3]\n")
	if node.Args[1].Kind != ast.KindVect || len(node.Args[1].Args) != 3 {
		t.Fatalf("vector = %+v", node.Args[1])
	}
}

func TestTypeDeclaration(t *testing.T) {
	node := parseOne(t, "type Point\nx\ny\nfunction Point(x, y)\nnew(x, y)\nend\nend\n")
	if node.Kind != ast.KindTypeDecl || node.Name != "Point" {
		t.Fatalf("node = %+v", node)
	}
	body := node.Args[0]
	if len(body.Args) != 3 {
		t.Fatalf("body = %+v", body)
	}
	if body.Args[0].Kind != ast.KindIdent || body.Args[2].Kind != ast.KindFunction {
		t.Fatalf("members = %+v", body.Args)
	}
}

func TestMacroCallForms(t *testing.T) {
	node := parseOne(t, "@inline f(x)\n")
	if node.Kind != ast.KindMacroCall || node.Name != "inline" || len(node.Args) != 1 {
		t.Fatalf("node = %+v", node)
	}
	node = parseOne(t, "@assert(x)\n")
	if node.Kind != ast.KindMacroCall || node.Name != "assert" {
		t.Fatalf("node = %+v", node)
	}
}

func TestUsingDottedPath(t *testing.T) {
	node := parseOne(t, "using Base.Test\n")
	if node.Kind != ast.KindUsing || node.Name != "Base.Test" {
		t.Fatalf("node = %+v", node)
	}
}

func TestDottedCallName(t *testing.T) {
	node := parseOne(t, "Base.show(x)\n")
	if node.Kind != ast.KindCall || node.Name != "Base.show" {
		t.Fatalf("node = %+v", node)
	}
}

func TestLocalDeclaration(t *testing.T) {
	node := parseOne(t, "local x\n")
	if node.Kind != ast.KindAssign || len(node.Args) != 1 {
		t.Fatalf("node = %+v", node)
	}
}

func TestToleranceOnGarbage(t *testing.T) {
	// unknown punctuation must not hang or panic; surviving forms parse
	forms := ParseFile("$$$\nx = 1\n")
	found := false
	for _, f := range forms {
		if f.Kind == ast.KindAssign {
			found = true
		}
	}
	if !found {
		t.Fatalf("assignment after garbage not recovered: %+v", forms)
	}
}

func TestEmptyInput(t *testing.T) {
	if forms := ParseFile(""); len(forms) != 0 {
		t.Fatalf("forms = %+v", forms)
	}
	if forms := ParseFile("\n\n# nothing\n"); len(forms) != 0 {
		t.Fatalf("forms = %+v", forms)
	}
}

func TestSplatCallArgument(t *testing.T) {
	node := parseOne(t, "f(xs...)\n")
	if node.Kind != ast.KindCall || node.Name != "f" || len(node.Args) != 1 {
		t.Fatalf("node = %+v", node)
	}
	if !node.Args[0].Variadic {
		t.Fatalf("splatted argument should be marked variadic: %+v", node.Args[0])
	}

	node = parseOne(t, "g(a, xs...)\n")
	if len(node.Args) != 2 || node.Args[0].Variadic || !node.Args[1].Variadic {
		t.Fatalf("args = %+v, %+v", node.Args[0], node.Args[1])
	}
}

func TestBareTupleAssignment(t *testing.T) {
	node := parseOne(t, "a, b = g()\n")
	if node.Kind != ast.KindAssign || len(node.Args) != 2 {
		t.Fatalf("node = %+v", node)
	}
	lhs := node.Args[0]
	if lhs.Kind != ast.KindTuple || len(lhs.Args) != 2 {
		t.Fatalf("lhs = %+v", lhs)
	}
	if lhs.Args[0].Name != "a" || lhs.Args[1].Name != "b" {
		t.Fatalf("lhs names = %+v, %+v", lhs.Args[0], lhs.Args[1])
	}
	if node.Args[1].Kind != ast.KindCall || node.Args[1].Name != "g" {
		t.Fatalf("rhs = %+v", node.Args[1])
	}
}

func TestCallArgsKeepCommaSeparation(t *testing.T) {
	node := parseOne(t, "f(a, b)\n")
	if node.Kind != ast.KindCall || len(node.Args) != 2 {
		t.Fatalf("a comma in call position separates arguments: %+v", node)
	}
}
