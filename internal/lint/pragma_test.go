package lint

import (
	"testing"

	"flint/internal/ast"
)

func pragmaCall(text string) *ast.Node {
	return ast.Call(1, "lintpragma", ast.StringLit(1, text))
}

func TestTryParseDirective(t *testing.T) {
	cases := []struct {
		text     string
		category DirectiveCategory
		target   string
	}{
		{"Ignore unused foo", DirIgnoreUnused, "foo"},
		{"Ignore unstable type variable a", DirIgnoreUnstable, "a"},
		{"Ignore undefined variable y", DirIgnoreUndefined, "y"},
		{"Ignore deprecated int", DirIgnoreDeprecated, "int"},
		{"Ignore dead code", DirIgnoreDeadCode, ""},
		{"Info me look here", DirInfoMe, "look here"},
		{"Warn me really look", DirWarnMe, "really look"},
		{"Error me broken", DirErrorMe, "broken"},
		{"Print me some text", DirPrintMe, "some text"},
		{"Info type x", DirInfoType, "x"},
		{"Info version 0.4.0", DirInfoVersion, "0.4.0"},
	}
	for _, tc := range cases {
		d := TryParseDirective(pragmaCall(tc.text))
		if d == nil {
			t.Errorf("%q: not recognized", tc.text)
			continue
		}
		if d.Category != tc.category || d.Target != tc.target {
			t.Errorf("%q: got (%d, %q), want (%d, %q)",
				tc.text, d.Category, d.Target, tc.category, tc.target)
		}
	}
}

func TestTryParseDirectiveRejects(t *testing.T) {
	cases := []*ast.Node{
		nil,
		ast.Ident(1, "lintpragma"),
		ast.Call(1, "other", ast.StringLit(1, "Ignore unused x")),
		ast.Call(1, "lintpragma"),                     // no argument
		ast.Call(1, "lintpragma", ast.IntLit(1, 42)),  // non-string argument
		pragmaCall("ignore unused x"),                 // phrases are case-sensitive
		pragmaCall("Something else entirely"),         // unknown phrase
		pragmaCall("Ignore unusable type variable a"), // near miss
	}
	for i, node := range cases {
		if d := TryParseDirective(node); d != nil {
			t.Errorf("case %d: unexpectedly parsed into %+v", i, d)
		}
	}
}

func TestDirectiveViaMacroForm(t *testing.T) {
	node := ast.MacroCall(1, "lintpragma", ast.StringLit(1, "Ignore unused x"))
	d := TryParseDirective(node)
	if d == nil || d.Category != DirIgnoreUnused || d.Target != "x" {
		t.Fatalf("macro-form directive = %+v", d)
	}
}
