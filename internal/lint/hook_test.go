package lint

import (
	"testing"

	"flint/internal/ast"
	"flint/internal/diag"
)

func TestFirstClaimantWins(t *testing.T) {
	var order []string
	claim := func(name string, claims bool) Hook {
		return HookFunc(func(node *ast.Node, ctx *Context) bool {
			order = append(order, name)
			return claims
		})
	}
	src := "@custom x\n"
	runSource(t, src, Options{Hooks: []Hook{
		claim("first", false),
		claim("second", true),
		claim("third", true),
	}})
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("dispatch order = %v", order)
	}
}

func TestClaimedNodeIsNotRecursed(t *testing.T) {
	// the macro argument is an undefined identifier; a claiming hook owns
	// the whole subtree, so no undefined diagnostic may appear
	src := "@custom missing_name\n"
	claimer := HookFunc(func(node *ast.Node, ctx *Context) bool { return true })
	bag := runSource(t, src, Options{Hooks: []Hook{claimer}})
	if bag.Len() != 0 {
		t.Fatalf("claimed node produced diagnostics: %v", bag.Items())
	}
}

func TestUnclaimedMacroRecursesIntoChildren(t *testing.T) {
	src := "@custom missing_name\n"
	bag := runSource(t, src, Options{})
	undef := findCode(bag, diag.SevError, diag.ErrUndefinedSymbol)
	if len(undef) != 1 || undef[0].Symbol != "missing_name" {
		t.Fatalf("expected undefined missing_name, got %v", bag.Items())
	}
}

func TestHookDeclaresBindings(t *testing.T) {
	src := "@maketype Foo\np = Foo(1)\nprintln(p)\n"
	maker := HookFunc(func(node *ast.Node, ctx *Context) bool {
		if node.Kind != ast.KindMacroCall || node.Name != "maketype" {
			return false
		}
		if first := node.First(); first != nil && first.Kind == ast.KindIdent {
			ctx.DeclareType(first.Name)
			ctx.DeclareFunction(first.Name)
		}
		return true
	})
	bag := runSource(t, src, Options{Hooks: []Hook{maker}})
	if len(findCode(bag, diag.SevError, diag.ErrUndefinedSymbol)) != 0 {
		t.Fatalf("hook-declared type should resolve, got %v", bag.Items())
	}
}

func TestHookReportsThroughEngine(t *testing.T) {
	src := "@deprecate oldname\n"
	reporter := HookFunc(func(node *ast.Node, ctx *Context) bool {
		ctx.Report(diag.SevWarning, diag.WarnDeprecated, node.Line, "oldname", "oldname is deprecated")
		return true
	})
	bag := runSource(t, src, Options{Hooks: []Hook{reporter}})
	dep := findCode(bag, diag.SevWarning, diag.WarnDeprecated)
	if len(dep) != 1 || dep[0].Line != 1 {
		t.Fatalf("expected hook-emitted warning, got %v", bag.Items())
	}
}

func TestPanickingHookIsContained(t *testing.T) {
	panicker := HookFunc(func(node *ast.Node, ctx *Context) bool {
		panic("boom")
	})
	fallback := HookFunc(func(node *ast.Node, ctx *Context) bool { return true })
	src := "@custom x\ny = 1\nprintln(y)\n"
	bag := runSource(t, src, Options{Hooks: []Hook{panicker, fallback}})
	failures := findCode(bag, diag.SevWarning, diag.WarnHookFailure)
	if len(failures) != 1 {
		t.Fatalf("expected one hook-failure warning, got %v", bag.Items())
	}
	// analysis of the rest of the file continues
	if len(findCode(bag, diag.SevError, diag.ErrUndefinedSymbol)) != 0 {
		t.Fatalf("analysis should continue after hook panic, got %v", bag.Items())
	}
}

func TestExtensionDataScopedToFrame(t *testing.T) {
	var sawOuter bool
	marker := HookFunc(func(node *ast.Node, ctx *Context) bool {
		data := ctx.ExtensionData()
		if _, ok := data["mark"]; ok {
			sawOuter = true
		}
		data["mark"] = true
		return true
	})
	// second invocation runs inside a fresh function frame: the outer
	// frame's mark must not be visible through ExtensionData
	src := "@custom a\nfunction f()\n@custom b\nreturn 1\nend\n"
	runSource(t, src, Options{Hooks: []Hook{marker}})
	if sawOuter {
		t.Fatalf("extension data leaked across frames")
	}
}
