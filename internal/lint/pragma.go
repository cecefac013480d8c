package lint

import (
	"fmt"
	"strconv"
	"strings"

	"flint/internal/ast"
	"flint/internal/diag"
)

// pragmaName is the reserved annotation call recognized syntactically:
// a call-like node whose first argument is a literal string.
const pragmaName = "lintpragma"

// DirectiveCategory enumerates the recognized annotation phrases.
type DirectiveCategory uint8

const (
	DirIgnoreUnused DirectiveCategory = iota
	DirIgnoreUnstable
	DirIgnoreUndefined
	DirIgnoreDeprecated
	DirIgnoreDeadCode
	DirInfoMe
	DirWarnMe
	DirErrorMe
	DirPrintMe
	DirInfoType
	DirInfoVersion
)

// Directive is one parsed annotation instance.
type Directive struct {
	Category DirectiveCategory
	Target   string // symbol or free text after the phrase prefix
	Line     int
}

// phrase prefixes are matched case-sensitively and exactly; anything else
// is not a directive and falls through to hook dispatch.
var pragmaPrefixes = []struct {
	prefix   string
	category DirectiveCategory
}{
	{"Ignore unstable type variable ", DirIgnoreUnstable},
	{"Ignore undefined variable ", DirIgnoreUndefined},
	{"Ignore deprecated ", DirIgnoreDeprecated},
	{"Ignore unused ", DirIgnoreUnused},
	{"Ignore dead code", DirIgnoreDeadCode},
	{"Info type ", DirInfoType},
	{"Info version ", DirInfoVersion},
	{"Info me ", DirInfoMe},
	{"Warn me ", DirWarnMe},
	{"Error me ", DirErrorMe},
	{"Print me ", DirPrintMe},
}

// TryParseDirective recognizes the reserved annotation call shape and
// extracts its category and target text. Returns nil for anything that is
// not a well-formed directive, including unknown phrasing.
func TryParseDirective(node *ast.Node) *Directive {
	if node == nil {
		return nil
	}
	if node.Kind != ast.KindCall && node.Kind != ast.KindMacroCall {
		return nil
	}
	if node.Name != pragmaName {
		return nil
	}
	first := node.First()
	if first == nil || first.Kind != ast.KindString {
		return nil
	}
	text := first.Str
	for _, entry := range pragmaPrefixes {
		if strings.HasPrefix(text, entry.prefix) {
			return &Directive{
				Category: entry.category,
				Target:   strings.TrimPrefix(text, entry.prefix),
				Line:     node.Line,
			}
		}
	}
	return nil
}

// applyDirective interprets a parsed directive against the live stack.
// Suppressions are not retroactive: diagnostics already emitted stay.
func (a *Analyzer) applyDirective(d *Directive) {
	switch d.Category {
	case DirIgnoreUnused:
		a.stack.Suppress(SuppressUnused, d.Target)
	case DirIgnoreUnstable:
		a.stack.Suppress(SuppressUnstable, d.Target)
	case DirIgnoreUndefined:
		a.stack.Suppress(SuppressUndefined, d.Target)
	case DirIgnoreDeprecated:
		a.stack.Suppress(SuppressDeprecated, d.Target)
	case DirIgnoreDeadCode:
		a.stack.Suppress(SuppressDeadCode, "")
	case DirInfoMe:
		a.report(diag.SevInfo, diag.InfoReminder, d.Line, "", d.Target)
	case DirWarnMe:
		a.report(diag.SevWarning, diag.WarnReminder, d.Line, "", d.Target)
	case DirErrorMe:
		a.report(diag.SevError, diag.ErrReminder, d.Line, "", d.Target)
	case DirPrintMe:
		// side channel only, no diagnostic record
		if a.out != nil {
			fmt.Fprintln(a.out, d.Target)
		}
	case DirInfoType:
		t := a.inferDirectiveExpr(d.Target)
		a.report(diag.SevInfo, diag.InfoTypeQuery, d.Line, d.Target,
			"typeof("+d.Target+") == "+t.String())
	case DirInfoVersion:
		a.applyVersionProbe(d)
	}
}

// inferDirectiveExpr resolves the approximate type of the small expression
// fragments "Info type" accepts: literals and identifiers. Anything richer
// is Unknown, matching the best-effort contract of RecordAssignment.
func (a *Analyzer) inferDirectiveExpr(text string) Type {
	text = strings.TrimSpace(text)
	if text == "" {
		return Unknown()
	}
	if text == "true" || text == "false" {
		return Concrete("Bool")
	}
	if strings.HasPrefix(text, "\"") {
		return Concrete("String")
	}
	if strings.HasPrefix(text, ":") {
		return Concrete("Symbol")
	}
	if _, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Concrete("Int")
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return Concrete("Float64")
	}
	return a.InferType(ast.Ident(0, text))
}

// applyVersionProbe reports whether the branch containing the directive is
// reachable when the probe's version is the target. This is a pure read
// against the reachability evaluator, independent of suppression.
func (a *Analyzer) applyVersionProbe(d *Directive) {
	probe, ok := ParseVersion(d.Target)
	if !ok {
		probe = a.target
	}
	reachable := true
	for _, g := range a.guards {
		holds := g.guard.Holds(probe)
		if g.inElse {
			holds = !holds
		}
		if !holds {
			reachable = false
			break
		}
	}
	a.report(diag.SevInfo, diag.InfoVersionQuery, d.Line, "",
		fmt.Sprintf("version %s reachable: %t", probe, reachable))
}
