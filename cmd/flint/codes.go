package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"flint/internal/diag"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List the diagnostic catalog",
	Run:   runCodes,
}

type codeEntry struct {
	sev   diag.Severity
	code  diag.Code
	descr string
}

var catalog = []codeEntry{
	{diag.SevError, diag.ErrUndefinedSymbol, "use of undefined symbol"},
	{diag.SevError, diag.ErrCtorNameMismatch, "constructor name differs from type name"},
	{diag.SevError, diag.ErrCtorArgCount, "constructor argument count mismatch"},
	{diag.SevError, diag.ErrDupParam, "repeated parameter name"},
	{diag.SevError, diag.ErrVariadicNotLast, "variadic parameter not in trailing position"},
	{diag.SevError, diag.ErrPositionalAfterDefault, "positional parameter after defaulted parameter"},
	{diag.SevError, diag.ErrReminder, "generated error reminder"},
	{diag.SevError, diag.ErrDictValueTypes, "mixed value types in uniform-type dictionary literal"},
	{diag.SevError, diag.ErrStringConcatPlus, "string uses * to concatenate"},
	{diag.SevError, diag.ErrKeywordNoDefault, "keyword parameter lacks default"},
	{diag.SevWarning, diag.WarnReminder, "generated warning reminder"},
	{diag.SevWarning, diag.WarnDeadBranch, "unreachable branch under literal boolean test"},
	{diag.SevWarning, diag.WarnDupDictKey, "duplicate dictionary key"},
	{diag.SevWarning, diag.WarnDeprecated, "deprecated API use"},
	{diag.SevWarning, diag.WarnRangeStep, "range direction conflicts with step"},
	{diag.SevWarning, diag.WarnHookFailure, "extension hook failure"},
	{diag.SevWarning, diag.WarnUnstableType, "variable changes concrete type"},
	{diag.SevWarning, diag.WarnCtorNoReturn, "constructor path does not return constructed value"},
	{diag.SevInfo, diag.InfoReminder, "generated info reminder"},
	{diag.SevInfo, diag.InfoTypeQuery, "reported expression type"},
	{diag.SevInfo, diag.InfoVersionQuery, "version reachability probe"},
	{diag.SevInfo, diag.InfoBitwiseBool, "bitwise operator on boolean operands"},
	{diag.SevInfo, diag.InfoUntypedDict, "uniform values in heterogeneous-type dictionary literal"},
	{diag.SevInfo, diag.InfoShadowOuter, "local reuses name from outer scope"},
	{diag.SevInfo, diag.InfoUnusedVar, "unused local variable"},
	{diag.SevInfo, diag.InfoUnusedArg, "unused function argument"},
	{diag.SevInfo, diag.InfoBadPragma, "unrecognized lint directive"},
}

func runCodes(_ *cobra.Command, _ []string) {
	entries := make([]codeEntry, len(catalog))
	copy(entries, catalog)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].sev != entries[j].sev {
			return entries[i].sev > entries[j].sev
		}
		return entries[i].code < entries[j].code
	})
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%s  %s\n", diag.Tag(e.sev, e.code), e.descr)
	}
}
