package diag

import "fmt"

// Code is a 3-digit numeric id, scoped to a severity. The same number may
// appear under different severities (E341 and I341 are distinct findings).
type Code uint16

const (
	UnknownCode Code = 0

	// Errors
	ErrUndefinedSymbol        Code = 311
	ErrCtorNameMismatch       Code = 321
	ErrCtorArgCount           Code = 322
	ErrDupParam               Code = 332
	ErrVariadicNotLast        Code = 333
	ErrPositionalAfterDefault Code = 334
	ErrReminder               Code = 341
	ErrDictValueTypes         Code = 411
	ErrStringConcatPlus       Code = 422
	ErrKeywordNoDefault       Code = 431

	// Warnings
	WarnReminder     Code = 341
	WarnDeadBranch   Code = 351
	WarnUnstableType Code = 531
	WarnHookFailure  Code = 482
	WarnDupDictKey   Code = 361
	WarnDeprecated   Code = 391
	WarnRangeStep    Code = 441
	WarnCtorNoReturn Code = 545

	// Infos
	InfoReminder     Code = 341
	InfoTypeQuery    Code = 342
	InfoVersionQuery Code = 343
	InfoBitwiseBool  Code = 371
	InfoUntypedDict  Code = 381
	InfoShadowOuter  Code = 391
	InfoUnusedVar    Code = 392
	InfoUnusedArg    Code = 393
	InfoBadPragma    Code = 481
)

func (c Code) String() string {
	return fmt.Sprintf("%03d", uint16(c))
}

// Tag renders the severity-scoped code, e.g. "E422".
func Tag(sev Severity, code Code) string {
	return sev.Letter() + code.String()
}
