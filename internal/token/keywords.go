package token

var keywords = map[string]Kind{
	"function": KwFunction,
	"end":      KwEnd,
	"if":       KwIf,
	"elseif":   KwElseif,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"begin":    KwBegin,
	"module":   KwModule,
	"using":    KwUsing,
	"import":   KwImport,
	"return":   KwReturn,
	"type":     KwType,
	"struct":   KwStruct,
	"macro":    KwMacro,
	"local":    KwLocal,
	"global":   KwGlobal,
	"const":    KwConst,
	"true":     KwTrue,
	"false":    KwFalse,
}

// LookupKeyword maps an identifier spelling to its keyword kind,
// returning Ident when the spelling is not reserved.
func LookupKeyword(text string) Kind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return Ident
}
