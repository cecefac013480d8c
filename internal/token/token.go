package token

// Kind identifies a lexical token class.
type Kind uint8

const (
	Invalid Kind = iota
	EOF
	Newline

	Ident
	IntLit
	FloatLit
	StringLit
	SymbolLit  // :name
	VersionLit // v"0.4.0"

	// Operators and punctuation
	Assign   // =
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	EqEq     // ==
	BangEq   // !=
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	AndAnd   // &&
	OrOr     // ||
	Amp      // &
	Pipe     // |
	Bang     // !
	FatArrow // =>
	Ellipsis // ...
	ColonColon
	Colon
	Semicolon
	Comma
	Dot
	At
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace

	// Keywords
	KwFunction
	KwEnd
	KwIf
	KwElseif
	KwElse
	KwFor
	KwWhile
	KwBegin
	KwModule
	KwUsing
	KwImport
	KwReturn
	KwType
	KwStruct
	KwMacro
	KwLocal
	KwGlobal
	KwConst
	KwTrue
	KwFalse
)

// Token is one lexical unit with its line for diagnostic attribution.
type Token struct {
	Kind Kind
	Text string
	Line int
}

// IsLiteral reports whether the token is a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, SymbolLit, VersionLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsOperandEnd reports whether the token can close an operand. Used by the
// lexer to disambiguate range colons from symbol literals.
func (t Token) IsOperandEnd() bool {
	switch t.Kind {
	case Ident, IntLit, FloatLit, StringLit, SymbolLit, VersionLit,
		RParen, RBracket, RBrace, KwTrue, KwFalse, KwEnd:
		return true
	default:
		return false
	}
}

// IsComparison reports whether the token is a comparison operator.
func (t Token) IsComparison() bool {
	switch t.Kind {
	case EqEq, BangEq, Lt, LtEq, Gt, GtEq:
		return true
	default:
		return false
	}
}

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	EOF:        "eof",
	Newline:    "newline",
	Ident:      "identifier",
	IntLit:     "int literal",
	FloatLit:   "float literal",
	StringLit:  "string literal",
	SymbolLit:  "symbol literal",
	VersionLit: "version literal",
	Assign:     "=",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	EqEq:       "==",
	BangEq:     "!=",
	Lt:         "<",
	LtEq:       "<=",
	Gt:         ">",
	GtEq:       ">=",
	AndAnd:     "&&",
	OrOr:       "||",
	Amp:        "&",
	Pipe:       "|",
	Bang:       "!",
	FatArrow:   "=>",
	Ellipsis:   "...",
	ColonColon: "::",
	Colon:      ":",
	Semicolon:  ";",
	Comma:      ",",
	Dot:        ".",
	At:         "@",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LBrace:     "{",
	RBrace:     "}",
	KwFunction: "function",
	KwEnd:      "end",
	KwIf:       "if",
	KwElseif:   "elseif",
	KwElse:     "else",
	KwFor:      "for",
	KwWhile:    "while",
	KwBegin:    "begin",
	KwModule:   "module",
	KwUsing:    "using",
	KwImport:   "import",
	KwReturn:   "return",
	KwType:     "type",
	KwStruct:   "struct",
	KwMacro:    "macro",
	KwLocal:    "local",
	KwGlobal:   "global",
	KwConst:    "const",
	KwTrue:     "true",
	KwFalse:    "false",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "invalid"
}
