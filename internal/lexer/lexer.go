package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"flint/internal/token"
)

// Lexer produces significant tokens from source text. Newlines are emitted
// as tokens because they terminate statements in the surface syntax.
type Lexer struct {
	src  string
	pos  int
	line int
	prev token.Token
	look *token.Token
}

func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look == nil {
		tok := lx.scan()
		lx.look = &tok
	}
	return *lx.look
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		lx.prev = tok
		return tok
	}
	tok := lx.scan()
	lx.prev = tok
	return tok
}

func (lx *Lexer) scan() token.Token {
	lx.skipSpacesAndComments()
	if lx.pos >= len(lx.src) {
		return token.Token{Kind: token.EOF, Line: lx.line}
	}
	ch := lx.src[lx.pos]
	switch {
	case ch == '\n':
		tok := token.Token{Kind: token.Newline, Line: lx.line}
		lx.pos++
		lx.line++
		return tok
	case ch == '"':
		return lx.scanString()
	case ch >= '0' && ch <= '9':
		return lx.scanNumber()
	case isIdentStart(rune(ch)) || ch >= utf8.RuneSelf:
		return lx.scanIdentOrKeyword()
	}
	return lx.scanOperator()
}

func (lx *Lexer) skipSpacesAndComments() {
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.pos++
		case ch == '#':
			if strings.HasPrefix(lx.src[lx.pos:], "#=") {
				lx.skipBlockComment()
			} else {
				for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
					lx.pos++
				}
			}
		default:
			return
		}
	}
}

func (lx *Lexer) skipBlockComment() {
	lx.pos += 2
	depth := 1
	for lx.pos < len(lx.src) && depth > 0 {
		if strings.HasPrefix(lx.src[lx.pos:], "#=") {
			depth++
			lx.pos += 2
			continue
		}
		if strings.HasPrefix(lx.src[lx.pos:], "=#") {
			depth--
			lx.pos += 2
			continue
		}
		if lx.src[lx.pos] == '\n' {
			lx.line++
		}
		lx.pos++
	}
}

func (lx *Lexer) scanString() token.Token {
	line := lx.line
	lx.pos++ // opening quote
	var sb strings.Builder
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		if ch == '"' {
			lx.pos++
			return token.Token{Kind: token.StringLit, Text: sb.String(), Line: line}
		}
		if ch == '\\' && lx.pos+1 < len(lx.src) {
			lx.pos++
			switch lx.src[lx.pos] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			default:
				sb.WriteByte(lx.src[lx.pos])
			}
			lx.pos++
			continue
		}
		if ch == '\n' {
			// unterminated string: stop at end of line, parser copes
			return token.Token{Kind: token.StringLit, Text: sb.String(), Line: line}
		}
		sb.WriteByte(ch)
		lx.pos++
	}
	return token.Token{Kind: token.StringLit, Text: sb.String(), Line: line}
}

func (lx *Lexer) scanNumber() token.Token {
	line := lx.line
	start := lx.pos
	kind := token.IntLit
	for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
		lx.pos++
	}
	// decimal part, but not a range like 1:10 or field access
	if lx.pos < len(lx.src) && lx.src[lx.pos] == '.' &&
		lx.pos+1 < len(lx.src) && isDigit(lx.src[lx.pos+1]) {
		kind = token.FloatLit
		lx.pos++
		for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			lx.pos++
		}
	}
	if lx.pos < len(lx.src) && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		save := lx.pos
		lx.pos++
		if lx.pos < len(lx.src) && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
			lx.pos++
		}
		if lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
			kind = token.FloatLit
			for lx.pos < len(lx.src) && isDigit(lx.src[lx.pos]) {
				lx.pos++
			}
		} else {
			lx.pos = save
		}
	}
	return token.Token{Kind: kind, Text: lx.src[start:lx.pos], Line: line}
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	line := lx.line
	start := lx.pos
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !isIdentContinue(r) {
			break
		}
		// a!=b is a comparison, not the identifier "a!"
		if r == '!' && lx.pos+1 < len(lx.src) && lx.src[lx.pos+1] == '=' {
			break
		}
		lx.pos += size
	}
	text := norm.NFC.String(lx.src[start:lx.pos])
	// v"0.4.0" version literal
	if text == "v" && lx.pos < len(lx.src) && lx.src[lx.pos] == '"' {
		str := lx.scanString()
		return token.Token{Kind: token.VersionLit, Text: str.Text, Line: line}
	}
	kind := token.LookupKeyword(text)
	return token.Token{Kind: kind, Text: text, Line: line}
}

func (lx *Lexer) scanOperator() token.Token {
	line := lx.line
	two := ""
	if lx.pos+1 < len(lx.src) {
		two = lx.src[lx.pos : lx.pos+2]
	}
	switch two {
	case "==":
		lx.pos += 2
		return token.Token{Kind: token.EqEq, Text: "==", Line: line}
	case "!=":
		lx.pos += 2
		return token.Token{Kind: token.BangEq, Text: "!=", Line: line}
	case "<=":
		lx.pos += 2
		return token.Token{Kind: token.LtEq, Text: "<=", Line: line}
	case ">=":
		lx.pos += 2
		return token.Token{Kind: token.GtEq, Text: ">=", Line: line}
	case "&&":
		lx.pos += 2
		return token.Token{Kind: token.AndAnd, Text: "&&", Line: line}
	case "||":
		lx.pos += 2
		return token.Token{Kind: token.OrOr, Text: "||", Line: line}
	case "=>":
		lx.pos += 2
		return token.Token{Kind: token.FatArrow, Text: "=>", Line: line}
	case "::":
		lx.pos += 2
		return token.Token{Kind: token.ColonColon, Text: "::", Line: line}
	}
	if strings.HasPrefix(lx.src[lx.pos:], "...") {
		lx.pos += 3
		return token.Token{Kind: token.Ellipsis, Text: "...", Line: line}
	}
	ch := lx.src[lx.pos]
	lx.pos++
	single := map[byte]token.Kind{
		'=': token.Assign,
		'+': token.Plus,
		'-': token.Minus,
		'*': token.Star,
		'/': token.Slash,
		'<': token.Lt,
		'>': token.Gt,
		'&': token.Amp,
		'|': token.Pipe,
		'!': token.Bang,
		';': token.Semicolon,
		',': token.Comma,
		'.': token.Dot,
		'@': token.At,
		'(': token.LParen,
		')': token.RParen,
		'[': token.LBracket,
		']': token.RBracket,
		'{': token.LBrace,
		'}': token.RBrace,
	}
	if ch == ':' {
		// :name is a symbol literal only in prefix position; after an
		// operand the colon separates range parts.
		if !lx.prev.IsOperandEnd() && lx.pos < len(lx.src) {
			r, _ := utf8.DecodeRuneInString(lx.src[lx.pos:])
			if isIdentStart(r) {
				start := lx.pos
				for lx.pos < len(lx.src) {
					r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
					if !isIdentContinue(r) {
						break
					}
					lx.pos += size
				}
				return token.Token{Kind: token.SymbolLit, Text: norm.NFC.String(lx.src[start:lx.pos]), Line: line}
			}
		}
		return token.Token{Kind: token.Colon, Text: ":", Line: line}
	}
	if kind, ok := single[ch]; ok {
		return token.Token{Kind: kind, Text: string(ch), Line: line}
	}
	return token.Token{Kind: token.Invalid, Text: string(ch), Line: line}
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || r == '!' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
