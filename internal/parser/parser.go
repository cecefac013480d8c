package parser

import (
	"flint/internal/ast"
	"flint/internal/lexer"
	"flint/internal/token"
)

// Parser is a tolerant recursive-descent front end. It never fails hard:
// constructs it does not understand are skipped so that analysis can keep
// going on the rest of the file.
type Parser struct {
	lx  *lexer.Lexer
	tok token.Token
}

// ParseFile parses source text into a sequence of top-level forms.
func ParseFile(src string) []*ast.Node {
	p := &Parser{lx: lexer.New(src)}
	p.next()
	return p.parseStatements(token.EOF)
}

func (p *Parser) next() {
	p.tok = p.lx.Next()
}

func (p *Parser) skipTerminators() {
	for p.tok.Kind == token.Newline || p.tok.Kind == token.Semicolon {
		p.next()
	}
}

// parseStatements consumes until one of the given closers (or EOF) is the
// current token. Closers themselves are not consumed.
func (p *Parser) parseStatements(closers ...token.Kind) []*ast.Node {
	var stmts []*ast.Node
	for {
		p.skipTerminators()
		if p.tok.Kind == token.EOF {
			return stmts
		}
		for _, c := range closers {
			if p.tok.Kind == c {
				return stmts
			}
		}
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			// unknown construct: skip a token to make progress
			p.next()
		}
	}
}

func (p *Parser) parseStatement() *ast.Node {
	switch p.tok.Kind {
	case token.KwFunction, token.KwMacro:
		return p.parseFunction()
	case token.KwType, token.KwStruct:
		return p.parseTypeDecl()
	case token.KwModule:
		return p.parseModule()
	case token.KwUsing, token.KwImport:
		return p.parseUsing()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwBegin:
		return p.parseBegin()
	case token.KwReturn:
		return p.parseReturn()
	case token.KwLocal, token.KwGlobal, token.KwConst:
		return p.parseDeclModifier()
	}
	return p.parseSimpleStatement()
}

// expectEnd consumes a trailing "end" when present.
func (p *Parser) expectEnd() {
	p.skipTerminators()
	if p.tok.Kind == token.KwEnd {
		p.next()
	}
}

func (p *Parser) parseBlockUntil(closers ...token.Kind) *ast.Node {
	line := p.tok.Line
	stmts := p.parseStatements(closers...)
	return &ast.Node{Kind: ast.KindBlock, Line: line, Args: stmts}
}

func (p *Parser) parseFunction() *ast.Node {
	line := p.tok.Line
	p.next() // function / macro
	name := ""
	if p.tok.Kind == token.Ident {
		name = p.tok.Text
		p.next()
	}
	params := p.parseParams()
	body := p.parseBlockUntil(token.KwEnd)
	p.expectEnd()
	return &ast.Node{
		Kind: ast.KindFunction,
		Line: line,
		Name: name,
		Args: []*ast.Node{params, body},
	}
}

func (p *Parser) parseParams() *ast.Node {
	params := &ast.Node{Kind: ast.KindParams, Line: p.tok.Line}
	if p.tok.Kind != token.LParen {
		return params
	}
	p.next()
	keyword := false
	for p.tok.Kind != token.RParen && p.tok.Kind != token.EOF {
		if p.tok.Kind == token.Semicolon {
			keyword = true
			p.next()
			continue
		}
		if p.tok.Kind == token.Comma || p.tok.Kind == token.Newline {
			p.next()
			continue
		}
		param := p.parseParam(keyword)
		if param == nil {
			p.next()
			continue
		}
		params.Args = append(params.Args, param)
	}
	if p.tok.Kind == token.RParen {
		p.next()
	}
	return params
}

func (p *Parser) parseParam(keyword bool) *ast.Node {
	if p.tok.Kind != token.Ident {
		return nil
	}
	param := &ast.Node{Kind: ast.KindParam, Line: p.tok.Line, Name: p.tok.Text, Keyword: keyword}
	p.next()
	if p.tok.Kind == token.ColonColon {
		p.next()
		param.TypeAnn = p.parseTypeAnnotation()
	}
	if p.tok.Kind == token.Ellipsis {
		param.Variadic = true
		p.next()
	}
	if p.tok.Kind == token.Assign {
		p.next()
		def := p.parseExpression()
		if def != nil {
			param.Args = append(param.Args, def)
		}
	}
	if p.tok.Kind == token.Ellipsis {
		param.Variadic = true
		p.next()
	}
	return param
}

// parseTypeAnnotation reads a type expression and returns its root symbol.
// Parametric types are recorded by root only (Dict{K,V} -> Dict).
func (p *Parser) parseTypeAnnotation() string {
	if p.tok.Kind != token.Ident {
		return ""
	}
	root := p.tok.Text
	p.next()
	for p.tok.Kind == token.Dot {
		p.next()
		if p.tok.Kind == token.Ident {
			root = p.tok.Text
			p.next()
		}
	}
	if p.tok.Kind == token.LBrace {
		depth := 0
		for p.tok.Kind != token.EOF {
			if p.tok.Kind == token.LBrace {
				depth++
			}
			if p.tok.Kind == token.RBrace {
				depth--
				if depth == 0 {
					p.next()
					break
				}
			}
			p.next()
		}
	}
	return root
}

func (p *Parser) parseTypeDecl() *ast.Node {
	line := p.tok.Line
	p.next() // type / struct
	name := ""
	if p.tok.Kind == token.Ident {
		name = p.tok.Text
		p.next()
	}
	// type parameters: Foo{T} — recorded by root only
	if p.tok.Kind == token.LBrace {
		depth := 0
		for p.tok.Kind != token.EOF {
			if p.tok.Kind == token.LBrace {
				depth++
			}
			if p.tok.Kind == token.RBrace {
				depth--
				if depth == 0 {
					p.next()
					break
				}
			}
			p.next()
		}
	}
	body := p.parseBlockUntil(token.KwEnd)
	p.expectEnd()
	return &ast.Node{Kind: ast.KindTypeDecl, Line: line, Name: name, Args: []*ast.Node{body}}
}

func (p *Parser) parseModule() *ast.Node {
	line := p.tok.Line
	p.next()
	name := ""
	if p.tok.Kind == token.Ident {
		name = p.tok.Text
		p.next()
	}
	body := p.parseBlockUntil(token.KwEnd)
	p.expectEnd()
	return &ast.Node{Kind: ast.KindModule, Line: line, Name: name, Args: []*ast.Node{body}}
}

func (p *Parser) parseUsing() *ast.Node {
	kind := ast.KindUsing
	if p.tok.Kind == token.KwImport {
		kind = ast.KindImport
	}
	line := p.tok.Line
	p.next()
	name := ""
	for p.tok.Kind == token.Ident || p.tok.Kind == token.Dot {
		if p.tok.Kind == token.Dot {
			name += "."
		} else {
			name += p.tok.Text
		}
		p.next()
	}
	return &ast.Node{Kind: kind, Line: line, Name: name}
}

func (p *Parser) parseIf() *ast.Node {
	line := p.tok.Line
	p.next() // if / elseif
	cond := p.parseExpression()
	then := p.parseBlockUntil(token.KwElseif, token.KwElse, token.KwEnd)
	node := &ast.Node{Kind: ast.KindIf, Line: line, Args: []*ast.Node{cond, then}}
	switch p.tok.Kind {
	case token.KwElseif:
		alt := p.parseIf() // consumes through its own end
		node.Args = append(node.Args, alt)
		return node
	case token.KwElse:
		p.next()
		alt := p.parseBlockUntil(token.KwEnd)
		node.Args = append(node.Args, alt)
	}
	p.expectEnd()
	return node
}

func (p *Parser) parseWhile() *ast.Node {
	line := p.tok.Line
	p.next()
	cond := p.parseExpression()
	body := p.parseBlockUntil(token.KwEnd)
	p.expectEnd()
	return &ast.Node{Kind: ast.KindWhile, Line: line, Args: []*ast.Node{cond, body}}
}

func (p *Parser) parseFor() *ast.Node {
	line := p.tok.Line
	p.next()
	iter := p.parseExprStatement() // i = 1:10
	body := p.parseBlockUntil(token.KwEnd)
	p.expectEnd()
	return &ast.Node{Kind: ast.KindFor, Line: line, Args: []*ast.Node{iter, body}}
}

func (p *Parser) parseBegin() *ast.Node {
	p.next()
	body := p.parseBlockUntil(token.KwEnd)
	p.expectEnd()
	return body
}

func (p *Parser) parseReturn() *ast.Node {
	line := p.tok.Line
	p.next()
	node := &ast.Node{Kind: ast.KindReturn, Line: line}
	if p.tok.Kind != token.Newline && p.tok.Kind != token.Semicolon &&
		p.tok.Kind != token.EOF && p.tok.Kind != token.KwEnd {
		value := p.parseExpression()
		if value != nil {
			node.Args = []*ast.Node{value}
		}
	}
	return node
}

// parseDeclModifier handles local/global/const prefixes. A bare
// "local x" becomes a declaration-only assignment node.
func (p *Parser) parseDeclModifier() *ast.Node {
	p.next()
	stmt := p.parseSimpleStatement()
	if stmt != nil && stmt.Kind == ast.KindIdent {
		return &ast.Node{Kind: ast.KindAssign, Line: stmt.Line, Args: []*ast.Node{stmt}}
	}
	return stmt
}

// parseSimpleStatement parses an expression statement, additionally
// allowing an unparenthesized tuple on the left of an assignment:
// a, b = g(). Inside call arguments the comma stays a separator, so that
// context uses parseExprStatement instead.
func (p *Parser) parseSimpleStatement() *ast.Node {
	lhs := p.parseExpression()
	if lhs == nil {
		return nil
	}
	if p.tok.Kind == token.Comma {
		tuple := &ast.Node{Kind: ast.KindTuple, Line: lhs.Line, Args: []*ast.Node{lhs}}
		for p.tok.Kind == token.Comma {
			p.next()
			elem := p.parseExpression()
			if elem == nil {
				break
			}
			tuple.Args = append(tuple.Args, elem)
		}
		lhs = tuple
	}
	return p.finishAssign(lhs)
}

func (p *Parser) parseExprStatement() *ast.Node {
	lhs := p.parseExpression()
	if lhs == nil {
		return nil
	}
	return p.finishAssign(lhs)
}

func (p *Parser) finishAssign(lhs *ast.Node) *ast.Node {
	if p.tok.Kind == token.Assign {
		line := p.tok.Line
		p.next()
		rhs := p.parseExpression()
		if rhs == nil {
			rhs = &ast.Node{Kind: ast.KindInvalid, Line: line}
		}
		return &ast.Node{Kind: ast.KindAssign, Line: lhs.Line, Args: []*ast.Node{lhs, rhs}}
	}
	return lhs
}
