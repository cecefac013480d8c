package parser

import (
	"strconv"

	"flint/internal/ast"
	"flint/internal/token"
)

// Expression precedence, loosest first:
//
//	|| > && > comparison > range(:) > additive(+ - |) > multiplicative(* / &)
//	> unary(! -) > postfix(call, field) > primary
func (p *Parser) parseExpression() *ast.Node {
	return p.parseOr()
}

func (p *Parser) parseOr() *ast.Node {
	lhs := p.parseAnd()
	for lhs != nil && p.tok.Kind == token.OrOr {
		line := p.tok.Line
		p.next()
		rhs := p.parseAnd()
		if rhs == nil {
			return lhs
		}
		lhs = ast.Call(line, "||", lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseAnd() *ast.Node {
	lhs := p.parseComparison()
	for lhs != nil && p.tok.Kind == token.AndAnd {
		line := p.tok.Line
		p.next()
		rhs := p.parseComparison()
		if rhs == nil {
			return lhs
		}
		lhs = ast.Call(line, "&&", lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseComparison() *ast.Node {
	lhs := p.parseRange()
	for lhs != nil && p.tok.IsComparison() {
		op := p.tok.Text
		line := p.tok.Line
		p.next()
		rhs := p.parseRange()
		if rhs == nil {
			return lhs
		}
		lhs = ast.Call(line, op, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseRange() *ast.Node {
	first := p.parseAdditive()
	if first == nil || p.tok.Kind != token.Colon {
		return first
	}
	node := &ast.Node{Kind: ast.KindRange, Line: first.Line, Args: []*ast.Node{first}}
	for p.tok.Kind == token.Colon && len(node.Args) < 3 {
		p.next()
		part := p.parseAdditive()
		if part == nil {
			break
		}
		node.Args = append(node.Args, part)
	}
	return node
}

func (p *Parser) parseAdditive() *ast.Node {
	lhs := p.parseMultiplicative()
	for lhs != nil {
		var op string
		switch p.tok.Kind {
		case token.Plus:
			op = "+"
		case token.Minus:
			op = "-"
		case token.Pipe:
			op = "|"
		default:
			return lhs
		}
		line := p.tok.Line
		p.next()
		rhs := p.parseMultiplicative()
		if rhs == nil {
			return lhs
		}
		lhs = ast.Call(line, op, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseMultiplicative() *ast.Node {
	lhs := p.parseUnary()
	for lhs != nil {
		var op string
		switch p.tok.Kind {
		case token.Star:
			op = "*"
		case token.Slash:
			op = "/"
		case token.Amp:
			op = "&"
		default:
			return lhs
		}
		line := p.tok.Line
		p.next()
		rhs := p.parseUnary()
		if rhs == nil {
			return lhs
		}
		lhs = ast.Call(line, op, lhs, rhs)
	}
	return lhs
}

func (p *Parser) parseUnary() *ast.Node {
	switch p.tok.Kind {
	case token.Bang:
		line := p.tok.Line
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return ast.Call(line, "!", operand)
	case token.Minus:
		line := p.tok.Line
		p.next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return ast.Call(line, "-", operand)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *ast.Node {
	node := p.parsePrimary()
	for node != nil {
		switch p.tok.Kind {
		case token.LParen:
			callee := ""
			if node.Kind == ast.KindIdent {
				callee = node.Name
			}
			line := node.Line
			args := p.parseCallArgs()
			node = &ast.Node{Kind: ast.KindCall, Line: line, Name: callee, Args: args}
		case token.Dot:
			p.next()
			if p.tok.Kind == token.Ident && node.Kind == ast.KindIdent {
				node.Name = node.Name + "." + p.tok.Text
				p.next()
			} else {
				return node
			}
		case token.ColonColon:
			p.next()
			node.TypeAnn = p.parseTypeAnnotation()
		default:
			return node
		}
	}
	return node
}

func (p *Parser) parseCallArgs() []*ast.Node {
	p.next() // consume (
	var args []*ast.Node
	for p.tok.Kind != token.RParen && p.tok.Kind != token.EOF {
		if p.tok.Kind == token.Comma || p.tok.Kind == token.Newline || p.tok.Kind == token.Semicolon {
			p.next()
			continue
		}
		arg := p.parseExprStatement() // keyword args show up as assignments
		if arg == nil {
			p.next()
			continue
		}
		if p.tok.Kind == token.Ellipsis {
			arg.Variadic = true
			p.next()
		}
		args = append(args, arg)
	}
	if p.tok.Kind == token.RParen {
		p.next()
	}
	return args
}

func (p *Parser) parsePrimary() *ast.Node {
	tok := p.tok
	switch tok.Kind {
	case token.IntLit:
		p.next()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return &ast.Node{Kind: ast.KindInt, Line: tok.Line}
		}
		return ast.IntLit(tok.Line, v)
	case token.FloatLit:
		p.next()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return &ast.Node{Kind: ast.KindFloat, Line: tok.Line}
		}
		return ast.FloatLit(tok.Line, v)
	case token.StringLit:
		p.next()
		return ast.StringLit(tok.Line, tok.Text)
	case token.SymbolLit:
		p.next()
		return ast.SymbolLit(tok.Line, tok.Text)
	case token.VersionLit:
		p.next()
		return ast.VersionLit(tok.Line, tok.Text)
	case token.KwTrue:
		p.next()
		return ast.BoolLit(tok.Line, true)
	case token.KwFalse:
		p.next()
		return ast.BoolLit(tok.Line, false)
	case token.Ident:
		p.next()
		return ast.Ident(tok.Line, tok.Text)
	case token.At:
		return p.parseMacroCall()
	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.parseBracketLiteral()
	case token.LBrace:
		return p.parseBraceLiteral()
	}
	return nil
}

func (p *Parser) parseMacroCall() *ast.Node {
	line := p.tok.Line
	p.next() // @
	name := ""
	if p.tok.Kind == token.Ident {
		name = p.tok.Text
		p.next()
	}
	node := &ast.Node{Kind: ast.KindMacroCall, Line: line, Name: name}
	if p.tok.Kind == token.LParen {
		node.Args = p.parseCallArgs()
		return node
	}
	// space-separated macro arguments run to end of statement
	for p.tok.Kind != token.Newline && p.tok.Kind != token.Semicolon &&
		p.tok.Kind != token.EOF && p.tok.Kind != token.KwEnd {
		arg := p.parseExpression()
		if arg == nil {
			break
		}
		node.Args = append(node.Args, arg)
	}
	return node
}

func (p *Parser) parseParenOrTuple() *ast.Node {
	line := p.tok.Line
	p.next() // (
	var elems []*ast.Node
	for p.tok.Kind != token.RParen && p.tok.Kind != token.EOF {
		if p.tok.Kind == token.Comma || p.tok.Kind == token.Newline {
			p.next()
			continue
		}
		elem := p.parseExpression()
		if elem == nil {
			p.next()
			continue
		}
		elems = append(elems, elem)
	}
	if p.tok.Kind == token.RParen {
		p.next()
	}
	if len(elems) == 1 {
		return elems[0]
	}
	return &ast.Node{Kind: ast.KindTuple, Line: line, Args: elems}
}

// parseBracketLiteral handles [a, b] vectors and [k => v] uniform-type
// dictionary literals.
func (p *Parser) parseBracketLiteral() *ast.Node {
	line := p.tok.Line
	p.next() // [
	elems, sawPair := p.parseLiteralElems(token.RBracket)
	kind := ast.KindVect
	if sawPair {
		kind = ast.KindTypedDict
	}
	return &ast.Node{Kind: kind, Line: line, Args: elems}
}

// parseBraceLiteral handles { k => v } heterogeneous-type dictionary
// literals and {a, b} cell vectors.
func (p *Parser) parseBraceLiteral() *ast.Node {
	line := p.tok.Line
	p.next() // {
	elems, sawPair := p.parseLiteralElems(token.RBrace)
	kind := ast.KindVect
	if sawPair {
		kind = ast.KindDict
	}
	return &ast.Node{Kind: kind, Line: line, Args: elems}
}

func (p *Parser) parseLiteralElems(closer token.Kind) ([]*ast.Node, bool) {
	var elems []*ast.Node
	sawPair := false
	for p.tok.Kind != closer && p.tok.Kind != token.EOF {
		if p.tok.Kind == token.Comma || p.tok.Kind == token.Newline {
			p.next()
			continue
		}
		elem := p.parseExpression()
		if elem == nil {
			p.next()
			continue
		}
		if p.tok.Kind == token.FatArrow {
			line := p.tok.Line
			p.next()
			value := p.parseExpression()
			if value != nil {
				elem = ast.Pair(line, elem, value)
				sawPair = true
			}
		}
		elems = append(elems, elem)
	}
	if p.tok.Kind == closer {
		p.next()
	}
	return elems, sawPair
}
