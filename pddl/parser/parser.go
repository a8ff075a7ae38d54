package parser

import (
	"fmt"
	"strings"
)

// ParseError reports an unexpected token. Parse errors are fatal; the
// parser does not attempt recovery.
type ParseError struct {
	Span     Span
	Expected []TokenKind
	Got      Token
	Message  string
}

func (e *ParseError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Span, e.Message)
	}
	names := make([]string, len(e.Expected))
	for i, kind := range e.Expected {
		names[i] = kind.String()
	}
	return fmt.Sprintf("%s: expected %s, got %s %q",
		e.Span, strings.Join(names, " or "), e.Got.Kind, e.Got.Literal)
}

// Parser is a recursive-descent PDDL parser with one-token lookahead.
type Parser struct {
	tokens []Token
	pos    int
}

// ParseFile lexes and parses one PDDL file containing a domain definition,
// a problem definition, or both.
func ParseFile(input []byte, file string) (*File, error) {
	lexer := NewLexer(input, file)
	var tokens []Token
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenComment {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}

	p := &Parser{tokens: tokens}
	return p.parseFile()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

// checkSection reports whether the next token is the given section,
// e.g. ":types".
func (p *Parser) checkSection(name string) bool {
	tok := p.peek()
	return tok.Kind == TokenSection && tok.Literal == name
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.unexpected(kind)
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(expected ...TokenKind) error {
	tok := p.peek()
	return &ParseError{Span: tok.Span, Expected: expected, Got: tok}
}

func (p *Parser) fail(span Span, format string, args ...any) error {
	return &ParseError{Span: span, Got: p.peek(), Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) parseFile() (*File, error) {
	file := &File{}
	file.Span = p.peek().Span

	for !p.check(TokenEOF) {
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenDefine); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenLParen); err != nil {
			return nil, err
		}
		switch p.peek().Kind {
		case TokenDomain:
			domain, err := p.parseDomain()
			if err != nil {
				return nil, err
			}
			if file.Domain != nil {
				return nil, p.fail(domain.Span, "duplicate domain definition")
			}
			file.Domain = domain
			file.Span = file.Span.Union(domain.Span)
		case TokenProblem:
			problem, err := p.parseProblem()
			if err != nil {
				return nil, err
			}
			if file.Problem != nil {
				return nil, p.fail(problem.Span, "duplicate problem definition")
			}
			file.Problem = problem
			file.Span = file.Span.Union(problem.Span)
		default:
			return nil, p.unexpected(TokenDomain, TokenProblem)
		}
	}

	if file.Domain == nil && file.Problem == nil {
		return nil, p.fail(p.peek().Span, "empty input")
	}
	return file, nil
}

// parseDomain is entered just before the `domain` keyword and consumes
// through the closing paren of the whole define form.
func (p *Parser) parseDomain() (*Domain, error) {
	domain := &Domain{}
	first, err := p.expect(TokenDomain)
	if err != nil {
		return nil, err
	}
	domain.Span = first.Span

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	domain.Name = name.Literal
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	for p.check(TokenLParen) {
		p.advance()
		switch {
		case p.checkSection(":requirements"):
			p.advance()
			for p.check(TokenSection) {
				tok := p.advance()
				domain.Requirements = append(domain.Requirements,
					Requirement{span: span{tok.Span}, Name: tok.Literal})
			}
		case p.checkSection(":types"):
			p.advance()
			list, err := p.parseTypedList(false)
			if err != nil {
				return nil, err
			}
			domain.Types = list
		case p.checkSection(":constants"):
			p.advance()
			list, err := p.parseTypedList(false)
			if err != nil {
				return nil, err
			}
			domain.Constants = list
		case p.checkSection(":predicates"):
			p.advance()
			for p.check(TokenLParen) {
				decl, err := p.parsePredicateDecl()
				if err != nil {
					return nil, err
				}
				domain.Predicates = append(domain.Predicates, decl)
			}
		case p.checkSection(":action"):
			action, err := p.parseAction()
			if err != nil {
				return nil, err
			}
			domain.Actions = append(domain.Actions, action)
		default:
			return nil, p.fail(p.peek().Span, "unexpected domain section %q", p.peek().Literal)
		}
		close, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		domain.Span = domain.Span.Union(close.Span)
	}

	close, err := p.expect(TokenRParen)
	if err != nil {
		return nil, err
	}
	domain.Span = domain.Span.Union(close.Span)
	return domain, nil
}

func (p *Parser) parsePredicateDecl() (*PredicateDecl, error) {
	open, err := p.expect(TokenLParen)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	params, err := p.parseTypedList(true)
	if err != nil {
		return nil, err
	}
	close, err := p.expect(TokenRParen)
	if err != nil {
		return nil, err
	}
	return &PredicateDecl{
		span:   span{open.Span.Union(close.Span)},
		Name:   Name{span: span{name.Span}, Value: name.Literal},
		Params: params,
	}, nil
}

// parseAction is entered just after the opening paren, at the `:action`
// section token. The caller consumes the closing paren.
func (p *Parser) parseAction() (*Action, error) {
	first := p.advance() // :action
	action := &Action{}
	action.Span = first.Span

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	action.Name = Name{span: span{name.Span}, Value: name.Literal}

	if !p.checkSection(":parameters") {
		return nil, p.fail(p.peek().Span, "expected :parameters, got %q", p.peek().Literal)
	}
	p.advance()
	if _, err := p.expect(TokenLParen); err != nil {
		return nil, err
	}
	params, err := p.parseTypedList(true)
	if err != nil {
		return nil, err
	}
	action.Params = params
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	if p.checkSection(":precondition") {
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		action.Precondition = expr
	}
	if p.checkSection(":effect") {
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		action.Effect = expr
	}

	if action.Precondition != nil {
		action.Span = action.Span.Union(action.Precondition.NodeSpan())
	}
	if action.Effect != nil {
		action.Span = action.Span.Union(action.Effect.NodeSpan())
	}
	return action, nil
}

// parseProblem is entered just before the `problem` keyword.
func (p *Parser) parseProblem() (*Problem, error) {
	problem := &Problem{}
	first, err := p.expect(TokenProblem)
	if err != nil {
		return nil, err
	}
	problem.Span = first.Span

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	problem.Name = name.Literal
	if _, err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	for p.check(TokenLParen) {
		p.advance()
		switch {
		case p.checkSection(":domain"):
			p.advance()
			ref, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			problem.DomainRef = ref.Literal
		case p.checkSection(":objects"):
			p.advance()
			list, err := p.parseTypedList(false)
			if err != nil {
				return nil, err
			}
			problem.Objects = list
		case p.checkSection(":init"):
			p.advance()
			for p.check(TokenLParen) {
				lit, err := p.parseInitLiteral()
				if err != nil {
					return nil, err
				}
				problem.Init = append(problem.Init, lit)
			}
		case p.checkSection(":goal"):
			p.advance()
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			problem.Goal = expr
		case p.checkSection(":metric"):
			// Recognized but not exploited: skip the section body.
			p.advance()
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
		default:
			return nil, p.fail(p.peek().Span, "unexpected problem section %q", p.peek().Literal)
		}
		close, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		problem.Span = problem.Span.Union(close.Span)
	}

	close, err := p.expect(TokenRParen)
	if err != nil {
		return nil, err
	}
	problem.Span = problem.Span.Union(close.Span)
	return problem, nil
}

func (p *Parser) parseInitLiteral() (*InitLiteral, error) {
	open, err := p.expect(TokenLParen)
	if err != nil {
		return nil, err
	}
	if p.check(TokenNot) {
		p.advance()
		inner, err := p.parseInitLiteral()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		if inner.Negated {
			return nil, p.fail(inner.Span, "doubly negated init literal")
		}
		return &InitLiteral{
			span:    span{open.Span.Union(close.Span)},
			Negated: true,
			Pred:    inner.Pred,
		}, nil
	}

	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	pred := &PredicateExpr{
		span: span{open.Span},
		Name: Name{span: span{name.Span}, Value: name.Literal},
	}
	for p.check(TokenIdent) || p.check(TokenVariable) {
		arg, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		pred.Args = append(pred.Args, arg)
	}
	close, err := p.expect(TokenRParen)
	if err != nil {
		return nil, err
	}
	pred.Span = open.Span.Union(close.Span)
	return &InitLiteral{span: span{pred.Span}, Pred: pred}, nil
}

// parseExpr parses one condition or effect expression.
func (p *Parser) parseExpr() (Expr, error) {
	open, err := p.expect(TokenLParen)
	if err != nil {
		return nil, err
	}

	switch p.peek().Kind {
	case TokenAnd, TokenOr:
		connective := p.advance()
		var args []Expr
		for p.check(TokenLParen) {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if arg != nil {
				args = append(args, arg)
			}
		}
		close, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		full := span{open.Span.Union(close.Span)}
		if connective.Kind == TokenAnd {
			return &AndExpr{span: full, Args: args}, nil
		}
		return &OrExpr{span: full, Args: args}, nil

	case TokenNot:
		p.advance()
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		if arg == nil {
			return nil, p.fail(open.Span.Union(close.Span), "cannot negate a numeric effect")
		}
		return &NotExpr{span: span{open.Span.Union(close.Span)}, Arg: arg}, nil

	case TokenEqual:
		p.advance()
		left, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		close, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		return &EqualExpr{span: span{open.Span.Union(close.Span)}, Left: left, Right: right}, nil

	case TokenIncrease, TokenDecrease:
		// Numeric fluent effects are recognized but carry no meaning
		// here; the whole form is skipped and yields no expression.
		p.advance()
		if err := p.skipBalanced(); err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return nil, nil

	case TokenIdent:
		name := p.advance()
		pred := &PredicateExpr{
			span: span{open.Span},
			Name: Name{span: span{name.Span}, Value: name.Literal},
		}
		for p.check(TokenIdent) || p.check(TokenVariable) {
			arg, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			pred.Args = append(pred.Args, arg)
		}
		close, err := p.expect(TokenRParen)
		if err != nil {
			return nil, err
		}
		pred.Span = open.Span.Union(close.Span)
		return pred, nil
	}

	return nil, p.unexpected(TokenAnd, TokenOr, TokenNot, TokenEqual, TokenIdent)
}

func (p *Parser) parseTerm() (Name, error) {
	tok := p.peek()
	if tok.Kind != TokenIdent && tok.Kind != TokenVariable {
		return Name{}, p.unexpected(TokenIdent, TokenVariable)
	}
	p.advance()
	return Name{
		span:     span{tok.Span},
		Value:    tok.Literal,
		Variable: tok.Kind == TokenVariable,
	}, nil
}

// parseTypedList parses PDDL's typed-name syntax up to (not including) the
// enclosing close paren: runs of names, each run optionally followed by
// `- typename`. With variables set, names are variables (parameters);
// otherwise plain identifiers (types, constants, objects).
func (p *Parser) parseTypedList(variables bool) (*TypedList, error) {
	nameKind := TokenIdent
	if variables {
		nameKind = TokenVariable
	}

	list := &TypedList{}
	list.Span = p.peek().Span.Step()

	for p.check(nameKind) {
		group := &TypedGroup{}
		first := p.peek()
		group.Span = first.Span
		for p.check(nameKind) {
			tok := p.advance()
			group.Names = append(group.Names, Name{
				span:     span{tok.Span},
				Value:    tok.Literal,
				Variable: variables,
			})
			group.Span = group.Span.Union(tok.Span)
		}
		if p.check(TokenDash) {
			p.advance()
			tok, err := p.expect(TokenIdent)
			if err != nil {
				return nil, err
			}
			group.Type = &Name{span: span{tok.Span}, Value: tok.Literal}
			group.Span = group.Span.Union(tok.Span)
		}
		list.Groups = append(list.Groups, group)
		list.Span = list.Span.Union(group.Span)
	}
	return list, nil
}

// skipBalanced consumes tokens until parens rebalance at the current
// depth, leaving the matching close paren unconsumed.
func (p *Parser) skipBalanced() error {
	depth := 0
	for {
		switch p.peek().Kind {
		case TokenEOF:
			return p.unexpected(TokenRParen)
		case TokenLParen:
			depth++
		case TokenRParen:
			if depth == 0 {
				return nil
			}
			depth--
		}
		p.advance()
	}
}
