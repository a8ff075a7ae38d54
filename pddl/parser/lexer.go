package parser

import "fmt"

// Rule is one entry in the lexer's rule table. Rules are stateful over a
// single token attempt: Accepts is fed one character at a time and reports
// whether the character may extend the rule's partial match, Matches reports
// whether the characters accepted so far form a complete token.
type Rule interface {
	Reset()
	Accepts(ch byte) bool
	Matches() bool
	Kind(lexeme string) TokenKind
}

// LexError reports an input prefix no rule could match.
type LexError struct {
	Span    Span
	Partial string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: unrecognized token %q", e.Span, e.Partial)
}

// Lexer scans input against an ordered rule table, longest match first,
// earlier rules winning ties at equal length.
type Lexer struct {
	input  []byte
	file   string
	rules  []Rule
	pos    int
	line   int
	column int
}

// NewLexer creates a lexer over input using the standard PDDL rule table.
func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		rules:  newRules(),
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
}

// NextToken returns the next token. At end of input it returns a stable
// EOF token; after a *LexError the lexer is stuck at the offending input.
//
// The match loop feeds each character to every rule still accepting it and
// records the last position at which any rule reported a complete match,
// together with the first such rule in table order. When no rule accepts
// the next character (or a newline or end of input is reached), the lexer
// backtracks to the recorded position and emits. Tokens never cross
// newlines.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	start := l.Position()
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}, nil
	}

	for _, rule := range l.rules {
		rule.Reset()
	}

	alive := make([]bool, len(l.rules))
	for i := range alive {
		alive[i] = true
	}

	bestLen := 0
	var bestRule Rule
	consumed := 0

	for l.pos+consumed < len(l.input) {
		ch := l.input[l.pos+consumed]
		if ch == '\n' {
			break
		}

		anyAlive := false
		for i, rule := range l.rules {
			if !alive[i] {
				continue
			}
			if rule.Accepts(ch) {
				anyAlive = true
			} else {
				alive[i] = false
			}
		}
		if !anyAlive {
			break
		}
		consumed++

		for i, rule := range l.rules {
			if alive[i] && rule.Matches() {
				bestLen = consumed
				bestRule = rule
				break
			}
		}
	}

	if bestRule == nil {
		partial := consumed
		if partial == 0 {
			partial = 1
		}
		end := start
		end.Offset += partial
		end.Column += partial
		return Token{Kind: TokenError, Span: Span{Start: start, End: end}},
			&LexError{
				Span:    Span{Start: start, End: end},
				Partial: string(l.input[start.Offset : start.Offset+partial]),
			}
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	end := l.Position()
	lexeme := string(l.input[start.Offset:end.Offset])
	return Token{
		Kind:    bestRule.Kind(lexeme),
		Span:    Span{Start: start, End: end},
		Literal: lexeme,
	}, nil
}

// Tokenize reads all tokens up to and including EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}
