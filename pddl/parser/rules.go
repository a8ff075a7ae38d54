package parser

// The PDDL rule table, in precedence order. Earlier rules win ties at the
// same match length, so keywords beat the identifier rule on exact matches
// while longer identifiers ("defined", "define-foo") still win by length.
func newRules() []Rule {
	rules := []Rule{
		&literalRule{kind: TokenLParen, lexeme: "("},
		&literalRule{kind: TokenRParen, lexeme: ")"},
		&literalRule{kind: TokenDash, lexeme: "-"},
		&literalRule{kind: TokenEqual, lexeme: "="},
	}
	for _, lexeme := range keywordOrder {
		rules = append(rules, &literalRule{kind: keywords[lexeme], lexeme: lexeme})
	}
	rules = append(rules,
		&prefixRule{kind: TokenSection, prefix: ':'},
		&prefixRule{kind: TokenVariable, prefix: '?'},
		&numberRule{},
		&identRule{},
		&commentRule{},
	)
	return rules
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

// Identifier continuation characters: letters, digits, '-' and '_'.
func isIdentChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == '-' || ch == '_'
}

// literalRule matches one fixed lexeme: punctuation and keywords.
type literalRule struct {
	kind   TokenKind
	lexeme string
	n      int
}

func (r *literalRule) Reset() { r.n = 0 }

func (r *literalRule) Accepts(ch byte) bool {
	if r.n < len(r.lexeme) && r.lexeme[r.n] == ch {
		r.n++
		return true
	}
	return false
}

func (r *literalRule) Matches() bool { return r.n == len(r.lexeme) }

func (r *literalRule) Kind(string) TokenKind { return r.kind }

// prefixRule matches a sigil followed by identifier characters: sections
// (":types") and variables ("?x").
type prefixRule struct {
	kind   TokenKind
	prefix byte
	n      int
}

func (r *prefixRule) Reset() { r.n = 0 }

func (r *prefixRule) Accepts(ch byte) bool {
	if r.n == 0 {
		if ch != r.prefix {
			return false
		}
		r.n++
		return true
	}
	if isIdentChar(ch) {
		r.n++
		return true
	}
	return false
}

func (r *prefixRule) Matches() bool { return r.n >= 2 }

func (r *prefixRule) Kind(string) TokenKind { return r.kind }

// numberRule matches a signed integer: an optional '-' then digits.
type numberRule struct {
	n      int
	digits int
}

func (r *numberRule) Reset() {
	r.n = 0
	r.digits = 0
}

func (r *numberRule) Accepts(ch byte) bool {
	if r.n == 0 && ch == '-' {
		r.n++
		return true
	}
	if isDigit(ch) {
		r.n++
		r.digits++
		return true
	}
	return false
}

func (r *numberRule) Matches() bool { return r.digits > 0 }

func (r *numberRule) Kind(string) TokenKind { return TokenNumber }

// identRule matches a letter followed by identifier characters.
type identRule struct {
	n int
}

func (r *identRule) Reset() { r.n = 0 }

func (r *identRule) Accepts(ch byte) bool {
	if r.n == 0 {
		if !isLetter(ch) {
			return false
		}
		r.n++
		return true
	}
	if isIdentChar(ch) {
		r.n++
		return true
	}
	return false
}

func (r *identRule) Matches() bool { return r.n >= 1 }

func (r *identRule) Kind(string) TokenKind { return TokenIdent }

// commentRule matches ';' through end of line. The match loop never feeds
// a newline, so accepting everything after the ';' is enough.
type commentRule struct {
	n int
}

func (r *commentRule) Reset() { r.n = 0 }

func (r *commentRule) Accepts(ch byte) bool {
	if r.n == 0 && ch != ';' {
		return false
	}
	r.n++
	return true
}

func (r *commentRule) Matches() bool { return r.n >= 1 }

func (r *commentRule) Kind(string) TokenKind { return TokenComment }
