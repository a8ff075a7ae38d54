package parser

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenComment

	// Punctuation
	TokenLParen
	TokenRParen
	TokenDash
	TokenEqual

	// Keywords
	TokenAnd
	TokenOr
	TokenNot
	TokenDefine
	TokenDomain
	TokenProblem
	TokenIncrease
	TokenDecrease
	TokenMetric

	// Categorized
	TokenSection
	TokenIdent
	TokenVariable
	TokenNumber
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:      "EOF",
	TokenError:    "Error",
	TokenComment:  "Comment",
	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenDash:     "-",
	TokenEqual:    "=",
	TokenAnd:      "and",
	TokenOr:       "or",
	TokenNot:      "not",
	TokenDefine:   "define",
	TokenDomain:   "domain",
	TokenProblem:  "problem",
	TokenIncrease: "increase",
	TokenDecrease: "decrease",
	TokenMetric:   "metric",
	TokenSection:  "Section",
	TokenIdent:    "Identifier",
	TokenVariable: "Variable",
	TokenNumber:   "Number",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

var keywordOrder = []string{
	"and", "or", "not", "define", "domain", "problem",
	"increase", "decrease", "metric",
}

var keywords = map[string]TokenKind{
	"and":      TokenAnd,
	"or":       TokenOr,
	"not":      TokenNot,
	"define":   TokenDefine,
	"domain":   TokenDomain,
	"problem":  TokenProblem,
	"increase": TokenIncrease,
	"decrease": TokenDecrease,
	"metric":   TokenMetric,
}
