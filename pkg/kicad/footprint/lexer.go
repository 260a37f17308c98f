package footprint

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// FootprintLexer splits footprint text into parentheses, quoted strings,
// whitespace runs and atoms. Whitespace is kept because several constructs
// require it between their parts.
//
// Every byte of input matches some rule, so lexing cannot fail on content.
// An unterminated string lexes as a lone Quote followed by atoms.
var FootprintLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Quote", Pattern: `"`},
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Atom", Pattern: `[^\s()"]+`},
})

// Kind is the category of a lexed token.
type Kind int

const (
	KindOther Kind = iota
	KindString
	KindLParen
	KindRParen
	KindSpace
	KindAtom
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindSpace:
		return "whitespace"
	case KindAtom:
		return "atom"
	default:
		return "other"
	}
}

// Token is a lexed token with its byte offsets in the source text.
type Token struct {
	Kind  Kind
	Value string
	Start int
	End   int
}

var kindBySymbol = func() map[lexer.TokenType]Kind {
	symbols := FootprintLexer.Symbols()
	return map[lexer.TokenType]Kind{
		symbols["String"]:     KindString,
		symbols["Quote"]:      KindOther,
		symbols["LParen"]:     KindLParen,
		symbols["RParen"]:     KindRParen,
		symbols["Whitespace"]: KindSpace,
		symbols["Atom"]:       KindAtom,
	}
}()

// Tokenize lexes text. On a lexer error it returns the tokens read so far
// together with the error.
func Tokenize(text string) ([]Token, error) {
	lex, err := FootprintLexer.Lex("", strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("failed to start lexer: %w", err)
	}

	var tokens []Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return tokens, fmt.Errorf("lex error: %w", err)
		}
		if tok.EOF() {
			return tokens, nil
		}
		tokens = append(tokens, Token{
			Kind:  kindBySymbol[tok.Type],
			Value: tok.Value,
			Start: tok.Pos.Offset,
			End:   tok.Pos.Offset + len(tok.Value),
		})
	}
}

// unquote strips the surrounding quotes of a String token and resolves
// backslash escapes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	escaped := false
	for _, r := range s {
		if escaped {
			switch r {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
