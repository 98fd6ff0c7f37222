// Package lexer implements the Filmi language tokenizer: multi-word
// keyword matching with greedy longest-match, numeric and string literals,
// operators, and comment skipping.
package lexer

import (
	"strings"

	"github.com/rverma/filmi/pkg/ast"
	"github.com/rverma/filmi/pkg/diagnostics"
)

// TokenType identifies the kind of a lexer token.
type TokenType int

const (
	// Multi-word / phrase keywords.
	TokAction TokenType = iota // program start: "action!" / "Chal bhai suru kar"
	TokEnd                     // program end: "paisa vasool" / "bas khatam karo"
	TokVarDecl                 // "maan lo"
	TokIf                      // "agar kismat rahi"
	TokElseIf                  // "nahi to"
	TokWhile                   // "jab tak hai jaan"
	TokBreak                   // "me bahar ja raha hu"
	TokFunc                    // "climax"
	TokReturn                  // "dialogue wapas do"
	TokPrint                   // "ek baat bataun:"

	// Single-word keywords.
	TokElse  // "warna"
	TokTrue  // "sach"
	TokFalse // "galat"
	TokNull  // "khaali"

	// Literals and identifiers.
	TokNumber
	TokString
	TokIdent

	// Punctuation.
	TokLParen
	TokRParen
	TokLBrace
	TokRBrace
	TokComma
	TokColon

	// Operators.
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokPercent
	TokEq     // =
	TokEqEq   // ==
	TokBangEq // !=
	TokLt     // <
	TokGt     // >
	TokLtEq   // <=
	TokGtEq   // >=
	TokAndAnd // &&
	TokOrOr   // ||
	TokBang   // !

	TokEOF
)

// Token is a single lexical unit: its kind, exact source slice, an optional
// literal payload, and the 1-based line/column of its first character.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any // nil, float64, or string
	Pos     ast.Pos
}

// phrase is one entry in the multi-word keyword table.
type phrase struct {
	text string // lowercase surface spelling, compared case-insensitively
	typ  TokenType
}

// keywordPhrases is ordered longest-first so the greedy longest-match scan
// in matchPhrase never needs to re-sort at lex time.
var keywordPhrases = sortPhrasesByLength([]phrase{
	{"action!", TokAction},
	{"chal bhai suru kar", TokAction},
	{"paisa vasool", TokEnd},
	{"bas khatam karo", TokEnd},
	{"maan lo", TokVarDecl},
	{"agar kismat rahi", TokIf},
	{"nahi to", TokElseIf},
	{"jab tak hai jaan", TokWhile},
	{"me bahar ja raha hu", TokBreak},
	{"climax", TokFunc},
	{"dialogue wapas do", TokReturn},
	{"ek baat bataun:", TokPrint},
})

func sortPhrasesByLength(ps []phrase) []phrase {
	out := make([]phrase, len(ps))
	copy(out, ps)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j-1].text) < len(out[j].text); j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// singleWordKeywords covers boolean/null and "warna", which are ordinary
// identifier-shaped tokens and so are matched only after a normal identifier
// scan, not via the phrase table.
var singleWordKeywords = map[string]TokenType{
	"warna":  TokElse,
	"sach":   TokTrue,
	"galat":  TokFalse,
	"khaali": TokNull,
}

type lexer struct {
	source string
	pos    int
	line   int
	col    int
}

func newLexer(source string) *lexer {
	return &lexer{source: source, pos: 0, line: 1, col: 1}
}

func (l *lexer) atEnd() bool {
	return l.pos >= len(l.source)
}

func (l *lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *lexer) peekAt(offset int) byte {
	p := l.pos + offset
	if p >= len(l.source) {
		return 0
	}
	return l.source[p]
}

func (l *lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *lexer) here() ast.Pos {
	return ast.Pos{Line: l.line, Col: l.col}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (l *lexer) skipWhitespaceAndComments() {
	for !l.atEnd() {
		ch := l.peek()
		switch ch {
		case ' ', '\t', '\r', '\n':
			l.advance()
		case '/':
			if l.peekAt(1) == '/' {
				for !l.atEnd() && l.peek() != '\n' {
					l.advance()
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// matchPhrase attempts a greedy, case-insensitive longest-match against
// keywordPhrases at the current position. It implements the word-boundary
// rule: a phrase ending in '!' or ':' matches unconditionally on character
// equality, otherwise the character following the phrase must be absent or
// not an identifier character, so "maanager" is never split into "maan" +
// "ager".
func (l *lexer) matchPhrase() (phrase, bool) {
	for _, p := range keywordPhrases {
		if l.tryMatchPhraseText(p.text) {
			return p, true
		}
	}
	return phrase{}, false
}

func (l *lexer) tryMatchPhraseText(text string) bool {
	if l.pos+len(text) > len(l.source) {
		return false
	}
	candidate := l.source[l.pos : l.pos+len(text)]
	if !strings.EqualFold(candidate, text) {
		return false
	}
	last := text[len(text)-1]
	if last == '!' || last == ':' {
		return true
	}
	next := l.peekAt(len(text))
	if next == 0 || !isIdentChar(next) {
		return true
	}
	return false
}

func (l *lexer) consumeText(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *lexer) scanString() (Token, error) {
	startPos := l.here()
	start := l.pos
	l.advance() // opening quote

	var buf strings.Builder
	for {
		if l.atEnd() {
			return Token{}, diagnostics.NewLexError(startPos, "unterminated string literal")
		}
		ch := l.peek()
		if ch == '"' {
			l.advance()
			return Token{Type: TokString, Lexeme: l.source[start:l.pos], Literal: buf.String(), Pos: startPos}, nil
		}
		if ch == '\n' {
			return Token{}, diagnostics.NewLexError(startPos, "unterminated string literal")
		}
		if ch == '\\' {
			l.advance()
			if l.atEnd() {
				return Token{}, diagnostics.NewLexError(startPos, "unterminated string literal")
			}
			esc := l.advance()
			switch esc {
			case 'n':
				buf.WriteByte('\n')
			case 't':
				buf.WriteByte('\t')
			case 'r':
				buf.WriteByte('\r')
			case '"':
				buf.WriteByte('"')
			case '\\':
				buf.WriteByte('\\')
			default:
				buf.WriteByte(esc)
			}
			continue
		}
		buf.WriteByte(l.advance())
	}
}

func (l *lexer) scanNumber() Token {
	startPos := l.here()
	start := l.pos
	for !l.atEnd() && isDigit(l.peek()) {
		l.advance()
	}
	if !l.atEnd() && l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()
		for !l.atEnd() && isDigit(l.peek()) {
			l.advance()
		}
	}
	text := l.source[start:l.pos]
	return Token{Type: TokNumber, Lexeme: text, Literal: parseFloat(text), Pos: startPos}
}

// parseFloat converts a lexed DIGIT+(.DIGIT+)? literal to float64. The
// lexer's own grammar guarantees the text is well-formed, so no error path
// is needed here.
func parseFloat(text string) float64 {
	var whole float64
	i := 0
	for i < len(text) && isDigit(text[i]) {
		whole = whole*10 + float64(text[i]-'0')
		i++
	}
	if i < len(text) && text[i] == '.' {
		i++
		frac := 0.0
		scale := 1.0
		for i < len(text) && isDigit(text[i]) {
			frac = frac*10 + float64(text[i]-'0')
			scale *= 10
			i++
		}
		whole += frac / scale
	}
	return whole
}

func (l *lexer) scanIdentOrKeyword() Token {
	startPos := l.here()
	start := l.pos
	for !l.atEnd() && isIdentChar(l.peek()) {
		l.advance()
	}
	text := l.source[start:l.pos]
	if typ, ok := singleWordKeywords[strings.ToLower(text)]; ok {
		return Token{Type: typ, Lexeme: text, Pos: startPos}
	}
	return Token{Type: TokIdent, Lexeme: text, Pos: startPos}
}

func (l *lexer) nextToken() (Token, error) {
	l.skipWhitespaceAndComments()
	if l.atEnd() {
		return Token{Type: TokEOF, Pos: l.here()}, nil
	}

	startPos := l.here()

	if p, ok := l.matchPhrase(); ok {
		start := l.pos
		l.consumeText(len(p.text))
		return Token{Type: p.typ, Lexeme: l.source[start:l.pos], Pos: startPos}, nil
	}

	ch := l.peek()

	switch ch {
	case '(':
		l.advance()
		return Token{Type: TokLParen, Lexeme: "(", Pos: startPos}, nil
	case ')':
		l.advance()
		return Token{Type: TokRParen, Lexeme: ")", Pos: startPos}, nil
	case '{':
		l.advance()
		return Token{Type: TokLBrace, Lexeme: "{", Pos: startPos}, nil
	case '}':
		l.advance()
		return Token{Type: TokRBrace, Lexeme: "}", Pos: startPos}, nil
	case ',':
		l.advance()
		return Token{Type: TokComma, Lexeme: ",", Pos: startPos}, nil
	case ':':
		l.advance()
		return Token{Type: TokColon, Lexeme: ":", Pos: startPos}, nil
	case '+':
		l.advance()
		return Token{Type: TokPlus, Lexeme: "+", Pos: startPos}, nil
	case '-':
		l.advance()
		return Token{Type: TokMinus, Lexeme: "-", Pos: startPos}, nil
	case '*':
		l.advance()
		return Token{Type: TokStar, Lexeme: "*", Pos: startPos}, nil
	case '/':
		l.advance()
		return Token{Type: TokSlash, Lexeme: "/", Pos: startPos}, nil
	case '%':
		l.advance()
		return Token{Type: TokPercent, Lexeme: "%", Pos: startPos}, nil
	case '=':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return Token{Type: TokEqEq, Lexeme: "==", Pos: startPos}, nil
		}
		return Token{Type: TokEq, Lexeme: "=", Pos: startPos}, nil
	case '!':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return Token{Type: TokBangEq, Lexeme: "!=", Pos: startPos}, nil
		}
		return Token{Type: TokBang, Lexeme: "!", Pos: startPos}, nil
	case '<':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return Token{Type: TokLtEq, Lexeme: "<=", Pos: startPos}, nil
		}
		return Token{Type: TokLt, Lexeme: "<", Pos: startPos}, nil
	case '>':
		l.advance()
		if l.peek() == '=' {
			l.advance()
			return Token{Type: TokGtEq, Lexeme: ">=", Pos: startPos}, nil
		}
		return Token{Type: TokGt, Lexeme: ">", Pos: startPos}, nil
	case '&':
		l.advance()
		if l.peek() == '&' {
			l.advance()
			return Token{Type: TokAndAnd, Lexeme: "&&", Pos: startPos}, nil
		}
		return Token{}, diagnostics.NewLexError(startPos, "unexpected character '&'")
	case '|':
		l.advance()
		if l.peek() == '|' {
			l.advance()
			return Token{Type: TokOrOr, Lexeme: "||", Pos: startPos}, nil
		}
		return Token{}, diagnostics.NewLexError(startPos, "unexpected character '|'")
	case '"':
		return l.scanString()
	}

	if isDigit(ch) {
		return l.scanNumber(), nil
	}
	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(), nil
	}

	l.advance()
	return Token{}, diagnostics.NewLexError(startPos, "unexpected character '%c'", ch)
}

// Tokenize converts source text into a token sequence terminated by EOF, or
// fails with the first lexer error encountered.
func Tokenize(source string) ([]Token, error) {
	l := newLexer(source)
	var tokens []Token
	for {
		tok, err := l.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			break
		}
	}
	return tokens, nil
}

// Name returns a human-readable description of a token type, used in parser
// error messages.
func (t TokenType) Name() string {
	switch t {
	case TokLParen:
		return "'('"
	case TokRParen:
		return "')'"
	case TokLBrace:
		return "'{'"
	case TokRBrace:
		return "'}'"
	case TokComma:
		return "','"
	case TokColon:
		return "':'"
	case TokEq:
		return "'='"
	case TokIdent:
		return "identifier"
	case TokNumber:
		return "number"
	case TokString:
		return "string"
	case TokAction:
		return "'action!'"
	case TokEnd:
		return "'paisa vasool'"
	case TokEOF:
		return "end of input"
	default:
		return "token"
	}
}
