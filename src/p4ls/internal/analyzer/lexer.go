package analyzer

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// TokenKind classifies a lexeme.
type TokenKind int

// Token kinds produced by the lexer.
const (
	TokenIdentifier TokenKind = iota
	TokenKeyword
	TokenNumber
	TokenString
	TokenComment
	TokenDirective
	TokenSymbol
)

// Lexeme is one token of a file's input, located by byte offsets.
type Lexeme struct {
	Kind  TokenKind
	Text  string
	Start int
	End   int
}

var p4Keywords = map[string]struct{}{
	"action": {}, "actions": {}, "apply": {}, "bit": {}, "bool": {},
	"const": {}, "control": {}, "default": {}, "else": {}, "entries": {},
	"enum": {}, "error": {}, "exit": {}, "extern": {}, "header": {},
	"header_union": {}, "if": {}, "in": {}, "inout": {}, "int": {},
	"key": {}, "match_kind": {}, "out": {}, "package": {}, "parser": {},
	"return": {}, "select": {}, "state": {}, "struct": {}, "switch": {},
	"table": {}, "transition": {}, "tuple": {}, "typedef": {}, "varbit": {},
	"verify": {}, "void": {},
}

const _symbols = "{}()[]<>;,:.=+-*/&|^!~%?@"

// lex tokenizes content and reports lexical-level diagnostics. Whitespace is
// skipped; comments and preprocessor directives are kept as tokens so
// downstream consumers can see the full input.
func lex(content string) ([]Lexeme, []Diagnostic) {
	lexemes := make([]Lexeme, 0)
	diagnostics := make([]Diagnostic, 0)

	pos := 0
	for pos < len(content) {
		r, size := utf8.DecodeRuneInString(content[pos:])

		switch {
		case unicode.IsSpace(r):
			pos += size

		case r == '/' && hasPrefixAt(content, pos+1, "/"):
			end := lineEnd(content, pos)
			lexemes = append(lexemes, Lexeme{Kind: TokenComment, Text: content[pos:end], Start: pos, End: end})
			pos = end

		case r == '/' && hasPrefixAt(content, pos+1, "*"):
			end, terminated := blockCommentEnd(content, pos+2)
			lexemes = append(lexemes, Lexeme{Kind: TokenComment, Text: content[pos:end], Start: pos, End: end})
			if !terminated {
				diagnostics = append(diagnostics, Diagnostic{
					Start:    pos,
					End:      end,
					Severity: SeverityError,
					Message:  "unterminated block comment",
				})
			}
			pos = end

		case r == '#':
			end := lineEnd(content, pos)
			lexemes = append(lexemes, Lexeme{Kind: TokenDirective, Text: content[pos:end], Start: pos, End: end})
			pos = end

		case r == '"':
			end, terminated := stringEnd(content, pos+1)
			lexemes = append(lexemes, Lexeme{Kind: TokenString, Text: content[pos:end], Start: pos, End: end})
			if !terminated {
				diagnostics = append(diagnostics, Diagnostic{
					Start:    pos,
					End:      end,
					Severity: SeverityError,
					Message:  "unterminated string literal",
				})
			}
			pos = end

		case isIdentStart(r):
			end := pos + size
			for end < len(content) {
				next, nextSize := utf8.DecodeRuneInString(content[end:])
				if !isIdentPart(next) {
					break
				}
				end += nextSize
			}
			text := content[pos:end]
			kind := TokenIdentifier
			if _, ok := p4Keywords[text]; ok {
				kind = TokenKeyword
			}
			lexemes = append(lexemes, Lexeme{Kind: kind, Text: text, Start: pos, End: end})
			pos = end

		case unicode.IsDigit(r):
			end := numberEnd(content, pos)
			lexemes = append(lexemes, Lexeme{Kind: TokenNumber, Text: content[pos:end], Start: pos, End: end})
			pos = end

		case runeIn(r, _symbols):
			lexemes = append(lexemes, Lexeme{Kind: TokenSymbol, Text: content[pos : pos+size], Start: pos, End: pos + size})
			pos += size

		default:
			diagnostics = append(diagnostics, Diagnostic{
				Start:    pos,
				End:      pos + size,
				Severity: SeverityError,
				Message:  fmt.Sprintf("unexpected character %q", r),
			})
			pos += size
		}
	}

	return lexemes, diagnostics
}

func hasPrefixAt(content string, pos int, prefix string) bool {
	return pos+len(prefix) <= len(content) && content[pos:pos+len(prefix)] == prefix
}

func lineEnd(content string, pos int) int {
	for pos < len(content) && content[pos] != '\n' {
		pos++
	}
	return pos
}

func blockCommentEnd(content string, pos int) (end int, terminated bool) {
	for pos < len(content) {
		if content[pos] == '*' && hasPrefixAt(content, pos+1, "/") {
			return pos + 2, true
		}
		pos++
	}
	return pos, false
}

func stringEnd(content string, pos int) (end int, terminated bool) {
	for pos < len(content) {
		switch content[pos] {
		case '\\':
			// A trailing backslash has no byte to escape.
			if pos+1 >= len(content) {
				return len(content), false
			}
			pos += 2
		case '"':
			return pos + 1, true
		case '\n':
			return pos, false
		default:
			pos++
		}
	}
	return pos, false
}

// numberEnd consumes P4 numeric literals including width-prefixed forms such
// as 8w255 and 4s0xF.
func numberEnd(content string, pos int) int {
	end := pos
	for end < len(content) {
		c := content[end]
		if c == '_' || c == 'w' || c == 's' || c == 'x' || c == 'b' || c == 'd' ||
			(c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') {
			end++
			continue
		}
		break
	}
	return end
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func runeIn(r rune, set string) bool {
	for _, s := range set {
		if r == s {
			return true
		}
	}
	return false
}
