package arith

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenNum is an integer or real token, possibly carrying a merged sign.
	tokenNum
	// tokenIdent is a constant or function name.
	tokenIdent
	// tokenOp is an operator glyph. The lexer does not check that the
	// operator table knows it; the builder does.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is the function argument separator.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// twoByteOps is checked before single glyphs so that ** is never two
// multiplications.
var twoByteOps = [...]string{"**", "//", "==", "!=", "<=", ">="}

// lex partitions src into tokens. It never fails: every byte lands in some
// token, and glyphs with no meaning become operator tokens the builder
// rejects. Positions are byte offsets into src.
func lex(src string) []lexToken {
	var toks []lexToken
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c < utf8.RuneSelf && asciiSpace(c):
			i++
		case '0' <= c && c <= '9':
			j := scanNum(src, i)
			toks = append(toks, lexToken{text: src[i:j], kind: tokenNum, pos: i})
			i = j
		case c == '_' || isIdentStart(c):
			j := i + 1
			for j < len(src) && (src[j] == '_' || isIdentPart(src[j])) {
				j++
			}
			toks = append(toks, lexToken{text: src[i:j], kind: tokenIdent, pos: i})
			i = j
		case c == '(':
			toks = append(toks, lexToken{text: "(", kind: tokenOpen, pos: i})
			i++
		case c == ')':
			toks = append(toks, lexToken{text: ")", kind: tokenClose, pos: i})
			i++
		case c == ',':
			toks = append(toks, lexToken{text: ",", kind: tokenSep, pos: i})
			i++
		default:
			if op, ok := scanOp(src, i); ok {
				toks = append(toks, lexToken{text: op, kind: tokenOp, pos: i})
				i += len(op)
				break
			}
			// Unknown glyph. Emit it as an operator token so the error
			// surfaces at build time with its position.
			r, sz := utf8.DecodeRuneInString(src[i:])
			if sz > 0 && unicode.IsSpace(r) {
				i += sz
				break
			}
			toks = append(toks, lexToken{text: src[i : i+sz], kind: tokenOp, pos: i})
			i += sz
		}
	}
	return mergeSigns(toks)
}

func asciiSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isIdentStart(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || '0' <= c && c <= '9'
}

// scanNum consumes digits and at most one decimal point, which must be
// followed by a digit. There is no exponent form. Returns the index one
// past the literal.
func scanNum(src string, i int) int {
	j := i
	for j < len(src) && '0' <= src[j] && src[j] <= '9' {
		j++
	}
	if j+1 < len(src) && src[j] == '.' && '0' <= src[j+1] && src[j+1] <= '9' {
		j += 2
		for j < len(src) && '0' <= src[j] && src[j] <= '9' {
			j++
		}
	}
	return j
}

// scanOp recognizes operator glyphs, longest first.
func scanOp(src string, i int) (string, bool) {
	if i+1 < len(src) {
		two := src[i : i+2]
		for _, op := range twoByteOps {
			if two == op {
				return op, true
			}
		}
	}
	switch src[i] {
	case '+', '-', '*', '/', '%', '<', '>', '=', '!':
		return src[i : i+1], true
	}
	return "", false
}

// mergeSigns rewrites a unary-positioned minus directly before a number
// token into a single signed literal. A minus is unary-positioned at the
// start of the stream and after an operator, an open parenthesis, or a
// separator; never after a number, an identifier, or a close parenthesis.
// A unary minus before anything other than a number is left alone for the
// builder to fold as negation.
func mergeSigns(toks []lexToken) []lexToken {
	out := make([]lexToken, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.kind == tokenOp && tok.text == "-" && i+1 < len(toks) && toks[i+1].kind == tokenNum {
			unary := len(out) == 0
			if !unary {
				switch out[len(out)-1].kind {
				case tokenOp, tokenOpen, tokenSep:
					unary = true
				}
			}
			if unary {
				out = append(out, lexToken{text: "-" + toks[i+1].text, kind: tokenNum, pos: tok.pos})
				i++
				continue
			}
		}
		out = append(out, tok)
	}
	return out
}
