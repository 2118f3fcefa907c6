package arith

import "testing"

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []lexToken
	}{
		// spaces
		{"", nil},
		{" \t \r\n ", nil},
		{"  ", nil},
		// numbers
		{"0", []lexToken{{text: "0", kind: tokenNum, pos: 0}}},
		{"9876543210", []lexToken{{text: "9876543210", kind: tokenNum, pos: 0}}},
		{"1 0", []lexToken{{text: "1", kind: tokenNum, pos: 0}, {text: "0", kind: tokenNum, pos: 2}}},
		{"1.0", []lexToken{{text: "1.0", kind: tokenNum, pos: 0}}},
		{"0.25", []lexToken{{text: "0.25", kind: tokenNum, pos: 0}}},
		{"5.", []lexToken{{text: "5", kind: tokenNum, pos: 0}, {text: ".", kind: tokenOp, pos: 1}}},
		{".5", []lexToken{{text: ".", kind: tokenOp, pos: 0}, {text: "5", kind: tokenNum, pos: 1}}},
		{"1.2.3", []lexToken{{text: "1.2", kind: tokenNum, pos: 0}, {text: ".", kind: tokenOp, pos: 3}, {text: "3", kind: tokenNum, pos: 4}}},
		// signed numbers
		{"-1", []lexToken{{text: "-1", kind: tokenNum, pos: 0}}},
		{"- 1", []lexToken{{text: "-1", kind: tokenNum, pos: 0}}},
		{"1-2", []lexToken{{text: "1", kind: tokenNum, pos: 0}, {text: "-", kind: tokenOp, pos: 1}, {text: "2", kind: tokenNum, pos: 2}}},
		{"2--3", []lexToken{{text: "2", kind: tokenNum, pos: 0}, {text: "-", kind: tokenOp, pos: 1}, {text: "-3", kind: tokenNum, pos: 2}}},
		{"--3", []lexToken{{text: "-", kind: tokenOp, pos: 0}, {text: "-3", kind: tokenNum, pos: 1}}},
		{"2*-3", []lexToken{{text: "2", kind: tokenNum, pos: 0}, {text: "*", kind: tokenOp, pos: 1}, {text: "-3", kind: tokenNum, pos: 2}}},
		{"(-3)", []lexToken{{text: "(", kind: tokenOpen, pos: 0}, {text: "-3", kind: tokenNum, pos: 1}, {text: ")", kind: tokenClose, pos: 3}}},
		{"f(1, -2)", []lexToken{
			{text: "f", kind: tokenIdent, pos: 0},
			{text: "(", kind: tokenOpen, pos: 1},
			{text: "1", kind: tokenNum, pos: 2},
			{text: ",", kind: tokenSep, pos: 3},
			{text: "-2", kind: tokenNum, pos: 5},
			{text: ")", kind: tokenClose, pos: 7},
		}},
		// a minus before anything other than a number stays an operator
		{"-(3)", []lexToken{{text: "-", kind: tokenOp, pos: 0}, {text: "(", kind: tokenOpen, pos: 1}, {text: "3", kind: tokenNum, pos: 2}, {text: ")", kind: tokenClose, pos: 3}}},
		{"-e", []lexToken{{text: "-", kind: tokenOp, pos: 0}, {text: "e", kind: tokenIdent, pos: 1}}},
		// identifiers
		{"e", []lexToken{{text: "e", kind: tokenIdent, pos: 0}}},
		{"e1", []lexToken{{text: "e1", kind: tokenIdent, pos: 0}}},
		{"_1234_", []lexToken{{text: "_1234_", kind: tokenIdent, pos: 0}}},
		{"sqrt(4)", []lexToken{{text: "sqrt", kind: tokenIdent, pos: 0}, {text: "(", kind: tokenOpen, pos: 4}, {text: "4", kind: tokenNum, pos: 5}, {text: ")", kind: tokenClose, pos: 6}}},
		{"1e1", []lexToken{{text: "1", kind: tokenNum, pos: 0}, {text: "e1", kind: tokenIdent, pos: 1}}},
		// operators
		{"+", []lexToken{{text: "+", kind: tokenOp, pos: 0}}},
		{"1+0", []lexToken{{text: "1", kind: tokenNum, pos: 0}, {text: "+", kind: tokenOp, pos: 1}, {text: "0", kind: tokenNum, pos: 2}}},
		{"**", []lexToken{{text: "**", kind: tokenOp, pos: 0}}},
		{"//", []lexToken{{text: "//", kind: tokenOp, pos: 0}}},
		{"2**3", []lexToken{{text: "2", kind: tokenNum, pos: 0}, {text: "**", kind: tokenOp, pos: 1}, {text: "3", kind: tokenNum, pos: 3}}},
		{"==", []lexToken{{text: "==", kind: tokenOp, pos: 0}}},
		{"!=", []lexToken{{text: "!=", kind: tokenOp, pos: 0}}},
		{"<=", []lexToken{{text: "<=", kind: tokenOp, pos: 0}}},
		{">=", []lexToken{{text: ">=", kind: tokenOp, pos: 0}}},
		{"1<2", []lexToken{{text: "1", kind: tokenNum, pos: 0}, {text: "<", kind: tokenOp, pos: 1}, {text: "2", kind: tokenNum, pos: 2}}},
		{"%", []lexToken{{text: "%", kind: tokenOp, pos: 0}}},
		// unknown glyphs become operator tokens for the builder to reject
		{"$", []lexToken{{text: "$", kind: tokenOp, pos: 0}}},
		{"1 & 2", []lexToken{{text: "1", kind: tokenNum, pos: 0}, {text: "&", kind: tokenOp, pos: 2}, {text: "2", kind: tokenNum, pos: 4}}},
		{".", []lexToken{{text: ".", kind: tokenOp, pos: 0}}},
		{"π", []lexToken{{text: "π", kind: tokenOp, pos: 0}}},
	}

	for _, c := range cases {
		got := lex(c.src)
		if len(got) != len(c.tokens) {
			t.Errorf("lexing %q: want %v, got %v", c.src, c.tokens, got)
			continue
		}
		for i, want := range c.tokens {
			if got[i] != want {
				t.Errorf("lexing %q: token %d: want %v, got %v", c.src, i, want, got[i])
			}
		}
	}
}
