package arith_test

import (
	"errors"
	"math"
	"testing"

	"github.com/halorium/arith"
)

// eval parses and evaluates src, failing the test on any error.
func eval(t *testing.T, src string) arith.Value {
	t.Helper()
	v, err := arith.Evaluate(src)
	if err != nil {
		t.Fatalf("%q failed to evaluate: %v", src, err)
	}
	return v
}

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want arith.Value
	}{
		{"num", "1", arith.IntValue(1)},
		{"negnum", "-5", arith.IntValue(-5)},
		{"float", "1.5", arith.FloatValue(1.5)},
		{"empty", "", arith.IntValue(0)},
		{"blank", "   ", arith.IntValue(0)},

		{"add", "4+5+6", arith.IntValue(4 + 5 + 6)},
		{"add-float", "1.5 + 2", arith.FloatValue(3.5)},
		{"sub", "4-5-6", arith.IntValue(4 - 5 - 6)},
		{"mul", "4*5*6", arith.IntValue(4 * 5 * 6)},
		{"div", "4/5/6", arith.FloatValue(4.0 / 5.0 / 6.0)},
		{"div-exact", "8/2", arith.FloatValue(4)},
		{"floordiv", "7//2", arith.IntValue(3)},
		{"floordiv-neg", "-7//2", arith.IntValue(-4)},
		{"floordiv-neg-divisor", "7//-2", arith.IntValue(-4)},
		{"floordiv-float", "7.5//2", arith.FloatValue(3)},
		{"mod", "10%3", arith.IntValue(1)},
		{"mod-neg", "-7%3", arith.IntValue(2)},
		{"mod-neg-divisor", "7%-3", arith.IntValue(-2)},
		{"mod-float", "7.5%2", arith.FloatValue(1.5)},
		{"mod-float-neg", "-7.5%2", arith.FloatValue(0.5)},
		{"pow", "4**3**2", arith.IntValue(262144)},
		{"pow-neg-exp", "2**-2", arith.FloatValue(0.25)},
		{"pow-float", "4**0.5", arith.FloatValue(2)},
		{"int-wrap", "9223372036854775807 + 1", arith.IntValue(math.MinInt64)},

		{"prec", "2+3*4", arith.IntValue(14)},
		{"group", "(2+3)*4", arith.IntValue(20)},
		{"neg-group", "-(2+3)", arith.IntValue(-5)},
		{"neg-binds-tighter", "-2**2", arith.IntValue(4)},
		{"neg-sum", "-5 + 3", arith.IntValue(-2)},

		{"cmp-lt", "2 < 3", arith.IntValue(1)},
		{"cmp-ge", "2 >= 3", arith.IntValue(0)},
		{"cmp-eq-mixed", "2 == 2.0", arith.IntValue(1)},
		{"cmp-ne", "2 != 3", arith.IntValue(1)},
		{"cmp-prec", "1+2 == 3", arith.IntValue(1)},
		{"cmp-text", "chr(66) > chr(65)", arith.IntValue(1)},
		{"cmp-text-eq", "chr(65) == chr(65)", arith.IntValue(1)},
		{"cmp-text-num-eq", "chr(65) == 65", arith.IntValue(0)},
		{"cmp-text-num-ne", "chr(65) != 65", arith.IntValue(1)},
		{"nan-eq", "NAN == NAN", arith.IntValue(0)},
		{"nan-ne", "NAN != NAN", arith.IntValue(1)},
		{"nan-lt", "NAN < 1", arith.IntValue(0)},

		{"concat", "chr(72) + chr(105)", arith.TextValue("Hi")},

		{"const-pi", "PI", arith.FloatValue(math.Pi)},
		{"const-tau", "TAU", arith.FloatValue(2 * math.Pi)},
		{"const-e", "E", arith.FloatValue(math.E)},
		{"const-inf", "INF", arith.FloatValue(math.Inf(1))},
		{"const-expr", "TAU / 2", arith.FloatValue(math.Pi)},

		{"call", "sqrt(16)", arith.FloatValue(4)},
		{"call-nested", "sqrt(sqrt(16))", arith.FloatValue(2)},
		{"call-args", "gcd(12, 18)", arith.IntValue(6)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := eval(t, c.src)
			if got != c.want {
				t.Errorf("%q evaluated to %v (%v), want %v (%v)", c.src, got, got.Kind(), c.want, c.want.Kind())
			}
		})
	}
}

// TestEvalNaN covers the inputs whose degeneracy quietly becomes NaN
// instead of an error.
func TestEvalNaN(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"div-zero", "1/0"},
		{"div-zero-zero", "0/0"},
		{"div-zero-float", "1/0.0"},
		{"div-inf", "INF/INF"},
		{"floordiv-zero", "5//0"},
		{"floordiv-zero-float", "5.5//0"},
		{"mod-zero", "5%0"},
		{"mod-zero-float", "5.5%0"},
		{"inf-sub", "INF - INF"},
		{"sqrt-neg", "sqrt(-1)"},
		{"log-neg", "log(-1)"},
		{"fact-neg", "fact(-1)"},
		{"fact-frac", "fact(2.5)"},
		{"text-mul", "chr(65) * 2"},
		{"text-sub", "chr(65) - chr(65)"},
		{"text-add-num", "chr(65) + 1"},
		{"text-lt-num", "chr(65) < 1"},
		{"nan-add", "NAN + 1"},
		{"nan-mul", "0 * NAN"},
		{"nan-const", "NAN"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := eval(t, c.src); !got.IsNaN() {
				t.Errorf("%q evaluated to %v, want NaN", c.src, got)
			}
		})
	}
}

func TestEvalKinds(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind arith.Kind
	}{
		{"int-add", "1+2", arith.Int},
		{"mixed-add", "1+2.0", arith.Float},
		{"div", "4/2", arith.Float},
		{"floordiv", "5//2", arith.Int},
		{"pow-int", "2**2", arith.Int},
		{"pow-neg-exp", "2**-1", arith.Float},
		{"cmp", "1 < 2", arith.Int},
		{"round", "round(2.5)", arith.Int},
		{"float-fn", "float(2)", arith.Float},
		{"chr", "chr(65)", arith.Text},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := eval(t, c.src); got.Kind() != c.kind {
				t.Errorf("%q evaluated to %v of kind %v, want %v", c.src, got, got.Kind(), c.kind)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		col  int
	}{
		{"unclosed", "(2 + 3", 0},
		{"unknown-op", "2 $ 3", 2},
		{"unknown-name", "foo(1)", 0},
		{"arity", "gcd(5)", 0},
		{"sep", "1, 2", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := arith.Evaluate(c.src)
			if err == nil {
				t.Fatalf("%q evaluated without error", c.src)
			}
			var ierr arith.InputError
			if !errors.As(err, &ierr) {
				t.Fatalf("error %#v does not carry a position", err)
			}
			if ierr.Pos() != c.col {
				t.Errorf("%q: error at %d, want %d", c.src, ierr.Pos(), c.col)
			}
		})
	}
}

// TestEvalRepeatable checks that evaluating one parsed expression twice
// gives the same value both times.
func TestEvalRepeatable(t *testing.T) {
	e, err := arith.Parse("2 ** 10 - sqrt(16) * gcd(12, 18)")
	if err != nil {
		t.Fatal(err)
	}
	a, b := e.Eval(), e.Eval()
	if a != b {
		t.Errorf("two evaluations differ: %v vs %v", a, b)
	}
}

func BenchmarkEval(b *testing.B) {
	cases := []struct {
		name string
		src  string
	}{
		{"nums", "2+3+4"},
		{"arith", "2 + 3 * 4 - 5 / 6"},
		{"pow", "2 ** 3 ** 2"},
		{"call", "max(1, 2, sqrt(16))"},
	}
	for _, c := range cases {
		b.Run(c.name, func(b *testing.B) {
			b.ReportAllocs()
			a, err := arith.Parse(c.src)
			if err != nil {
				b.Fatal(err)
			}
			for i := 0; i < b.N; i++ {
				a.Eval()
			}
		})
	}
}
