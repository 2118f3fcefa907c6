// Package arith implements a calculator for arithmetic expressions.
//
// Expressions combine integer and decimal literals with the operators
// ** // / * % + - == != < > <= >=, parenthesized grouping, the constants
// PI, TAU, E, INF, and NAN, and calls to a fixed table of functions such
// as sqrt(16) or gcd(12, 18). Number literals without a decimal point stay
// in exact integer arithmetic; a decimal point selects floating point, and
// true division always produces a float.
//
// Every malformed input is rejected while parsing, with an error carrying
// the byte offset of the offending token. Evaluation itself never fails:
// results outside a function's or operator's domain, division by zero
// included, come back as the IEEE quiet NaN.
package arith
