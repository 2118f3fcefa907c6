package arith

import "strconv"

// InvalidNumberError is an error indicating a numeric literal that the
// number parser rejected. It implements InputError.
type InvalidNumberError struct {
	// Col is the position of the literal.
	Col int
	// Text is the literal.
	Text string
}

func (err *InvalidNumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *InvalidNumberError) Pos() int {
	return err.Col
}

// UnknownOperatorError is an error indicating an operator symbol that is
// absent from the operator table. It implements InputError.
type UnknownOperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the symbol that was not understood.
	Operator string
}

func (err *UnknownOperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.Quote(err.Operator))
}

func (err *UnknownOperatorError) Pos() int {
	return err.Col
}

// UnknownFunctionError is an error indicating an identifier that names
// neither a constant nor a function. It implements InputError.
type UnknownFunctionError struct {
	// Col is the position of the identifier.
	Col int
	// Name is the identifier.
	Name string
}

func (err *UnknownFunctionError) Error() string {
	return errpos(err.Col, "unknown name "+strconv.Quote(err.Name))
}

func (err *UnknownFunctionError) Pos() int {
	return err.Col
}

// ArityError is an error indicating a function call with an argument count
// outside the function's registered bounds. It implements InputError.
type ArityError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function that was called.
	Func string
	// Min and Max are the inclusive argument count bounds of Func.
	Min, Max int
	// Len is the number of arguments the call supplied.
	Len int
}

func (err *ArityError) Error() string {
	bounds := strconv.Itoa(err.Min)
	if err.Max != err.Min {
		bounds += " to " + strconv.Itoa(err.Max)
	}
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments (accepts "+bounds+")")
}

func (err *ArityError) Pos() int {
	return err.Col
}

// SyntaxError is an error indicating a structurally invalid expression:
// mismatched parentheses, an operator missing an operand, a separator
// outside a call, empty grouping parentheses, a function without an
// argument list, or a token sequence that cannot reduce to one value.
// It implements InputError.
type SyntaxError struct {
	// Col is the position of the token that made the sequence invalid.
	Col int
	// Msg describes the failure.
	Msg string
}

func (err *SyntaxError) Error() string {
	return errpos(err.Col, err.Msg)
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError. Pos returns the byte offset of
// the token that caused the error.
type InputError interface {
	error
	Pos() int
}

var (
	_ InputError = (*InvalidNumberError)(nil)
	_ InputError = (*UnknownOperatorError)(nil)
	_ InputError = (*UnknownFunctionError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*SyntaxError)(nil)
)
