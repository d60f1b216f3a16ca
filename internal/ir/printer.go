package ir

import (
	"fmt"
	"io"
	"strings"
)

// CallWrapper is a function that forwards its parameters to an external
// declaration and returns the result unchanged.
type CallWrapper struct {
	Name   string
	Callee string
	Result Type
	Params []Param
}

// Param is a named function parameter.
type Param struct {
	Name string
	Type Type
}

// BinaryWrapper builds the wrapper for a two operand builtin taking and
// returning t, with operands named %a and %b.
func BinaryWrapper(name, callee string, t Type) *CallWrapper {
	return &CallWrapper{
		Name:   name,
		Callee: callee,
		Result: t,
		Params: []Param{{Name: "a", Type: t}, {Name: "b", Type: t}},
	}
}

// PrintCallWrapper writes the wrapper definition followed by the callee
// declaration, each terminated by a blank line.
func PrintCallWrapper(w io.Writer, fn *CallWrapper) {
	if fn == nil {
		fmt.Fprintln(w, "; <nil wrapper>")
		return
	}
	named := make([]string, len(fn.Params))
	args := make([]string, len(fn.Params))
	types := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		named[i] = fmt.Sprintf("%s %%%s", p.Type, p.Name)
		args[i] = named[i]
		types[i] = p.Type.String()
	}

	fmt.Fprintf(w, "define %s @%s(%s) {\n", fn.Result, fn.Name, strings.Join(named, ", "))
	fmt.Fprintln(w, "entry:")
	fmt.Fprintf(w, " %%call = call %s @%s(%s)\n", fn.Result, fn.Callee, strings.Join(args, ", "))
	fmt.Fprintf(w, " ret %s %%call\n", fn.Result)
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "declare %s @%s(%s)\n", fn.Result, fn.Callee, strings.Join(types, ", "))
	fmt.Fprintln(w)
}
