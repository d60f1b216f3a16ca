// Package mangle spells Itanium C++ mangled names for OpenCL integer
// builtins, covering the subset of the grammar used by scalar and vector
// integer overloads.
package mangle

import (
	"fmt"
	"strconv"
	"strings"
)

// Builtin returns the builtin type code for an integer of the given width
// and signedness. Unknown widths map to the 64-bit codes.
func Builtin(width int, signed bool) string {
	switch width {
	case 8:
		return pick(signed, "c", "h")
	case 16:
		return pick(signed, "s", "t")
	case 32:
		return pick(signed, "i", "j")
	default:
		return pick(signed, "l", "m")
	}
}

func pick(signed bool, s, u string) string {
	if signed {
		return s
	}
	return u
}

// Params mangles a parameter list of arity identical parameters. Scalar
// parameters repeat the builtin code. Vector parameters spell the vector type
// once and refer back to it with the first substitution (S_) afterwards.
func Params(width int, signed bool, lanes, arity int) string {
	base := Builtin(width, signed)
	if arity < 1 {
		return ""
	}
	if lanes <= 1 {
		return strings.Repeat(base, arity)
	}
	return Vector(lanes, base) + strings.Repeat("S_", arity-1)
}

// Vector spells an extended vector type of lanes elements of elem.
func Vector(lanes int, elem string) string {
	return "Dv" + strconv.Itoa(lanes) + "_" + elem
}

// Function mangles a free function name with an already mangled parameter
// list.
func Function(name, params string) string {
	return fmt.Sprintf("_Z%d%s%s", len(name), name, params)
}

// SPIRVOp spells clspv's reserved name for a call that lowers straight to a
// SPIR-V instruction. The length prefix always covers "spirv.op", with the
// opcode and parameter list appended after it.
func SPIRVOp(opcode int, params string) string {
	return fmt.Sprintf("_Z8spirv.op.%d.%s", opcode, params)
}
