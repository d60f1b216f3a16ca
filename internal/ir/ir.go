package ir

import (
	"fmt"
	"strings"
)

// Type is an LLVM integer type, scalar when Lanes is 1 and a fixed vector
// otherwise.
type Type struct {
	Width int
	Lanes int
}

// Int returns the integer type of the given bit width and lane count. A lane
// count below 1 is treated as scalar.
func Int(width, lanes int) Type {
	if lanes < 1 {
		lanes = 1
	}
	return Type{Width: width, Lanes: lanes}
}

// IsVector reports whether t has more than one lane.
func (t Type) IsVector() bool {
	return t.Lanes > 1
}

// Scalar returns the element type of t.
func (t Type) Scalar() Type {
	return Type{Width: t.Width, Lanes: 1}
}

// Mask returns the i1 type with the same shape as t, as consumed by select.
func (t Type) Mask() Type {
	return Type{Width: 1, Lanes: t.Lanes}
}

// Extend returns t with the element width doubled.
func (t Type) Extend() Type {
	return Type{Width: t.Width * 2, Lanes: t.Lanes}
}

func (t Type) String() string {
	base := fmt.Sprintf("i%d", t.Width)
	if !t.IsVector() {
		return base
	}
	return fmt.Sprintf("<%d x %s>", t.Lanes, base)
}

// Splat spells value broadcast across every lane of t. Scalars pass value
// through untouched.
func Splat(t Type, value string) string {
	if !t.IsVector() {
		return value
	}
	elem := t.Scalar().String() + " " + value
	var b strings.Builder
	b.WriteByte('<')
	for i := 0; i < t.Lanes; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(elem)
	}
	b.WriteByte('>')
	return b.String()
}

// Zero spells the zero constant of t.
func Zero(t Type) string {
	if t.IsVector() {
		return "zeroinitializer"
	}
	return "0"
}

// Struct spells a literal struct type of the given fields.
func Struct(fields ...Type) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return "{ " + strings.Join(names, ", ") + " }"
}
