package fixture

import (
	"strconv"

	"addsatgen/internal/ir"
)

// Variant is one point of the width × signedness × lane count domain. Every
// string the generator derives is a pure function of a Variant.
type Variant struct {
	Width  int
	Signed bool
	Lanes  int
}

// Variants enumerates widths, then signedness (unsigned first), then lanes.
func Variants(widths, lanes []int) []Variant {
	out := make([]Variant, 0, len(widths)*2*len(lanes))
	for _, w := range widths {
		for _, signed := range []bool{false, true} {
			for _, n := range lanes {
				out = append(out, Variant{Width: w, Signed: signed, Lanes: n})
			}
		}
	}
	return out
}

// TypeName spells the OpenCL C type, e.g. "char", "uint4".
func TypeName(width int, signed bool, lanes int) string {
	name := ""
	if !signed {
		name = "u"
	}
	switch width {
	case 8:
		name += "char"
	case 16:
		name += "short"
	case 32:
		name += "int"
	default:
		name += "long"
	}
	if lanes > 1 {
		name += strconv.Itoa(lanes)
	}
	return name
}

func (v Variant) TypeName() string {
	return TypeName(v.Width, v.Signed, v.Lanes)
}

// FuncName is the wrapper function defined by the fixture.
func (v Variant) FuncName() string {
	return "add_sat_" + v.TypeName()
}

// FileName is the fixture's base name.
func (v Variant) FileName() string {
	return v.FuncName() + ".ll"
}

// Type is the IR type of the operands and result.
func (v Variant) Type() ir.Type {
	return ir.Int(v.Width, v.Lanes)
}

func (v Variant) String() string {
	return v.TypeName()
}

// MinValue is the smallest value representable in width bits.
func MinValue(width int, signed bool) int64 {
	if !signed {
		return 0
	}
	return -int64(uint64(1) << (width - 1))
}

// MaxValue is the largest signed value representable in width bits. For
// unsigned widths it returns 2^width, one past the true maximum, with the
// shift wrapping to 0 at 64 bits. Only the signed bounds reach emitted
// fixtures.
func MaxValue(width int, signed bool) int64 {
	if signed {
		return int64(uint64(1)<<(width-1)) - 1
	}
	return int64(uint64(1) << width)
}
