package fixture

import (
	"strconv"

	"addsatgen/internal/ir"
	"addsatgen/internal/mangle"
)

// CapturePattern matches an IR value name in a capture definition.
const CapturePattern = "%[a-zA-Z0-9_.]+"

// opIAddCarry is the SPIR-V opcode of OpIAddCarry.
const opIAddCarry = 149

// Check is one "; CHECK:" directive. When Capture is set the line binds the
// value it defines to that name.
type Check struct {
	Capture string
	Text    string
}

func (c Check) String() string {
	if c.Capture == "" {
		return "; CHECK: " + c.Text
	}
	return "; CHECK: [[" + c.Capture + ":" + CapturePattern + "]] = " + c.Text
}

func ref(name string) string {
	return "[[" + name + "]]"
}

// Checks returns the expected lowering of add_sat for v.
func Checks(v Variant) []Check {
	switch {
	case !v.Signed:
		return unsignedChecks(v)
	case v.Width < 32:
		return signedExtendedChecks(v)
	default:
		return signedWideChecks(v)
	}
}

// Narrow signed types are widened, added without overflow, clamped to the
// original range and truncated.
func signedExtendedChecks(v Variant) []Check {
	t := v.Type()
	ext := t.Extend()
	clamp := mangle.Function("clamp", mangle.Params(ext.Width, true, v.Lanes, 3))
	lo := ir.Splat(ext, strconv.FormatInt(MinValue(v.Width, true), 10))
	hi := ir.Splat(ext, strconv.FormatInt(MaxValue(v.Width, true), 10))
	return []Check{
		{"sext_a", "sext " + t.String() + " %a to " + ext.String()},
		{"sext_b", "sext " + t.String() + " %b to " + ext.String()},
		{"add", "add nsw " + ext.String() + " " + ref("sext_a") + ", " + ref("sext_b")},
		{"clamp", "call " + ext.String() + " @" + clamp + "(" +
			ext.String() + " " + ref("add") + ", " +
			ext.String() + " " + lo + ", " +
			ext.String() + " " + hi + ")"},
		{"trunc", "trunc " + ext.String() + " " + ref("clamp") + " to " + t.String()},
		{"", "ret " + t.String() + " " + ref("trunc")},
	}
}

// Wide signed types have no room to extend, so overflow is detected by
// comparing the wrapped sum against a and the sign of b picks the clamp.
func signedWideChecks(v Variant) []Check {
	t := v.Type()
	ts := t.String()
	mask := t.Mask().String()
	lo := ir.Splat(t, strconv.FormatInt(MinValue(v.Width, true), 10))
	hi := ir.Splat(t, strconv.FormatInt(MaxValue(v.Width, true), 10))
	return []Check{
		{"add", "add " + ts + " %a, %b"},
		{"add_gt_a", "icmp sgt " + ts + " " + ref("add") + ", %a"},
		{"min_clamp", "select " + mask + " " + ref("add_gt_a") + ", " + ts + " " + lo + ", " + ts + " " + ref("add")},
		{"add_lt_a", "icmp slt " + ts + " " + ref("add") + ", %a"},
		{"max_clamp", "select " + mask + " " + ref("add_lt_a") + ", " + ts + " " + hi + ", " + ts + " " + ref("add")},
		{"b_lt_0", "icmp slt " + ts + " %b, " + ir.Zero(t)},
		{"sel", "select " + mask + " " + ref("b_lt_0") + ", " + ts + " " + ref("min_clamp") + ", " + ts + " " + ref("max_clamp")},
		{"", "ret " + ts + " " + ref("sel")},
	}
}

// Unsigned types lower to OpIAddCarry and saturate to all ones on carry.
func unsignedChecks(v Variant) []Check {
	t := v.Type()
	ts := t.String()
	pair := ir.Struct(t, t)
	unary := mangle.Params(v.Width, false, v.Lanes, 1)
	callee := mangle.SPIRVOp(opIAddCarry, unary+unary)
	return []Check{
		{"call", "call " + pair + " @" + callee + "(i32 " + strconv.Itoa(opIAddCarry) + ", " + ts + " %a, " + ts + " %b)"},
		{"ex0", "extractvalue " + pair + " " + ref("call") + ", 0"},
		{"ex1", "extractvalue " + pair + " " + ref("call") + ", 1"},
		{"cmp", "icmp eq " + ts + " " + ref("ex1") + ", " + ir.Zero(t)},
		{"sel", "select " + t.Mask().String() + " " + ref("cmp") + ", " + ts + " " + ref("ex0") + ", " + ts + " " + ir.Splat(t, "-1")},
		{"", "ret " + ts + " " + ref("sel")},
	}
}
