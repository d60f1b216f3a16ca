package mangle

import "testing"

func TestParams(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		signed bool
		lanes  int
		arity  int
		want   string
	}{
		{"char unary", 8, true, 1, 1, "c"},
		{"char binary", 8, true, 1, 2, "cc"},
		{"uchar binary", 8, false, 1, 2, "hh"},
		{"short ternary", 16, true, 1, 3, "sss"},
		{"ushort2 unary", 16, false, 2, 1, "Dv2_t"},
		{"int4 binary", 32, true, 4, 2, "Dv4_iS_"},
		{"uint3 binary", 32, false, 3, 2, "Dv3_jS_"},
		{"long2 ternary", 64, true, 2, 3, "Dv2_lS_S_"},
		{"ulong binary", 64, false, 1, 2, "mm"},
		{"unknown width", 128, true, 1, 1, "l"},
		{"no params", 8, true, 4, 0, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Params(tc.width, tc.signed, tc.lanes, tc.arity); got != tc.want {
				t.Fatalf("Params(%d, %v, %d, %d)=%q, want %q", tc.width, tc.signed, tc.lanes, tc.arity, got, tc.want)
			}
		})
	}
}

func TestFunction(t *testing.T) {
	if got, want := Function("add_sat", "cc"), "_Z7add_satcc"; got != want {
		t.Fatalf("Function=%q, want %q", got, want)
	}
	if got, want := Function("clamp", "Dv2_sS_S_"), "_Z5clampDv2_sS_S_"; got != want {
		t.Fatalf("Function=%q, want %q", got, want)
	}
}

func TestSPIRVOp(t *testing.T) {
	if got, want := SPIRVOp(149, "Dv2_tDv2_t"), "_Z8spirv.op.149.Dv2_tDv2_t"; got != want {
		t.Fatalf("SPIRVOp=%q, want %q", got, want)
	}
}
