package ir

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		in   Type
		want string
	}{
		{Int(8, 1), "i8"},
		{Int(64, 0), "i64"},
		{Int(16, 2), "<2 x i16>"},
		{Int(32, 4), "<4 x i32>"},
		{Int(32, 3).Mask(), "<3 x i1>"},
		{Int(64, 1).Mask(), "i1"},
		{Int(8, 4).Extend(), "<4 x i16>"},
		{Int(16, 3).Scalar(), "i16"},
	}
	for _, tc := range tests {
		if got := tc.in.String(); got != tc.want {
			t.Fatalf("%#v.String()=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplat(t *testing.T) {
	if got := Splat(Int(16, 1), "-128"); got != "-128" {
		t.Fatalf("scalar splat=%q, want passthrough", got)
	}
	want := "<i16 -1, i16 -1, i16 -1>"
	if got := Splat(Int(16, 3), "-1"); got != want {
		t.Fatalf("vector splat=%q, want %q", got, want)
	}
}

func TestZero(t *testing.T) {
	if got := Zero(Int(32, 1)); got != "0" {
		t.Fatalf("scalar zero=%q", got)
	}
	if got := Zero(Int(32, 2)); got != "zeroinitializer" {
		t.Fatalf("vector zero=%q", got)
	}
}

func TestStruct(t *testing.T) {
	v := Int(8, 2)
	if got, want := Struct(v, v), "{ <2 x i8>, <2 x i8> }"; got != want {
		t.Fatalf("Struct=%q, want %q", got, want)
	}
}

func TestPrintCallWrapper(t *testing.T) {
	var buf bytes.Buffer
	PrintCallWrapper(&buf, BinaryWrapper("add_sat_int4", "_Z7add_satDv4_iS_", Int(32, 4)))
	want := strings.Join([]string{
		"define <4 x i32> @add_sat_int4(<4 x i32> %a, <4 x i32> %b) {",
		"entry:",
		" %call = call <4 x i32> @_Z7add_satDv4_iS_(<4 x i32> %a, <4 x i32> %b)",
		" ret <4 x i32> %call",
		"}",
		"",
		"declare <4 x i32> @_Z7add_satDv4_iS_(<4 x i32>, <4 x i32>)",
		"",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("wrapper mismatch (-want +got):\n%s", diff)
	}
}
