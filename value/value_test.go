package value

import "testing"

func TestScalarRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		v    Value
		want string
	}{
		{"int8", NewInt8(-12), "-12"},
		{"uint32", NewUint32(42), "42"},
		{"float", NewFloat(1.5), "1.5"},
		{"double", NewDouble(3.14), "3.14"},
		{"string", NewString("hi"), `"hi"`},
		{"string_md", NewStringMD("# hi"), "```# hi```"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestVectorArityAndElem(t *testing.T) {
	v := NewVec3F(1, 2, 3)
	if v.Type().VectorArity() != 3 {
		t.Fatalf("arity = %d, want 3", v.Type().VectorArity())
	}
	if v.Type().VectorElem() != FLOAT {
		t.Fatalf("elem = %v, want FLOAT", v.Type().VectorElem())
	}
	lanes, ok := v.VecF()
	if !ok || len(lanes) != 3 {
		t.Fatalf("VecF() = %v, %v", lanes, ok)
	}
	if lanes[0] != 1 || lanes[1] != 2 || lanes[2] != 3 {
		t.Errorf("lanes = %v", lanes)
	}
	if got, want := v.String(), "vec3f(1, 2, 3)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestIntVectorWidening(t *testing.T) {
	v := NewVec2L(100000000000, -1)
	lanes, ok := v.VecI()
	if !ok || lanes[0] != 100000000000 || lanes[1] != -1 {
		t.Fatalf("VecI() = %v, %v", lanes, ok)
	}
}

func TestTypeByName(t *testing.T) {
	ty, ok := TypeByName("vec3d")
	if !ok || ty != VEC3D {
		t.Fatalf("TypeByName(vec3d) = %v, %v", ty, ok)
	}
	if _, ok := TypeByName("nope"); ok {
		t.Fatalf("TypeByName(nope) should fail")
	}
}

func TestMismatchedAccessorFails(t *testing.T) {
	v := NewInt32(5)
	if _, ok := v.Float64(); ok {
		t.Fatalf("Float64() on an INT32 value should fail")
	}
	if _, ok := v.Str(); ok {
		t.Fatalf("Str() on an INT32 value should fail")
	}
}
