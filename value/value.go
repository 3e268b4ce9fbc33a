package value

import "fmt"

// Value is a tagged union: exactly one of its fields is meaningful,
// selected by Type. The exact-width Go integer/float types used by
// the constructors below are what make numeric width exact per
// spec.md §3.7 — there is no range to validate here, because an
// int8 argument cannot itself hold an out-of-range INT8 value. Range
// checking against a *textual* literal happens once, in the parser,
// where the out-of-range value doesn't exist as a typed Go value yet.
type Value struct {
	typ Type
	i   int64      // INT8/16/32/64
	u   uint64     // UINT8/16/32/64
	f   float64    // FLOAT (holds an exact float32 value) / DOUBLE
	s   string     // STRING / STR_MD
	vi  [4]int64   // VEC*I (int32 lanes) / VEC*L (int64 lanes)
	vf  [4]float64 // VEC*F (float32 lanes) / VEC*D (float64 lanes)
}

// Type reports the value's variant.
func (v Value) Type() Type { return v.typ }

func NewInt8(n int8) Value   { return Value{typ: INT8, i: int64(n)} }
func NewInt16(n int16) Value { return Value{typ: INT16, i: int64(n)} }
func NewInt32(n int32) Value { return Value{typ: INT32, i: int64(n)} }
func NewInt64(n int64) Value { return Value{typ: INT64, i: n} }

func NewUint8(n uint8) Value   { return Value{typ: UINT8, u: uint64(n)} }
func NewUint16(n uint16) Value { return Value{typ: UINT16, u: uint64(n)} }
func NewUint32(n uint32) Value { return Value{typ: UINT32, u: uint64(n)} }
func NewUint64(n uint64) Value { return Value{typ: UINT64, u: n} }

func NewFloat(f float32) Value  { return Value{typ: FLOAT, f: float64(f)} }
func NewDouble(f float64) Value { return Value{typ: DOUBLE, f: f} }

func NewString(s string) Value   { return Value{typ: STRING, s: s} }
func NewStringMD(s string) Value { return Value{typ: STR_MD, s: s} }

func NewVec2I(x, y int32) Value       { return Value{typ: VEC2I, vi: [4]int64{int64(x), int64(y)}} }
func NewVec3I(x, y, z int32) Value    { return Value{typ: VEC3I, vi: [4]int64{int64(x), int64(y), int64(z)}} }
func NewVec4I(x, y, z, w int32) Value {
	return Value{typ: VEC4I, vi: [4]int64{int64(x), int64(y), int64(z), int64(w)}}
}

func NewVec2L(x, y int64) Value       { return Value{typ: VEC2L, vi: [4]int64{x, y}} }
func NewVec3L(x, y, z int64) Value    { return Value{typ: VEC3L, vi: [4]int64{x, y, z}} }
func NewVec4L(x, y, z, w int64) Value { return Value{typ: VEC4L, vi: [4]int64{x, y, z, w}} }

func NewVec2F(x, y float32) Value { return Value{typ: VEC2F, vf: [4]float64{float64(x), float64(y)}} }
func NewVec3F(x, y, z float32) Value {
	return Value{typ: VEC3F, vf: [4]float64{float64(x), float64(y), float64(z)}}
}
func NewVec4F(x, y, z, w float32) Value {
	return Value{typ: VEC4F, vf: [4]float64{float64(x), float64(y), float64(z), float64(w)}}
}

func NewVec2D(x, y float64) Value       { return Value{typ: VEC2D, vf: [4]float64{x, y}} }
func NewVec3D(x, y, z float64) Value    { return Value{typ: VEC3D, vf: [4]float64{x, y, z}} }
func NewVec4D(x, y, z, w float64) Value { return Value{typ: VEC4D, vf: [4]float64{x, y, z, w}} }

// Int returns the value as an int64, valid for the four signed
// integer variants.
func (v Value) Int() (int64, bool) {
	switch v.typ {
	case INT8, INT16, INT32, INT64:
		return v.i, true
	}
	return 0, false
}

// Uint returns the value as a uint64, valid for the four unsigned
// integer variants.
func (v Value) Uint() (uint64, bool) {
	switch v.typ {
	case UINT8, UINT16, UINT32, UINT64:
		return v.u, true
	}
	return 0, false
}

// Float32 returns the value as a float32, valid only for FLOAT.
func (v Value) Float32() (float32, bool) {
	if v.typ != FLOAT {
		return 0, false
	}
	return float32(v.f), true
}

// Float64 returns the value as a float64, valid only for DOUBLE.
func (v Value) Float64() (float64, bool) {
	if v.typ != DOUBLE {
		return 0, false
	}
	return v.f, true
}

// Str returns the value's text, valid for STRING and STR_MD.
func (v Value) Str() (string, bool) {
	if v.typ != STRING && v.typ != STR_MD {
		return "", false
	}
	return v.s, true
}

// VecI returns the lanes of an integer vector (VEC*I as int32, VEC*L
// as int64, both widened to int64); the slice length is the arity.
func (v Value) VecI() ([]int64, bool) {
	n := v.typ.VectorArity()
	if n == 0 || v.typ.VectorElem() != INT32 && v.typ.VectorElem() != INT64 {
		return nil, false
	}
	return append([]int64(nil), v.vi[:n]...), true
}

// VecF returns the lanes of a floating vector (VEC*F as float32,
// VEC*D as float64, both widened to float64); the slice length is the
// arity.
func (v Value) VecF() ([]float64, bool) {
	n := v.typ.VectorArity()
	if n == 0 || v.typ.VectorElem() != FLOAT && v.typ.VectorElem() != DOUBLE {
		return nil, false
	}
	return append([]float64(nil), v.vf[:n]...), true
}

// String renders v in its canonical textual form: decimal for
// integers, Go's shortest round-trip representation for floats, and
// vecN[ilfd](...) for vectors. The decompiler uses this for unknown
// class/attribute fallback serialization (spec.md §9, Open Questions).
func (v Value) String() string {
	switch v.typ {
	case INT8, INT16, INT32, INT64:
		return fmt.Sprintf("%d", v.i)
	case UINT8, UINT16, UINT32, UINT64:
		return fmt.Sprintf("%d", v.u)
	case FLOAT:
		f32, _ := v.Float32()
		return formatFloat32(f32)
	case DOUBLE:
		return formatFloat64(v.f)
	case STRING:
		return fmt.Sprintf("%q", v.s)
	case STR_MD:
		return "```" + v.s + "```"
	case VEC2I, VEC3I, VEC4I, VEC2L, VEC3L, VEC4L:
		return formatVecI(v)
	case VEC2F, VEC3F, VEC4F, VEC2D, VEC3D, VEC4D:
		return formatVecF(v)
	default:
		return "<invalid value>"
	}
}

func formatVecI(v Value) string {
	n := v.typ.VectorArity()
	letter := "i"
	if v.typ.VectorElem() == INT64 {
		letter = "l"
	}
	out := fmt.Sprintf("vec%d%s(", n, letter)
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%d", v.vi[i])
	}
	return out + ")"
}

func formatVecF(v Value) string {
	n := v.typ.VectorArity()
	letter := "f"
	if v.typ.VectorElem() == DOUBLE {
		letter = "d"
	}
	out := fmt.Sprintf("vec%d%s(", n, letter)
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ", "
		}
		if letter == "f" {
			out += formatFloat32(float32(v.vf[i]))
		} else {
			out += formatFloat64(v.vf[i])
		}
	}
	return out + ")"
}
