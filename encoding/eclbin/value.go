package eclbin

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/A31Nesta/EcLang/value"
)

// writeString encodes a STRING operand: a kind byte (0=normal,
// 1=markdown) followed by UTF-8 bytes terminated by 0x00 (spec.md
// §4.G). It is an encode error for s to contain an interior zero byte.
func writeString(w *bytes.Buffer, kind byte, s string) error {
	if strings.IndexByte(s, 0) >= 0 {
		return fmt.Errorf("eclbin: string %q contains an interior zero byte", s)
	}
	w.WriteByte(kind)
	w.WriteString(s)
	w.WriteByte(0)
	return nil
}

// encodeValue writes the typed payload for v per spec.md §4.G's value
// table: little-endian numerics, STRING/STR_MD via writeString, and
// vectors as a concatenated element sequence with no interior framing.
func encodeValue(w *bytes.Buffer, v value.Value) error {
	switch v.Type() {
	case value.INT8:
		n, _ := v.Int()
		return binary.Write(w, binary.LittleEndian, int8(n))
	case value.INT16:
		n, _ := v.Int()
		return binary.Write(w, binary.LittleEndian, int16(n))
	case value.INT32:
		n, _ := v.Int()
		return binary.Write(w, binary.LittleEndian, int32(n))
	case value.INT64:
		n, _ := v.Int()
		return binary.Write(w, binary.LittleEndian, n)
	case value.UINT8:
		n, _ := v.Uint()
		return binary.Write(w, binary.LittleEndian, uint8(n))
	case value.UINT16:
		n, _ := v.Uint()
		return binary.Write(w, binary.LittleEndian, uint16(n))
	case value.UINT32:
		n, _ := v.Uint()
		return binary.Write(w, binary.LittleEndian, uint32(n))
	case value.UINT64:
		n, _ := v.Uint()
		return binary.Write(w, binary.LittleEndian, n)
	case value.FLOAT:
		f, _ := v.Float32()
		return binary.Write(w, binary.LittleEndian, f)
	case value.DOUBLE:
		f, _ := v.Float64()
		return binary.Write(w, binary.LittleEndian, f)
	case value.STRING:
		s, _ := v.Str()
		return writeString(w, stringKindNormal, s)
	case value.STR_MD:
		s, _ := v.Str()
		return writeString(w, stringKindMD, s)
	default:
		if v.Type().IsVector() {
			return encodeVector(w, v)
		}
		return fmt.Errorf("eclbin: cannot encode a value of type %s", v.Type())
	}
}

func encodeVector(w *bytes.Buffer, v value.Value) error {
	switch v.Type().VectorElem() {
	case value.INT32:
		lanes, _ := v.VecI()
		for _, l := range lanes {
			if err := binary.Write(w, binary.LittleEndian, int32(l)); err != nil {
				return err
			}
		}
	case value.INT64:
		lanes, _ := v.VecI()
		for _, l := range lanes {
			if err := binary.Write(w, binary.LittleEndian, l); err != nil {
				return err
			}
		}
	case value.FLOAT:
		lanes, _ := v.VecF()
		for _, l := range lanes {
			if err := binary.Write(w, binary.LittleEndian, float32(l)); err != nil {
				return err
			}
		}
	case value.DOUBLE:
		lanes, _ := v.VecF()
		for _, l := range lanes {
			if err := binary.Write(w, binary.LittleEndian, l); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("eclbin: unsupported vector type %s", v.Type())
	}
	return nil
}

// cursor is a forward-only reader over a decode buffer.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) readByte() (byte, error) {
	if c.pos >= len(c.data) {
		return 0, io.ErrUnexpectedEOF
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) readN(n int) ([]byte, error) {
	if c.pos+n > len(c.data) {
		return nil, io.ErrUnexpectedEOF
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// readString reads a STRING operand: kind byte, then UTF-8 text up to
// (and consuming) the terminating 0x00.
func (c *cursor) readString() (kind byte, s string, err error) {
	kind, err = c.readByte()
	if err != nil {
		return 0, "", err
	}
	start := c.pos
	for {
		if c.pos >= len(c.data) {
			return 0, "", io.ErrUnexpectedEOF
		}
		if c.data[c.pos] == 0 {
			break
		}
		c.pos++
	}
	s = string(c.data[start:c.pos])
	c.pos++ // consume the terminator
	return kind, s, nil
}

func decodeValue(c *cursor, typ value.Type) (value.Value, error) {
	switch typ {
	case value.INT8:
		b, err := c.readN(1)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInt8(int8(b[0])), nil
	case value.INT16:
		b, err := c.readN(2)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInt16(int16(binary.LittleEndian.Uint16(b))), nil
	case value.INT32:
		b, err := c.readN(4)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInt32(int32(binary.LittleEndian.Uint32(b))), nil
	case value.INT64:
		b, err := c.readN(8)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewInt64(int64(binary.LittleEndian.Uint64(b))), nil
	case value.UINT8:
		b, err := c.readN(1)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewUint8(b[0]), nil
	case value.UINT16:
		b, err := c.readN(2)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewUint16(binary.LittleEndian.Uint16(b)), nil
	case value.UINT32:
		b, err := c.readN(4)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewUint32(binary.LittleEndian.Uint32(b)), nil
	case value.UINT64:
		b, err := c.readN(8)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewUint64(binary.LittleEndian.Uint64(b)), nil
	case value.FLOAT:
		b, err := c.readN(4)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewFloat(math.Float32frombits(binary.LittleEndian.Uint32(b))), nil
	case value.DOUBLE:
		b, err := c.readN(8)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewDouble(math.Float64frombits(binary.LittleEndian.Uint64(b))), nil
	case value.STRING:
		kind, s, err := c.readString()
		if err != nil {
			return value.Value{}, err
		}
		if kind != stringKindNormal {
			return value.Value{}, fmt.Errorf("eclbin: expected a normal string, found kind byte 0x%02x", kind)
		}
		return value.NewString(s), nil
	case value.STR_MD:
		kind, s, err := c.readString()
		if err != nil {
			return value.Value{}, err
		}
		if kind != stringKindMD {
			return value.Value{}, fmt.Errorf("eclbin: expected a markdown string, found kind byte 0x%02x", kind)
		}
		return value.NewStringMD(s), nil
	default:
		if typ.IsVector() {
			return decodeVector(c, typ)
		}
		return value.Value{}, fmt.Errorf("eclbin: cannot decode a value of type %s", typ)
	}
}

func decodeVector(c *cursor, typ value.Type) (value.Value, error) {
	arity := typ.VectorArity()
	switch typ.VectorElem() {
	case value.INT32:
		var xs [4]int32
		for i := 0; i < arity; i++ {
			b, err := c.readN(4)
			if err != nil {
				return value.Value{}, err
			}
			xs[i] = int32(binary.LittleEndian.Uint32(b))
		}
		switch typ {
		case value.VEC2I:
			return value.NewVec2I(xs[0], xs[1]), nil
		case value.VEC3I:
			return value.NewVec3I(xs[0], xs[1], xs[2]), nil
		case value.VEC4I:
			return value.NewVec4I(xs[0], xs[1], xs[2], xs[3]), nil
		}
	case value.INT64:
		var xs [4]int64
		for i := 0; i < arity; i++ {
			b, err := c.readN(8)
			if err != nil {
				return value.Value{}, err
			}
			xs[i] = int64(binary.LittleEndian.Uint64(b))
		}
		switch typ {
		case value.VEC2L:
			return value.NewVec2L(xs[0], xs[1]), nil
		case value.VEC3L:
			return value.NewVec3L(xs[0], xs[1], xs[2]), nil
		case value.VEC4L:
			return value.NewVec4L(xs[0], xs[1], xs[2], xs[3]), nil
		}
	case value.FLOAT:
		var xs [4]float32
		for i := 0; i < arity; i++ {
			b, err := c.readN(4)
			if err != nil {
				return value.Value{}, err
			}
			xs[i] = math.Float32frombits(binary.LittleEndian.Uint32(b))
		}
		switch typ {
		case value.VEC2F:
			return value.NewVec2F(xs[0], xs[1]), nil
		case value.VEC3F:
			return value.NewVec3F(xs[0], xs[1], xs[2]), nil
		case value.VEC4F:
			return value.NewVec4F(xs[0], xs[1], xs[2], xs[3]), nil
		}
	case value.DOUBLE:
		var xs [4]float64
		for i := 0; i < arity; i++ {
			b, err := c.readN(8)
			if err != nil {
				return value.Value{}, err
			}
			xs[i] = math.Float64frombits(binary.LittleEndian.Uint64(b))
		}
		switch typ {
		case value.VEC2D:
			return value.NewVec2D(xs[0], xs[1]), nil
		case value.VEC3D:
			return value.NewVec3D(xs[0], xs[1], xs[2]), nil
		case value.VEC4D:
			return value.NewVec4D(xs[0], xs[1], xs[2], xs[3]), nil
		}
	}
	return value.Value{}, fmt.Errorf("eclbin: unsupported vector type %s", typ)
}
