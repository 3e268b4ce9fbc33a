package parser

import (
	"strconv"
	"strings"

	"github.com/A31Nesta/EcLang/token"
	"github.com/A31Nesta/EcLang/value"
)

// parseValue reads the right-hand side of an attribute assignment,
// per spec.md §3.7: the literal kind the scanner hands back must agree
// with typ, and numeric literals are range-checked against typ's
// exact width here (the only place the out-of-range value exists as
// mere text rather than a typed Go value).
func (p *parser) parseValue(typ value.Type, attrName string) (value.Value, bool) {
	switch {
	case typ == value.STRING:
		return p.parseStringValue(attrName)
	case typ == value.STR_MD:
		return p.parseStringMDValue(attrName)
	case typ.IsNumeric():
		return p.parseNumericValue(typ, attrName)
	case typ.IsVector():
		return p.parseVectorValue(typ, attrName)
	default:
		p.errorf(p.pos, "attribute %q has an unsupported type %s", attrName, typ)
		return value.Value{}, false
	}
}

func (p *parser) parseStringValue(attrName string) (value.Value, bool) {
	if p.tok != token.STRING {
		p.errorf(p.pos, "expected a string literal for %q, found %s", attrName, describeTok(p.tok, p.lit))
		return value.Value{}, false
	}
	s := p.lit
	p.next()
	return value.NewString(s), true
}

func (p *parser) parseStringMDValue(attrName string) (value.Value, bool) {
	if p.tok != token.STRING_MD {
		p.errorf(p.pos, "expected a ``` markdown string for %q, found %s", attrName, describeTok(p.tok, p.lit))
		return value.Value{}, false
	}
	s := p.lit
	p.next()
	return value.NewStringMD(s), true
}

func (p *parser) parseNumericValue(typ value.Type, attrName string) (value.Value, bool) {
	if p.tok != token.NUMBER {
		p.errorf(p.pos, "expected a number for %q, found %s", attrName, describeTok(p.tok, p.lit))
		return value.Value{}, false
	}
	pos, lit := p.pos, p.lit
	p.next()
	return p.convertNumber(pos, typ, attrName, lit)
}

func (p *parser) numErr(pos token.Pos, lit string, typ value.Type, attrName string) {
	p.errorf(pos, "%q is out of range for %s attribute %q", lit, typ, attrName)
}

func (p *parser) convertNumber(pos token.Pos, typ value.Type, attrName, lit string) (value.Value, bool) {
	switch typ {
	case value.INT8:
		n, err := strconv.ParseInt(lit, 10, 8)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewInt8(int8(n)), true
	case value.INT16:
		n, err := strconv.ParseInt(lit, 10, 16)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewInt16(int16(n)), true
	case value.INT32:
		n, err := strconv.ParseInt(lit, 10, 32)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewInt32(int32(n)), true
	case value.INT64:
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewInt64(n), true
	case value.UINT8:
		n, err := strconv.ParseUint(lit, 10, 8)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewUint8(uint8(n)), true
	case value.UINT16:
		n, err := strconv.ParseUint(lit, 10, 16)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewUint16(uint16(n)), true
	case value.UINT32:
		n, err := strconv.ParseUint(lit, 10, 32)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewUint32(uint32(n)), true
	case value.UINT64:
		n, err := strconv.ParseUint(lit, 10, 64)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewUint64(n), true
	case value.FLOAT:
		f, err := strconv.ParseFloat(lit, 32)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewFloat(float32(f)), true
	case value.DOUBLE:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.numErr(pos, lit, typ, attrName)
			return value.Value{}, false
		}
		return value.NewDouble(f), true
	default:
		p.errorf(pos, "unsupported numeric type %s", typ)
		return value.Value{}, false
	}
}

// parseVecCtorName splits a vector-constructor identifier like "vec3"
// or "vec3f" into its arity and element-kind letter. letter is 0 for
// the bare form ("vec3"), which per spec.md §4.F's vector-literal rule
// only ever constructs a float vector.
func parseVecCtorName(s string) (arity int, letter byte, ok bool) {
	if !strings.HasPrefix(s, "vec") {
		return 0, 0, false
	}
	rest := s[len("vec"):]
	if len(rest) == 0 {
		return 0, 0, false
	}
	if rest[0] < '2' || rest[0] > '4' {
		return 0, 0, false
	}
	arity = int(rest[0] - '0')
	switch len(rest) {
	case 1:
		return arity, 0, true
	case 2:
		switch rest[1] {
		case 'i', 'l', 'f', 'd':
			return arity, rest[1], true
		}
	}
	return 0, 0, false
}

func vecLetterFor(elem value.Type) byte {
	switch elem {
	case value.INT32:
		return 'i'
	case value.INT64:
		return 'l'
	case value.FLOAT:
		return 'f'
	case value.DOUBLE:
		return 'd'
	default:
		return 0
	}
}

func (p *parser) parseVectorValue(typ value.Type, attrName string) (value.Value, bool) {
	if p.tok != token.IDENTIFIER {
		p.errorf(p.pos, "expected a vector constructor for %q, found %s", attrName, describeTok(p.tok, p.lit))
		return value.Value{}, false
	}
	ctorPos, ctorName := p.pos, p.lit

	arity, letter, ok := parseVecCtorName(ctorName)
	if !ok {
		p.errorf(ctorPos, "%q is not a valid vector constructor", ctorName)
		return value.Value{}, false
	}
	wantArity := typ.VectorArity()
	if arity != wantArity {
		p.errorf(ctorPos, "constructor %q has arity %d, attribute %q wants %d", ctorName, arity, attrName, wantArity)
		return value.Value{}, false
	}
	if letter == 0 {
		if typ.VectorElem() != value.FLOAT {
			p.errorf(ctorPos, "bare %q constructs a float vector, attribute %q is %s", ctorName, attrName, typ)
			return value.Value{}, false
		}
	} else if letter != vecLetterFor(typ.VectorElem()) {
		p.errorf(ctorPos, "constructor %q does not match attribute %q's type %s", ctorName, attrName, typ)
		return value.Value{}, false
	}
	p.next() // consume constructor identifier

	if p.tok != token.PAREN_OPEN {
		p.errorf(p.pos, "expected '(' after %q, found %s", ctorName, describeTok(p.tok, p.lit))
		return value.Value{}, false
	}
	p.next()

	lanes := make([]string, 0, arity)
	for i := 0; i < arity; i++ {
		if i > 0 {
			if p.tok != token.COMMA {
				p.errorf(p.pos, "expected ',' in vector literal, found %s", describeTok(p.tok, p.lit))
				return value.Value{}, false
			}
			p.next()
		}
		if p.tok != token.NUMBER {
			p.errorf(p.pos, "expected a number in vector literal, found %s", describeTok(p.tok, p.lit))
			return value.Value{}, false
		}
		lanes = append(lanes, p.lit)
		p.next()
	}
	if p.tok != token.PAREN_CLOSE {
		p.errorf(p.pos, "expected ')' to close vector literal, found %s", describeTok(p.tok, p.lit))
		return value.Value{}, false
	}
	p.next()

	return p.buildVector(ctorPos, typ, lanes)
}

func (p *parser) buildVector(pos token.Pos, typ value.Type, lanes []string) (value.Value, bool) {
	switch typ.VectorElem() {
	case value.INT32:
		var xs [4]int32
		for i, l := range lanes {
			n, err := strconv.ParseInt(l, 10, 32)
			if err != nil {
				p.errorf(pos, "%q is out of range for %s", l, typ)
				return value.Value{}, false
			}
			xs[i] = int32(n)
		}
		switch typ {
		case value.VEC2I:
			return value.NewVec2I(xs[0], xs[1]), true
		case value.VEC3I:
			return value.NewVec3I(xs[0], xs[1], xs[2]), true
		case value.VEC4I:
			return value.NewVec4I(xs[0], xs[1], xs[2], xs[3]), true
		}
	case value.INT64:
		var xs [4]int64
		for i, l := range lanes {
			n, err := strconv.ParseInt(l, 10, 64)
			if err != nil {
				p.errorf(pos, "%q is out of range for %s", l, typ)
				return value.Value{}, false
			}
			xs[i] = n
		}
		switch typ {
		case value.VEC2L:
			return value.NewVec2L(xs[0], xs[1]), true
		case value.VEC3L:
			return value.NewVec3L(xs[0], xs[1], xs[2]), true
		case value.VEC4L:
			return value.NewVec4L(xs[0], xs[1], xs[2], xs[3]), true
		}
	case value.FLOAT:
		var xs [4]float32
		for i, l := range lanes {
			f, err := strconv.ParseFloat(l, 32)
			if err != nil {
				p.errorf(pos, "%q is not a valid number for %s", l, typ)
				return value.Value{}, false
			}
			xs[i] = float32(f)
		}
		switch typ {
		case value.VEC2F:
			return value.NewVec2F(xs[0], xs[1]), true
		case value.VEC3F:
			return value.NewVec3F(xs[0], xs[1], xs[2]), true
		case value.VEC4F:
			return value.NewVec4F(xs[0], xs[1], xs[2], xs[3]), true
		}
	case value.DOUBLE:
		var xs [4]float64
		for i, l := range lanes {
			f, err := strconv.ParseFloat(l, 64)
			if err != nil {
				p.errorf(pos, "%q is not a valid number for %s", l, typ)
				return value.Value{}, false
			}
			xs[i] = f
		}
		switch typ {
		case value.VEC2D:
			return value.NewVec2D(xs[0], xs[1]), true
		case value.VEC3D:
			return value.NewVec3D(xs[0], xs[1], xs[2]), true
		case value.VEC4D:
			return value.NewVec4D(xs[0], xs[1], xs[2], xs[3]), true
		}
	}
	p.errorf(pos, "unsupported vector type %s", typ)
	return value.Value{}, false
}
