package fmtx

import "clocktree-go/x/conv"

// Tiny formatter used on MCU builds, where fmt pulls in too much.
// Supports %s %d %x %X %v %t %% with an optional width; a leading 0 in the
// width zero-pads numbers and a leading - pads on the right. Stringer and
// error values print through %s/%v.

type stringer interface{ String() string }

type builder struct {
	buf []byte
	num [20]byte
}

func tinySprintf(format string, args ...any) string {
	var b builder
	ai := 0
	for i := 0; i < len(format); {
		c := format[i]
		if c != '%' {
			b.buf = append(b.buf, c)
			i++
			continue
		}
		i++
		if i < len(format) && format[i] == '%' {
			b.buf = append(b.buf, '%')
			i++
			continue
		}
		left := i < len(format) && format[i] == '-'
		if left {
			i++
		}
		zero := !left && i < len(format) && format[i] == '0'
		width := 0
		for i < len(format) && '0' <= format[i] && format[i] <= '9' {
			width = width*10 + int(format[i]-'0')
			i++
		}
		if i >= len(format) {
			return string(b.buf)
		}
		verb := format[i]
		i++
		if ai >= len(args) {
			b.buf = append(b.buf, "%!"...)
			b.buf = append(b.buf, verb)
			continue
		}
		b.verb(verb, args[ai], width, zero, left)
		ai++
	}
	return string(b.buf)
}

func tinySprint(args ...any) string {
	var b builder
	for i, a := range args {
		if i > 0 {
			b.buf = append(b.buf, ' ')
		}
		b.verb('v', a, 0, false, false)
	}
	return string(b.buf)
}

func (b *builder) verb(verb byte, arg any, width int, zero, left bool) {
	var s []byte
	numeric := false
	switch verb {
	case 'd':
		s, numeric = b.decimal(arg), true
	case 'x', 'X':
		s, numeric = b.hex(arg, verb == 'X'), true
	case 't':
		if v, _ := arg.(bool); v {
			s = []byte("true")
		} else {
			s = []byte("false")
		}
	case 's', 'v':
		switch v := arg.(type) {
		case string:
			s = []byte(v)
		case []byte:
			s = v
		case error:
			s = []byte(v.Error())
		case stringer:
			s = []byte(v.String())
		case bool:
			b.verb('t', v, width, zero, left)
			return
		default:
			if d := b.decimal(arg); d != nil {
				s, numeric = d, true
			} else {
				s = []byte("<?>")
			}
		}
	default:
		s = []byte{'%', verb}
	}
	pad := byte(' ')
	if zero && numeric {
		pad = '0'
	}
	if left {
		b.buf = append(b.buf, s...)
	}
	for n := width - len(s); n > 0; n-- {
		b.buf = append(b.buf, pad)
	}
	if !left {
		b.buf = append(b.buf, s...)
	}
}

func (b *builder) decimal(arg any) []byte {
	switch v := arg.(type) {
	case int:
		return conv.Itoa(b.num[:], int64(v))
	case int8:
		return conv.Itoa(b.num[:], int64(v))
	case int16:
		return conv.Itoa(b.num[:], int64(v))
	case int32:
		return conv.Itoa(b.num[:], int64(v))
	case int64:
		return conv.Itoa(b.num[:], v)
	}
	if u, ok := toU64(arg); ok {
		return conv.Utoa(b.num[:], u)
	}
	return nil
}

func (b *builder) hex(arg any, upper bool) []byte {
	u, ok := toU64(arg)
	if !ok {
		if d, isInt := arg.(int); isInt && d >= 0 {
			u = uint64(d)
		}
	}
	out := conv.Hex(b.num[:], u)
	if !upper {
		for i, c := range out {
			if 'A' <= c && c <= 'F' {
				out[i] = c + ('a' - 'A')
			}
		}
	}
	return out
}

func toU64(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	case uintptr:
		return uint64(t), true
	}
	return 0, false
}
