// Package conv formats integers into caller buffers without fmt or strconv.
package conv

const digitSet = "0123456789ABCDEF"

// digits writes n in base at the tail of buf, most significant digit first,
// and returns that tail. A buffer too short keeps the low digits.
func digits(buf []byte, n uint64, base uint64) []byte {
	i := len(buf)
	for i > 0 {
		i--
		buf[i] = digitSet[n%base]
		n /= base
		if n == 0 {
			break
		}
	}
	return buf[i:]
}

// Utoa formats n in base 10. 20 bytes hold any uint64.
func Utoa(buf []byte, n uint64) []byte { return digits(buf, n, 10) }

// Itoa is Utoa with a leading '-' for negative n. 20 bytes hold any int64.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	if len(buf) < 2 {
		return buf[:0]
	}
	d := Utoa(buf[1:], uint64(-n))
	start := len(buf) - len(d) - 1
	buf[start] = '-'
	return buf[start:]
}

// Hex formats n as uppercase hex without prefix or padding. 16 bytes hold
// any uint64.
func Hex(buf []byte, n uint64) []byte { return digits(buf, n, 16) }

// U32Hex formats n as exactly eight uppercase hex digits, the width of a
// register dump. It returns an empty slice if buf is shorter.
func U32Hex(buf []byte, n uint32) []byte {
	if len(buf) < 8 {
		return buf[:0]
	}
	out := buf[len(buf)-8:]
	for i := range out {
		out[i] = '0'
	}
	digits(out, uint64(n), 16)
	return out
}
