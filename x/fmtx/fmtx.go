// Package fmtx formats text through fmt on the host and through a small
// built-in formatter on stm32f4 builds, behind one API.
package fmtx

import "io"

// Fprintf formats according to format and writes the result to w.
func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return io.WriteString(w, Sprintf(format, a...))
}

// Fprint writes the operands to w separated by spaces.
func Fprint(w io.Writer, a ...any) (int, error) {
	return io.WriteString(w, Sprint(a...))
}
