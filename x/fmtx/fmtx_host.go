//go:build !stm32f4

package fmtx

import "fmt"

func Sprintf(format string, a ...any) string { return fmt.Sprintf(format, a...) }

// Sprint always separates operands with a space, matching the MCU build.
func Sprint(a ...any) string {
	s := fmt.Sprintln(a...)
	return s[:len(s)-1]
}
