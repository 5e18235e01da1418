//go:build stm32f4

package fmtx

func Sprintf(format string, a ...any) string { return tinySprintf(format, a...) }
func Sprint(a ...any) string                 { return tinySprint(a...) }
