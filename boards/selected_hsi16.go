//go:build board_hsi16

package boards

var Selected = &HSI16
