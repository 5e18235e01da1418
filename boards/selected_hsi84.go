//go:build board_hsi84

package boards

var Selected = &HSI84
