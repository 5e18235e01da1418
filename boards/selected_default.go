//go:build !board_hsi84 && !board_hsi16 && !board_disco160

package boards

// Selected is the board the firmware programs at boot.
var Selected = &Disco168
