//go:build board_disco160

package boards

var Selected = &Disco160
