// Package render formats a generated rectangular region as ASCII. Image
// output and real rendering are out of scope here — this is just enough
// to let a CLI user see what wfcgen produced.
package render

import (
	"strings"

	"github.com/gitrdm/wfcgen/pkg/wfc"
)

// Grid queries a w x h rectangle starting at (x0, y0) from getter and
// renders it as one glyph per tile, one row per line. Tile ids beyond the
// 62-symbol alphabet wrap around rather than erroring — this is a debug
// aid, not a format contract.
func Grid(getter func(x, y int32) wfc.TileId, x0, y0 int32, w, h int) string {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var b strings.Builder
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			tile := getter(x0+int32(dx), y0+int32(dy))
			b.WriteByte(alphabet[int(tile)%len(alphabet)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
