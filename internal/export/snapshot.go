// Package export writes raster captures of the board.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"AmbientBoard/internal/scene"
)

// Snapshot flattens the scene onto its background, letters first and ink
// on top, and saves it as a PNG in dir. It returns the file path. Outside
// draw mode the ink layer is left out, as the board hides it too.
func Snapshot(dir string, sc *scene.Scene, now time.Time) (string, error) {
	w, h := sc.Strokes.Width(), sc.Strokes.Height()
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(sc.Background())
	dc.DrawImage(gg.ImageBufFromImage(sc.Glyphs.Frame()), 0, 0)
	if sc.Draw.Active() {
		dc.DrawImage(gg.ImageBufFromImage(sc.Strokes.Frame()), 0, 0)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}
	path := filepath.Join(dir, "ambient-"+now.Format("20060102-150405.000")+".png")
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("save snapshot: %w", err)
	}
	return path, nil
}
