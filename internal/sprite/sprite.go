package sprite

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	// CellWidth and CellHeight match the periodic thumbnail dimensions.
	CellWidth  = 160
	CellHeight = 90

	// FileName is the storyboard filename inside the thumbnail directory.
	FileName = "sprite.jpg"

	// DefaultColumns is the storyboard grid width.
	DefaultColumns = 10
)

// BuildSheet composes the named thumbnails from thumbDir into a row-major
// grid and writes the result as thumbDir/sprite.jpg. Cell (row, col) holds
// thumbnail index row*columns+col, so a player can locate the still for a
// timestamp with integer arithmetic.
func BuildSheet(thumbDir string, filenames []string, columns int) (string, error) {
	if len(filenames) == 0 {
		return "", fmt.Errorf("no thumbnails to compose")
	}
	if columns <= 0 {
		columns = DefaultColumns
	}

	cols := columns
	if len(filenames) < cols {
		cols = len(filenames)
	}
	rows := (len(filenames) + columns - 1) / columns

	sheet := imaging.New(cols*CellWidth, rows*CellHeight, color.NRGBA{0, 0, 0, 255})

	for i, name := range filenames {
		img, err := imaging.Open(filepath.Join(thumbDir, name))
		if err != nil {
			return "", fmt.Errorf("open thumbnail %s: %w", name, err)
		}

		if img.Bounds().Dx() != CellWidth || img.Bounds().Dy() != CellHeight {
			img = imaging.Resize(img, CellWidth, CellHeight, imaging.Lanczos)
		}

		x := (i % columns) * CellWidth
		y := (i / columns) * CellHeight
		sheet = imaging.Paste(sheet, img, image.Pt(x, y))
	}

	out := filepath.Join(thumbDir, FileName)
	if err := imaging.Save(sheet, out, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("save sprite sheet: %w", err)
	}

	return out, nil
}
