package sprite

import (
	"fmt"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func writeThumb(t *testing.T, dir, name string, c color.Color) {
	t.Helper()
	img := imaging.New(CellWidth, CellHeight, c)
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		t.Fatal(err)
	}
}

func TestBuildSheet(t *testing.T) {
	dir := t.TempDir()

	var names []string
	for i := 1; i <= 6; i++ {
		name := fmt.Sprintf("thumb_%03d.jpg", i)
		writeThumb(t, dir, name, color.NRGBA{R: uint8(i * 40), A: 255})
		names = append(names, name)
	}

	out, err := BuildSheet(dir, names, 4)
	if err != nil {
		t.Fatalf("BuildSheet() error = %v", err)
	}

	if out != filepath.Join(dir, FileName) {
		t.Errorf("Expected sheet at %s, got %s", filepath.Join(dir, FileName), out)
	}

	sheet, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("Failed to open sheet: %v", err)
	}

	// 6 thumbs in 4 columns: 4 wide, 2 rows.
	wantW, wantH := 4*CellWidth, 2*CellHeight
	if b := sheet.Bounds(); b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("Expected %dx%d sheet, got %dx%d", wantW, wantH, b.Dx(), b.Dy())
	}
}

func TestBuildSheetSingleRow(t *testing.T) {
	dir := t.TempDir()
	writeThumb(t, dir, "thumb_001.jpg", color.White)
	writeThumb(t, dir, "thumb_002.jpg", color.Black)

	out, err := BuildSheet(dir, []string{"thumb_001.jpg", "thumb_002.jpg"}, 10)
	if err != nil {
		t.Fatal(err)
	}

	sheet, err := imaging.Open(out)
	if err != nil {
		t.Fatal(err)
	}

	// Fewer thumbs than columns: sheet shrinks to the actual count.
	if b := sheet.Bounds(); b.Dx() != 2*CellWidth || b.Dy() != CellHeight {
		t.Errorf("Expected %dx%d sheet, got %dx%d", 2*CellWidth, CellHeight, b.Dx(), b.Dy())
	}
}

func TestBuildSheetResizesOddCells(t *testing.T) {
	dir := t.TempDir()
	img := imaging.New(320, 180, color.White)
	if err := imaging.Save(img, filepath.Join(dir, "thumb_001.jpg")); err != nil {
		t.Fatal(err)
	}

	out, err := BuildSheet(dir, []string{"thumb_001.jpg"}, 10)
	if err != nil {
		t.Fatal(err)
	}

	sheet, err := imaging.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	if b := sheet.Bounds(); b.Dx() != CellWidth || b.Dy() != CellHeight {
		t.Errorf("Oversized input must be normalized to one cell, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestBuildSheetEmpty(t *testing.T) {
	if _, err := BuildSheet(t.TempDir(), nil, 10); err == nil {
		t.Fatal("Expected error for empty thumbnail list")
	}
}

func TestBuildSheetMissingFile(t *testing.T) {
	if _, err := BuildSheet(t.TempDir(), []string{"thumb_001.jpg"}, 10); err == nil {
		t.Fatal("Expected error for missing thumbnail file")
	}
}
