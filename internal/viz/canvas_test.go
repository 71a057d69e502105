package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(3, 5)
	if !c.IsSet(3, 5) {
		t.Error("expected pixel to be set")
	}
	if c.Grid[1][1] != 0x2800|0x10 {
		t.Errorf("unexpected braille rune %U", c.Grid[1][1])
	}

	c.Set(-1, 0)
	c.Set(8, 0)
	c.Set(0, 8)

	c.Clear()
	if c.IsSet(3, 5) {
		t.Error("expected pixel to be cleared")
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.FillCircle(10, 10, 3)

	tests := []struct {
		x, y int
		set  bool
	}{
		{10, 10, true},
		{13, 10, true},
		{10, 7, true},
		{12, 12, true},
		{13, 13, false},
		{14, 10, false},
	}
	for _, tt := range tests {
		if got := c.IsSet(tt.x, tt.y); got != tt.set {
			t.Errorf("IsSet(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.set)
		}
	}
}

func TestCanvasFillCircleSubPixel(t *testing.T) {
	c := NewCanvas(10, 10)
	c.FillCircle(4, 4, 0.3)
	if !c.IsSet(4, 4) {
		t.Error("expected tiny circle to light its centre")
	}
}

func TestCanvasDrawCircle(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(20, 20, 5)

	for _, p := range [][2]int{{25, 20}, {15, 20}, {20, 25}, {20, 15}} {
		if !c.IsSet(p[0], p[1]) {
			t.Errorf("expected outline at %v", p)
		}
	}
	if c.IsSet(20, 20) {
		t.Error("outline should not fill the centre")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "⠀⠀⠀" {
		t.Errorf("expected blank braille row, got %q", lines[0])
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(1, 2)
	img := CanvasImage(c)

	if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 16 {
		t.Fatalf("unexpected image size %v", img.Bounds())
	}
	if img.ColorIndexAt(5, 9) != 1 {
		t.Error("expected lit dot block")
	}
	if img.ColorIndexAt(0, 0) != 0 {
		t.Error("expected dark background")
	}
}
