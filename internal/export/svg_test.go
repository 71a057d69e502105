package export

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/viz"
)

func TestSnapshotToSVG(t *testing.T) {
	snap := []dynamo.BodyView{
		{X: 300, Y: 590, Radius: 10},
		{X: 100, Y: 300, Radius: 5},
	}
	svg := SnapshotToSVG(snap, physics.DefaultBoundary(), 0.5)

	for _, want := range []string{
		`width="300" height="300"`,
		`<circle cx="150.00" cy="150.00" r="150.00" fill="none"`,
		`<circle cx="150.00" cy="295.00" r="5.00"/>`,
		`<circle cx="50.00" cy="150.00" r="2.50"/>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if n := strings.Count(svg, "<circle"); n != 3 {
		t.Errorf("expected 3 circles, got %d", n)
	}
	if err := xml.Unmarshal([]byte(svg), new(struct{})); err != nil {
		t.Errorf("svg is not well-formed: %v", err)
	}
}

func TestSnapshotToSVGDefaultScale(t *testing.T) {
	svg := SnapshotToSVG(nil, physics.DefaultBoundary(), 0)
	if !strings.Contains(svg, `width="600"`) {
		t.Error("expected unit scale for non-positive input")
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("expected empty output for nil canvas")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2)

	if !strings.Contains(svg, `width="8" height="8"`) {
		t.Error("unexpected svg size")
	}
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `<circle cx="7.0" cy="7.0" r="0.8"/>`) {
		t.Error("expected dot for sub-pixel (3, 3)")
	}
}
