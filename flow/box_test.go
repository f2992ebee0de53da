// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"testing"

	"github.com/vog/stll/font"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/style"
)

func TestResolveEdgesShorthandThenPerSide(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	sheet.AddRule("p", "padding", "4px")
	sheet.AddRule("p", "padding-right", "10px")
	p := elem("p")

	e, err := resolveEdges(sheet, p, geom.I(16), "padding")
	if err != nil {
		t.Fatalf("resolveEdges: %v", err)
	}
	if e.Left != geom.I(4) || e.Top != geom.I(4) || e.Bottom != geom.I(4) {
		t.Errorf("shorthand sides = %+v, want 4px on left/top/bottom", e)
	}
	if e.Right != geom.I(10) {
		t.Errorf("padding-right = %d, want %d (per-side overrides shorthand)", e.Right, geom.I(10))
	}
}

func TestResolveEdgesDefaultsToZero(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	p := elem("p")
	e, err := resolveEdges(sheet, p, geom.I(16), "margin")
	if err != nil {
		t.Fatalf("resolveEdges: %v", err)
	}
	if e != (edges{}) {
		t.Errorf("unset margin edges = %+v, want all zero", e)
	}
}

func TestBoxItMarginCollapse(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	sheet.AddRule("p", "margin-top", "10px")
	p := elem("p")
	sh := shape.NewRectangle(geom.I(0), geom.I(100))

	childLayout := func(inner shape.Shape, y geom.Fixed) (layout.Layout, error) {
		return layout.Layout{Height: y + geom.I(5)}, nil
	}

	br, err := boxIt(sheet, p, sh, geom.I(0), geom.I(16), geom.I(20), 0, 0, 0, NoCollapse, 0, childLayout)
	if err != nil {
		t.Fatalf("boxIt: %v", err)
	}
	// margin-top is 10px but the sibling above already leaves 20px of
	// margin-bottom; margin collapse means only max(10,20)-20 = 0 additional
	// space is added here, so content starts right at y=0.
	if br.Layout.Height != geom.I(5) {
		t.Errorf("collapsed box height = %d, want %d", br.Layout.Height, geom.I(5))
	}
}

func TestBoxItUncollapsedMarginAddsSpace(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	sheet.AddRule("p", "margin-top", "10px")
	p := elem("p")
	sh := shape.NewRectangle(geom.I(0), geom.I(100))

	childLayout := func(inner shape.Shape, y geom.Fixed) (layout.Layout, error) {
		return layout.Layout{Height: y + geom.I(5)}, nil
	}

	br, err := boxIt(sheet, p, sh, geom.I(0), geom.I(16), 0, 0, 0, 0, NoCollapse, 0, childLayout)
	if err != nil {
		t.Fatalf("boxIt: %v", err)
	}
	if br.Layout.Height != geom.I(15) {
		t.Errorf("uncollapsed box height = %d, want %d (10px margin + 5px content)", br.Layout.Height, geom.I(15))
	}
}

func TestBoxItMinHeightStretches(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	p := elem("td")
	sh := shape.NewRectangle(geom.I(0), geom.I(100))

	childLayout := func(inner shape.Shape, y geom.Fixed) (layout.Layout, error) {
		return layout.Layout{Height: y + geom.I(5)}, nil
	}

	br, err := boxIt(sheet, p, sh, geom.I(0), geom.I(16), 0, 0, 0, 0, NoCollapse, geom.I(50), childLayout)
	if err != nil {
		t.Fatalf("boxIt: %v", err)
	}
	if br.Layout.Height != geom.I(50) {
		t.Errorf("box height = %d, want minHeight=%d to win over the 5px of natural content", br.Layout.Height, geom.I(50))
	}
}

func TestBoxItVerticalAlignMiddleShiftsContent(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	sheet.AddRule("td", "vertical-align", "middle")
	td := elem("td")
	sh := shape.NewRectangle(geom.I(0), geom.I(100))

	childLayout := func(inner shape.Shape, y geom.Fixed) (layout.Layout, error) {
		return layout.Layout{
			Height:   y + geom.I(10),
			Commands: []layout.Command{layout.Rect{X: 0, Y: y, W: geom.I(10), H: geom.I(10)}},
		}, nil
	}

	br, err := boxIt(sheet, td, sh, geom.I(0), geom.I(16), 0, 0, 0, 0, NoCollapse, geom.I(50), childLayout)
	if err != nil {
		t.Fatalf("boxIt: %v", err)
	}
	if br.Layout.Height != geom.I(50) {
		t.Errorf("box height = %d, want minHeight=%d", br.Layout.Height, geom.I(50))
	}
	want := (geom.I(50) - geom.I(10)) / 2
	rect, ok := br.Layout.Commands[len(br.Layout.Commands)-1].(layout.Rect)
	if !ok {
		t.Fatalf("expected the content Rect as the last command, got %+v", br.Layout.Commands)
	}
	if rect.Y != want {
		t.Errorf("middle-aligned content Y = %d, want %d (half of the 40px slack)", rect.Y, want)
	}
}

func TestBoxItVerticalAlignDefaultsToTop(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	td := elem("td")
	sh := shape.NewRectangle(geom.I(0), geom.I(100))

	childLayout := func(inner shape.Shape, y geom.Fixed) (layout.Layout, error) {
		return layout.Layout{
			Height:   y + geom.I(10),
			Commands: []layout.Command{layout.Rect{X: 0, Y: y, W: geom.I(10), H: geom.I(10)}},
		}, nil
	}

	br, err := boxIt(sheet, td, sh, geom.I(0), geom.I(16), 0, 0, 0, 0, NoCollapse, geom.I(50), childLayout)
	if err != nil {
		t.Fatalf("boxIt: %v", err)
	}
	rect := br.Layout.Commands[len(br.Layout.Commands)-1].(layout.Rect)
	if rect.Y != 0 {
		t.Errorf("unset vertical-align Y = %d, want 0 (top, unshifted)", rect.Y)
	}
}

func TestBoxItBackgroundRect(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	sheet.AddRule("div", "background-color", "#ff0000")
	d := elem("div")
	sh := shape.NewRectangle(geom.I(0), geom.I(100))

	childLayout := func(inner shape.Shape, y geom.Fixed) (layout.Layout, error) {
		return layout.Layout{Height: y + geom.I(10)}, nil
	}

	br, err := boxIt(sheet, d, sh, geom.I(0), geom.I(16), 0, 0, 0, 0, NoCollapse, 0, childLayout)
	if err != nil {
		t.Fatalf("boxIt: %v", err)
	}
	found := false
	for _, c := range br.Layout.Commands {
		if r, ok := c.(layout.Rect); ok && r.Color.R == 0xff {
			found = true
		}
	}
	if !found {
		t.Errorf("boxIt with background-color set: want a red Rect command among %+v", br.Layout.Commands)
	}
}
