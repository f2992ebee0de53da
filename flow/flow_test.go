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

func TestBlockFontSizeDefault(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	p := elem("p")
	size, err := blockFontSize(sheet, p)
	if err != nil {
		t.Fatalf("blockFontSize: %v", err)
	}
	if size != geom.I(16) {
		t.Errorf("blockFontSize default = %d, want %d", size, geom.I(16))
	}
}

func TestBlockFontSizeFromRule(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	sheet.AddRule("h1", "font-size", "32px")
	h1 := elem("h1")
	size, err := blockFontSize(sheet, h1)
	if err != nil {
		t.Fatalf("blockFontSize: %v", err)
	}
	if size != geom.I(32) {
		t.Errorf("blockFontSize(h1) = %d, want %d", size, geom.I(32))
	}
}

func TestBoxNodeWrapsLayoutChild(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	sheet.AddRule("div", "margin-top", "5px")
	d := elem("div")
	sh := shape.NewRectangle(geom.I(0), geom.I(100))

	br, err := boxNode(sheet, d, sh, geom.I(0), 0, 0, func(inner shape.Shape, y geom.Fixed) (layout.Layout, error) {
		return layout.Layout{Height: y + geom.I(7)}, nil
	})
	if err != nil {
		t.Fatalf("boxNode: %v", err)
	}
	if br.Layout.Height != geom.I(12) {
		t.Errorf("boxNode height = %d, want %d (5px margin + 7px content)", br.Layout.Height, geom.I(12))
	}
}

func TestFlowRejectsUnexpectedBlockTag(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	body := elem("body")
	body.child(elem("footer"))
	sh := shape.NewRectangle(geom.I(0), geom.I(100))
	_, err := Flow(sheet, body, sh, 0)
	if err == nil {
		t.Fatalf("Flow with an unsupported block-level tag: want an error")
	}
}
