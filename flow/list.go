// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"github.com/go-text/typesetting/di"

	"github.com/vog/stll/attr"
	"github.com/vog/stll/dom"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/para"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/stllerr"
	"github.com/vog/stll/style"
)

// List lays out a <ul>'s <li> children, spec.md §4.7, ported from
// layoutXML_UL in original_source/layouterXHTML.cpp: each item reserves a
// bullet column carved out of its own left edge (the right edge in an rtl
// list) via shape.StripLeft/StripRight, with the remaining shape.Indent
// narrowing handed to the item's own content.
func List(sheet *style.Sheet, n dom.Node, sh shape.Shape, ystart geom.Fixed) (layout.Layout, error) {
	rtl := sheet.ValueOf(n, "direction") == "rtl"

	var out layout.Layout
	out.Height = ystart
	y := ystart
	aboveMarginBottom := geom.Fixed(0)
	aboveBorderBottom := geom.Fixed(0)

	for _, li := range n.Children() {
		if li.Type() != dom.Element || li.Name() != "li" {
			return layout.Layout{}, stllerr.Newf(stllerr.UnexpectedTag, dom.Path(li),
				"only <li> allowed inside <ul>, got %q", li.Name())
		}
		// spec.md §4.7: the bullet column's width is the ascender of the
		// item's own font, so it is measured per <li> rather than once for
		// the whole list.
		bulletWidth, err := bulletColumnWidth(sheet, li)
		if err != nil {
			return layout.Layout{}, err
		}
		br, err := boxNode(sheet, li, sh, y, aboveMarginBottom, aboveBorderBottom,
			func(inner shape.Shape, yy geom.Fixed) (layout.Layout, error) {
				return listItemContent(sheet, li, inner, yy, bulletWidth, rtl)
			})
		if err != nil {
			return layout.Layout{}, err
		}
		out = out.Append(br.Layout, 0, 0)
		y = br.OuterBottom
		aboveMarginBottom, aboveBorderBottom = br.MarginBottom, br.BorderBottom
	}
	out.Height = y
	return out, nil
}

// bulletColumnWidth shapes a standalone U+2022 at li's resolved font to
// learn its ascender, which spec.md §4.7 specifies as the bullet column's
// width, matching original_source/layouterXHTML.cpp:754's
// `listIndent = font->getAscender()` -- no CSS property is consulted. The
// glyph is shaped against an unbounded band purely to read back
// FirstBaseline (the ascent of a paragraph starting at y=0 equals its
// first line's ascent); bulletGlyph below reshapes it for real once the
// resulting column width is known.
func bulletColumnWidth(sheet *style.Sheet, li dom.Node) (geom.Fixed, error) {
	a, err := resolveAttr(sheet, li)
	if err != nil {
		return 0, err
	}
	idx := attr.NewIndex()
	idx.SetRange(0, 1, a)
	opts := para.Options{Align: para.AlignStart, Direction: di.DirectionLTR}
	unbounded := shape.NewVBand(shape.NewRectangle(0, geom.I(1<<20)), 0, geom.I(1<<20))
	l, err := para.Layout(dom.Path(li), []rune{'•'}, idx, unbounded, opts)
	if err != nil {
		return 0, err
	}
	return l.FirstBaseline, nil
}

// listItemContent lays out one <li>'s children in the column remaining
// after the bullet strip, then lays out and aligns the bullet glyph itself
// to the content's first baseline.
func listItemContent(sheet *style.Sheet, li dom.Node, sh shape.Shape, ystart, bulletWidth geom.Fixed, rtl bool) (layout.Layout, error) {
	var contentShape shape.Shape
	if rtl {
		contentShape = shape.NewIndent(sh, 0, bulletWidth)
	} else {
		contentShape = shape.NewIndent(sh, bulletWidth, 0)
	}
	content, err := Flow(sheet, li, contentShape, ystart)
	if err != nil {
		return layout.Layout{}, err
	}
	bullet, err := bulletGlyph(sheet, li, sh, bulletWidth, ystart, content.FirstBaseline, rtl)
	if err != nil {
		return layout.Layout{}, err
	}
	out := content.Append(bullet, 0, 0)
	out.Left, out.Right = content.Left, content.Right
	out.FirstBaseline = content.FirstBaseline
	return out, nil
}

// bulletGlyph shapes the single U+2022 marker for an <li>, positioned in
// its own strip of sh and shifted so its baseline matches firstBaseline --
// the content's first line -- rather than whatever baseline a standalone
// one-glyph paragraph would naturally land on.
func bulletGlyph(sheet *style.Sheet, li dom.Node, sh shape.Shape, bulletWidth, ystart, firstBaseline geom.Fixed, rtl bool) (layout.Layout, error) {
	a, err := resolveAttr(sheet, li)
	if err != nil {
		return layout.Layout{}, err
	}
	idx := attr.NewIndex()
	text := []rune{'•'}
	idx.SetRange(0, 1, a)

	var bulletShape shape.Shape
	if rtl {
		bulletShape = shape.NewStripRight(sh, 0, bulletWidth)
	} else {
		bulletShape = shape.NewStripLeft(sh, 0, bulletWidth)
	}
	opts := para.Options{Align: para.AlignStart, Direction: di.DirectionLTR}
	l, err := para.Layout(dom.Path(li), text, idx, shape.NewVBand(bulletShape, ystart, geom.I(1<<20)), opts)
	if err != nil {
		return layout.Layout{}, err
	}
	return l.Translate(0, firstBaseline-l.FirstBaseline), nil
}
