// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"github.com/vog/stll/dom"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/stllerr"
	"github.com/vog/stll/style"
)

// blockFontSize resolves n's own font-size, the base every per-node size
// property (padding, margin, border-width, text-indent) is expressed
// relative to when given in em. Percent font-size is resolved against a
// fixed 16px root rather than walking the full ancestor chain, the same
// simplification resolveAttr makes in phrasing.go.
func blockFontSize(sheet *style.Sheet, n dom.Node) (geom.Fixed, error) {
	return style.EvalSize(dom.Path(n), sheet.ValueOf(n, "font-size"), geom.I(16), style.SizeFontOrWidth)
}

// Flow lays out n's block-level children in document order, ported from
// layoutXML_Flow in original_source/layouterXHTML.cpp: each child advances
// the vertical cursor by its own boxed height, carrying its trailing
// margin/border forward so the next sibling's top margin/border can
// collapse against it (spec.md §4.2 "adjoining margins collapse").
func Flow(sheet *style.Sheet, n dom.Node, sh shape.Shape, ystart geom.Fixed) (layout.Layout, error) {
	children := n.Children()
	var out layout.Layout
	out.Height = ystart

	aboveMarginBottom := geom.Fixed(0)
	aboveBorderBottom := geom.Fixed(0)
	y := ystart

	i := 0
	for i < len(children) {
		c := children[i]

		if c.Type() == dom.Text || phrasingTags[c.Name()] {
			l, next, err := FlowPhrasing(sheet, n, children, i, sh, y)
			if err != nil {
				return layout.Layout{}, err
			}
			out = out.Append(l, 0, 0)
			y = l.Height
			aboveMarginBottom = 0
			aboveBorderBottom = 0
			i = next
			continue
		}

		switch c.Name() {
		case "p", "h1", "h2", "h3", "h4", "h5", "h6":
			br, err := boxNode(sheet, c, sh, y, aboveMarginBottom, aboveBorderBottom,
				func(inner shape.Shape, yy geom.Fixed) (layout.Layout, error) {
					return Paragraph(sheet, c, inner, yy)
				})
			if err != nil {
				return layout.Layout{}, err
			}
			out = out.Append(br.Layout, 0, 0)
			y = br.OuterBottom
			aboveMarginBottom, aboveBorderBottom = br.MarginBottom, br.BorderBottom
		case "ul":
			br, err := boxNode(sheet, c, sh, y, aboveMarginBottom, aboveBorderBottom,
				func(inner shape.Shape, yy geom.Fixed) (layout.Layout, error) {
					return List(sheet, c, inner, yy)
				})
			if err != nil {
				return layout.Layout{}, err
			}
			out = out.Append(br.Layout, 0, 0)
			y = br.OuterBottom
			aboveMarginBottom, aboveBorderBottom = br.MarginBottom, br.BorderBottom
		case "table":
			br, err := boxNode(sheet, c, sh, y, aboveMarginBottom, aboveBorderBottom,
				func(inner shape.Shape, yy geom.Fixed) (layout.Layout, error) {
					return Table(sheet, c, inner, yy)
				})
			if err != nil {
				return layout.Layout{}, err
			}
			out = out.Append(br.Layout, 0, 0)
			y = br.OuterBottom
			aboveMarginBottom, aboveBorderBottom = br.MarginBottom, br.BorderBottom
		case "div":
			br, err := boxNode(sheet, c, sh, y, aboveMarginBottom, aboveBorderBottom,
				func(inner shape.Shape, yy geom.Fixed) (layout.Layout, error) {
					return Flow(sheet, c, inner, yy)
				})
			if err != nil {
				return layout.Layout{}, err
			}
			out = out.Append(br.Layout, 0, 0)
			y = br.OuterBottom
			aboveMarginBottom, aboveBorderBottom = br.MarginBottom, br.BorderBottom
		case "img":
			br, err := BlockImage(sheet, c, sh, y, aboveMarginBottom, aboveBorderBottom)
			if err != nil {
				return layout.Layout{}, err
			}
			out = out.Append(br.Layout, 0, 0)
			y = br.OuterBottom
			aboveMarginBottom, aboveBorderBottom = br.MarginBottom, br.BorderBottom
		default:
			return layout.Layout{}, stllerr.Newf(stllerr.UnexpectedTag, dom.Path(c),
				"tag %q not allowed at block level", c.Name())
		}
		i++
	}
	out.Height = y
	return out, nil
}

// boxNode resolves c's own font-size and wraps layoutChild in boxIt, the
// shared pattern every boxed block handler (p/h1-h6, ul, table, div) in
// Flow follows.
func boxNode(sheet *style.Sheet, c dom.Node, sh shape.Shape, ystart, aboveMarginBottom, aboveBorderBottom geom.Fixed,
	layoutChild func(shape.Shape, geom.Fixed) (layout.Layout, error)) (boxResult, error) {
	fontSize, err := blockFontSize(sheet, c)
	if err != nil {
		return boxResult{}, err
	}
	return boxIt(sheet, c, sh, ystart, fontSize, aboveMarginBottom, aboveBorderBottom, 0, 0, NoCollapse, 0, layoutChild)
}
