// SPDX-License-Identifier: Unlicense OR MIT

// Package flow implements the block-level layout of spec.md §4.2-§4.5: the
// box model (margin/border/padding), phrasing content (inline runs feeding
// the para package), tables, and lists. It is the Go-idiomatic rewrite of
// original_source/layouterXHTML.cpp's boxIt/layoutXML_* family: the same
// recursive "layout a node, then box it" shape, translated from pugixml
// node handles and raw ints into dom.Node and geom.Fixed.
package flow

import (
	"github.com/vog/stll/dom"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/style"
)

// edges holds a resolved four-side box-model quantity (padding, border
// width, or margin).
type edges struct {
	Left, Right, Top, Bottom geom.Fixed
}

// resolveEdges reads shorthand-then-per-side properties, ported from
// boxIt's repeated "shorthand sets all four, a present per-side overrides
// it" pattern.
func resolveEdges(sheet *style.Sheet, n dom.Node, base geom.Fixed, prefix string) (edges, error) {
	var e edges
	all, err := sizeProp(sheet, n, base, prefix)
	if err != nil {
		return e, err
	}
	e.Left, e.Right, e.Top, e.Bottom = all, all, all, all
	for side, dst := range map[string]*geom.Fixed{"left": &e.Left, "right": &e.Right, "top": &e.Top, "bottom": &e.Bottom} {
		v := sheet.ValueOf(n, prefix+"-"+side)
		if v == "" {
			continue
		}
		sz, err := sizeRaw(n, v, base)
		if err != nil {
			return e, err
		}
		*dst = sz
	}
	return e, nil
}

func sizeProp(sheet *style.Sheet, n dom.Node, base geom.Fixed, property string) (geom.Fixed, error) {
	v := sheet.ValueOf(n, property)
	if v == "" {
		return 0, nil
	}
	return sizeRaw(n, v, base)
}

func sizeRaw(n dom.Node, v string, base geom.Fixed) (geom.Fixed, error) {
	return style.EvalSize(dom.Path(n), v, base, style.SizeAny)
}

// boxResult is the outcome of boxing a child layout: the final layout
// (with border/background commands spliced in) and the resolved outer
// margin box, used by the caller to advance its own cursor.
type boxResult struct {
	Layout layout.Layout
	// OuterTop/OuterBottom are ystart and ystart+height including this
	// box's own margin, border, and padding.
	OuterTop, OuterBottom geom.Fixed
	// MarginBottom/MarginRight are this box's own trailing margins, kept
	// separate so the next sibling can collapse against them.
	MarginBottom, MarginRight geom.Fixed
	BorderBottom, BorderRight geom.Fixed
}

// boxIt wraps the layout produced by layoutChild with padding, border, and
// margin, collapsing this box's top margin against aboveMarginBottom and
// (when collapseBorder is set, i.e. inside a border-collapsed table) this
// box's top border against aboveBorderBottom -- the adjacency rule ported
// verbatim from boxIt in original_source/layouterXHTML.cpp.
func boxIt(
	sheet *style.Sheet, n dom.Node, sh shape.Shape, ystart geom.Fixed, fontSize geom.Fixed,
	aboveMarginBottom, aboveBorderBottom, leftMarginRight, leftBorderRight geom.Fixed,
	collapseBorder bound, minHeight geom.Fixed,
	layoutChild func(shape.Shape, geom.Fixed) (layout.Layout, error),
) (boxResult, error) {
	var zero boxResult

	padding, err := resolveEdges(sheet, n, fontSize, "padding")
	if err != nil {
		return zero, err
	}
	border, err := resolveEdges(sheet, n, fontSize, "border-width")
	if err != nil {
		return zero, err
	}
	margin, err := resolveEdges(sheet, n, fontSize, "margin")
	if err != nil {
		return zero, err
	}

	marginTop := geom.Max(margin.Top, aboveMarginBottom) - aboveMarginBottom
	marginLeft := geom.Max(margin.Left, leftMarginRight) - leftMarginRight

	borderTop := border.Top
	borderLeft := border.Left
	if collapseBorder.enabled {
		borderTop = geom.Max(border.Top, aboveBorderBottom) - aboveBorderBottom
		borderLeft = geom.Max(border.Left, leftBorderRight) - leftBorderRight
	}

	inner := shape.NewIndent(sh,
		padding.Left+borderLeft+marginLeft,
		padding.Right+border.Right+margin.Right,
	)
	childTop := ystart + padding.Top + borderTop + marginTop
	child, err := layoutChild(inner, childTop)
	if err != nil {
		return zero, err
	}
	content := child.Height + padding.Bottom + border.Bottom + margin.Bottom
	finalHeight := geom.Max(ystart+minHeight, content)
	// spec.md §4.4 "Vertical align inside a min-height box": when minHeight
	// (threaded in by table cells, spec.md §4.6) exceeds the child's
	// natural content height, the leftover space is distributed per
	// vertical-align by shifting the child down rather than stretching it.
	if extra := finalHeight - content; extra > 0 {
		if shift := verticalAlignShift(sheet, n, extra); shift > 0 {
			child = child.Translate(0, shift)
			child.FirstBaseline += shift
		}
	}
	child.Height = finalHeight

	var commands []layout.Command
	addBorderRect := func(width geom.Fixed, colorProp, sideColorProp string, x, y, w, h geom.Fixed) {
		if width == 0 {
			return
		}
		colVal := sheet.ValueOf(n, sideColorProp)
		if colVal == "" {
			colVal = sheet.ValueOf(n, colorProp)
		}
		if colVal == "" {
			colVal = sheet.ValueOf(n, "color")
		}
		col, err2 := style.EvalColor(dom.Path(n), colVal)
		if err2 != nil || col.A == 0 {
			return
		}
		commands = append(commands, layout.Rect{X: x, Y: y, W: w, H: h, Color: col})
	}

	left := inner.Left(childTop, childTop)
	right := inner.Right(childTop, childTop)
	addBorderRect(borderTop, "border-color", "border-top-color",
		left-padding.Left-borderLeft, ystart+marginTop,
		right-left+padding.Left+padding.Right+borderLeft+border.Right, borderTop)
	addBorderRect(border.Bottom, "border-color", "border-bottom-color",
		left-padding.Left-borderLeft, child.Height-border.Bottom-margin.Bottom,
		right-left+padding.Left+padding.Right+borderLeft+border.Right, border.Bottom)
	addBorderRect(border.Right, "border-color", "border-right-color",
		right+padding.Right, childTop,
		border.Right, child.Height-childTop-margin.Bottom-marginTop)
	addBorderRect(borderLeft, "border-color", "border-left-color",
		left-padding.Left-borderLeft, childTop,
		borderLeft, child.Height-childTop-margin.Bottom-marginTop)

	if bg := sheet.ValueOf(n, "background-color"); bg != "" {
		col, err2 := style.EvalColor(dom.Path(n), bg)
		if err2 == nil && col.A != 0 {
			outerLeft := sh.Left(ystart+marginTop, ystart+marginTop)
			outerRight := sh.Right(ystart+marginTop, ystart+marginTop)
			commands = append(commands, layout.Rect{
				X:     outerLeft + borderLeft + marginLeft,
				Y:     ystart + borderTop + marginTop,
				W:     outerRight - outerLeft - border.Right - borderLeft - margin.Right - marginLeft,
				H:     child.Height - ystart - border.Bottom - borderTop - margin.Bottom - marginTop,
				Color: col,
			})
		}
	}

	child.Commands = append(commands, child.Commands...)
	child.Left -= padding.Left + borderLeft + marginLeft
	child.Right += padding.Right + border.Right + margin.Right

	return boxResult{
		Layout:       child,
		OuterTop:     ystart,
		OuterBottom:  child.Height,
		MarginBottom: margin.Bottom,
		MarginRight:  margin.Right,
		BorderBottom: border.Bottom,
		BorderRight:  border.Right,
	}, nil
}

// verticalAlignShift resolves n's vertical-align (top, middle, bottom;
// top is the default for any other/absent value) into the fraction of
// extra space the child is shifted down by, spec.md §4.4.
func verticalAlignShift(sheet *style.Sheet, n dom.Node, extra geom.Fixed) geom.Fixed {
	switch sheet.ValueOf(n, "vertical-align") {
	case "middle":
		return extra / 2
	case "bottom":
		return extra
	default:
		return 0
	}
}

// bound toggles border-collapse, named distinctly from a bare bool so
// call sites read as self-documenting (flow.Collapse, flow.NoCollapse).
type bound struct{ enabled bool }

// Collapse requests border-collapse behavior (used inside tables).
var Collapse = bound{true}

// NoCollapse is the default block-layout behavior.
var NoCollapse = bound{false}
