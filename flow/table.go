// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"strconv"
	"strings"

	"github.com/vog/stll/dom"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/stllerr"
	"github.com/vog/stll/style"
)

// colSpec is one resolved <col> entry: either an absolute width (abs,
// star == 0) or a relative share of the table's remaining width (star > 0,
// "2*" syntax), ground rule ported from the colgroup handling in
// layoutXML_TABLE in original_source/layouterXHTML.cpp.
type colSpec struct {
	abs  geom.Fixed
	star float64
}

// cellPos is one occupied-grid entry: the td/th node together with the
// row/column it originates at and the span it covers.
type cellPos struct {
	row, col, rowspan, colspan int
	node                       dom.Node
}

// parseColWidth parses a <col width="..."> value: "120px"/"20%" are
// absolute sizes via style.EvalSize, while "2*" or "*" request a relative
// share of whatever width is left after every absolute column is
// subtracted (the classic HTML table "star-sizing" syntax).
func parseColWidth(path, v string, base geom.Fixed) (colSpec, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return colSpec{star: 1}, nil
	}
	if strings.HasSuffix(v, "*") {
		n := strings.TrimSuffix(v, "*")
		if n == "" {
			return colSpec{star: 1}, nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || f <= 0 {
			return colSpec{}, stllerr.Newf(stllerr.BadValue, path, "malformed star width %q", v)
		}
		return colSpec{star: f}, nil
	}
	abs, err := style.EvalSize(path, v, base, style.SizeFontOrWidth)
	if err != nil {
		return colSpec{}, err
	}
	return colSpec{abs: abs}, nil
}

// tableCenterOffset returns how far a table of usedWidth is shifted right
// within a container of width total. spec.md §4.6 "Tables are centered
// within their container unless the container left-bounds them below
// zero": centering is unconditional, clamped only at zero, matching
// layoutXML_TABLE's xindent computation
// (original_source/layouterXHTML.cpp:976-981) with no margin:auto
// precondition.
func tableCenterOffset(total, usedWidth geom.Fixed) geom.Fixed {
	offset := (total - usedWidth) / 2
	if offset < 0 {
		offset = 0
	}
	return offset
}

// parseSpanAttr reads a rowspan/colspan attribute, defaulting to 1 and
// rejecting anything that isn't a positive integer.
func parseSpanAttr(n dom.Node, name string) (int, error) {
	v, ok := n.Attr(name)
	if !ok || v == "" {
		return 1, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || i < 1 {
		return 0, stllerr.Newf(stllerr.BadSpan, dom.Path(n), "malformed %s %q", name, v)
	}
	return i, nil
}

// collectRows gathers a table's <tr> elements, recursing one level into
// thead/tbody/tfoot grouping elements, which the occupancy grid otherwise
// treats identically.
func collectRows(n dom.Node) []dom.Node {
	var rows []dom.Node
	for _, c := range n.Children() {
		if c.Type() != dom.Element {
			continue
		}
		switch c.Name() {
		case "tr":
			rows = append(rows, c)
		case "thead", "tbody", "tfoot":
			rows = append(rows, collectRows(c)...)
		}
	}
	return rows
}

// colGroupSpecs reads the table's <colgroup><col/>...</colgroup>, if any,
// expanding each <col span="n"> into n identical colSpec entries.
func colGroupSpecs(sheet *style.Sheet, n dom.Node, fontSize geom.Fixed) ([]colSpec, error) {
	var specs []colSpec
	for _, c := range n.Children() {
		if c.Type() != dom.Element || c.Name() != "colgroup" {
			continue
		}
		for _, col := range c.Children() {
			if col.Type() != dom.Element || col.Name() != "col" {
				continue
			}
			span, err := parseSpanAttr(col, "span")
			if err != nil {
				return nil, err
			}
			widthAttr, _ := col.Attr("width")
			spec, err := parseColWidth(dom.Path(col), widthAttr, fontSize)
			if err != nil {
				return nil, err
			}
			for i := 0; i < span; i++ {
				specs = append(specs, spec)
			}
		}
	}
	return specs, nil
}

// Table lays out a <table>, spec.md §4.6: a two-pass column-width
// resolution (colgroup/col, with absolute and "N*" relative widths),
// an occupancy grid honoring rowspan/colspan, row heights derived from
// natural cell content height (a rowspan's shortfall is made up by
// stretching the last row it spans), and, in an rtl table, columns laid
// out right to left. Ported from layoutXML_TABLE.
func Table(sheet *style.Sheet, n dom.Node, sh shape.Shape, ystart geom.Fixed) (layout.Layout, error) {
	fontSize, err := blockFontSize(sheet, n)
	if err != nil {
		return layout.Layout{}, err
	}
	rtl := sheet.ValueOf(n, "direction") == "rtl"

	specs, err := colGroupSpecs(sheet, n, fontSize)
	if err != nil {
		return layout.Layout{}, err
	}
	rows := collectRows(n)

	numCols := len(specs)
	hasColGroup := numCols > 0
	if !hasColGroup {
		// No explicit colgroup: infer the column count from the widest row,
		// every column sharing the remaining width equally.
		for _, row := range rows {
			w := 0
			for _, cell := range row.Children() {
				if cell.Type() != dom.Element || (cell.Name() != "td" && cell.Name() != "th") {
					continue
				}
				cs, err := parseSpanAttr(cell, "colspan")
				if err != nil {
					return layout.Layout{}, err
				}
				w += cs
			}
			if w > numCols {
				numCols = w
			}
		}
		for i := 0; i < numCols; i++ {
			specs = append(specs, colSpec{star: 1})
		}
	}
	if numCols == 0 {
		return layout.Layout{Height: ystart}, nil
	}

	occupied := make([][]bool, len(rows))
	for i := range occupied {
		occupied[i] = make([]bool, numCols)
	}

	var cells []cellPos
	for r, row := range rows {
		col := 0
		for _, cell := range row.Children() {
			if cell.Type() != dom.Element || (cell.Name() != "td" && cell.Name() != "th") {
				continue
			}
			for col < numCols && occupied[r][col] {
				col++
			}
			rowspan, err := parseSpanAttr(cell, "rowspan")
			if err != nil {
				return layout.Layout{}, err
			}
			colspan, err := parseSpanAttr(cell, "colspan")
			if err != nil {
				return layout.Layout{}, err
			}
			if col+colspan > numCols {
				return layout.Layout{}, stllerr.Newf(stllerr.TooManyColumns, dom.Path(cell),
					"row has more cells than the table's %d columns", numCols)
			}
			for rr := r; rr < r+rowspan && rr < len(rows); rr++ {
				for cc := col; cc < col+colspan; cc++ {
					occupied[rr][cc] = true
				}
			}
			cells = append(cells, cellPos{row: r, col: col, rowspan: rowspan, colspan: colspan, node: cell})
			col += colspan
		}
	}

	left := sh.Left(ystart, ystart)
	right := sh.Right(ystart, ystart)
	total := right - left

	var sumAbs geom.Fixed
	var sumStar float64
	for _, s := range specs {
		sumAbs += s.abs
		sumStar += s.star
	}
	remaining := total - sumAbs
	if remaining < 0 {
		remaining = 0
	}
	colWidth := make([]geom.Fixed, numCols)
	for i, s := range specs {
		w := s.abs
		if s.star > 0 && sumStar > 0 {
			w += geom.Fixed(float64(remaining) * s.star / sumStar)
		}
		colWidth[i] = w
	}

	var usedWidth geom.Fixed
	for _, w := range colWidth {
		usedWidth += w
	}
	offset := tableCenterOffset(total, usedWidth)

	colX := make([]geom.Fixed, numCols+1)
	if rtl {
		colX[numCols] = right - offset
		for i := numCols - 1; i >= 0; i-- {
			colX[i] = colX[i+1] - colWidth[numCols-1-i]
		}
	} else {
		colX[0] = left + offset
		for i := 0; i < numCols; i++ {
			colX[i+1] = colX[i] + colWidth[i]
		}
	}
	cellX := func(col int) (x0, x1 geom.Fixed) {
		if rtl {
			return colX[numCols-col-1], colX[numCols-col]
		}
		return colX[col], colX[col+1]
	}

	natural := make([]geom.Fixed, len(cells))
	for i, cp := range cells {
		x0, x1 := cellX(cp.col)
		for k := 1; k < cp.colspan; k++ {
			x0k, x1k := cellX(cp.col + k)
			x0, x1 = geom.Min(x0, x0k), geom.Max(x1, x1k)
		}
		br, err := cellBox(sheet, cp.node, shape.NewRectangle(x0, x1), 0, fontSize, 0, 0, 0, 0, 0)
		if err != nil {
			return layout.Layout{}, err
		}
		natural[i] = br.Layout.Height
	}

	rowHeight := make([]geom.Fixed, len(rows))
	for i, cp := range cells {
		if cp.rowspan == 1 {
			if natural[i] > rowHeight[cp.row] {
				rowHeight[cp.row] = natural[i]
			}
		}
	}
	for i, cp := range cells {
		if cp.rowspan <= 1 {
			continue
		}
		last := cp.row + cp.rowspan - 1
		if last >= len(rows) {
			last = len(rows) - 1
		}
		var sum geom.Fixed
		for r := cp.row; r <= last; r++ {
			sum += rowHeight[r]
		}
		if natural[i] > sum {
			rowHeight[last] += natural[i] - sum
		}
	}

	rowY := make([]geom.Fixed, len(rows)+1)
	rowY[0] = ystart
	for r := range rows {
		rowY[r+1] = rowY[r] + rowHeight[r]
	}

	colBorderBottom := make([]geom.Fixed, numCols)
	colLeftBorder := make([]geom.Fixed, numCols)

	var out layout.Layout
	out.Height = rowY[len(rows)]
	out.Left, out.Right = left, right
	for i, cp := range cells {
		x0, x1 := cellX(cp.col)
		for k := 1; k < cp.colspan; k++ {
			x0k, x1k := cellX(cp.col + k)
			x0, x1 = geom.Min(x0, x0k), geom.Max(x1, x1k)
		}
		last := cp.row + cp.rowspan - 1
		if last >= len(rows) {
			last = len(rows) - 1
		}
		var minHeight geom.Fixed
		for r := cp.row; r <= last; r++ {
			minHeight += rowHeight[r]
		}
		above := colBorderBottom[cp.col]
		leftBorder := colLeftBorder[cp.col]
		br, err := cellBox(sheet, cp.node, shape.NewRectangle(x0, x1), rowY[cp.row], fontSize, above, 0, leftBorder, 0, minHeight)
		if err != nil {
			return layout.Layout{}, err
		}
		out = out.Append(br.Layout, 0, 0)
		for cc := cp.col; cc < cp.col+cp.colspan; cc++ {
			colBorderBottom[cc] = br.BorderBottom
			colLeftBorder[cc] = br.BorderRight
		}
		if i == 0 {
			out.FirstBaseline = br.Layout.FirstBaseline
		}
	}
	return out, nil
}

// cellBox wraps one table cell's flow content in the box model with
// border-collapse enabled, the collapsed-border adjacency a table's grid
// lines require (spec.md §4.6 "collapsed borders").
func cellBox(sheet *style.Sheet, cell dom.Node, cellShape shape.Shape, ystart, fontSize, aboveBorderBottom, aboveMarginBottom, leftBorderRight, leftMarginRight, minHeight geom.Fixed) (boxResult, error) {
	return boxIt(sheet, cell, cellShape, ystart, fontSize, aboveMarginBottom, aboveBorderBottom, leftMarginRight, leftBorderRight, Collapse, minHeight,
		func(inner shape.Shape, y geom.Fixed) (layout.Layout, error) {
			return Flow(sheet, cell, inner, y)
		})
}
