// SPDX-License-Identifier: Unlicense OR MIT

package para

import (
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"

	"github.com/vog/stll/attr"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/shape"
)

// compose positions every line's glyphs, applies alignment/justification,
// and emits the final command list. Visual run reordering is ported from
// text.computeVisualOrder in text/gotext.go, operating here over the flat
// per-line piece list rather than per-paragraph runs, since line breaking
// has already grouped pieces into lines.
func compose(lines []packedLine, sh shape.Shape, opts Options) (layout.Layout, error) {
	var out layout.Layout
	out.Links = nil
	for i, ln := range lines {
		pieces := flattenPieces(ln)
		order := visualOrder(pieces, opts.Direction)
		isLast := i == len(lines)-1

		lineWidth := sumAdvance(pieces)
		left := sh.Left(ln.y0, ln.y1)
		available := sh.Right(ln.y0, ln.y1) - left
		if i == 0 && opts.Indent != 0 {
			if opts.Direction == di.DirectionRTL {
				available -= opts.Indent
			} else {
				left += opts.Indent
				available -= opts.Indent
			}
		}
		align := effectiveAlign(opts.Align, isLast)
		offset := alignOffset(align, lineWidth, available)
		extra := justifyExtra(align, lineWidth, available, pieces)

		baselineY := ln.y0 + ln.ascent
		if opts.Rounding != RoundNone {
			baselineY = geom.I(baselineY.Round())
		}

		x := left + offset
		for _, idx := range order {
			p := pieces[idx]
			runStartX := x

			// An inlay codepoint (spec.md §3 "Inlay") carries its sub-layout
			// instead of a shaped glyph: splice it in at the current dot
			// position, translated from its own origin, and advance by its
			// own width rather than the placeholder nbsp's shaped advance.
			if p.attr.Inlay != nil {
				origin := geom.Point{X: x, Y: baselineY - p.attr.Inlay.Height}
				l, err := p.attr.Inlay.Build(origin)
				if err != nil {
					return layout.Layout{}, err
				}
				out = out.Append(l, 0, 0)
				x += p.attr.Inlay.Width
				continue
			}

			for _, g := range p.out.Glyphs {
				gx := x + g.XOffset
				gy := baselineY - g.YOffset
				if opts.Rounding == RoundPixel {
					gx = geom.I(gx.Round())
					gy = geom.I(gy.Round())
				}
				for _, sd := range p.attr.Shadows {
					out.Commands = append(out.Commands, shadowGlyph(p, g, gx, gy, sd))
				}
				out.Commands = append(out.Commands, layout.Glyph{
					Face:      p.attr.Face,
					GlyphID:   g.GlyphID,
					X:         gx,
					Y:         gy,
					Color:     p.attr.Color,
					LinkIndex: p.attr.LinkIndex,
				})
				x += g.XAdvance
				if isSpaceCluster(p, g) {
					x += extra
				}
			}
			if p.attr.Flags != 0 {
				for _, sd := range p.attr.Shadows {
					r := underlineRect(p, runStartX, x, baselineY)
					r.X += sd.DX
					r.Y += sd.DY
					r.Color = sd.Color
					out.Commands = append(out.Commands, r)
				}
				out.Commands = append(out.Commands, underlineRect(p, runStartX, x, baselineY))
			}
		}
		if x > out.Right {
			out.Right = x
		}
		out.Height = ln.y1
	}
	if len(lines) > 0 {
		out.FirstBaseline = lines[0].y0 + lines[0].ascent
	}
	return out, nil
}

func flattenPieces(ln packedLine) []shapedRun {
	var pieces []shapedRun
	for _, a := range ln.atoms {
		pieces = append(pieces, a.pieces...)
	}
	return pieces
}

func sumAdvance(pieces []shapedRun) geom.Fixed {
	var w geom.Fixed
	for _, p := range pieces {
		w += p.out.Advance
	}
	return w
}

// effectiveAlign resolves the per-line alignment actually used: the last
// line of a justified paragraph aligns per its text-align-last variant
// instead of stretching, per spec.md §4.3 "Justification".
func effectiveAlign(align Align, isLast bool) Align {
	if !isLast {
		if align == AlignJustifyEnd {
			return AlignJustify
		}
		return align
	}
	switch align {
	case AlignJustify:
		return AlignStart
	case AlignJustifyEnd:
		return AlignEnd
	default:
		return align
	}
}

func alignOffset(align Align, lineWidth, available geom.Fixed) geom.Fixed {
	switch align {
	case AlignEnd:
		d := available - lineWidth
		if d < 0 {
			d = 0
		}
		return d
	case AlignCenter:
		d := available - lineWidth
		if d < 0 {
			d = 0
		}
		return d / 2
	default:
		return 0
	}
}

// justifyExtra returns the additional advance to distribute at every
// inter-word space when Align is AlignJustify, per spec.md §4.3
// "justification stretches whitespace only, never glyph advances".
func justifyExtra(align Align, lineWidth, available geom.Fixed, pieces []shapedRun) geom.Fixed {
	if align != AlignJustify {
		return 0
	}
	gap := available - lineWidth
	if gap <= 0 {
		return 0
	}
	n := countSpaces(pieces)
	if n == 0 {
		return 0
	}
	return gap / geom.Fixed(n)
}

func countSpaces(pieces []shapedRun) int {
	n := 0
	for _, p := range pieces {
		for _, g := range p.out.Glyphs {
			if isSpaceCluster(p, g) {
				n++
			}
		}
	}
	return n
}

// isSpaceCluster reports whether g's source cluster is a single space
// rune, the unit justification stretches.
func isSpaceCluster(p shapedRun, g shaping.Glyph) bool {
	i := g.ClusterIndex
	if i < 0 || i >= len(p.text) {
		return false
	}
	return unicode.IsSpace(p.text[i])
}

// shadowGlyph returns a copy of the glyph at (gx, gy) offset by sd and
// recolored per sd, emitted before the primary glyph command (spec.md
// §4.3 step 8 "Shadows emit additional Glyph/Rect commands at offsets
// before the primary command (back-to-front)"). Shadows never carry a
// link of their own.
func shadowGlyph(p shapedRun, g shaping.Glyph, gx, gy geom.Fixed, sd attr.Shadow) layout.Glyph {
	return layout.Glyph{
		Face:      p.attr.Face,
		GlyphID:   g.GlyphID,
		X:         gx + sd.DX,
		Y:         gy + sd.DY,
		Color:     sd.Color,
		LinkIndex: -1,
	}
}

func underlineRect(p shapedRun, x0, x1, baselineY geom.Fixed) layout.Rect {
	thickness := p.attr.Size / 16
	if thickness < geom.I(1) {
		thickness = geom.I(1)
	}
	return layout.Rect{
		X:     x0,
		Y:     baselineY + thickness,
		W:     x1 - x0,
		H:     thickness,
		Color: p.attr.Color,
	}
}

// visualOrder computes the left-to-right display order of pieces, ported
// from text.computeVisualOrder (text/gotext.go): runs matching the
// paragraph's base direction keep logical order; runs running the other
// way are grouped and reversed.
func visualOrder(pieces []shapedRun, base di.Direction) []int {
	order := make([]int, len(pieces))
	const none = -1
	bidiStart := none
	for i, p := range pieces {
		if p.direction != base {
			if bidiStart == none {
				bidiStart = i
			}
			continue
		}
		if bidiStart != none {
			reverseRange(order, bidiStart, i)
			bidiStart = none
		}
		order[i] = i
	}
	if bidiStart != none {
		reverseRange(order, bidiStart, len(pieces))
	}
	return order
}

func reverseRange(order []int, start, end int) {
	for i := 0; i < end-start; i++ {
		order[start+i] = end - 1 - i
	}
}
