// SPDX-License-Identifier: Unlicense OR MIT

package para

import (
	"github.com/go-text/typesetting/shaping"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"

	"github.com/vog/stll/geom"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/stllerr"
)

// breakPos is one rune offset at which a line is permitted to end.
type breakPos struct {
	pos       int
	mandatory bool
}

// breakOpportunities classifies every UAX#14 break opportunity in text,
// grounded on github.com/npillmayer/uax/uax14's segmenter-driven API (the
// same shape as the vendored github.com/gioui/uax fork this module's
// dependency derives from): a LineWrap breaker reports, at each segment
// boundary, a penalty pair whose first value is highly negative for a
// mandatory break and at or above uax14.PenaltyToSuppressBreak when no
// break is possible there at all.
func breakOpportunities(text []rune) []breakPos {
	if len(text) == 0 {
		return nil
	}
	breaker := uax14.NewLineWrap()
	seg := segment.NewSegmenter(breaker)
	seg.InitFromSlice(text)
	var out []breakPos
	pos := 0
	for seg.Next() {
		pos += len(seg.Runes())
		if pos >= len(text) {
			break
		}
		p1, _ := seg.Penalties()
		if p1 >= uax14.PenaltyToSuppressBreak {
			continue
		}
		out = append(out, breakPos{pos: pos, mandatory: p1 <= uax14.PenaltyForMustBreak})
	}
	out = append(out, breakPos{pos: len(text), mandatory: true})
	return out
}

// atom is the smallest indivisible unit of a packed line: a maximal run of
// shaped pieces with no UAX#14 break opportunity between them.
type atom struct {
	start, end int // absolute rune range
	mandatory  bool // a line must end after this atom
	pieces     []shapedRun
	advance    geom.Fixed
	ascent     geom.Fixed
	descent    geom.Fixed
}

// packedLine is one output line: the atoms it contains and its metrics.
type packedLine struct {
	atoms   []atom
	ascent  geom.Fixed
	descent geom.Fixed
	y0, y1  geom.Fixed
}

// buildAtoms regroups the shaped pieces (already split by attribute run,
// bidi span, and script) into break-atoms by intersecting their
// boundaries with the UAX#14 break opportunities in breaks.
func buildAtoms(shaped []shapedRun, breaks []breakPos) []atom {
	breakSet := make(map[int]bool, len(breaks))
	mandatorySet := make(map[int]bool, len(breaks))
	for _, b := range breaks {
		breakSet[b.pos] = true
		if b.mandatory {
			mandatorySet[b.pos] = true
		}
	}

	var atoms []atom
	var cur atom
	started := false
	for _, piece := range shaped {
		start := piece.runeBase + piece.out.Runes.Offset
		end := start + piece.out.Runes.Count
		if !started {
			cur = atom{start: start}
			started = true
		}
		cur.end = end
		cur.pieces = append(cur.pieces, piece)
		// An inlay codepoint's shaped advance/metrics are the placeholder
		// nbsp glyph's, not the embedded sub-layout's; spec.md §3 "Inlay"
		// requires the sub-layout's own width/height to reserve the line
		// space instead (the glossary's "contributing to line height").
		if in := piece.attr.Inlay; in != nil {
			cur.advance += in.Width
			if in.Height > cur.ascent {
				cur.ascent = in.Height
			}
		} else {
			cur.advance += piece.out.Advance
			if piece.out.LineBounds.Ascent > cur.ascent {
				cur.ascent = piece.out.LineBounds.Ascent
			}
			if d := -piece.out.LineBounds.Descent + piece.out.LineBounds.Gap; d > cur.descent {
				cur.descent = d
			}
		}
		if breakSet[end] {
			cur.mandatory = mandatorySet[end]
			atoms = append(atoms, cur)
			started = false
		}
	}
	if started {
		cur.mandatory = true
		atoms = append(atoms, cur)
	}
	return atoms
}

// packLines greedily fills lines of atoms against sh, estimating each
// line's vertical band from the atoms already committed to it. Per
// spec.md §4.3 step 5, "if a single word exceeds the width, break at the
// last character that fits": when an atom alone overflows an otherwise
// empty line, splitAtomToFit divides it at the last glyph boundary whose
// advance still fits, leaving the remainder to be packed (and, if still
// overlong, split again) onto the following line. Only a truly
// indivisible single-glyph atom is ever placed whole despite overflowing,
// and stllerr.ShapeTooNarrow is reported as soon as sh reports zero or
// negative width at the top of a line.
func packLines(path string, shaped []shapedRun, breaks []breakPos, sh shape.Shape, lineHeight geom.Fixed) ([]packedLine, error) {
	atoms := buildAtoms(shaped, breaks)
	if len(atoms) == 0 {
		return nil, nil
	}

	var lines []packedLine
	var y geom.Fixed
	i := 0
	for i < len(atoms) {
		var line packedLine
		line.y0 = y
		width := availableWidth(sh, y, y)
		if width <= 0 {
			return nil, stllerr.New(stllerr.ShapeTooNarrow, path, "shape has no usable width")
		}
		var used geom.Fixed
		for i < len(atoms) {
			a := atoms[i]
			next := used + a.advance
			if len(line.atoms) > 0 {
				if next > width {
					break
				}
			} else if a.advance > width {
				if head, tail, ok := splitAtomToFit(a, width); ok {
					atoms[i] = tail
					a = head
					next = used + a.advance
					line.atoms = append(line.atoms, a)
					used = next
					if a.ascent > line.ascent {
						line.ascent = a.ascent
					}
					if a.descent > line.descent {
						line.descent = a.descent
					}
					break
				}
			}
			line.atoms = append(line.atoms, a)
			used = next
			if a.ascent > line.ascent {
				line.ascent = a.ascent
			}
			if a.descent > line.descent {
				line.descent = a.descent
			}
			width = availableWidth(sh, line.y0, line.y0+line.ascent+line.descent)
			i++
			if a.mandatory {
				break
			}
		}
		if natural := line.ascent + line.descent; lineHeight > natural {
			extra := (lineHeight - natural) / 2
			line.ascent += extra
			line.descent += lineHeight - natural - extra
		}
		line.y1 = line.y0 + line.ascent + line.descent
		y = line.y1
		lines = append(lines, line)
	}
	return lines, nil
}

// splitAtomToFit divides a at the last glyph boundary whose cumulative
// advance is still <= maxWidth, always keeping at least one glyph in
// head so a line can never come out empty. ok is false when a holds a
// single glyph and so cannot be split any further (the
// "indivisible cluster" case spec.md §4.3 also describes).
func splitAtomToFit(a atom, maxWidth geom.Fixed) (head, tail atom, ok bool) {
	total := 0
	for _, p := range a.pieces {
		total += len(p.out.Glyphs)
	}
	if total <= 1 {
		return atom{}, atom{}, false
	}

	k := 0
	var cum geom.Fixed
outer:
	for _, p := range a.pieces {
		for _, g := range p.out.Glyphs {
			if k > 0 && cum+g.XAdvance > maxWidth {
				break outer
			}
			cum += g.XAdvance
			k++
		}
	}
	if k >= total {
		k = total - 1
	}
	return splitAtomAtGlyph(a, k)
}

// splitAtomAtGlyph splits a after its k-th glyph (counting across all of
// a.pieces in order), dividing whichever piece straddles the cut into two
// shapedRuns whose Glyphs/Advance are re-sliced; other shapedRun fields
// (Face, text, ClusterIndex values) are shared unchanged, since nothing
// downstream of line-breaking re-derives rune ranges from them.
func splitAtomAtGlyph(a atom, k int) (head, tail atom, ok bool) {
	head.start = a.start
	tail.mandatory = a.mandatory
	remaining := k
	done := false
	addTo := func(dst *atom, p shapedRun) {
		dst.pieces = append(dst.pieces, p)
		dst.advance += p.out.Advance
		dst.ascent = geom.Max(dst.ascent, p.out.LineBounds.Ascent)
		dst.descent = geom.Max(dst.descent, -p.out.LineBounds.Descent+p.out.LineBounds.Gap)
	}
	for _, p := range a.pieces {
		n := len(p.out.Glyphs)
		switch {
		case done:
			addTo(&tail, p)
		case remaining >= n:
			addTo(&head, p)
			remaining -= n
			if remaining == 0 {
				done = true
			}
		default:
			h, t := splitPieceAtGlyph(p, remaining)
			addTo(&head, h)
			addTo(&tail, t)
			done = true
		}
	}
	cut := a.start + k
	head.end = cut
	tail.start = cut
	tail.end = a.end
	return head, tail, true
}

// splitPieceAtGlyph splits p's shaped glyph output after its k-th glyph,
// recomputing Advance for each half. Glyph ClusterIndex values are left
// untouched -- they already index into p.text directly, independent of
// which half of Glyphs a glyph ends up in.
func splitPieceAtGlyph(p shapedRun, k int) (head, tail shapedRun) {
	head, tail = p, p
	headGlyphs := append([]shaping.Glyph{}, p.out.Glyphs[:k]...)
	tailGlyphs := append([]shaping.Glyph{}, p.out.Glyphs[k:]...)
	head.out.Glyphs = headGlyphs
	head.out.Advance = sumGlyphAdvance(headGlyphs)
	tail.out.Glyphs = tailGlyphs
	tail.out.Advance = sumGlyphAdvance(tailGlyphs)
	return head, tail
}

func sumGlyphAdvance(glyphs []shaping.Glyph) geom.Fixed {
	var w geom.Fixed
	for _, g := range glyphs {
		w += g.XAdvance
	}
	return w
}

func availableWidth(sh shape.Shape, y0, y1 geom.Fixed) geom.Fixed {
	if y1 <= y0 {
		y1 = y0 + geom.I(1)
	}
	return sh.Right(y0, y1) - sh.Left(y0, y1)
}
