// SPDX-License-Identifier: Unlicense OR MIT

// Package para shapes and line-breaks one paragraph of attributed text
// into a layout.Layout. It is the direct descendant of the teacher's
// text.shaperImpl.LayoutRunes (text/gotext.go): the itemization pipeline
// (BiDi split, script split, HarfBuzz shaping, visual reordering) is kept
// in the same shape, but the line-wrapping stage is replaced outright,
// since spec.md §3's non-rectangular Shape profile is incompatible with
// go-text/typesetting's rectangle-only shaping.LineWrapper. Breaking
// instead queries github.com/npillmayer/uax/uax14 for UAX#14 break
// opportunities and packs glyphs against shape.Shape.Right/Left per band.
package para

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/text/unicode/bidi"

	"github.com/vog/stll/attr"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/stllerr"
)

// Align is the paragraph's horizontal alignment, spec.md §4.3.
type Align int

const (
	AlignStart Align = iota
	AlignEnd
	AlignCenter
	// AlignJustify is CSS text-align:justify with text-align-last:left (or
	// unset on an ltr paragraph): every line but the last is justified,
	// the last aligns per AlignStart.
	AlignJustify
	// AlignJustifyEnd is text-align:justify with text-align-last:right (or
	// unset on an rtl paragraph): the last line aligns per AlignEnd instead.
	AlignJustifyEnd
)

// BaselineRounding controls how glyph origins are snapped to the pixel
// grid, spec.md §4.3 "Baseline rounding modes".
type BaselineRounding int

const (
	// RoundNone leaves every glyph origin at its exact fixed-point position.
	RoundNone BaselineRounding = iota
	// RoundPixel snaps both X and Y of every glyph origin to the nearest
	// whole pixel.
	RoundPixel
	// RoundBaselineOnly snaps only the Y (baseline) coordinate, leaving
	// horizontal advances at full fixed-point precision.
	RoundBaselineOnly
)

// Options configures one paragraph layout call.
type Options struct {
	Align     Align
	Direction di.Direction // paragraph base direction
	Rounding  BaselineRounding
	// LineHeight, when larger than a line's natural ascent+descent, pads
	// the line to this height, half of the extra above and the rest below
	// (the CSS line-height property). A smaller value has no effect.
	LineHeight geom.Fixed
	// Indent shifts the first line's start edge inward by this amount
	// (CSS text-indent), per spec.md §4.3 "first-line indent".
	Indent geom.Fixed
}

// shapedRun is one HarfBuzz output together with the codepoint attribute
// and logical text range (absolute, within the paragraph's rune slice) it
// was shaped from.
type shapedRun struct {
	out       shaping.Output
	attr      attr.Attribute
	runeBase  int // sub[0] corresponds to text[runeBase]
	direction di.Direction
	text      []rune // the sub-slice this output was shaped from
}

// Layout shapes text (already resolved against idx) and wraps it against
// sh, returning the composed drawing commands. idx must cover at least
// [0, len(text)).
func Layout(path string, text []rune, idx *attr.Index, sh shape.Shape, opts Options) (layout.Layout, error) {
	runs := idx.Runs(len(text))
	if len(runs) == 0 {
		return layout.Empty(), nil
	}

	breaks := breakOpportunities(text)

	shaped, err := shapeRuns(path, text, runs, opts.Direction, breaks)
	if err != nil {
		return layout.Layout{}, err
	}

	lines, err := packLines(path, shaped, breaks, sh, opts.LineHeight)
	if err != nil {
		return layout.Layout{}, err
	}

	return compose(lines, sh, opts)
}

// shapeRuns itemizes every attribute run by BiDi and script boundaries,
// further splits each resulting span at every UAX#14 break opportunity it
// contains, and shapes each piece, grounded on text.shaperImpl.shapeText and
// splitBidi/splitByScript in text/gotext.go. The extra break-opportunity
// split has no analog in the teacher (whose shaping.LineWrapper re-slices
// an already-shaped Output by glyph cluster instead); it is required here
// because line breaking against an arbitrary shape.Shape profile (break.go)
// can only recognize a candidate break at the boundary between two already-
// shaped pieces, not partway through one. Splitting before shaping costs
// cross-piece kerning at break points (almost always at whitespace, where
// there is none to lose) in exchange for not needing to re-slice HarfBuzz
// glyph output after the fact.
func shapeRuns(path string, text []rune, runs []attr.Run, baseDir di.Direction, breaks []breakPos) ([]shapedRun, error) {
	var shaped []shapedRun
	var par bidi.Paragraph
	for _, r := range runs {
		if r.Attr.Face == nil {
			return nil, stllerr.New(stllerr.FontNotFound, path, "no face resolved for styled run")
		}
		sub := text[r.From:r.To]
		for _, bs := range splitBidi(&par, sub, baseDir) {
			for _, ss := range splitByScript(sub, bs) {
				for _, fs := range splitByBreak(ss, breaks, r.From) {
					input := shaping.Input{
						Text:      sub,
						RunStart:  fs.start,
						RunEnd:    fs.end,
						Direction: fs.dir,
						Face:      r.Attr.Face.Face(),
						Size:      r.Attr.Size,
						Script:    fs.script,
						Language:  language.NewLanguage(r.Attr.Lang),
					}
					var shaper shaping.HarfbuzzShaper
					out := shaper.Shape(input)
					shaped = append(shaped, shapedRun{
						out:       out,
						attr:      r.Attr,
						runeBase:  r.From,
						direction: fs.dir,
						text:      sub,
					})
				}
			}
		}
	}
	return shaped, nil
}

// splitByBreak further divides a script span at every break opportunity in
// breaks (absolute paragraph-rune positions) that falls strictly inside it,
// converting each to runeBase-relative coordinates within s's own sub slice.
func splitByBreak(s scriptSpan, breaks []breakPos, runeBase int) []scriptSpan {
	var cuts []int
	for _, b := range breaks {
		p := b.pos - runeBase
		if p > s.start && p < s.end {
			cuts = append(cuts, p)
		}
	}
	if len(cuts) == 0 {
		return []scriptSpan{s}
	}
	out := make([]scriptSpan, 0, len(cuts)+1)
	start := s.start
	for _, c := range cuts {
		out = append(out, scriptSpan{start, c, s.dir, s.script})
		start = c
	}
	out = append(out, scriptSpan{start, s.end, s.dir, s.script})
	return out
}

// bidiSpan is a [start, end) range of sub in the dominant direction dir.
type bidiSpan struct {
	start, end int
	dir        di.Direction
}

// splitBidi resolves the bidi runs within sub, ported from
// text.shaperImpl.splitBidi in text/gotext.go.
func splitBidi(par *bidi.Paragraph, sub []rune, baseDir di.Direction) []bidiSpan {
	if len(sub) == 0 {
		return nil
	}
	def := bidi.LeftToRight
	if baseDir == di.DirectionRTL {
		def = bidi.RightToLeft
	}
	par.SetString(string(sub), bidi.DefaultDirection(def))
	ordering, err := par.Order()
	if err != nil {
		return []bidiSpan{{0, len(sub), baseDir}}
	}
	var spans []bidiSpan
	pos := 0
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		_, endRune := run.Pos()
		dir := di.DirectionLTR
		if run.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		spans = append(spans, bidiSpan{pos, endRune + 1, dir})
		pos = endRune + 1
	}
	return spans
}

// scriptSpan is a [start, end) range of sub sharing one Unicode script.
type scriptSpan struct {
	start, end int
	dir        di.Direction
	script     language.Script
}

// splitByScript divides a bidi span on script boundaries, ported from
// text.splitByScript in text/gotext.go. Runes of Common script merge into
// whichever neighboring script-specific run they're adjacent to.
func splitByScript(sub []rune, b bidiSpan) []scriptSpan {
	if b.start >= b.end {
		return nil
	}
	firstNonCommon := b.start
	for i := b.start; i < b.end; i++ {
		if language.LookupScript(sub[i]) != language.Common {
			firstNonCommon = i
			break
		}
	}
	var out []scriptSpan
	curScript := language.LookupScript(sub[firstNonCommon])
	curStart := b.start
	for i := firstNonCommon + 1; i < b.end; i++ {
		s := language.LookupScript(sub[i])
		if s == language.Common || s == curScript {
			continue
		}
		out = append(out, scriptSpan{curStart, i, b.dir, curScript})
		curStart = i
		curScript = s
	}
	out = append(out, scriptSpan{curStart, b.end, b.dir, curScript})
	return out
}
