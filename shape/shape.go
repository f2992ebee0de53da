// SPDX-License-Identifier: Unlicense OR MIT

// Package shape implements the non-rectangular paragraph profiles of
// spec.md §3 "Shape": a vertical strip of text is bounded, at every y, by a
// left and right edge that need not be constant, so paragraphs can flow
// around floated images or follow a page's irregular margins. This is the
// reason the paragraph layouter cannot reuse go-text/typesetting's
// rectangle-only shaping.LineWrapper and instead drives its own line
// breaking against the Left/Right queries here.
package shape

import "github.com/vog/stll/geom"

// Shape answers left/right boundary queries over a vertical span [y0, y1).
// Implementations must return, for any sub-span, bounds that are valid for
// the whole sub-span: callers query shrinking spans as a line's height is
// discovered, so Left/Right must be monotonically well-behaved (a wider
// span never reports tighter bounds than any of its sub-spans would).
type Shape interface {
	// Left returns the left edge content may start at, for every y in
	// [y0, y1).
	Left(y0, y1 geom.Fixed) geom.Fixed
	// Right returns the right edge content may extend to, for every y in
	// [y0, y1).
	Right(y0, y1 geom.Fixed) geom.Fixed
	// LeftOuter is like Left but for floated content allowed to intrude
	// into the margin.
	LeftOuter(y0, y1 geom.Fixed) geom.Fixed
	// RightOuter is the Right-side analogue of LeftOuter.
	RightOuter(y0, y1 geom.Fixed) geom.Fixed
}

// Rectangle is the simplest Shape: constant left/right bounds regardless
// of y, the profile a top-level page or a table cell presents.
type Rectangle struct {
	L, R geom.Fixed
}

// NewRectangle returns a Shape with constant bounds [l, r).
func NewRectangle(l, r geom.Fixed) Rectangle { return Rectangle{L: l, R: r} }

func (s Rectangle) Left(y0, y1 geom.Fixed) geom.Fixed       { return s.L }
func (s Rectangle) Right(y0, y1 geom.Fixed) geom.Fixed      { return s.R }
func (s Rectangle) LeftOuter(y0, y1 geom.Fixed) geom.Fixed  { return s.L }
func (s Rectangle) RightOuter(y0, y1 geom.Fixed) geom.Fixed { return s.R }

// Indent shrinks a base Shape's Left/Right bounds by fixed left/right
// amounts (text-indent / box-model margins, spec.md §4.2), while leaving
// the outer bounds reported to LeftOuter/RightOuter untouched so a list
// marker can still sit in the indented margin.
type Indent struct {
	Base          Shape
	Left_, Right_ geom.Fixed
}

// NewIndent narrows base by left/right on each side.
func NewIndent(base Shape, left, right geom.Fixed) Indent {
	return Indent{Base: base, Left_: left, Right_: right}
}

func (s Indent) Left(y0, y1 geom.Fixed) geom.Fixed {
	return s.Base.Left(y0, y1) + s.Left_
}

func (s Indent) Right(y0, y1 geom.Fixed) geom.Fixed {
	return s.Base.Right(y0, y1) - s.Right_
}

func (s Indent) LeftOuter(y0, y1 geom.Fixed) geom.Fixed  { return s.Base.Left(y0, y1) }
func (s Indent) RightOuter(y0, y1 geom.Fixed) geom.Fixed { return s.Base.Right(y0, y1) }

// StripLeft carves a vertical strip out of base's left edge: the strip
// runs from base.Left()+inner to base.Left()+outer at every y, the profile
// a list bullet column or a float's reserved margin needs. Ported from
// stripLeftShape_c in original_source/layouterXHTML.cpp.
type StripLeft struct {
	Base         Shape
	Inner, Outer geom.Fixed
}

// NewStripLeft returns the [base.Left()+inner, base.Left()+outer) strip.
func NewStripLeft(base Shape, inner, outer geom.Fixed) StripLeft {
	return StripLeft{Base: base, Inner: inner, Outer: outer}
}

func (s StripLeft) Left(y0, y1 geom.Fixed) geom.Fixed  { return s.Base.Left(y0, y1) + s.Inner }
func (s StripLeft) Right(y0, y1 geom.Fixed) geom.Fixed { return s.Base.Left(y0, y1) + s.Outer }
func (s StripLeft) LeftOuter(y0, y1 geom.Fixed) geom.Fixed {
	return s.Base.LeftOuter(y0, y1) + s.Inner
}
func (s StripLeft) RightOuter(y0, y1 geom.Fixed) geom.Fixed {
	return s.Base.LeftOuter(y0, y1) + s.Outer
}

// StripRight is the mirror of StripLeft, carving a strip out of base's
// right edge: the strip runs from base.Right()-outer to base.Right()-inner.
// Ported from stripRightShape_c.
type StripRight struct {
	Base         Shape
	Inner, Outer geom.Fixed
}

// NewStripRight returns the [base.Right()-outer, base.Right()-inner) strip.
func NewStripRight(base Shape, inner, outer geom.Fixed) StripRight {
	return StripRight{Base: base, Inner: inner, Outer: outer}
}

func (s StripRight) Left(y0, y1 geom.Fixed) geom.Fixed  { return s.Base.Right(y0, y1) - s.Outer }
func (s StripRight) Right(y0, y1 geom.Fixed) geom.Fixed { return s.Base.Right(y0, y1) - s.Inner }
func (s StripRight) LeftOuter(y0, y1 geom.Fixed) geom.Fixed {
	return s.Base.RightOuter(y0, y1) - s.Outer
}
func (s StripRight) RightOuter(y0, y1 geom.Fixed) geom.Fixed {
	return s.Base.RightOuter(y0, y1) - s.Inner
}

// VBand restricts a base Shape to the vertical span [top, bottom), by
// reporting the base's bounds within that clamp and clamping any query
// span to it. This is how block-level boxes (spec.md §4.2) carve a
// sub-region for each child out of their parent's shape.
type VBand struct {
	Base        Shape
	Top, Bottom geom.Fixed
}

// NewVBand restricts base to the vertical span [top, bottom).
func NewVBand(base Shape, top, bottom geom.Fixed) VBand {
	return VBand{Base: base, Top: top, Bottom: bottom}
}

func (s VBand) clamp(y0, y1 geom.Fixed) (geom.Fixed, geom.Fixed) {
	if y0 < s.Top {
		y0 = s.Top
	}
	if y0 > s.Bottom {
		y0 = s.Bottom
	}
	if y1 > s.Bottom {
		y1 = s.Bottom
	}
	if y1 < y0 {
		y1 = y0
	}
	return y0, y1
}

func (s VBand) Left(y0, y1 geom.Fixed) geom.Fixed {
	y0, y1 = s.clamp(y0, y1)
	return s.Base.Left(y0, y1)
}

func (s VBand) Right(y0, y1 geom.Fixed) geom.Fixed {
	y0, y1 = s.clamp(y0, y1)
	return s.Base.Right(y0, y1)
}

func (s VBand) LeftOuter(y0, y1 geom.Fixed) geom.Fixed {
	y0, y1 = s.clamp(y0, y1)
	return s.Base.LeftOuter(y0, y1)
}

func (s VBand) RightOuter(y0, y1 geom.Fixed) geom.Fixed {
	y0, y1 = s.clamp(y0, y1)
	return s.Base.RightOuter(y0, y1)
}

// Func adapts two plain functions into a Shape, for callers (and tests)
// that want an irregular profile -- a floated image's step, a page cutout
// -- without declaring a named type. The Outer queries are answered by the
// same functions as the inner ones, i.e. there is no separate margin
// region.
type Func struct {
	LeftFn, RightFn func(y0, y1 geom.Fixed) geom.Fixed
}

func (s Func) Left(y0, y1 geom.Fixed) geom.Fixed       { return s.LeftFn(y0, y1) }
func (s Func) Right(y0, y1 geom.Fixed) geom.Fixed      { return s.RightFn(y0, y1) }
func (s Func) LeftOuter(y0, y1 geom.Fixed) geom.Fixed  { return s.LeftFn(y0, y1) }
func (s Func) RightOuter(y0, y1 geom.Fixed) geom.Fixed { return s.RightFn(y0, y1) }
