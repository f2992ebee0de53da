// SPDX-License-Identifier: Unlicense OR MIT

// Package attr implements the per-codepoint styling attribute attached to
// paragraph runs (spec.md §3 "Codepoint attribute") and the index that
// assigns attributes over ranges of codepoint positions (§4.2).
package attr

import (
	"image/color"
	"reflect"
	"sort"

	"github.com/vog/stll/font"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
)

// Flag holds boolean style bits for a codepoint.
type Flag uint8

const (
	// Underline marks the codepoint as participating in an underline run.
	Underline Flag = 1 << iota
)

// Shadow is a single offset+color shadow cast by a glyph or underline rect.
type Shadow struct {
	DX, DY geom.Fixed
	Color  color.NRGBA
}

// Inlay is a sub-layout embedded at a codepoint position. The codepoint
// carrying an Inlay must be a no-break space (U+00A0) acting purely as a
// placeholder: its advance and line-height contribution come from the
// inlay's own metrics, not from shaping the placeholder glyph.
type Inlay struct {
	Width, Height geom.Fixed
	// Build lazily produces the sub-layout once final placement (origin) is
	// known, mirroring how a paragraph only knows a glyph's dot position
	// after line breaking and justification have run.
	Build func(origin geom.Point) (layout.Layout, error)
}

// Attribute is the full per-codepoint style.
type Attribute struct {
	Face font.Face
	Font font.Font
	// Size is the pixels-per-em used to shape and scale this codepoint;
	// unlike Face, it does not participate in face selection, since every
	// registered face is a scalable outline (font.Family.BestFace).
	Size          geom.Fixed
	Color         color.NRGBA
	Lang          string
	Flags         Flag
	BaselineShift geom.Fixed
	Shadows       []Shadow
	Inlay         *Inlay
	// LinkIndex is an index into the enclosing layout's link table, or -1
	// if the codepoint is not part of a link.
	LinkIndex int
}

// Default returns the zero-value attribute used before any range has been
// assigned at or before a position.
func Default() Attribute {
	return Attribute{Color: color.NRGBA{A: 0xFF}, LinkIndex: -1, Size: geom.I(16)}
}

// breakpoint is a position at which the active attribute changes.
type breakpoint struct {
	pos  int
	attr Attribute
}

// Index maps codepoint positions to the attribute most recently assigned
// at or before that position. It is implemented as a sorted slice of
// breakpoints, per the "ranges are stored as breakpoints" implementation
// note in spec.md §4.2.
type Index struct {
	breaks []breakpoint
}

// NewIndex returns an index whose every position carries the default
// attribute until a range is assigned.
func NewIndex() *Index {
	return &Index{breaks: []breakpoint{{pos: 0, attr: Default()}}}
}

// Set assigns a to the single position pos.
func (idx *Index) Set(pos int, a Attribute) {
	idx.SetRange(pos, pos+1, a)
}

// SetRange assigns a to every position in [from, to). Positions at or after
// to keep the attribute they carried before the call.
func (idx *Index) SetRange(from, to int, a Attribute) {
	if to <= from {
		return
	}
	resume := idx.Get(to)
	kept := idx.breaks[:0]
	for _, b := range idx.breaks {
		if b.pos <= from || b.pos >= to {
			kept = append(kept, b)
		}
	}
	idx.breaks = kept
	idx.insert(from, a)
	idx.insert(to, resume)
	idx.prune()
}

// insert places a breakpoint at pos, overwriting one that already exists
// there, and keeps the slice sorted by position.
func (idx *Index) insert(pos int, a Attribute) {
	i := sort.Search(len(idx.breaks), func(i int) bool { return idx.breaks[i].pos >= pos })
	if i < len(idx.breaks) && idx.breaks[i].pos == pos {
		idx.breaks[i].attr = a
		return
	}
	idx.breaks = append(idx.breaks, breakpoint{})
	copy(idx.breaks[i+1:], idx.breaks[i:])
	idx.breaks[i] = breakpoint{pos: pos, attr: a}
}

// prune removes breakpoints that are redundant because they carry the same
// attribute as their predecessor, keeping the breakpoint slice compact.
func (idx *Index) prune() {
	out := idx.breaks[:1]
	for _, b := range idx.breaks[1:] {
		if reflect.DeepEqual(b.attr, out[len(out)-1].attr) {
			continue
		}
		out = append(out, b)
	}
	idx.breaks = out
}

// Get returns the attribute active at pos: the attribute of the largest
// breakpoint <= pos.
func (idx *Index) Get(pos int) Attribute {
	i := sort.Search(len(idx.breaks), func(i int) bool { return idx.breaks[i].pos > pos })
	if i == 0 {
		return Default()
	}
	return idx.breaks[i-1].attr
}

// Run is a maximal substring sharing identical attributes.
type Run struct {
	From, To int
	Attr     Attribute
}

// Runs iterates the index over [0, length) yielding style runs in order, as
// used by the paragraph shaper to slice input before itemization.
func (idx *Index) Runs(length int) []Run {
	var runs []Run
	for i, b := range idx.breaks {
		if b.pos >= length {
			break
		}
		end := length
		if i+1 < len(idx.breaks) {
			end = idx.breaks[i+1].pos
			if end > length {
				end = length
			}
		}
		if end <= b.pos {
			continue
		}
		runs = append(runs, Run{From: b.pos, To: end, Attr: b.attr})
	}
	return runs
}
