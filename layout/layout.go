// SPDX-License-Identifier: Unlicense OR MIT

// Package layout defines the drawing-command output of the engine: the
// flat, backend-agnostic representation spec.md §5 calls "the only thing a
// caller receives back". Nothing in this package touches a font file, a
// style sheet, or an XML tree -- it is pure data plus the composition
// helpers (translation, concatenation) every layer above it builds on.
package layout

import (
	"image/color"

	"github.com/vog/stll/font"
	"github.com/vog/stll/geom"
)

// Command is the tagged union of drawable primitives a Layout carries. The
// concrete types below are the only permitted members, mirroring the
// closed Kind enum approach taken in the stllerr package for errors.
type Command interface {
	isCommand()
	// Translate returns a copy of the command shifted by (dx, dy).
	Translate(dx, dy geom.Fixed) Command
}

// Glyph places one shaped glyph from Face at (X, Y), the glyph's origin
// (spec.md §4.3 "glyph commands carry their own pen position, not a cursor
// the backend must track").
type Glyph struct {
	Face      font.Face
	GlyphID   font.GID
	X, Y      geom.Fixed
	Color     color.NRGBA
	Blur      geom.Fixed
	LinkIndex int // -1 when not part of a link
}

func (Glyph) isCommand() {}

func (g Glyph) Translate(dx, dy geom.Fixed) Command {
	g.X += dx
	g.Y += dy
	return g
}

// Rect draws a filled rectangle, used for underlines, strikethrough, table
// borders, and element backgrounds.
type Rect struct {
	X, Y, W, H geom.Fixed
	Color      color.NRGBA
	Blur       geom.Fixed
}

func (Rect) isCommand() {}

func (r Rect) Translate(dx, dy geom.Fixed) Command {
	r.X += dx
	r.Y += dy
	return r
}

// Image places an external raster resource, referenced by URL per spec.md
// §6 (the engine never decodes image bytes itself).
type Image struct {
	X, Y, W, H geom.Fixed
	URL        string
}

func (Image) isCommand() {}

func (im Image) Translate(dx, dy geom.Fixed) Command {
	im.X += dx
	im.Y += dy
	return im
}

// Link records the target of an interactive region, addressed from Glyph/
// Rect commands by index (spec.md §4.6 "anchors").
type Link struct {
	Href string
}

// Layout is the immutable result of laying out one paragraph, box, or
// whole document: a list of commands plus the metrics a container needs
// to place it among siblings.
type Layout struct {
	Commands []Command
	Links    []Link

	// Left and Right are the horizontal extent actually used, relative to
	// the origin the commands are expressed in; Height is the total
	// vertical extent.
	Left, Right, Height geom.Fixed

	// FirstBaseline is the y offset of the first line's baseline from the
	// origin, used by table cells and inline blocks to align across
	// neighbors (spec.md §4.4 "row baseline alignment").
	FirstBaseline geom.Fixed
}

// Empty returns a zero-size layout with no commands, the identity element
// for Append.
func Empty() Layout {
	return Layout{}
}

// Translate returns a copy of l with every command shifted by (dx, dy).
// Left/Right/Height/FirstBaseline are metrics, not positions, and are left
// unchanged; a caller tracking absolute placement must add dx/dy itself.
func (l Layout) Translate(dx, dy geom.Fixed) Layout {
	out := l
	out.Commands = make([]Command, len(l.Commands))
	for i, c := range l.Commands {
		out.Commands[i] = c.Translate(dx, dy)
	}
	return out
}

// Append concatenates other's commands and links onto l at offset (dx,
// dy), remapping other's LinkIndex references to the combined Links
// table, and returns the merged layout. The caller supplies dx/dy rather
// than Append inferring a flow direction, since block stacking, inline
// flow, and table-cell placement each compute the offset differently.
func (l Layout) Append(other Layout, dx, dy geom.Fixed) Layout {
	linkBase := len(l.Links)
	out := l
	out.Links = append(append([]Link{}, l.Links...), other.Links...)
	out.Commands = append([]Command{}, l.Commands...)
	for _, c := range other.Commands {
		c = c.Translate(dx, dy)
		if g, ok := c.(Glyph); ok && g.LinkIndex >= 0 {
			g.LinkIndex += linkBase
			c = g
		}
		out.Commands = append(out.Commands, c)
	}
	out.Right = geom.Max(l.Right, other.Right+dx)
	out.Height = geom.Max(l.Height, other.Height+dy)
	return out
}

// AddLink appends href to the link table and returns its index.
func (l *Layout) AddLink(href string) int {
	l.Links = append(l.Links, Link{Href: href})
	return len(l.Links) - 1
}
