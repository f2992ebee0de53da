// SPDX-License-Identifier: Unlicense OR MIT

// Package xmlio persists a layout.Layout to and from the XML form spec.md
// §7 describes: a flat <layout> element carrying <link>, <glyph>, <rect>,
// and <image> children in draw order. It is the one place in the module
// that uses encoding/xml directly, since layout.Layout.Commands is a
// closed interface union encoding/xml's struct tags cannot express on
// their own -- the Marshal/Unmarshal pair below hand-drives the token
// stream instead.
package xmlio

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/vog/stll/font"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/stllerr"
	"github.com/vog/stll/style"
)

// Marshal renders l as the persisted XML form, indented for readability.
func Marshal(l layout.Layout) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(&document{l}); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses src back into a layout.Layout. Glyph commands recover
// every field except Face (no font registry is available to resolve the
// persisted form back into a renderable font.Face; see DESIGN.md), so a
// round-tripped layout carries a nil Face on every glyph.
func Unmarshal(src []byte) (layout.Layout, error) {
	var doc document
	if err := xml.Unmarshal(src, &doc); err != nil {
		return layout.Layout{}, stllerr.Wrap(stllerr.ParseError, "", err)
	}
	return doc.l, nil
}

// document is the (un)marshaling adapter around layout.Layout.
type document struct {
	l layout.Layout
}

func fstr(f geom.Fixed) string {
	return strconv.FormatFloat(float64(f)/geom.Scale, 'f', -1, 64)
}

func parseFixed(s string) (geom.Fixed, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return geom.FromFloat(f), nil
}

func attrFor(attrs []xml.Attr, name string) string {
	for _, a := range attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (d *document) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "layout"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "left"}, Value: fstr(d.l.Left)},
			{Name: xml.Name{Local: "right"}, Value: fstr(d.l.Right)},
			{Name: xml.Name{Local: "height"}, Value: fstr(d.l.Height)},
			{Name: xml.Name{Local: "firstBaseline"}, Value: fstr(d.l.FirstBaseline)},
		},
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, link := range d.l.Links {
		le := xml.StartElement{
			Name: xml.Name{Local: "link"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "href"}, Value: link.Href}},
		}
		if err := e.EncodeToken(le); err != nil {
			return err
		}
		if err := e.EncodeToken(le.End()); err != nil {
			return err
		}
	}
	for _, c := range d.l.Commands {
		if err := marshalCommand(e, c); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func marshalCommand(e *xml.Encoder, c layout.Command) error {
	var se xml.StartElement
	switch v := c.(type) {
	case layout.Glyph:
		se = xml.StartElement{Name: xml.Name{Local: "glyph"}, Attr: []xml.Attr{
			{Name: xml.Name{Local: "glyphid"}, Value: strconv.Itoa(int(v.GlyphID))},
			{Name: xml.Name{Local: "x"}, Value: fstr(v.X)},
			{Name: xml.Name{Local: "y"}, Value: fstr(v.Y)},
			{Name: xml.Name{Local: "color"}, Value: style.FormatColor(v.Color)},
			{Name: xml.Name{Local: "link"}, Value: strconv.Itoa(v.LinkIndex)},
		}}
		if v.Blur != 0 {
			se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: "blur"}, Value: fstr(v.Blur)})
		}
	case layout.Rect:
		se = xml.StartElement{Name: xml.Name{Local: "rect"}, Attr: []xml.Attr{
			{Name: xml.Name{Local: "x"}, Value: fstr(v.X)},
			{Name: xml.Name{Local: "y"}, Value: fstr(v.Y)},
			{Name: xml.Name{Local: "w"}, Value: fstr(v.W)},
			{Name: xml.Name{Local: "h"}, Value: fstr(v.H)},
			{Name: xml.Name{Local: "color"}, Value: style.FormatColor(v.Color)},
		}}
	case layout.Image:
		se = xml.StartElement{Name: xml.Name{Local: "image"}, Attr: []xml.Attr{
			{Name: xml.Name{Local: "x"}, Value: fstr(v.X)},
			{Name: xml.Name{Local: "y"}, Value: fstr(v.Y)},
			{Name: xml.Name{Local: "w"}, Value: fstr(v.W)},
			{Name: xml.Name{Local: "h"}, Value: fstr(v.H)},
			{Name: xml.Name{Local: "src"}, Value: v.URL},
		}}
	default:
		return fmt.Errorf("xmlio: unhandled command type %T", c)
	}
	if err := e.EncodeToken(se); err != nil {
		return err
	}
	return e.EncodeToken(se.End())
}

func (d *document) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var l layout.Layout
	if v, err := parseFixed(attrFor(start.Attr, "left")); err == nil {
		l.Left = v
	}
	if v, err := parseFixed(attrFor(start.Attr, "right")); err == nil {
		l.Right = v
	}
	if v, err := parseFixed(attrFor(start.Attr, "height")); err == nil {
		l.Height = v
	}
	if v, err := parseFixed(attrFor(start.Attr, "firstBaseline")); err == nil {
		l.FirstBaseline = v
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			cmd, link, err := unmarshalChild(t)
			if err != nil {
				return err
			}
			if link != nil {
				l.Links = append(l.Links, *link)
			} else if cmd != nil {
				l.Commands = append(l.Commands, cmd)
			}
			if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				d.l = l
				return nil
			}
		}
	}
}

func unmarshalChild(t xml.StartElement) (layout.Command, *layout.Link, error) {
	switch t.Name.Local {
	case "link":
		return nil, &layout.Link{Href: attrFor(t.Attr, "href")}, nil
	case "glyph":
		x, err := parseFixed(attrFor(t.Attr, "x"))
		if err != nil {
			return nil, nil, err
		}
		y, err := parseFixed(attrFor(t.Attr, "y"))
		if err != nil {
			return nil, nil, err
		}
		gid, err := strconv.Atoi(attrFor(t.Attr, "glyphid"))
		if err != nil {
			return nil, nil, err
		}
		link, err := strconv.Atoi(attrFor(t.Attr, "link"))
		if err != nil {
			link = -1
		}
		col, err := style.EvalColor("", attrFor(t.Attr, "color"))
		if err != nil {
			return nil, nil, err
		}
		var blur geom.Fixed
		if b := attrFor(t.Attr, "blur"); b != "" {
			blur, _ = parseFixed(b)
		}
		return layout.Glyph{GlyphID: font.GID(gid), X: x, Y: y, Color: col, LinkIndex: link, Blur: blur}, nil, nil
	case "rect":
		x, err := parseFixed(attrFor(t.Attr, "x"))
		if err != nil {
			return nil, nil, err
		}
		y, err := parseFixed(attrFor(t.Attr, "y"))
		if err != nil {
			return nil, nil, err
		}
		w, err := parseFixed(attrFor(t.Attr, "w"))
		if err != nil {
			return nil, nil, err
		}
		h, err := parseFixed(attrFor(t.Attr, "h"))
		if err != nil {
			return nil, nil, err
		}
		col, err := style.EvalColor("", attrFor(t.Attr, "color"))
		if err != nil {
			return nil, nil, err
		}
		return layout.Rect{X: x, Y: y, W: w, H: h, Color: col}, nil, nil
	case "image":
		x, err := parseFixed(attrFor(t.Attr, "x"))
		if err != nil {
			return nil, nil, err
		}
		y, err := parseFixed(attrFor(t.Attr, "y"))
		if err != nil {
			return nil, nil, err
		}
		w, err := parseFixed(attrFor(t.Attr, "w"))
		if err != nil {
			return nil, nil, err
		}
		h, err := parseFixed(attrFor(t.Attr, "h"))
		if err != nil {
			return nil, nil, err
		}
		return layout.Image{X: x, Y: y, W: w, H: h, URL: attrFor(t.Attr, "src")}, nil, nil
	default:
		return nil, nil, fmt.Errorf("xmlio: unknown element %q", t.Name.Local)
	}
}
