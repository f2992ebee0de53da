// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"strings"

	"github.com/go-text/typesetting/di"
	"golang.org/x/net/html"

	"github.com/vog/stll/attr"
	"github.com/vog/stll/dom"
	"github.com/vog/stll/font"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/para"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/stllerr"
	"github.com/vog/stll/style"
)

// phrase is the accumulated text and attribute state a phrasing context
// builds up before being handed to para.Layout, mirroring the (txt, attr)
// out-parameters layoutXML_text threads through
// original_source/layouterXHTML.cpp. Links has no analog in the original
// (it never wired <a href>); it is the paragraph-scoped link table
// spec.md §3 "Link table" describes, later merged into the composed
// layout by Paragraph.
type phrase struct {
	text  []rune
	idx   *attr.Index
	links []layout.Link
}

// phrasingTags is the inline-content set spec.md §6 calls out
// ("pcdata, span, b, i, em, strong, code, q, small, sub, sup, br, img, a,
// ...") that a flow-level run of siblings may consist of. b/em/strong/
// code/q/small carry no attribute effect of their own in this CSS subset
// beyond whatever the style sheet's cascade assigns them by tag selector,
// so they fall through with span/i to plain recursion.
var phrasingTags = map[string]bool{
	"span": true, "i": true, "b": true, "em": true, "strong": true,
	"code": true, "q": true, "small": true,
	"sub": true, "sup": true, "a": true, "br": true, "img": true,
}

// isPhrasingNode reports whether c is eligible to participate in an
// (implicit or explicit) paragraph: a text node or one of phrasingTags.
func isPhrasingNode(c dom.Node) bool {
	return c.Type() == dom.Text || phrasingTags[c.Name()]
}

// phrasingRunEnd returns the index of the first node at or after start
// that is not phrasing content, used by flow-level callers that must stop
// an implicit paragraph at the first block-level sibling.
func phrasingRunEnd(nodes []dom.Node, start int) int {
	i := start
	for i < len(nodes) && isPhrasingNode(nodes[i]) {
		i++
	}
	return i
}

// collectPhrasing walks nodes (text, <i>, <span>, <sub>, <sup>, <br>,
// <img>, <a>, ...) building up the paragraph's rune text and attribute
// index, stopping at (and returning the index of) the first node that
// isn't phrasing content, without treating that as an error itself --
// whether stopping early is an error depends on the caller (an unclosed
// tag inside <p> is an error, but a flow-level phrasing run legitimately
// stops at the next block sibling). parent is the element whose cascade
// resolves the style of any direct text/br/img child of nodes. Ported
// from layoutXML_text.
func collectPhrasing(sheet *style.Sheet, parent dom.Node, nodes []dom.Node, baselineShift geom.Fixed, linkIndex int, p *phrase) (int, error) {
	i := 0
	for i < len(nodes) {
		c := nodes[i]
		switch {
		case c.Type() == dom.Text:
			if err := appendText(sheet, parent, c.Value(), baselineShift, linkIndex, p); err != nil {
				return i, err
			}
		case c.Name() == "i" || c.Name() == "span" || c.Name() == "b" || c.Name() == "em" ||
			c.Name() == "strong" || c.Name() == "code" || c.Name() == "q" || c.Name() == "small":
			if _, err := collectPhrasing(sheet, c, c.Children(), baselineShift, linkIndex, p); err != nil {
				return i, err
			}
		case c.Name() == "sub":
			fnt, err := resolveAttr(sheet, c)
			if err != nil {
				return i, err
			}
			asc := fnt.Size / 2
			if _, err := collectPhrasing(sheet, c, c.Children(), baselineShift-asc, linkIndex, p); err != nil {
				return i, err
			}
		case c.Name() == "sup":
			fnt, err := resolveAttr(sheet, c)
			if err != nil {
				return i, err
			}
			asc := fnt.Size / 2
			if _, err := collectPhrasing(sheet, c, c.Children(), baselineShift+asc, linkIndex, p); err != nil {
				return i, err
			}
		case c.Name() == "a":
			idx := linkIndex
			if href, ok := c.Attr("href"); ok {
				p.links = append(p.links, layout.Link{Href: href})
				idx = len(p.links) - 1
			}
			if _, err := collectPhrasing(sheet, c, c.Children(), baselineShift, idx, p); err != nil {
				return i, err
			}
		case c.Name() == "br":
			p.text = append(p.text, '\n')
			a, err := resolveAttr(sheet, parent)
			if err != nil {
				return i, err
			}
			a.BaselineShift = baselineShift
			a.LinkIndex = linkIndex
			p.idx.Set(len(p.text)-1, a)
		case c.Name() == "img":
			if err := appendImage(sheet, c, baselineShift, linkIndex, p); err != nil {
				return i, err
			}
		default:
			return i, nil
		}
		i++
	}
	return i, nil
}

// appendText normalizes whitespace, decodes HTML entities via
// golang.org/x/net/html.UnescapeString, and assigns the node's resolved
// attribute to every appended codepoint.
func appendText(sheet *style.Sheet, styleNode dom.Node, raw string, baselineShift geom.Fixed, linkIndex int, p *phrase) error {
	decoded := html.UnescapeString(raw)
	normalized := normalizeWhitespace(decoded)
	if normalized == "" {
		return nil
	}
	a, err := resolveAttr(sheet, styleNode)
	if err != nil {
		return err
	}
	a.BaselineShift = baselineShift
	a.LinkIndex = linkIndex
	start := len(p.text)
	p.text = append(p.text, []rune(normalized)...)
	p.idx.SetRange(start, len(p.text), a)
	return nil
}

// normalizeWhitespace collapses runs of HTML whitespace to a single
// space, the behavior XHTML's "white-space: normal" default requires,
// while preserving a soft hyphen (U+00AD) as a literal breakable hint.
func normalizeWhitespace(s string) string {
	var b strings.Builder
	lastWasSpace := false
	for _, r := range s {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		lastWasSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// resolveAttr turns the cascade's resolved properties for n into an
// attr.Attribute: font family/size/style/weight/variant, color, language,
// underline flag, and text-shadow.
func resolveAttr(sheet *style.Sheet, n dom.Node) (attr.Attribute, error) {
	a := attr.Default()

	sizeStr := sheet.ValueOf(n, "font-size")
	size, err := style.EvalSize(dom.Path(n), sizeStr, geom.I(16), style.SizeFontOrWidth)
	if err != nil {
		return a, err
	}
	a.Size = size

	families, err := style.ParseFontFamilyList(sheet.ValueOf(n, "font-family"))
	if err != nil {
		return a, err
	}
	fstyle := font.Regular
	if sheet.ValueOf(n, "font-style") == "italic" {
		fstyle = font.Italic
	}
	weight := font.Normal
	if sheet.ValueOf(n, "font-weight") == "bold" {
		weight = font.Bold
	}
	variant := font.VariantNormal
	if sheet.ValueOf(n, "font-variant") == "small-caps" {
		variant = font.VariantSmallCaps
	}

	var face font.Face
	for _, famName := range families {
		fam, ok := sheet.Fonts().FindFamily(famName)
		if !ok {
			continue
		}
		if f, ok := fam.BestFace(size, fstyle, variant, weight); ok {
			face = f
			break
		}
	}
	if face == nil {
		return a, fontNotFound(n, families)
	}
	a.Face = face

	col, err := style.EvalColor(dom.Path(n), sheet.ValueOf(n, "color"))
	if err != nil {
		return a, err
	}
	a.Color = col
	for cur := n; cur != nil; cur = cur.Parent() {
		if lang, ok := cur.Attr("lang"); ok {
			a.Lang = lang
			break
		}
	}
	if sheet.ValueOf(n, "text-decoration") == "underline" {
		a.Flags |= attr.Underline
	}
	shadows, err := style.EvalShadows(dom.Path(n), sheet.ValueOf(n, "text-shadow"), size)
	if err != nil {
		return a, err
	}
	for _, s := range shadows {
		a.Shadows = append(a.Shadows, attr.Shadow{DX: s.DX, DY: s.DY, Color: s.Color})
	}
	return a, nil
}

// appendImage inserts the placeholder codepoint U+00A0 for an <img>,
// carrying an Inlay that builds the image's sub-layout lazily. Sizing reads
// img's own width/height attributes (falling back to the file's intrinsic
// size, see image.go), matching the block-level <img> handler rather than
// going through the style cascade, per spec.md §6's width/height-on-img
// attribute contract.
func appendImage(sheet *style.Sheet, img dom.Node, baselineShift geom.Fixed, linkIndex int, p *phrase) error {
	a, err := resolveAttr(sheet, img.Parent())
	if err != nil {
		return err
	}
	w, err := attrSize(img, "width", a.Size)
	if err != nil {
		return err
	}
	h, err := attrSize(img, "height", a.Size)
	if err != nil {
		return err
	}
	url, _ := img.Attr("src")
	if w == 0 || h == 0 {
		if iw, ih, ok := intrinsicSize(url); ok {
			if w == 0 {
				w = iw
			}
			if h == 0 {
				h = ih
			}
		}
	}
	a.Inlay = &attr.Inlay{
		Width:  w,
		Height: h,
		Build: func(origin geom.Point) (layout.Layout, error) {
			return layout.Layout{
				Commands: []layout.Command{layout.Image{X: origin.X, Y: origin.Y, W: w, H: h, URL: url}},
				Right:    origin.X + w,
				Height:   h,
			}, nil
		},
	}
	a.BaselineShift = baselineShift
	a.LinkIndex = linkIndex
	p.text = append(p.text, ' ')
	p.idx.Set(len(p.text)-1, a)
	return nil
}

// paragraphOptions resolves the CSS properties layoutXML_Phrasing reads
// (text-align, text-align-last, direction, text-indent) into para.Options,
// ported from the cascade of ifs in layoutXML_Phrasing that picks
// ALG_LEFT/ALG_RIGHT/ALG_CENTER/ALG_JUSTIFY_LEFT/ALG_JUSTIFY_RIGHT.
func paragraphOptions(sheet *style.Sheet, n dom.Node) (para.Options, error) {
	var opts para.Options
	path := dom.Path(n)
	dir := sheet.ValueOf(n, "direction")
	rtl := dir == "rtl"
	if rtl {
		opts.Direction = di.DirectionRTL
	} else {
		opts.Direction = di.DirectionLTR
	}

	switch align := sheet.ValueOf(n, "text-align"); align {
	case "left", "":
		if align == "" && rtl {
			opts.Align = para.AlignEnd
		} else {
			opts.Align = para.AlignStart
		}
	case "right":
		opts.Align = para.AlignEnd
	case "center":
		opts.Align = para.AlignCenter
	case "justify":
		switch last := sheet.ValueOf(n, "text-align-last"); last {
		case "left":
			opts.Align = para.AlignJustify
		case "right":
			opts.Align = para.AlignJustifyEnd
		case "":
			if rtl {
				opts.Align = para.AlignJustifyEnd
			} else {
				opts.Align = para.AlignJustify
			}
		default:
			return opts, stllerr.Newf(stllerr.BadValue, path, "text-align-last must be left or right, got %q", last)
		}
	default:
		return opts, stllerr.Newf(stllerr.BadValue, path, "text-align must be left, right, center, or justify, got %q", align)
	}

	indent, err := style.EvalSize(path, sheet.ValueOf(n, "text-indent"), 0, style.SizeAny)
	if err != nil {
		return opts, err
	}
	opts.Indent = indent
	return opts, nil
}

// fontNotFound reports the attempted family list when none of them
// resolve a face, per spec.md's "no fuzzy fallback, hard error" contract.
func fontNotFound(n dom.Node, families []string) error {
	return stllerr.Newf(stllerr.FontNotFound, dom.Path(n), "no registered face for family list %v", families)
}

// Paragraph lays out n's phrasing content (every child of n, which must
// all be phrasing content) against sh, used for <p>/<h1>-<h6> elements
// that establish a dedicated phrasing context (spec.md §4.4's "Phrasing
// inside a single paragraph" row).
func Paragraph(sheet *style.Sheet, n dom.Node, sh shape.Shape, ystart geom.Fixed) (layout.Layout, error) {
	children := n.Children()
	p := &phrase{idx: attr.NewIndex()}
	stopped, err := collectPhrasing(sheet, n, children, 0, -1, p)
	if err != nil {
		return layout.Layout{}, err
	}
	if stopped < len(children) {
		return layout.Layout{}, stllerr.Newf(stllerr.UnexpectedTag, dom.Path(children[stopped]),
			"tag %q not allowed inside a phrasing context", children[stopped].Name())
	}
	return layoutPhrase(sheet, n, p, sh, ystart)
}

// FlowPhrasing consumes the maximal run of flow-level phrasing siblings
// starting at nodes[start] -- pcdata, span, b, i, em, strong, code, q,
// small, sub, sup, br, img, a, per spec.md §4.4's "Phrasing at flow level
// (implicit paragraph continuation)" row -- and lays them out as a single
// implicit paragraph against sh. parent is the flow container (e.g. <div>
// or <body>) the run's style properties (text-align, direction, ...)
// resolve against, since none of the run's nodes are selector-addressable
// elements on their own in the body/div-level case. It returns the
// composed layout and the index of the first node not consumed.
func FlowPhrasing(sheet *style.Sheet, parent dom.Node, nodes []dom.Node, start int, sh shape.Shape, ystart geom.Fixed) (layout.Layout, int, error) {
	end := phrasingRunEnd(nodes, start)
	p := &phrase{idx: attr.NewIndex()}
	stopped, err := collectPhrasing(sheet, parent, nodes[start:end], 0, -1, p)
	if err != nil {
		return layout.Layout{}, start, err
	}
	l, err := layoutPhrase(sheet, parent, p, sh, ystart)
	return l, start + stopped, err
}

// layoutPhrase resolves paragraphOptions for styleNode and delegates the
// accumulated phrase to para.Layout, attaching the phrase's link table to
// the result.
func layoutPhrase(sheet *style.Sheet, styleNode dom.Node, p *phrase, sh shape.Shape, ystart geom.Fixed) (layout.Layout, error) {
	opts, err := paragraphOptions(sheet, styleNode)
	if err != nil {
		return layout.Layout{}, err
	}
	l, err := para.Layout(dom.Path(styleNode), p.text, p.idx, shape.NewVBand(sh, ystart, geom.I(1<<20)), opts)
	if err != nil {
		return layout.Layout{}, err
	}
	// para.Layout places the first line at y=0; move the paragraph to ystart.
	l = l.Translate(0, ystart)
	l.Height += ystart
	l.FirstBaseline += ystart
	l.Links = p.links
	return l, nil
}
