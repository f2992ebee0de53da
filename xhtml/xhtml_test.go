// SPDX-License-Identifier: Unlicense OR MIT

package xhtml

import (
	"testing"

	"github.com/vog/stll/dom"
)

func TestParseReturnsBody(t *testing.T) {
	src := `<html><head><title>t</title></head><body><p class="intro">Hello</p></body></html>`
	body, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if body.Type() != dom.Element || body.Name() != "body" {
		t.Fatalf("Parse returned %v %q, want an Element named body", body.Type(), body.Name())
	}
	children := body.Children()
	if len(children) != 1 {
		t.Fatalf("body has %d children, want 1", len(children))
	}
	p := children[0]
	if p.Name() != "p" {
		t.Fatalf("child = %q, want p", p.Name())
	}
	if v, ok := p.Attr("class"); !ok || v != "intro" {
		t.Errorf("p.Attr(class) = (%q, %v), want (intro, true)", v, ok)
	}
	text := p.Children()
	if len(text) != 1 || text[0].Type() != dom.Text || text[0].Value() != "Hello" {
		t.Fatalf("p's children = %+v, want a single text node \"Hello\"", text)
	}
	if text[0].Parent().Name() != "p" {
		t.Errorf("text node's Parent() = %q, want p", text[0].Parent().Name())
	}
}

func TestParseRejectsNonHTMLRoot(t *testing.T) {
	if _, err := Parse([]byte(`<foo/>`)); err == nil {
		t.Errorf("Parse(<foo/>): want an error for a non-html root")
	}
}

func TestParseRejectsMissingBody(t *testing.T) {
	if _, err := Parse([]byte(`<html><head/></html>`)); err == nil {
		t.Errorf("Parse with no <body>: want an error")
	}
}

func TestParseRejectsDuplicateBody(t *testing.T) {
	if _, err := Parse([]byte(`<html><body/><body/></html>`)); err == nil {
		t.Errorf("Parse with two <body> elements: want an error")
	}
}

func TestParseRejectsUnexpectedTopLevelTag(t *testing.T) {
	if _, err := Parse([]byte(`<html><body/><footer/></html>`)); err == nil {
		t.Errorf("Parse with an unexpected top-level tag: want an error")
	}
}

func TestParseRejectsMalformedXML(t *testing.T) {
	if _, err := Parse([]byte(`<html><body>`)); err == nil {
		t.Errorf("Parse with an unclosed tag: want an error")
	}
}

func TestDomPathThroughXHTML(t *testing.T) {
	src := `<html><body><table><tr><td>x</td></tr></table></body></html>`
	body, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	table := body.Children()[0]
	tr := table.Children()[0]
	td := tr.Children()[0]
	if got := dom.Path(td); got != "/html/body/table/tr/td" {
		t.Errorf("dom.Path(td) = %q, want %q", got, "/html/body/table/tr/td")
	}
}
