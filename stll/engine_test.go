// SPDX-License-Identifier: Unlicense OR MIT

package stll

import (
	"testing"

	"go.uber.org/zap"

	"github.com/vog/stll/geom"
)

func TestNewHasUsableDefaults(t *testing.T) {
	e := New()
	if e.Sheet() == nil {
		t.Fatalf("New().Sheet() = nil")
	}
	if e.Fonts() == nil {
		t.Fatalf("New().Fonts() = nil")
	}
}

func TestWithLoggerOption(t *testing.T) {
	log := zap.NewExample()
	e := New(WithLogger(log))
	if e.log != log {
		t.Errorf("WithLogger did not take effect")
	}
}

func TestLoadCSSAddsRules(t *testing.T) {
	e := New()
	if err := e.LoadCSS([]byte(`p { color: #ff0000; }`)); err != nil {
		t.Fatalf("LoadCSS: %v", err)
	}
}

func TestLayoutEmptyBody(t *testing.T) {
	e := New()
	l, err := e.Layout([]byte(`<html><body></body></html>`), geom.I(400))
	if err != nil {
		t.Fatalf("Layout: %v", err)
	}
	if l.Height != 0 {
		t.Errorf("Layout of an empty body: Height = %d, want 0", l.Height)
	}
}

func TestLayoutRejectsMalformedDocument(t *testing.T) {
	e := New()
	if _, err := e.Layout([]byte(`<notHtml/>`), geom.I(400)); err == nil {
		t.Errorf("Layout with a non-html root: want an error")
	}
}

func TestLayoutRejectsUnsupportedTopLevelTag(t *testing.T) {
	e := New()
	_, err := e.Layout([]byte(`<html><body><footer></footer></body></html>`), geom.I(400))
	if err == nil {
		t.Errorf("Layout with an unsupported block tag: want an error")
	}
}
