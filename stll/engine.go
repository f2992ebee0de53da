// SPDX-License-Identifier: Unlicense OR MIT

// Package stll is the engine's top-level entry point: construct an Engine
// once (registering a style sheet and font faces), then call Layout as
// many times as needed, concurrently, per spec.md §5 -- the Engine's state
// is read-only for the lifetime of every Layout call, the same "build once,
// borrow many times" contract style.Sheet and font.Cache already commit to.
package stll

import (
	"go.uber.org/zap"

	"github.com/vog/stll/dom"
	"github.com/vog/stll/flow"
	"github.com/vog/stll/font"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/layout"
	"github.com/vog/stll/shape"
	"github.com/vog/stll/style"
	"github.com/vog/stll/xhtml"
)

// Engine owns the style sheet and font registry a document is laid out
// against.
type Engine struct {
	log   *zap.Logger
	sheet *style.Sheet
	fonts *font.Cache
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger attaches log for diagnostics (Error records for stylesheet
// parse, font registration, XHTML parse and layout failures); the default
// is zap.NewNop().
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New constructs an Engine with an empty style sheet and font cache.
func New(opts ...Option) *Engine {
	e := &Engine{log: zap.NewNop(), fonts: font.NewCache()}
	e.sheet = style.NewSheet(e.fonts)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sheet returns the engine's style sheet, for callers that want to add
// rules directly via Sheet().AddRule rather than LoadCSS.
func (e *Engine) Sheet() *style.Sheet { return e.sheet }

// Fonts returns the engine's font registry.
func (e *Engine) Fonts() *font.Cache { return e.fonts }

// LoadCSS parses src (a full stylesheet) and adds every rule it contains.
func (e *Engine) LoadCSS(src []byte) error {
	if err := style.ParseCSS(e.sheet, src); err != nil {
		e.log.Error("stylesheet parse failed", zap.Error(err))
		return err
	}
	return nil
}

// RegisterFont registers src (an OpenType/TrueType resource) under family
// for the given style/variant/weight.
func (e *Engine) RegisterFont(family string, sty font.Style, variant font.Variant, weight font.Weight, src []byte) error {
	if err := e.sheet.Font(family, sty, variant, weight, src); err != nil {
		e.log.Error("font registration failed", zap.String("family", family), zap.Error(err))
		return err
	}
	return nil
}

// Layout parses src as XHTML and lays its <body> out into a rectangular
// container width units wide, returning the composed drawing commands.
// This is the synchronous entry point spec.md §5 describes: no goroutines
// are spawned, and the call is safe to run concurrently with any other
// Layout call on the same Engine.
func (e *Engine) Layout(src []byte, width geom.Fixed) (layout.Layout, error) {
	body, err := xhtml.Parse(src)
	if err != nil {
		e.log.Error("parse failed", zap.Error(err))
		return layout.Layout{}, err
	}
	return e.LayoutNode(body, shape.NewRectangle(0, width))
}

// LayoutNode lays out an already-parsed body node against an arbitrary
// shape, for callers that built their own dom.Node tree (e.g. the xhtml
// package's Parse, or a caller supplying a non-rectangular container).
func (e *Engine) LayoutNode(body dom.Node, sh shape.Shape) (layout.Layout, error) {
	l, err := flow.Flow(e.sheet, body, sh, 0)
	if err != nil {
		e.log.Error("layout failed", zap.Error(err))
		return layout.Layout{}, err
	}
	return l, nil
}
