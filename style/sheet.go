// SPDX-License-Identifier: Unlicense OR MIT

package style

import (
	"sort"

	"github.com/vog/stll/dom"
	"github.com/vog/stll/font"
)

// inheritedProperties lists the CSS properties that flow from parent to
// child when no rule in the cascade sets them directly, per spec.md §4.1
// "Inheritance". Everything else (box-model properties: margin, padding,
// border, background) resets to its initial value on every element.
var inheritedProperties = map[string]bool{
	"color":           true,
	"font-family":     true,
	"font-size":       true,
	"font-style":      true,
	"font-variant":    true,
	"font-weight":     true,
	"text-align":      true,
	"text-decoration": false,
	"line-height":     true,
	"direction":       true,
}

// defaultValues seeds the root of the cascade, matching the built-in
// defaults spec.md §4.1 calls out explicitly.
var defaultValues = map[string]string{
	"color":       "#000000",
	"font-family": "serif",
	"font-size":   "16px",
	"font-style":  "normal",
	"font-weight": "normal",
	"text-align":  "left",
	"direction":   "ltr",
	"line-height": "120%",
}

// declaration is one property/value pair attached to a rule.
type declaration struct {
	property string
	value    string
}

// rule is a single selector with its declarations, tagged with its
// position in the sheet so ties in specificity break by source order, the
// usual CSS cascade rule.
type rule struct {
	sel     selector
	decls   []declaration
	order   int
}

// Sheet is a parsed style sheet: an ordered list of rules plus the font
// registry rules reference by family name. It is built once via AddRule/
// Font and then queried immutably by ValueOf, matching the "constructed
// once, borrowed many times" lifecycle of spec.md §3.
type Sheet struct {
	rules []rule
	fonts *font.Cache
}

// NewSheet returns an empty style sheet backed by fonts.
func NewSheet(fonts *font.Cache) *Sheet {
	return &Sheet{fonts: fonts}
}

// AddRule registers a selector/property/value triple. Later calls with an
// equally specific selector win over earlier ones, per source order.
// Consecutive calls with the same selector share one rule.
func (s *Sheet) AddRule(selectorSrc, property, value string) {
	sel := parseSelector(selectorSrc)
	if last := len(s.rules) - 1; last >= 0 && s.rules[last].sel.src == selectorSrc {
		s.rules[last].decls = append(s.rules[last].decls, declaration{property, value})
		return
	}
	s.rules = append(s.rules, rule{
		sel:   sel,
		decls: []declaration{{property, value}},
		order: len(s.rules),
	})
}

// Font registers face as belonging to family, for the given style/variant/
// weight. It is a thin convenience wrapper over the font.Cache shared with
// the rest of the engine.
func (s *Sheet) Font(family string, style font.Style, variant font.Variant, weight font.Weight, src []byte) error {
	return s.fonts.Family(family).AddFaceBytes(style, variant, weight, src)
}

// Fonts returns the font cache backing this sheet's font-family lookups.
func (s *Sheet) Fonts() *font.Cache { return s.fonts }

// matchingDecl is a declaration together with the specificity/order of the
// rule it came from, so ValueOf can pick the cascade winner.
type matchingDecl struct {
	decl  declaration
	sel   selector
	order int
}

// ValueOf resolves property for n by walking the cascade: every rule whose
// selector matches n (or, for inherited properties, one of n's ancestors)
// contributes a candidate value; the most specific wins, ties broken by
// source order, and an unset inherited property falls through to the
// nearest ancestor's resolved value before finally falling back to
// defaultValues.
func (s *Sheet) ValueOf(n dom.Node, property string) string {
	if v, ok := s.directValue(n, property); ok {
		return v
	}
	if inheritedProperties[property] {
		for p := n.Parent(); p != nil; p = p.Parent() {
			if v, ok := s.directValue(p, property); ok {
				return v
			}
		}
	}
	return defaultValues[property]
}

// directValue resolves property against rules matching n itself, without
// walking to ancestors.
func (s *Sheet) directValue(n dom.Node, property string) (string, bool) {
	var candidates []matchingDecl
	for _, r := range s.rules {
		if !r.sel.matches(n) {
			continue
		}
		for _, d := range r.decls {
			if d.property == property {
				candidates = append(candidates, matchingDecl{d, r.sel, r.order})
			}
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].sel.less(candidates[j].sel) {
			return true
		}
		if candidates[j].sel.less(candidates[i].sel) {
			return false
		}
		return candidates[i].order < candidates[j].order
	})
	return candidates[len(candidates)-1].decl.value, true
}
