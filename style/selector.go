// SPDX-License-Identifier: Unlicense OR MIT

package style

import (
	"strings"

	"github.com/vog/stll/dom"
)

// simpleSelector is one compound selector without a combinator: an optional
// tag name, an optional class, and an optional attribute-prefix match.
type simpleSelector struct {
	tag   string // "" means any tag
	class string // "" means no class constraint
	attr  string // "" means no attribute constraint
	value string
}

// selector is a sequence of simpleSelectors joined by the descendant
// combinator (whitespace), per spec.md §4.1 "Selector syntax accepted".
// The last element matches the node itself; earlier elements must match
// some ancestor, in order.
type selector struct {
	parts []simpleSelector
	src   string
}

// specificity follows the usual CSS ordering for this restricted subset:
// a class or attribute match outranks a bare tag match, and more specific
// attribute matches outrank less specific ones. It is computed as
// (classOrAttrCount, tagCount) compared lexicographically.
func (s selector) specificity() (classlike, tags int) {
	for _, p := range s.parts {
		if p.class != "" {
			classlike++
		}
		if p.attr != "" {
			classlike++
		}
		if p.tag != "" {
			tags++
		}
	}
	return classlike, tags
}

// less reports whether s is strictly less specific than other.
func (s selector) less(other selector) bool {
	sc, st := s.specificity()
	oc, ot := other.specificity()
	if sc != oc {
		return sc < oc
	}
	return st < ot
}

// parseSelector parses a selector string such as "table.striped td" or
// "a[href|=http]" into its compound parts.
func parseSelector(src string) selector {
	fields := strings.Fields(src)
	sel := selector{src: src}
	for _, f := range fields {
		sel.parts = append(sel.parts, parseSimpleSelector(f))
	}
	return sel
}

func parseSimpleSelector(f string) simpleSelector {
	var s simpleSelector
	if i := strings.IndexByte(f, '['); i >= 0 && strings.HasSuffix(f, "]") {
		s.tag = f[:i]
		inner := f[i+1 : len(f)-1]
		if eq := strings.Index(inner, "|="); eq >= 0 {
			s.attr = inner[:eq]
			s.value = inner[eq+2:]
		} else {
			s.attr = inner
		}
		return s
	}
	if i := strings.IndexByte(f, '.'); i >= 0 {
		s.tag = f[:i]
		s.class = f[i+1:]
		return s
	}
	s.tag = f
	return s
}

// matchesNode reports whether the compound selector part matches n alone
// (ignoring ancestry).
func (p simpleSelector) matchesNode(n dom.Node) bool {
	if n.Type() != dom.Element {
		return false
	}
	if p.tag != "" && n.Name() != p.tag {
		return false
	}
	if p.class != "" {
		classes, _ := n.Attr("class")
		if !hasClass(classes, p.class) {
			return false
		}
	}
	if p.attr != "" {
		v, ok := n.Attr(p.attr)
		if !ok {
			return false
		}
		if p.value != "" && v != p.value && !strings.HasPrefix(v, p.value+"-") {
			return false
		}
	}
	return true
}

func hasClass(classAttr, want string) bool {
	for _, c := range strings.Fields(classAttr) {
		if c == want {
			return true
		}
	}
	return false
}

// matches reports whether the full descendant-combinator selector matches
// n, given n's ancestor chain via dom.Node.Parent.
func (s selector) matches(n dom.Node) bool {
	if len(s.parts) == 0 {
		return false
	}
	if !s.parts[len(s.parts)-1].matchesNode(n) {
		return false
	}
	// Walk ancestors looking for matches of the remaining parts, in order,
	// from innermost (closest ancestor) to outermost.
	partIdx := len(s.parts) - 2
	cur := n.Parent()
	for partIdx >= 0 {
		if cur == nil {
			return false
		}
		if s.parts[partIdx].matchesNode(cur) {
			partIdx--
		}
		cur = cur.Parent()
	}
	return true
}
