// SPDX-License-Identifier: Unlicense OR MIT

package style

import (
	"testing"

	"github.com/vog/stll/dom"
)

func TestParseSimpleSelector(t *testing.T) {
	tests := []struct {
		src   string
		tag   string
		class string
		attr  string
		value string
	}{
		{"p", "p", "", "", ""},
		{"p.note", "p", "note", "", ""},
		{"a[href]", "a", "", "href", ""},
		{"a[href|=http]", "a", "", "href", "http"},
	}
	for _, tt := range tests {
		got := parseSimpleSelector(tt.src)
		if got.tag != tt.tag || got.class != tt.class || got.attr != tt.attr || got.value != tt.value {
			t.Errorf("parseSimpleSelector(%q) = %+v, want {%q %q %q %q}", tt.src, got, tt.tag, tt.class, tt.attr, tt.value)
		}
	}
}

func TestSelectorMatchesDescendant(t *testing.T) {
	table := elem("table", dom.Attribute{Name: "class", Value: "striped"})
	row := elem("tr")
	cell := elem("td")
	table.child(row)
	row.child(cell)

	sel := parseSelector("table.striped td")
	if !sel.matches(cell) {
		t.Errorf("selector %q should match the td nested under table.striped", sel.src)
	}

	plainTable := elem("table")
	plainRow := elem("tr")
	plainCell := elem("td")
	plainTable.child(plainRow)
	plainRow.child(plainCell)
	if sel.matches(plainCell) {
		t.Errorf("selector %q should not match a td under a table without class=striped", sel.src)
	}
}

func TestSelectorAttributeMatch(t *testing.T) {
	link := elem("a", dom.Attribute{Name: "href", Value: "http-alt"})
	sel := parseSelector("a[href|=http]")
	if !sel.matches(link) {
		t.Errorf("selector %q should match href=%q", sel.src, "http-alt")
	}

	mailLink := elem("a", dom.Attribute{Name: "href", Value: "mailto:a@b.com"})
	if sel.matches(mailLink) {
		t.Errorf("selector %q should not match href=%q", sel.src, "mailto:a@b.com")
	}
}

func TestSpecificityOrdering(t *testing.T) {
	tag := parseSelector("p")
	class := parseSelector("p.note")
	if !tag.less(class) {
		t.Errorf("a bare tag selector should be less specific than a class selector")
	}
	if class.less(tag) {
		t.Errorf("a class selector should not be less specific than a bare tag selector")
	}
}
