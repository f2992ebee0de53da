// SPDX-License-Identifier: Unlicense OR MIT

package style

import (
	"testing"

	"github.com/vog/stll/dom"
)

func TestValueOfFallsBackToDefaults(t *testing.T) {
	sheet := NewSheet(nil)
	p := elem("p")
	if got := sheet.ValueOf(p, "font-size"); got != "16px" {
		t.Errorf("ValueOf(font-size) = %q, want %q", got, "16px")
	}
}

func TestValueOfDirectRuleWins(t *testing.T) {
	sheet := NewSheet(nil)
	sheet.AddRule("p", "color", "#ff0000")
	p := elem("p")
	if got := sheet.ValueOf(p, "color"); got != "#ff0000" {
		t.Errorf("ValueOf(color) = %q, want %q", got, "#ff0000")
	}
}

func TestValueOfSpecificityWins(t *testing.T) {
	sheet := NewSheet(nil)
	sheet.AddRule("p", "color", "#000000")
	sheet.AddRule("p.note", "color", "#ff0000")

	plain := elem("p")
	noted := elem("p", dom.Attribute{Name: "class", Value: "note"})

	if got := sheet.ValueOf(plain, "color"); got != "#000000" {
		t.Errorf("plain <p> color = %q, want %q", got, "#000000")
	}
	if got := sheet.ValueOf(noted, "color"); got != "#ff0000" {
		t.Errorf("<p class=note> color = %q, want %q (more specific selector should win)", got, "#ff0000")
	}
}

func TestValueOfSourceOrderBreaksTies(t *testing.T) {
	sheet := NewSheet(nil)
	sheet.AddRule("p", "color", "#111111")
	sheet.AddRule("p", "color", "#222222")
	p := elem("p")
	if got := sheet.ValueOf(p, "color"); got != "#222222" {
		t.Errorf("ValueOf(color) = %q, want the later declaration %q", got, "#222222")
	}
}

func TestValueOfInheritsFromAncestor(t *testing.T) {
	sheet := NewSheet(nil)
	sheet.AddRule("div", "color", "#ff00ff")
	div := elem("div")
	p := elem("p")
	div.child(p)
	if got := sheet.ValueOf(p, "color"); got != "#ff00ff" {
		t.Errorf("<p> inside styled <div> color = %q, want inherited %q", got, "#ff00ff")
	}
}

func TestValueOfDoesNotInheritBoxModelProperties(t *testing.T) {
	sheet := NewSheet(nil)
	sheet.AddRule("div", "background-color", "#ff00ff")
	div := elem("div")
	p := elem("p")
	div.child(p)
	if got := sheet.ValueOf(p, "background-color"); got != "" {
		t.Errorf("<p>'s background-color = %q, want empty (box-model properties do not inherit)", got)
	}
}
