// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"testing"

	"github.com/vog/stll/dom"
	"github.com/vog/stll/font"
	"github.com/vog/stll/geom"
	"github.com/vog/stll/style"
)

func TestParseColWidthAbsolute(t *testing.T) {
	got, err := parseColWidth("", "50px", geom.I(16))
	if err != nil {
		t.Fatalf("parseColWidth: %v", err)
	}
	if got.abs != geom.I(50) || got.star != 0 {
		t.Errorf("parseColWidth(50px) = %+v, want abs=%d star=0", got, geom.I(50))
	}
}

func TestParseColWidthStar(t *testing.T) {
	got, err := parseColWidth("", "2*", geom.I(16))
	if err != nil {
		t.Fatalf("parseColWidth: %v", err)
	}
	if got.star != 2 || got.abs != 0 {
		t.Errorf("parseColWidth(2*) = %+v, want star=2 abs=0", got)
	}
}

func TestParseColWidthBareStar(t *testing.T) {
	got, err := parseColWidth("", "*", geom.I(16))
	if err != nil {
		t.Fatalf("parseColWidth: %v", err)
	}
	if got.star != 1 {
		t.Errorf("parseColWidth(*) = %+v, want star=1", got)
	}
}

func TestParseColWidthEmptyDefaultsToStarOne(t *testing.T) {
	got, err := parseColWidth("", "", geom.I(16))
	if err != nil {
		t.Fatalf("parseColWidth: %v", err)
	}
	if got.star != 1 {
		t.Errorf("parseColWidth(\"\") = %+v, want star=1", got)
	}
}

func TestParseColWidthMalformedStar(t *testing.T) {
	if _, err := parseColWidth("", "abc*", geom.I(16)); err == nil {
		t.Errorf("parseColWidth(abc*): want an error")
	}
}

func TestParseSpanAttrDefault(t *testing.T) {
	td := elem("td")
	n, err := parseSpanAttr(td, "colspan")
	if err != nil {
		t.Fatalf("parseSpanAttr: %v", err)
	}
	if n != 1 {
		t.Errorf("parseSpanAttr with no attribute = %d, want 1", n)
	}
}

func TestParseSpanAttrParses(t *testing.T) {
	td := elem("td", dom.Attribute{Name: "rowspan", Value: "3"})
	n, err := parseSpanAttr(td, "rowspan")
	if err != nil {
		t.Fatalf("parseSpanAttr: %v", err)
	}
	if n != 3 {
		t.Errorf("parseSpanAttr(rowspan=3) = %d, want 3", n)
	}
}

func TestParseSpanAttrRejectsMalformed(t *testing.T) {
	td := elem("td", dom.Attribute{Name: "colspan", Value: "0"})
	if _, err := parseSpanAttr(td, "colspan"); err == nil {
		t.Errorf("parseSpanAttr(colspan=0): want an error (spans must be >= 1)")
	}
	td2 := elem("td", dom.Attribute{Name: "colspan", Value: "abc"})
	if _, err := parseSpanAttr(td2, "colspan"); err == nil {
		t.Errorf("parseSpanAttr(colspan=abc): want an error")
	}
}

func TestCollectRowsRecursesIntoGroups(t *testing.T) {
	table := elem("table")
	thead := elem("thead")
	tr1 := elem("tr")
	thead.child(tr1)
	tbody := elem("tbody")
	tr2 := elem("tr")
	tr3 := elem("tr")
	tbody.child(tr2).child(tr3)
	table.child(thead).child(tbody)

	rows := collectRows(table)
	if len(rows) != 3 {
		t.Fatalf("collectRows returned %d rows, want 3", len(rows))
	}
	if rows[0] != dom.Node(tr1) || rows[1] != dom.Node(tr2) || rows[2] != dom.Node(tr3) {
		t.Errorf("collectRows order mismatch")
	}
}

func TestColGroupSpecsExpandsSpan(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	table := elem("table")
	colgroup := elem("colgroup")
	col1 := elem("col", dom.Attribute{Name: "span", Value: "2"}, dom.Attribute{Name: "width", Value: "40px"})
	col2 := elem("col", dom.Attribute{Name: "width", Value: "2*"})
	colgroup.child(col1).child(col2)
	table.child(colgroup)

	specs, err := colGroupSpecs(sheet, table, geom.I(16))
	if err != nil {
		t.Fatalf("colGroupSpecs: %v", err)
	}
	if len(specs) != 3 {
		t.Fatalf("colGroupSpecs returned %d entries, want 3 (span=2 + 1)", len(specs))
	}
	if specs[0].abs != geom.I(40) || specs[1].abs != geom.I(40) {
		t.Errorf("expanded span columns = %+v, %+v, want both abs=%d", specs[0], specs[1], geom.I(40))
	}
	if specs[2].star != 2 {
		t.Errorf("third column = %+v, want star=2", specs[2])
	}
}

func TestTableCenterOffsetCentersNarrowerTable(t *testing.T) {
	got := tableCenterOffset(geom.I(100), geom.I(60))
	want := geom.I(20)
	if got != want {
		t.Errorf("tableCenterOffset(100,60) = %d, want %d (centered, no margin:auto needed)", got, want)
	}
}

func TestTableCenterOffsetClampsAtZero(t *testing.T) {
	got := tableCenterOffset(geom.I(60), geom.I(100))
	if got != 0 {
		t.Errorf("tableCenterOffset(60,100) = %d, want 0 (never shift left of the container)", got)
	}
}

func TestColGroupSpecsNoColgroupReturnsEmpty(t *testing.T) {
	sheet := style.NewSheet(font.NewCache())
	table := elem("table")
	specs, err := colGroupSpecs(sheet, table, geom.I(16))
	if err != nil {
		t.Fatalf("colGroupSpecs: %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("colGroupSpecs with no colgroup = %+v, want empty", specs)
	}
}
