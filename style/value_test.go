// SPDX-License-Identifier: Unlicense OR MIT

package style

import (
	"image/color"
	"testing"

	"github.com/vog/stll/geom"
)

func TestEvalSizePx(t *testing.T) {
	got, err := EvalSize("", "12px", 0, SizeAny)
	if err != nil {
		t.Fatalf("EvalSize: %v", err)
	}
	if got != geom.I(12) {
		t.Errorf("EvalSize(12px) = %d, want %d", got, geom.I(12))
	}
}

func TestEvalSizeBareNumber(t *testing.T) {
	got, err := EvalSize("", "8", 0, SizeAny)
	if err != nil {
		t.Fatalf("EvalSize: %v", err)
	}
	if got != geom.I(8) {
		t.Errorf("EvalSize(8) = %d, want %d", got, geom.I(8))
	}
}

func TestEvalSizePercentRejectedOutsideFontOrWidth(t *testing.T) {
	_, err := EvalSize("/html/body/p", "50%", geom.I(16), SizeAny)
	if err == nil {
		t.Fatalf("EvalSize(50%%) with SizeAny: want an error, got nil")
	}
}

func TestEvalSizePercentAllowedForFontOrWidth(t *testing.T) {
	got, err := EvalSize("", "50%", geom.I(16), SizeFontOrWidth)
	if err != nil {
		t.Fatalf("EvalSize: %v", err)
	}
	if got != geom.I(8) {
		t.Errorf("EvalSize(50%% of 16px) = %d, want %d", got, geom.I(8))
	}
}

func TestEvalColorSixHex(t *testing.T) {
	got, err := EvalColor("", "#ff0080")
	if err != nil {
		t.Fatalf("EvalColor: %v", err)
	}
	want := color.NRGBA{R: 0xff, G: 0x00, B: 0x80, A: 0xff}
	if got != want {
		t.Errorf("EvalColor(#ff0080) = %+v, want %+v", got, want)
	}
}

func TestEvalColorThreeHexShorthand(t *testing.T) {
	got, err := EvalColor("", "#f08")
	if err != nil {
		t.Fatalf("EvalColor: %v", err)
	}
	want := color.NRGBA{R: 0xff, G: 0x00, B: 0x88, A: 0xff}
	if got != want {
		t.Errorf("EvalColor(#f08) = %+v, want %+v", got, want)
	}
}

func TestEvalColorTransparent(t *testing.T) {
	got, err := EvalColor("", "transparent")
	if err != nil {
		t.Fatalf("EvalColor: %v", err)
	}
	if got.A != 0 {
		t.Errorf("EvalColor(transparent).A = %d, want 0", got.A)
	}
}

func TestEvalColorMalformed(t *testing.T) {
	if _, err := EvalColor("", "blue"); err == nil {
		t.Errorf("EvalColor(blue): want an error for a non-hex, non-transparent value")
	}
	if _, err := EvalColor("", "#12"); err == nil {
		t.Errorf("EvalColor(#12): want an error for a malformed hex length")
	}
}

func TestFormatColorRoundTrip(t *testing.T) {
	c := color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 0xff}
	s := FormatColor(c)
	got, err := EvalColor("", s)
	if err != nil {
		t.Fatalf("EvalColor(%q): %v", s, err)
	}
	if got != c {
		t.Errorf("round trip %+v -> %q -> %+v, want back the original", c, s, got)
	}
	if FormatColor(color.NRGBA{}) != "transparent" {
		t.Errorf("FormatColor(zero value) = %q, want %q", FormatColor(color.NRGBA{}), "transparent")
	}
}

func TestEvalShadows(t *testing.T) {
	got, err := EvalShadows("", "2px 3px #ff0000, -1px 0px #00ff00", geom.I(16))
	if err != nil {
		t.Fatalf("EvalShadows: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("EvalShadows returned %d entries, want 2", len(got))
	}
	if got[0].DX != geom.I(2) || got[0].DY != geom.I(3) {
		t.Errorf("shadow 0 = (%d,%d), want (%d,%d)", got[0].DX, got[0].DY, geom.I(2), geom.I(3))
	}
	if got[1].DX != geom.I(-1) {
		t.Errorf("shadow 1 DX = %d, want %d", got[1].DX, geom.I(-1))
	}
}

func TestEvalShadowsNone(t *testing.T) {
	got, err := EvalShadows("", "none", geom.I(16))
	if err != nil {
		t.Fatalf("EvalShadows(none): %v", err)
	}
	if got != nil {
		t.Errorf("EvalShadows(none) = %+v, want nil", got)
	}
}

func TestEvalShadowsMalformed(t *testing.T) {
	if _, err := EvalShadows("", "2px #ff0000", geom.I(16)); err == nil {
		t.Errorf("EvalShadows with a missing component: want an error")
	}
}
