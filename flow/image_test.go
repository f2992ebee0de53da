// SPDX-License-Identifier: Unlicense OR MIT

package flow

import (
	"testing"

	"github.com/vog/stll/dom"
	"github.com/vog/stll/geom"
)

func TestAttrSizeReadsRawAttribute(t *testing.T) {
	img := elem("img", dom.Attribute{Name: "width", Value: "120px"})
	w, err := attrSize(img, "width", geom.I(16))
	if err != nil {
		t.Fatalf("attrSize: %v", err)
	}
	if w != geom.I(120) {
		t.Errorf("attrSize(width) = %d, want %d", w, geom.I(120))
	}
}

func TestAttrSizeMissingIsZero(t *testing.T) {
	img := elem("img")
	w, err := attrSize(img, "height", geom.I(16))
	if err != nil {
		t.Fatalf("attrSize: %v", err)
	}
	if w != 0 {
		t.Errorf("attrSize on a missing attribute = %d, want 0", w)
	}
}

func TestAttrSizeMalformedIsError(t *testing.T) {
	img := elem("img", dom.Attribute{Name: "width", Value: "not-a-size"})
	if _, err := attrSize(img, "width", geom.I(16)); err == nil {
		t.Errorf("attrSize(width=not-a-size): want an error")
	}
}

func TestIntrinsicSizeMissingFile(t *testing.T) {
	_, _, ok := intrinsicSize("/nonexistent/path/to/image.png")
	if ok {
		t.Errorf("intrinsicSize on a nonexistent file: want ok=false")
	}
}

func TestIntrinsicSizeEmptyURL(t *testing.T) {
	_, _, ok := intrinsicSize("")
	if ok {
		t.Errorf("intrinsicSize(\"\"): want ok=false")
	}
}
