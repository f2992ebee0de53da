// SPDX-License-Identifier: Unlicense OR MIT

package stllerr

import (
	"errors"
	"strings"
	"testing"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{ParseError, "ParseError"},
		{UnexpectedTag, "UnexpectedTag"},
		{BadSpan, "BadSpan"},
		{Kind(999), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestNewf(t *testing.T) {
	err := Newf(BadValue, "/html/body/p", "bad %s", "size")
	if err.Kind != BadValue {
		t.Errorf("Kind = %v, want BadValue", err.Kind)
	}
	if !strings.Contains(err.Error(), "/html/body/p") {
		t.Errorf("Error() = %q, want it to contain the path", err.Error())
	}
	if !strings.Contains(err.Error(), "bad size") {
		t.Errorf("Error() = %q, want it to contain the formatted message", err.Error())
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(ParseError, "/html", cause)
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = false, want true")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestNewParseWindow(t *testing.T) {
	src := strings.Repeat("x", 100)
	err := NewParse(50, src, "unexpected token")
	if err.Kind != ParseError {
		t.Errorf("Kind = %v, want ParseError", err.Kind)
	}
	if len(err.Window) != 40 {
		t.Errorf("Window length = %d, want 40", len(err.Window))
	}
	if got := err.Error(); !strings.Contains(got, "offset 50") {
		t.Errorf("Error() = %q, want it to mention the offset", got)
	}
}

func TestNewParseWindowNearStart(t *testing.T) {
	src := strings.Repeat("y", 10)
	err := NewParse(2, src, "bad")
	if err.Window != src {
		t.Errorf("Window = %q, want the whole (short) source %q", err.Window, src)
	}
}
