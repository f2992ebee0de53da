// SPDX-License-Identifier: Unlicense OR MIT

// Package style implements the CSS subset of spec.md §4.1: selector
// matching, cascade (specificity + source order + inheritance), and the
// font family registry. Value syntax (sizes, colors, shadow lists) is
// ported from original_source/layouterXHTML.cpp's evalSize/evalColor/
// evalShadows, translated into Go's explicit-error idiom.
package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/vog/stll/geom"
	"github.com/vog/stll/stllerr"
)

// SizeContext says which CSS property is being resolved, since percent is
// only accepted for font-size and width per the Open Question resolved in
// SPEC_FULL.md §11.
type SizeContext int

const (
	// SizeAny accepts px only.
	SizeAny SizeContext = iota
	// SizeFontOrWidth additionally accepts percent.
	SizeFontOrWidth
)

// EvalSize parses a CSS length value ("12px" or "50%") relative to base
// (the percentage reference, e.g. the parent font-size or container width).
func EvalSize(path, v string, base geom.Fixed, ctx SizeContext) (geom.Fixed, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	switch {
	case strings.HasSuffix(v, "px"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, "px"), 64)
		if err != nil {
			return 0, stllerr.Newf(stllerr.BadValue, path, "malformed px size %q", v)
		}
		return geom.FromFloat(n), nil
	case strings.HasSuffix(v, "%"):
		if ctx != SizeFontOrWidth {
			return 0, stllerr.Newf(stllerr.BadValue, path, "percent not allowed here: %q", v)
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0, stllerr.Newf(stllerr.BadValue, path, "malformed percent size %q", v)
		}
		return geom.Fixed(float64(base) * n / 100), nil
	default:
		// Bare numbers are treated as px, matching evalSize's std::stod fallback.
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, stllerr.Newf(stllerr.BadValue, path, "unsupported size unit %q", v)
		}
		return geom.FromFloat(n), nil
	}
}

// EvalColor parses "#RRGGBB", "#RGB", or "transparent".
func EvalColor(path, v string) (color.NRGBA, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "transparent" {
		return color.NRGBA{}, nil
	}
	if !strings.HasPrefix(v, "#") {
		return color.NRGBA{}, stllerr.Newf(stllerr.BadValue, path, "malformed color %q", v)
	}
	hex := v[1:]
	expand := func(c byte) (byte, error) {
		n, err := strconv.ParseUint(string(c), 16, 8)
		if err != nil {
			return 0, err
		}
		return uint8(n)*17, nil // 0xA -> 0xAA
	}
	switch len(hex) {
	case 3:
		r, err1 := expand(hex[0])
		g, err2 := expand(hex[1])
		b, err3 := expand(hex[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return color.NRGBA{}, stllerr.Newf(stllerr.BadValue, path, "malformed color %q", v)
		}
		return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, nil
	case 6:
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, stllerr.Newf(stllerr.BadValue, path, "malformed color %q", v)
		}
		return color.NRGBA{
			R: uint8(n >> 16),
			G: uint8(n >> 8),
			B: uint8(n),
			A: 0xFF,
		}, nil
	default:
		return color.NRGBA{}, stllerr.Newf(stllerr.BadValue, path, "malformed color %q", v)
	}
}

// Shadow is a single dx/dy/color shadow entry.
type Shadow struct {
	DX, DY geom.Fixed
	Color  color.NRGBA
}

// EvalShadows parses a comma-separated "dx dy color" shadow list, per
// spec.md §6 "Value syntax".
func EvalShadows(path, v string, fontSize geom.Fixed) ([]Shadow, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "none" {
		return nil, nil
	}
	var out []Shadow
	for _, part := range strings.Split(v, ",") {
		fields := strings.Fields(part)
		if len(fields) != 3 {
			return nil, stllerr.Newf(stllerr.BadValue, path, "malformed shadow entry %q", part)
		}
		dx, err := EvalSize(path, fields[0], fontSize, SizeAny)
		if err != nil {
			return nil, err
		}
		dy, err := EvalSize(path, fields[1], fontSize, SizeAny)
		if err != nil {
			return nil, err
		}
		col, err := EvalColor(path, fields[2])
		if err != nil {
			return nil, err
		}
		out = append(out, Shadow{DX: dx, DY: dy, Color: col})
	}
	return out, nil
}

// FormatColor renders c back to "#RRGGBB" or "transparent", the inverse of
// EvalColor, used by xmlio when persisting a layout.
func FormatColor(c color.NRGBA) string {
	if c.A == 0 {
		return "transparent"
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
