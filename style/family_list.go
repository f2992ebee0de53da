// SPDX-License-Identifier: Unlicense OR MIT

package style

import (
	"strings"

	"github.com/vog/stll/stllerr"
)

// familyListParser splits a CSS font-family value into its comma-separated
// candidate names, honoring single- and double-quoted names (with
// backslash escaping) alongside bare, comma-terminated identifiers. Per
// spec.md §1 "the face chosen from the family list is fixed per run": the
// parsed list is resolved to a single family once, at shaping time, not
// re-tried per missing glyph.
type familyListParser struct{}

func (familyListParser) parse(input string) ([]string, error) {
	var names []string
	rest := input
	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return nil, stllerr.New(stllerr.BadValue, "", "empty font-family value")
		}
		var name string
		var err error
		name, rest, err = parseOneFamily(rest)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return names, nil
		}
		if rest[0] != ',' {
			return nil, stllerr.Newf(stllerr.BadValue, "", "expected comma in font-family value near %q", rest)
		}
		rest = rest[1:]
	}
}

// parseOneFamily consumes a single family name (quoted or bare) from the
// front of s and returns the remainder.
func parseOneFamily(s string) (name, rest string, err error) {
	if len(s) == 0 {
		return "", "", stllerr.New(stllerr.BadValue, "", "empty font-family entry")
	}
	quote := s[0]
	if quote == '\'' || quote == '"' {
		var b strings.Builder
		i := 1
		for i < len(s) {
			c := s[i]
			switch {
			case c == '\\' && i+1 < len(s):
				b.WriteByte(s[i+1])
				i += 2
			case c == quote:
				return b.String(), s[i+1:], nil
			default:
				b.WriteByte(c)
				i++
			}
		}
		return "", "", stllerr.Newf(stllerr.BadValue, "", "unterminated quote in font-family value %q", s)
	}
	// Bare identifier: runs until the next top-level comma. Internal
	// whitespace is kept as written, so Times New Roman survives as one
	// name; trailing whitespace before the comma is trimmed.
	idx := strings.IndexByte(s, ',')
	var raw string
	if idx < 0 {
		raw, rest = s, ""
	} else {
		raw, rest = s[:idx], s[idx:]
	}
	raw = strings.TrimRight(raw, " \t")
	if raw == "" {
		return "", "", stllerr.New(stllerr.BadValue, "", "empty font-family entry")
	}
	return raw, rest, nil
}

// ParseFontFamilyList is the exported entry point used by the cascade when
// resolving the font-family property.
func ParseFontFamilyList(value string) ([]string, error) {
	return familyListParser{}.parse(value)
}
