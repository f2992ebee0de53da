// SPDX-License-Identifier: Unlicense OR MIT

package font

import (
	"fmt"
	"sync"

	"github.com/vog/stll/font/opentype"
	"github.com/vog/stll/geom"
)

// Variant selectors recognized by the style subset (spec.md §6
// "font-variant"). Absent a richer definition, only normal/small-caps are
// distinguished; the distinction is carried through to the family lookup so
// a caller can register distinct small-caps faces.
const (
	VariantNormal    Variant = ""
	VariantSmallCaps Variant = "small-caps"
)

// Family is a named collection of faces, addressable by the
// (size, style, variant, weight) quadruple described in spec.md §4.1.
// Because the underlying faces are scalable OpenType outlines, any pixel
// size is satisfiable by any registered face; the quadruple therefore
// resolves on (style, variant, weight) alone, with no fuzzy weight
// fallback -- an exact miss is a hard FontNotFound error, per spec.md's
// explicit "no fuzzy fallback" contract.
type Family struct {
	name  string
	faces map[quadruple]Face
}

type quadruple struct {
	Style   Style
	Variant Variant
	Weight  Weight
}

// NewFamily creates an empty, named font family.
func NewFamily(name string) *Family {
	return &Family{name: name, faces: make(map[quadruple]Face)}
}

// Name returns the family's registered name.
func (f *Family) Name() string { return f.name }

// AddFace registers face for the given style/variant/weight within this
// family, replacing any face previously registered for the same quadruple.
func (f *Family) AddFace(style Style, variant Variant, weight Weight, face Face) {
	f.faces[quadruple{style, variant, weight}] = face
}

// AddFaceBytes parses an OpenType/TrueType resource and registers it, using
// the go-text/typesetting font parser the way the teacher's font/opentype
// package does.
func (f *Family) AddFaceBytes(style Style, variant Variant, weight Weight, src []byte) error {
	parsed, err := opentype.Parse(src)
	if err != nil {
		return fmt.Errorf("font: parsing face for family %q: %w", f.name, err)
	}
	f.AddFace(style, variant, weight, parsed)
	return nil
}

// BestFace resolves the exact (style, variant, weight) quadruple to a face.
// size is accepted for interface symmetry with spec.md §4.1 but does not
// participate in the lookup, since every registered face is a scalable
// outline usable at any pixel size.
func (f *Family) BestFace(size geom.Fixed, style Style, variant Variant, weight Weight) (Face, bool) {
	face, ok := f.faces[quadruple{style, variant, weight}]
	return face, ok
}

// Cache owns the set of registered families and is safe for concurrent
// read-only use once construction is complete, matching the "style sheet
// and font cache are constructed once and borrowed immutably" lifecycle in
// spec.md §3.
type Cache struct {
	mu        sync.RWMutex
	families  map[string]*Family
}

// NewCache returns an empty font cache.
func NewCache() *Cache {
	return &Cache{families: make(map[string]*Family)}
}

// Family returns the named family, creating it if this is the first
// reference, so that StyleSheet.Font(family, ...) calls can register faces
// incrementally.
func (c *Cache) Family(name string) *Family {
	c.mu.Lock()
	defer c.mu.Unlock()
	fam, ok := c.families[name]
	if !ok {
		fam = NewFamily(name)
		c.families[name] = fam
	}
	return fam
}

// FindFamily returns the named family, or false if Family has never been
// called with that name. A family found this way may still hold no faces.
func (c *Cache) FindFamily(name string) (*Family, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fam, ok := c.families[name]
	return fam, ok
}
