// Package index derives the lookup tables the file analyzer scans
// against: a first-byte map of definitions anchored at position 0, a
// first-byte map over every pattern in every definition, and an
// extension-to-definitions map.
package index

import (
	"strings"

	"github.com/D-Naveenz/rheo-storage/definitions"
)

// PatternDefinitionMap pairs a pattern (nil for catch-all entries)
// with the definition it belongs to.
type PatternDefinitionMap struct {
	Pattern    *definitions.Pattern
	Definition *definitions.Definition
}

// CatchAll is the index slot holding entries that cannot be keyed by
// a first byte.
const CatchAll int16 = -1

// Indices bundles the three byte-index tables built from a loaded
// Package. All three are built once and never mutated afterward, so a
// shared *Indices is safe to read concurrently without locking.
type Indices struct {
	// HeadersByteMap indexes a definition under the first byte of its
	// lowest-position pattern, but only when that pattern starts at
	// position 0 (CatchAll otherwise). This is the analyzer's simpler
	// sibling index: it answers "what could this byte start?" for
	// position-0-only matching.
	HeadersByteMap map[int16][]*definitions.Definition

	// AllPatternsByteMap indexes every pattern of every definition by
	// its first byte (CatchAll for empty pattern data). The file
	// analyzer (C6) uses this variant, since a definition can be
	// identified by a pattern anchored anywhere, not just position 0.
	AllPatternsByteMap map[int16][]PatternDefinitionMap

	// ExtensionMap maps a lowercased, dot-stripped extension to every
	// definition that declares it, in package order; duplicates are
	// permitted.
	ExtensionMap map[string][]*definitions.Definition
}

// Build constructs all three tables from pkg in a single pass.
func Build(pkg *definitions.Package) *Indices {
	idx := &Indices{
		HeadersByteMap:     make(map[int16][]*definitions.Definition),
		AllPatternsByteMap: make(map[int16][]PatternDefinitionMap),
		ExtensionMap:       make(map[string][]*definitions.Definition),
	}

	for _, def := range pkg.Definitions {
		buildHeaderEntry(idx, def)
		buildAllPatternsEntries(idx, def)
		buildExtensionEntries(idx, def)
	}

	return idx
}

func buildHeaderEntry(idx *Indices, def *definitions.Definition) {
	key := CatchAll
	if p, ok := lowestPosition(def.Signature.Patterns); ok && p.Position == 0 && len(p.Data) > 0 {
		key = int16(p.Data[0])
	}
	idx.HeadersByteMap[key] = append(idx.HeadersByteMap[key], def)
}

func buildAllPatternsEntries(idx *Indices, def *definitions.Definition) {
	for i := range def.Signature.Patterns {
		p := &def.Signature.Patterns[i]
		key := CatchAll
		if len(p.Data) > 0 {
			key = int16(p.Data[0])
		}
		idx.AllPatternsByteMap[key] = append(idx.AllPatternsByteMap[key], PatternDefinitionMap{
			Pattern:    p,
			Definition: def,
		})
	}
	if len(def.Signature.Patterns) == 0 {
		idx.AllPatternsByteMap[CatchAll] = append(idx.AllPatternsByteMap[CatchAll], PatternDefinitionMap{
			Pattern:    nil,
			Definition: def,
		})
	}
}

func buildExtensionEntries(idx *Indices, def *definitions.Definition) {
	for _, ext := range def.Extensions {
		key := strings.ToLower(strings.TrimPrefix(ext, "."))
		idx.ExtensionMap[key] = append(idx.ExtensionMap[key], def)
	}
}

func lowestPosition(patterns []definitions.Pattern) (definitions.Pattern, bool) {
	if len(patterns) == 0 {
		return definitions.Pattern{}, false
	}
	lowest := patterns[0]
	for _, p := range patterns[1:] {
		if p.Position < lowest.Position {
			lowest = p
		}
	}
	return lowest, true
}
