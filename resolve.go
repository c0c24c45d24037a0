package jsonxsd

import (
	"fmt"
	"sort"
)

// maxDisambiguationIterations bounds the prefix-growing loop below.
// In practice two or three ancestor levels resolve every collision
// seen in testing; this is a safety net against a pathological graph
// where two distinct refs share every ancestor key in their chains.
const maxDisambiguationIterations = 64

// resolveElements is C5: after lowering, emit one top-level
// xsd:element per distinct (tag, set of underlying refs), applying
// prefix disambiguation on collision.
func (lw *lowerer) resolveElements() {
	tags := make([]string, 0, len(lw.byElementName))
	for tag := range lw.byElementName {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		entries := lw.byElementName[tag]
		if len(entries) == 1 {
			typeName := lw.processed[entries[0].ref]
			lw.b.elem(lw.schema, "element", newAttr("name", tag), newAttr("type", typeName))
			continue
		}
		for idx, name := range disambiguateNames(tag, entries) {
			typeName := lw.processed[entries[idx].ref]
			lw.b.elem(lw.schema, "element", newAttr("name", name), newAttr("type", typeName))
		}
	}
}

// disambiguateNames implements the iterative prefix search: at
// iteration i, entry j's candidate name is chain_j[i] (or its last
// element once i runs past the chain's length) title-cased and
// prepended to the tag. An entry with an empty chain has no prefix to
// offer and always candidates as the bare tag.
func disambiguateNames(tag string, entries []elementRecord) []string {
	candidateAt := func(i int, chain []string) string {
		if len(chain) == 0 {
			return title(tag)
		}
		prefix := chain[len(chain)-1]
		if i < len(chain) {
			prefix = chain[i]
		}
		return prefix + title(tag)
	}

	for i := 0; i < maxDisambiguationIterations; i++ {
		candidates := make([]string, len(entries))
		counts := make(map[string]int, len(entries))
		for idx, e := range entries {
			c := candidateAt(i, e.chain)
			candidates[idx] = c
			counts[c]++
		}
		if allUnique(counts) {
			return candidates
		}
	}

	// Every ancestor level was exhausted and entries still collide
	// (e.g. two distinct refs recorded with identical chains). Break
	// the tie deterministically with a numeric suffix rather than
	// emit duplicate element names.
	candidates := make([]string, len(entries))
	seen := make(map[string]bool, len(entries))
	for idx, e := range entries {
		base := candidateAt(maxDisambiguationIterations-1, e.chain)
		name, n := base, 1
		for seen[name] {
			n++
			name = fmt.Sprintf("%s%d", base, n)
		}
		seen[name] = true
		candidates[idx] = name
	}
	return candidates
}

func allUnique(counts map[string]int) bool {
	for _, c := range counts {
		if c > 1 {
			return false
		}
	}
	return true
}
