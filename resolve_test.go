package jsonxsd

import (
	"strings"
	"testing"

	"github.com/brettsor/jsonxsd/typegraph"
)

// buildCollidingGraph produces two distinct array types, each reachable
// through a differently-named ancestor property, both lowered to an
// inline element named "item" — forcing resolveElements to disambiguate
// by ancestor chain.
func buildCollidingGraph(t *testing.T) typegraph.Graph {
	t.Helper()
	b := typegraph.NewBuilder()
	itemsA := b.Array(b.Primitive(typegraph.KindString))
	itemsB := b.Array(b.Primitive(typegraph.KindInteger))
	a := b.Class([]typegraph.Property{{Name: "item", Type: itemsA}})
	bb := b.Class([]typegraph.Property{{Name: "item", Type: itemsB}})
	root := b.Class([]typegraph.Property{
		{Name: "a", Type: a},
		{Name: "b", Type: bb},
	})
	b.SetRoot(root, "root")
	g, ok := b.Build()
	if !ok {
		t.Fatal("builder failed to produce a graph")
	}
	return g
}

func TestResolveElementsDisambiguatesCollidingTags(t *testing.T) {
	schemaNode, err := lower(buildCollidingGraph(t))
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	xsd := schemaNode.render()
	if !strings.Contains(xsd, `name="AItem"`) {
		t.Errorf("expected a disambiguated AItem element, got:\n%s", xsd)
	}
	if !strings.Contains(xsd, `name="BItem"`) {
		t.Errorf("expected a disambiguated BItem element, got:\n%s", xsd)
	}
	// Top-level declarations are the schema's direct children, rendered at
	// one level of indentation; the local elements inside each class's
	// all-group keep the property name "item".
	if strings.Count(xsd, "\n  <xsd:element name=\"item\"") > 0 {
		t.Errorf("the bare colliding tag should not survive disambiguation as a top-level element, got:\n%s", xsd)
	}
}

func TestResolveElementsSharesOneElementForIdenticalRefs(t *testing.T) {
	b := typegraph.NewBuilder()
	shared := b.Array(b.Primitive(typegraph.KindString))
	a := b.Class([]typegraph.Property{{Name: "item", Type: shared}})
	bb := b.Class([]typegraph.Property{{Name: "item", Type: shared}})
	root := b.Class([]typegraph.Property{
		{Name: "a", Type: a},
		{Name: "b", Type: bb},
	})
	b.SetRoot(root, "root")
	g, ok := b.Build()
	if !ok {
		t.Fatal("builder failed to produce a graph")
	}

	schemaNode, err := lower(g)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	xsd := schemaNode.render()
	// Count only top-level declarations (one level of indentation); each
	// class also carries its own local "item" element.
	if strings.Count(xsd, "\n  <xsd:element name=\"item\"") != 1 {
		t.Errorf("expected exactly one shared top-level element for the identical ref, got:\n%s", xsd)
	}
}

func TestDisambiguateNamesBreaksTieWithNumericSuffix(t *testing.T) {
	entries := []elementRecord{
		{ref: 1, chain: []string{"x"}},
		{ref: 2, chain: []string{"x"}},
	}
	names := disambiguateNames("item", entries)
	if names[0] == names[1] {
		t.Fatalf("expected distinct names for colliding identical chains, got %v", names)
	}
}
