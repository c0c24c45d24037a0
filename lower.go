package jsonxsd

import (
	"fmt"
	"strings"

	"github.com/brettsor/jsonxsd/typegraph"
)

// elementRecord is one recorded sighting of a non-primitive typeref
// under a given element tag, together with the ancestor-key chain in
// effect at the point it was recorded.
type elementRecord struct {
	ref   typegraph.Ref
	chain []string
}

// lowerer holds all per-render mutable state for C4: fresh per
// render, nothing shared.
type lowerer struct {
	b      *builder
	schema *node
	graph  typegraph.Graph

	processed     map[typegraph.Ref]string
	byElementName map[string][]elementRecord
	seenTagRef    map[string]map[typegraph.Ref]bool
	nextTypeNum   int
}

// lower runs C4+C5: it lowers the full graph into a fresh xsd:schema
// node, then resolves top-level elements, and returns the finished
// schema node. No other bookkeeping is returned: the indexer rebuilds
// its lookup maps by re-parsing the rendered schema.
func lower(g typegraph.Graph) (*node, error) {
	b := newBuilder()
	schema := b.elem(nil, "schema",
		newAttr("xmlns:xsd", xsdSchemaNS))

	emitBasicTypes(b, schema)

	lw := &lowerer{
		b:             b,
		schema:        schema,
		graph:         g,
		processed:     make(map[typegraph.Ref]string),
		byElementName: make(map[string][]elementRecord),
		seenTagRef:    make(map[string]map[typegraph.Ref]bool),
	}

	if err := lw.lowerRoot(); err != nil {
		return nil, err
	}
	lw.resolveElements()
	return schema, nil
}

func (lw *lowerer) lowerRoot() error {
	rootRef := lw.graph.Root()
	n, ok := lw.graph.Resolve(rootRef)
	if !ok {
		return internalError("root typeref does not resolve")
	}
	tag := lw.graph.RootTag()

	switch n.Kind() {
	case typegraph.KindArray, typegraph.KindClass:
		return lw.lowerNamed(rootRef, n, nil, tag, nil, nil)
	case typegraph.KindUnion:
		if !allPrimitiveMembers(lw.graph, n.Members()) {
			return unsupportedUnion("root union has a non-primitive member")
		}
		return lw.lowerNamed(rootRef, n, nil, tag, nil, nil)
	case typegraph.KindNull, typegraph.KindBool, typegraph.KindInteger,
		typegraph.KindDouble, typegraph.KindString, typegraph.KindTransformedString:
		xsdType, err := lw.primitiveTypeName(n)
		if err != nil {
			return err
		}
		lw.b.elem(lw.schema, "element", newAttr("name", tag), newAttr("type", xsdType))
		return nil
	default:
		return notImplemented(n.Kind().String(), "root type produces no XSD")
	}
}

// lowerType lowers a value occurring at a containment site (a class
// property or an array item) and emits exactly one local inline
// <element> there (spec invariants 4 and 5), except for the None, Any,
// Map, Object and Enum kinds, which emit nothing. Arrays, classes and
// unions are additionally recorded for top-level resolution by C5.
func (lw *lowerer) lowerType(ref typegraph.Ref, parent *node, key string, chain []string, occursAttrs []attr) error {
	n, ok := lw.graph.Resolve(ref)
	if !ok {
		return internalError("typeref does not resolve: " + fmt.Sprint(ref))
	}

	switch n.Kind() {
	case typegraph.KindNone, typegraph.KindAny, typegraph.KindMap,
		typegraph.KindObject, typegraph.KindEnum:
		return nil // no XSD for these kinds

	case typegraph.KindNull, typegraph.KindBool, typegraph.KindInteger,
		typegraph.KindDouble, typegraph.KindString, typegraph.KindTransformedString:
		xsdType, err := lw.primitiveTypeName(n)
		if err != nil {
			return err
		}
		attrs := append([]attr{newAttr("name", key), newAttr("type", xsdType)}, occursAttrs...)
		lw.b.elem(parent, "element", attrs...)
		return nil

	case typegraph.KindUnion:
		if !allPrimitiveMembers(lw.graph, n.Members()) {
			return unsupportedUnion(fmt.Sprintf("union at %q has a non-primitive member", key))
		}
		return lw.lowerNamed(ref, n, parent, key, chain, occursAttrs)

	case typegraph.KindArray, typegraph.KindClass:
		return lw.lowerNamed(ref, n, parent, key, chain, occursAttrs)

	default:
		return internalError("unhandled type kind: " + n.Kind().String())
	}
}

// lowerNamed lowers a type that owns a complexType/simpleType
// definition (array, class, or primitive union): it allocates (or
// reuses, for a ref already defined, such as a shared type or a cyclic
// back-reference) the type name, emits the local
// inline element at the containment site if there is one, and records
// the occurrence for the element resolver.
func (lw *lowerer) lowerNamed(ref typegraph.Ref, n typegraph.Node, parent *node, key string, chain []string, occursAttrs []attr) error {
	typeName, already := lw.processed[ref]
	if !already {
		var err error
		typeName, err = lw.define(ref, n, key, chain)
		if err != nil {
			return err
		}
	}

	lw.recordElementName(key, ref, chain)

	if parent != nil {
		attrs := append([]attr{newAttr("name", key), newAttr("type", typeName)}, occursAttrs...)
		lw.b.elem(parent, "element", attrs...)
	}
	return nil
}

// define allocates a new complexType/simpleType name for ref and
// emits its definition. Called exactly once per distinct ref.
func (lw *lowerer) define(ref typegraph.Ref, n typegraph.Node, key string, chain []string) (string, error) {
	lw.nextTypeNum++
	typeName := fmt.Sprintf("complexType%d", lw.nextTypeNum)
	lw.processed[ref] = typeName

	switch n.Kind() {
	case typegraph.KindArray:
		complexType := lw.b.elem(lw.schema, "complexType", newAttr("name", typeName))
		sequence := lw.b.elem(complexType, "sequence")
		itemAttrs := []attr{newAttr("maxOccurs", "unbounded"), newAttr("minOccurs", "0")}
		itemKey := key + "Item"
		if err := lw.lowerType(n.Items(), sequence, itemKey, append(append([]string{}, chain...), title(key)), itemAttrs); err != nil {
			return "", err
		}
	case typegraph.KindClass:
		complexType := lw.b.elem(lw.schema, "complexType", newAttr("name", typeName))
		all := lw.b.elem(complexType, "all")
		childChain := append(append([]string{}, chain...), title(key))
		for _, prop := range n.Props() {
			var occurs []attr
			if prop.Optional {
				occurs = []attr{newAttr("minOccurs", "0")}
			}
			if err := lw.lowerType(prop.Type, all, prop.Name, childChain, occurs); err != nil {
				return "", err
			}
		}
	case typegraph.KindUnion:
		simpleType := lw.b.elem(lw.schema, "simpleType", newAttr("name", typeName))
		union := lw.b.elem(simpleType, "union")
		for _, memberRef := range n.Members() {
			memberNode, ok := lw.graph.Resolve(memberRef)
			if !ok {
				return "", internalError("union member typeref does not resolve")
			}
			base, err := lw.primitiveTypeName(memberNode)
			if err != nil {
				return "", err
			}
			lw.b.elem(union, "simpleType").addRestrictionBase(lw.b, base)
		}
	default:
		return "", internalError("define called on non-named kind: " + n.Kind().String())
	}
	return typeName, nil
}

// addRestrictionBase is a tiny convenience used only by union member
// emission, where the restriction has no facets.
func (n *node) addRestrictionBase(b *builder, base string) {
	b.elem(n, "restriction", newAttr("base", base))
}

func (lw *lowerer) recordElementName(key string, ref typegraph.Ref, chain []string) {
	if lw.seenTagRef[key] == nil {
		lw.seenTagRef[key] = make(map[typegraph.Ref]bool)
	}
	if lw.seenTagRef[key][ref] {
		return
	}
	lw.seenTagRef[key][ref] = true
	lw.byElementName[key] = append(lw.byElementName[key], elementRecord{ref: ref, chain: chain})
}

// primitiveTypeName maps a primitive/transformed-string kind to its
// XSD type name.
func (lw *lowerer) primitiveTypeName(n typegraph.Node) (string, error) {
	switch n.Kind() {
	case typegraph.KindNull:
		return "nullType", nil
	case typegraph.KindBool:
		return "boolean", nil
	case typegraph.KindInteger:
		return "integer", nil
	case typegraph.KindDouble:
		return "decimal", nil
	case typegraph.KindString:
		return "string", nil
	case typegraph.KindTransformedString:
		name := formatTypeName(string(n.Format()))
		if name == "" {
			return "", internalError("unknown transformed-string format: " + string(n.Format()))
		}
		return name, nil
	default:
		return "", internalError("primitiveTypeName called on non-primitive kind: " + n.Kind().String())
	}
}

func allPrimitiveMembers(g typegraph.Graph, members []typegraph.Ref) bool {
	for _, m := range members {
		n, ok := g.Resolve(m)
		if !ok {
			return false
		}
		switch n.Kind() {
		case typegraph.KindNull, typegraph.KindBool, typegraph.KindInteger,
			typegraph.KindDouble, typegraph.KindString, typegraph.KindTransformedString:
			continue
		default:
			return false
		}
	}
	return true
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
