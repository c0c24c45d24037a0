package jsonxsd

import (
	"fmt"
	"strings"

	"github.com/brettsor/jsonxsd/format"
)

// instanceNS is the XMLSchema-instance namespace bound to the output
// document's root element.
const instanceNS = "http://www.w3.org/2001/XMLSchema-instance"

// converter is C7: the bidirectional JSON<->XML walker driven by an
// Index built from the freshly emitted schema.
type converter struct {
	idx     *Index
	coerce  *coercer
	xsdFile string
}

func newConverter(idx *Index, rec format.Recognizer, xsdFile string) *converter {
	return &converter{idx: idx, coerce: newCoercer(rec), xsdFile: xsdFile}
}

// JSONToXML builds the pretty-printable XML tree for value under
// rootTag.
func (cv *converter) JSONToXML(rootTag string, value any) (*node, error) {
	root := &node{name: rootTag}
	kind, prim, ok := cv.idx.RootKind(rootTag)
	if !ok {
		return nil, internalError("root element " + rootTag + " missing from index")
	}
	if err := cv.encodeInto(root, rootTag, kind, prim, value); err != nil {
		return nil, err
	}
	root.attrs = append(root.attrs,
		newAttr("xmlns:xsd", instanceNS),
		newAttr("xsd:noNamespaceSchemaLocation", cv.xsdFile))
	return root, nil
}

// encodeInto fills n (already created with the correct tag) with
// value's structure at path.
func (cv *converter) encodeInto(n *node, path string, kind StructuralKind, prim PrimitiveKind, value any) error {
	switch kind {
	case SKUnion:
		members, _ := cv.idx.Union(path)
		for _, m := range members {
			if text, ok := cv.coerce.toXMLText(m, value); ok {
				n.text = text
				return nil
			}
		}
		return malformedInput(path, "no union member accepts value")

	case SKArray:
		entry, _ := cv.idx.Array(path)
		list, ok := value.([]any)
		if !ok {
			return malformedInput(path, "expected a list")
		}
		childPath := path + "." + entry.ItemTag
		for _, item := range list {
			child := &node{name: entry.ItemTag}
			if err := cv.encodeInto(child, childPath, entry.ItemKind, entry.Primitive, item); err != nil {
				return err
			}
			n.children = append(n.children, child)
		}
		return nil

	case SKClass:
		entry, _ := cv.idx.Object(path)
		obj, ok := value.(map[string]any)
		if !ok {
			return malformedInput(path, "expected an object")
		}
		for propName, prop := range entry {
			v, present := obj[propName]
			if !present {
				if !prop.Optional {
					return malformedInput(path, "missing required property "+propName)
				}
				continue
			}
			child := &node{name: propName}
			childPath := path + "." + propName
			if err := cv.encodeInto(child, childPath, prop.Kind, prop.Primitive, v); err != nil {
				return err
			}
			n.children = append(n.children, child)
		}
		return nil

	case SKPrimitive:
		text, ok := cv.coerce.toXMLText(prim, value)
		if !ok {
			return malformedInput(path, fmt.Sprintf("value does not coerce to %s", prim))
		}
		n.text = text
		return nil

	default:
		n.text = anyToXMLText()
		return nil
	}
}

// XMLToJSON is the inverse: it reconstructs a JSON value from a parsed
// XML node tree rooted at rootTag.
func (cv *converter) XMLToJSON(root *node) (any, error) {
	kind, prim, ok := cv.idx.RootKind(root.name)
	if !ok {
		return nil, internalError("root element " + root.name + " missing from index")
	}
	return cv.decodeFrom(root, root.name, kind, prim)
}

func (cv *converter) decodeFrom(n *node, path string, kind StructuralKind, prim PrimitiveKind) (any, error) {
	switch kind {
	case SKUnion:
		members, _ := cv.idx.Union(path)
		for _, m := range members {
			if v, ok := cv.coerce.toJSONValue(m, n.text, isEmptyNode(n)); ok {
				return v, nil
			}
		}
		return nil, malformedInput(path, "no union member accepts value")

	case SKArray:
		entry, _ := cv.idx.Array(path)
		childPath := path + "." + entry.ItemTag
		items := make([]any, 0, len(n.children))
		for _, c := range n.children {
			if c.name != entry.ItemTag {
				continue
			}
			v, err := cv.decodeFrom(c, childPath, entry.ItemKind, entry.Primitive)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil

	case SKClass:
		entry, _ := cv.idx.Object(path)
		obj := make(map[string]any, len(entry))
		for propName, prop := range entry {
			if strings.HasPrefix(propName, "@") {
				continue // attribute entries are not lowered as elements
			}
			child := findChild(n, propName)
			if child == nil {
				if !prop.Optional {
					return nil, malformedInput(path, "missing required property "+propName)
				}
				continue
			}
			childPath := path + "." + propName
			v, err := cv.decodeFrom(child, childPath, prop.Kind, prop.Primitive)
			if err != nil {
				return nil, err
			}
			obj[propName] = v
		}
		return obj, nil

	case SKPrimitive:
		v, ok := cv.coerce.toJSONValue(prim, n.text, isEmptyNode(n))
		if !ok {
			return nil, malformedInput(path, fmt.Sprintf("value does not coerce from %s", prim))
		}
		return v, nil

	default:
		return anyToJSONValue(n.text), nil
	}
}

func findChild(n *node, name string) *node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func isEmptyNode(n *node) bool {
	return n.text == "" && len(n.children) == 0
}
