package jsonxsd

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strings"
)

// StructuralKind is the structural classification the indexer assigns
// a type name to.
type StructuralKind int

const (
	SKNone StructuralKind = iota
	SKPrimitive
	SKArray
	SKClass
	SKUnion
)

// PrimitiveKind names the kind of a primitive-mapped leaf, one of the
// transformed-string formats plus the bare primitive kinds).
type PrimitiveKind string

const (
	PKInteger       PrimitiveKind = "integer"
	PKDouble        PrimitiveKind = "double"
	PKString        PrimitiveKind = "string"
	PKBool          PrimitiveKind = "bool"
	PKNull          PrimitiveKind = "null"
	PKDate          PrimitiveKind = "date"
	PKTime          PrimitiveKind = "time"
	PKURI           PrimitiveKind = "uri"
	PKIntegerString PrimitiveKind = "integer-string"
	PKBoolString    PrimitiveKind = "bool-string"
)

// primitiveMapping is rule 1 of the classification: type names that
// always resolve to a primitive kind without inspecting their
// definition.
var primitiveMapping = map[string]PrimitiveKind{
	"xsd:string":        PKString,
	"xsd:integer":       PKInteger,
	"xsd:decimal":       PKDouble,
	"xsd:boolean":       PKBool,
	"nullType":          PKNull,
	"dateType":          PKDate,
	"timeType":          PKTime,
	"integerStringType": PKIntegerString,
	"booleanStringType": PKBoolString,
	"uriType":           PKURI,
}

// ObjectProperty is one entry of an objectByPath map.
type ObjectProperty struct {
	TypeName  string
	Optional  bool
	Kind      StructuralKind
	Primitive PrimitiveKind
}

// ObjectEntry is objectByPath[path]: property name -> descriptor.
type ObjectEntry map[string]ObjectProperty

// ArrayEntry is arrayByPath[path].
type ArrayEntry struct {
	ItemTag   string
	ItemType  string
	ItemKind  StructuralKind
	Primitive PrimitiveKind
}

// UnionEntry is unionByPath[path]: the ordered member kinds.
type UnionEntry []PrimitiveKind

// structuralInfo is the internal result of classifying a type name.
type structuralInfo struct {
	kind         StructuralKind
	primitive    PrimitiveKind
	unionMembers []PrimitiveKind
}

// Index is C6: the re-parsed XSD plus on-demand path resolution. The
// three "by-path" dictionaries are not
// precomputed eagerly (a genuinely cyclic type graph would make an
// eager full-path enumeration non-terminating); instead each lookup
// walks the dotted path from its declaring top-level element,
// bounded by the path actually queried by the converter as it walks
// a finite JSON/XML document.
type Index struct {
	simpleTypes  map[string]*xsdDocSimple
	complexTypes map[string]*xsdDocComplex
	topElements  map[string]string // tag -> type name
}

// buildIndex parses xsdBytes (the output of lower()) and builds the
// by-name dictionaries used for path resolution.
func buildIndex(xsdBytes []byte) (*Index, error) {
	var doc xsdDocSchema
	decoder := xml.NewDecoder(bytes.NewReader(xsdBytes))
	if err := decoder.Decode(&doc); err != nil {
		return nil, internalError("re-parsing emitted xsd: " + err.Error())
	}

	idx := &Index{
		simpleTypes:  make(map[string]*xsdDocSimple),
		complexTypes: make(map[string]*xsdDocComplex),
		topElements:  make(map[string]string),
	}
	for i := range doc.SimpleTypes {
		st := &doc.SimpleTypes[i]
		idx.simpleTypes[st.Name] = st
	}
	for i := range doc.ComplexTypes {
		ct := &doc.ComplexTypes[i]
		idx.complexTypes[ct.Name] = ct
	}
	for _, el := range doc.Elements {
		idx.topElements[el.Name] = el.Type
	}
	return idx, nil
}

// classify implements the five-step classification.
func (idx *Index) classify(typeName string) structuralInfo {
	if prim, ok := primitiveMapping[typeName]; ok {
		return structuralInfo{kind: SKPrimitive, primitive: prim}
	}
	if st, ok := idx.simpleTypes[typeName]; ok && st.Union != nil {
		members := make([]PrimitiveKind, 0, len(st.Union.SimpleTypes))
		ok := true
		for _, m := range st.Union.SimpleTypes {
			if m.Restriction == nil {
				ok = false
				break
			}
			prim, known := primitiveMapping[m.Restriction.Base]
			if !known {
				ok = false
				break
			}
			members = append(members, prim)
		}
		if ok && len(members) > 0 {
			return structuralInfo{kind: SKUnion, unionMembers: members}
		}
	}
	if ct, ok := idx.complexTypes[typeName]; ok {
		if ct.Sequence != nil && len(ct.Sequence.Elements) == 1 {
			el := ct.Sequence.Elements[0]
			if el.MaxOccurs == "unbounded" && el.MinOccurs == "0" {
				return structuralInfo{kind: SKArray}
			}
		}
		if ct.All != nil {
			return structuralInfo{kind: SKClass}
		}
	}
	return structuralInfo{kind: SKNone}
}

// resolvePathType walks path (a top-level element tag, optionally
// followed by dot-separated child tags) to the type name in scope at
// its end. Returns false if the path does not exist in the schema.
func (idx *Index) resolvePathType(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	segments := strings.Split(path, ".")
	typeName, ok := idx.topElements[segments[0]]
	if !ok {
		return "", false
	}
	for _, seg := range segments[1:] {
		info := idx.classify(typeName)
		switch info.kind {
		case SKArray:
			ct := idx.complexTypes[typeName]
			item := ct.Sequence.Elements[0]
			if item.Name != seg {
				return "", false
			}
			typeName = item.Type
		case SKClass:
			ct := idx.complexTypes[typeName]
			next, found := "", false
			for _, el := range ct.All.Elements {
				if el.Name == seg {
					next, found = el.Type, true
					break
				}
			}
			if !found {
				return "", false
			}
			typeName = next
		default:
			return "", false
		}
	}
	return typeName, true
}

// Object resolves objectByPath[path].
func (idx *Index) Object(path string) (ObjectEntry, bool) {
	typeName, ok := idx.resolvePathType(path)
	if !ok {
		return nil, false
	}
	if idx.classify(typeName).kind != SKClass {
		return nil, false
	}
	ct := idx.complexTypes[typeName]
	entry := make(ObjectEntry, len(ct.All.Elements))
	for _, el := range ct.All.Elements {
		pinfo := idx.classify(el.Type)
		entry[el.Name] = ObjectProperty{
			TypeName:  el.Type,
			Optional:  el.MinOccurs == "0",
			Kind:      pinfo.kind,
			Primitive: pinfo.primitive,
		}
	}
	return entry, true
}

// Array resolves arrayByPath[path].
func (idx *Index) Array(path string) (ArrayEntry, bool) {
	typeName, ok := idx.resolvePathType(path)
	if !ok {
		return ArrayEntry{}, false
	}
	if idx.classify(typeName).kind != SKArray {
		return ArrayEntry{}, false
	}
	ct := idx.complexTypes[typeName]
	item := ct.Sequence.Elements[0]
	iinfo := idx.classify(item.Type)
	return ArrayEntry{
		ItemTag:   item.Name,
		ItemType:  item.Type,
		ItemKind:  iinfo.kind,
		Primitive: iinfo.primitive,
	}, true
}

// Union resolves unionByPath[path].
func (idx *Index) Union(path string) (UnionEntry, bool) {
	typeName, ok := idx.resolvePathType(path)
	if !ok {
		return nil, false
	}
	info := idx.classify(typeName)
	if info.kind != SKUnion {
		return nil, false
	}
	return info.unionMembers, true
}

// BuildIndex is the exported constructor used by the CLI's summarize
// command to re-parse an emitted XSD without going through a full
// Render.
func BuildIndex(xsdBytes []byte) (*Index, error) {
	return buildIndex(xsdBytes)
}

// SummaryRow is one line of the summarize command's table: a type
// name, its structural kind, and the top-level element names and
// "<complexType>.<element>" children that reference it.
type SummaryRow struct {
	Name         string
	Kind         string
	ReferencedBy string
}

// Summary lists every named simple/complex type with its structural
// kind and the set of element names/types that reference it.
func (idx *Index) Summary() []SummaryRow {
	referencedBy := make(map[string][]string)
	for tag, typeName := range idx.topElements {
		referencedBy[typeName] = append(referencedBy[typeName], tag)
	}
	for _, ct := range idx.complexTypes {
		if ct.Sequence != nil {
			for _, el := range ct.Sequence.Elements {
				referencedBy[el.Type] = append(referencedBy[el.Type], ct.Name+"."+el.Name)
			}
		}
		if ct.All != nil {
			for _, el := range ct.All.Elements {
				referencedBy[el.Type] = append(referencedBy[el.Type], ct.Name+"."+el.Name)
			}
		}
	}

	rows := make([]SummaryRow, 0, len(idx.complexTypes)+len(idx.simpleTypes))
	for name := range idx.complexTypes {
		rows = append(rows, SummaryRow{
			Name:         name,
			Kind:         kindLabel(idx.classify(name).kind),
			ReferencedBy: joinSorted(referencedBy[name]),
		})
	}
	for name := range idx.simpleTypes {
		rows = append(rows, SummaryRow{
			Name:         name,
			Kind:         kindLabel(idx.classify(name).kind),
			ReferencedBy: joinSorted(referencedBy[name]),
		})
	}
	return rows
}

func kindLabel(k StructuralKind) string {
	switch k {
	case SKPrimitive:
		return "primitive"
	case SKArray:
		return "array"
	case SKClass:
		return "class"
	case SKUnion:
		return "union"
	default:
		return "none"
	}
}

func joinSorted(names []string) string {
	sort.Strings(names)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// RootKind classifies the declared top-level element named tag,
// without requiring a path lookup (used to kick off conversion).
func (idx *Index) RootKind(tag string) (StructuralKind, PrimitiveKind, bool) {
	typeName, ok := idx.topElements[tag]
	if !ok {
		return SKNone, "", false
	}
	info := idx.classify(typeName)
	return info.kind, info.primitive, true
}
