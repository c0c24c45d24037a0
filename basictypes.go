package jsonxsd

// emitBasicTypes emits, once per schema, the fixed library of derived
// simple types. Each is a named top-level xsd:simpleType under the
// schema root.
func emitBasicTypes(b *builder, schema *node) {
	emitDateType(b, schema)
	emitTimeType(b, schema)
	emitPatternType(b, schema, "integerStringType", `(0|-?[1-9]*)`)
	emitPatternType(b, schema, "booleanStringType", `true|false`)
	emitPatternType(b, schema, "uriType", `(https?|ftp)://[^{}]+\.[^{}]+`)
	emitNullType(b, schema)
}

func emitDateType(b *builder, schema *node) {
	st := b.elem(schema, "simpleType", newAttr("name", "dateType"))
	union := b.elem(st, "union")
	emitBaseRestriction(b, union, "date")
	emitPatternRestriction(b, union, `(0?[1-9]|[12][0-9]|3[01])[/.](0?[1-9]|1[0-2])[/.]\d{4}`)
}

func emitTimeType(b *builder, schema *node) {
	st := b.elem(schema, "simpleType", newAttr("name", "timeType"))
	union := b.elem(st, "union")
	emitBaseRestriction(b, union, "time")
	emitPatternRestriction(b, union, `([0-1]?[0-9]|2[0-3]):([0-5][0-9])`)
	emitPatternRestriction(b, union, `(0?[0-9]|1[01]):([0-5][0-9]) (AM|PM|a\.m\.|p\.m\.)`)
}

// emitBaseRestriction adds a <simpleType><restriction base=.../></simpleType>
// member to a union, with no pattern facet.
func emitBaseRestriction(b *builder, union *node, base string) {
	member := b.elem(union, "simpleType")
	b.elem(member, "restriction", newAttr("base", base))
}

// emitPatternRestriction adds a <simpleType><restriction base="string">
// <pattern .../></restriction></simpleType> member to a union.
func emitPatternRestriction(b *builder, union *node, pattern string) {
	member := b.elem(union, "simpleType")
	restriction := b.elem(member, "restriction", newAttr("base", "string"))
	b.elem(restriction, "pattern", newAttr("value", pattern))
}

// emitPatternType emits a named simpleType that directly restricts
// xsd:string with a pattern facet (no union wrapper).
func emitPatternType(b *builder, schema *node, name, pattern string) {
	st := b.elem(schema, "simpleType", newAttr("name", name))
	restriction := b.elem(st, "restriction", newAttr("base", "string"))
	b.elem(restriction, "pattern", newAttr("value", pattern))
}

func emitNullType(b *builder, schema *node) {
	st := b.elem(schema, "simpleType", newAttr("name", "nullType"))
	restriction := b.elem(st, "restriction", newAttr("base", "string"))
	b.elem(restriction, "length", newAttr("value", "0"))
}

// basicTypeNames lists every name emitBasicTypes defines. No code in
// the package reads it; the indexer recognizes these names through
// its own primitive mapping.
var basicTypeNames = map[string]bool{
	"dateType": true, "timeType": true, "integerStringType": true,
	"booleanStringType": true, "uriType": true, "nullType": true,
}

// formatTypeName maps a transformed-string Format to its basic-type name.
func formatTypeName(format string) string {
	switch format {
	case "date":
		return "dateType"
	case "time":
		return "timeType"
	case "date-time":
		return "dateType" // date-time values reuse the date union; see lower.go dispatch
	case "uri":
		return "uriType"
	case "integer-string":
		return "integerStringType"
	case "bool-string":
		return "booleanStringType"
	default:
		return ""
	}
}
