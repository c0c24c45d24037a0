package typegraph

import (
	"encoding/json"
	"strings"
)

// Recognizer is the subset of format.Recognizer that inference needs.
// Declared locally so typegraph does not depend on the format package
// (the dependency runs the other way: format has no need of typegraph,
// and typegraph should not force every caller to pull in x/text).
type Recognizer interface {
	IsDate(s string) bool
	IsTime(s string) bool
	IsDateTime(s string) bool
	IsURI(s string) bool
}

// Infer builds a minimal single-sample type graph from one decoded
// JSON value (as produced by encoding/json with UseNumber). This is
// intentionally not a general inference pipeline;
// single-sample inference only; see typegraph.go for Kind's scope.
func Infer(sample any, rootTag string, rec Recognizer) (Graph, error) {
	b := NewBuilder()
	ref, err := inferValue(b, sample, rec)
	if err != nil {
		return nil, err
	}
	b.SetRoot(ref, rootTag)
	g, _ := b.Build()
	return g, nil
}

func inferValue(b *Builder, v any, rec Recognizer) (Ref, error) {
	switch val := v.(type) {
	case nil:
		return b.Primitive(KindNull), nil
	case bool:
		return b.Primitive(KindBool), nil
	case string:
		return inferString(b, val, rec), nil
	case json.Number:
		if isIntegerLiteral(string(val)) {
			return b.Primitive(KindInteger), nil
		}
		return b.Primitive(KindDouble), nil
	case []any:
		return inferArray(b, val, rec)
	case map[string]any:
		return inferClass(b, val, rec)
	default:
		return b.Primitive(KindAny), nil
	}
}

func inferString(b *Builder, s string, rec Recognizer) Ref {
	if rec == nil {
		return b.Primitive(KindString)
	}
	switch {
	case rec.IsDateTime(s):
		return b.TransformedString(FormatDateTime)
	case rec.IsDate(s):
		return b.TransformedString(FormatDate)
	case rec.IsTime(s):
		return b.TransformedString(FormatTime)
	case rec.IsURI(s):
		return b.TransformedString(FormatURI)
	default:
		return b.Primitive(KindString)
	}
}

func inferArray(b *Builder, items []any, rec Recognizer) (Ref, error) {
	if len(items) == 0 {
		return b.Array(b.Primitive(KindAny)), nil
	}
	var first any
	for _, it := range items {
		if it != nil {
			first = it
			break
		}
	}
	itemRef, err := inferValue(b, first, rec)
	if err != nil {
		return nil, err
	}
	return b.Array(itemRef), nil
}

func inferClass(b *Builder, obj map[string]any, rec Recognizer) (Ref, error) {
	props := make([]Property, 0, len(obj))
	for _, name := range orderedKeys(obj) {
		typeRef, err := inferValue(b, obj[name], rec)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: name, Type: typeRef})
	}
	return b.Class(props), nil
}

// orderedKeys sorts map keys so repeated Infer calls over the same
// document are deterministic (plain map iteration is not).
func orderedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	insertionSort(keys)
	return keys
}

func insertionSort(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func isIntegerLiteral(lit string) bool {
	return !strings.ContainsAny(lit, ".eE")
}
