package jsonxsd

import (
	"strconv"

	"github.com/brettsor/jsonxsd/format"
)

// coercer applies the primitive coercion tables. Both
// directions are total functions that report failure via the second
// return value rather than panicking; callers turn a false into a
// malformedInput error at the point of use.
type coercer struct {
	rec format.Recognizer
}

func newCoercer(rec format.Recognizer) *coercer {
	return &coercer{rec: rec}
}

// toXMLText converts a JSON-decoded value to its string text content
// for the given primitive kind.
func (c *coercer) toXMLText(kind PrimitiveKind, v any) (string, bool) {
	switch kind {
	case PKInteger, PKDouble:
		f, ok := asNumber(v)
		if !ok {
			return "", false
		}
		return formatNumber(f), true

	case PKIntegerString:
		f, ok := asNumber(v)
		if !ok {
			return "", false
		}
		return formatNumber(f), true

	case PKBool:
		b, ok := asBool(v)
		if !ok {
			return "", false
		}
		if b {
			return "true", true
		}
		return "false", true

	case PKBoolString:
		b, ok := asBool(v)
		if !ok {
			return "", false
		}
		if b {
			return "true", true
		}
		return "false", true

	case PKDate:
		s, ok := v.(string)
		if !ok || !c.rec.IsDate(s) {
			return "", false
		}
		return s, true

	case PKTime:
		s, ok := v.(string)
		if !ok || !c.rec.IsTime(s) {
			return "", false
		}
		return s, true

	case PKURI:
		s, ok := v.(string)
		if !ok || !c.rec.IsURI(s) {
			return "", false
		}
		return s, true

	case PKNull:
		if v == nil {
			return "", true
		}
		return "", false

	case PKString:
		s, ok := v.(string)
		if !ok {
			return "", false
		}
		return s, true

	default:
		return "", false
	}
}

// toJSONValue converts an XML text value to its JSON representation
// for the given primitive kind.
func (c *coercer) toJSONValue(kind PrimitiveKind, text string, isEmptyObject bool) (any, bool) {
	switch kind {
	case PKInteger, PKDouble:
		f, ok := parseNumber(text)
		if !ok {
			return nil, false
		}
		return f, true

	case PKIntegerString:
		if _, ok := parseNumber(text); !ok {
			return nil, false
		}
		return text, true

	case PKBool:
		b, ok := parseBool(text)
		if !ok {
			return nil, false
		}
		return b, true

	case PKBoolString:
		if _, ok := parseBool(text); !ok {
			return nil, false
		}
		return text, true

	case PKDate:
		if !c.rec.IsDate(text) {
			return nil, false
		}
		return text, true

	case PKTime:
		if !c.rec.IsTime(text) {
			return nil, false
		}
		return text, true

	case PKURI:
		if !c.rec.IsURI(text) {
			return nil, false
		}
		return text, true

	case PKNull:
		if text == "" || isEmptyObject {
			return nil, true
		}
		return nil, false

	case PKString:
		if isEmptyObject {
			return "", true
		}
		return text, true

	default:
		return nil, false
	}
}

// anyToXMLText implements the "any" row: always succeeds with empty
// text regardless of value.
func anyToXMLText() string { return "" }

// anyToJSONValue implements the "any" row for XML→JSON: passes the
// raw value through unchanged.
func anyToJSONValue(v any) any { return v }

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		return parseNumber(t)
	default:
		return 0, false
	}
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		return parseBool(t)
	default:
		return false, false
	}
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}
