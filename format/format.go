// Package format implements the StringFormatRecognizer capability the
// core XSD engine consumes as an external collaborator. The reference
// implementation here is the concrete default the CLI wires in; it is
// parameterized by a locale so the core engine itself stays
// locale-agnostic.
package format

import (
	"regexp"
	"time"

	"golang.org/x/text/language"
)

// Recognizer answers whether a string value matches one of the
// transformed-string formats named in the type graph.
type Recognizer interface {
	IsDate(s string) bool
	IsTime(s string) bool
	IsDateTime(s string) bool
	IsURI(s string) bool
}

// Same regexes as the basic-types library (basictypes.go) uses in the
// emitted XSD patterns, so a value that validates against the schema
// this package helped produce is recognized by this package too.
var (
	dateNumericRe = regexp.MustCompile(`^(0?[1-9]|[12][0-9]|3[01])[/.](0?[1-9]|1[0-2])[/.]\d{4}$`)
	time24Re      = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):([0-5][0-9])$`)
	timeAMPMRe    = regexp.MustCompile(`^(0?[0-9]|1[01]):([0-5][0-9]) (AM|PM|a\.m\.|p\.m\.)$`)
	uriRe         = regexp.MustCompile(`^(https?|ftp)://[^{}]+\.[^{}]+$`)
)

// recognizer is locale-aware only in the order in which it tries its
// time.Parse layouts: English tries the 12-hour AM/PM time layout and
// the month-first date layout first, Russian the 24-hour time layout
// and the day-first date layout. Both locales hold the same layouts and
// always accept the literal patterns, so they accept the same values.
type recognizer struct {
	tag         language.Tag
	timeLayouts []string
	dateLayouts []string
}

// New returns a Recognizer configured for the given locale tag. Only
// "en" and "ru" are meaningfully distinguished; any other tag falls
// back to the "en" layout set.
func New(tag language.Tag) Recognizer {
	base, _ := tag.Base()
	r := &recognizer{tag: tag}
	switch base.String() {
	case "ru":
		r.timeLayouts = []string{"15:04", "3:04 PM"}
		r.dateLayouts = []string{"02.01.2006", "01/02/2006"}
	default:
		r.timeLayouts = []string{"3:04 PM", "15:04"}
		r.dateLayouts = []string{"01/02/2006", "02.01.2006"}
	}
	return r
}

// Default is the English-locale recognizer, used wherever the CLI has
// not been given an explicit --locale.
func Default() Recognizer { return New(language.English) }

func (r *recognizer) IsDate(s string) bool {
	if dateNumericRe.MatchString(s) {
		return true
	}
	for _, layout := range r.dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func (r *recognizer) IsTime(s string) bool {
	if time24Re.MatchString(s) || timeAMPMRe.MatchString(s) {
		return true
	}
	for _, layout := range r.timeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

func (r *recognizer) IsDateTime(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	if _, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
		return true
	}
	return false
}

func (r *recognizer) IsURI(s string) bool {
	return uriRe.MatchString(s)
}
