package gofirds

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofirds/gofirds/xmltree"
)

// Scalar decoders. Each takes the element that carries the text (nil when the
// element was absent) and the path to report on failure. The strict variants
// fail on absence unless told absence is acceptable; textOrEmpty never fails.

// dateTimeLayouts covers the precision and offset forms observed across the
// two upstream source systems.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02",
}

func parseBool(el *xmltree.Element, path string, optional bool) (*bool, error) {
	if el == nil {
		if optional {
			return nil, nil
		}
		return nil, issuef(path, CodeRequired, "mandatory boolean element absent")
	}
	v := true
	switch strings.ToLower(el.Text()) {
	case "true":
	case "false":
		v = false
	default:
		return nil, issuef(path, CodeInvalidBool, "cannot convert %q to boolean", el.Text())
	}
	return &v, nil
}

func parseDateTime(el *xmltree.Element, path string, optional bool) (*time.Time, error) {
	if el == nil {
		if optional {
			return nil, nil
		}
		return nil, issuef(path, CodeRequired, "mandatory timestamp element absent")
	}
	text := el.Text()
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return &t, nil
		}
	}
	return nil, issuef(path, CodeInvalidTime, "cannot parse %q as a timestamp", text)
}

func parseDate(el *xmltree.Element, path string, optional bool) (*time.Time, error) {
	if el == nil {
		if optional {
			return nil, nil
		}
		return nil, issuef(path, CodeRequired, "mandatory date element absent")
	}
	// One of the source systems appends a literal "Z" to date-only fields.
	// It is a format inconsistency rather than a timezone, so strip it.
	text := strings.TrimSuffix(el.Text(), "Z")
	t, err := time.Parse("2006-01-02", text)
	if err != nil {
		return nil, issuef(path, CodeInvalidDate, "cannot parse %q as a date", text)
	}
	return &t, nil
}

// textOrEmpty returns the element's text, or "" when the element is absent.
// Absence is never an error here; only the stricter decoders above fail on
// it.
func textOrEmpty(el *xmltree.Element) string { return el.Text() }

// parseFloat returns the element's text as a float, or nil when the element
// is absent.
func parseFloat(el *xmltree.Element, path string) (*float64, error) {
	if el == nil {
		return nil, nil
	}
	f, err := strconv.ParseFloat(el.Text(), 64)
	if err != nil {
		return nil, issuef(path, CodeInvalidNumber, "cannot parse %q as a number", el.Text())
	}
	return &f, nil
}

// parseInt returns the element's text as an int, or nil when the element is
// absent.
func parseInt(el *xmltree.Element, path string) (*int, error) {
	if el == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(el.Text())
	if err != nil {
		return nil, issuef(path, CodeInvalidNumber, "cannot parse %q as an integer", el.Text())
	}
	return &n, nil
}

func requireText(el *xmltree.Element, path string) (string, error) {
	if el == nil {
		return "", issuef(path, CodeRequired, "mandatory element absent")
	}
	return el.Text(), nil
}

func requireFloat(el *xmltree.Element, path string) (float64, error) {
	if el == nil {
		return 0, issuef(path, CodeRequired, "mandatory numeric element absent")
	}
	f, err := strconv.ParseFloat(el.Text(), 64)
	if err != nil {
		return 0, issuef(path, CodeInvalidNumber, "cannot parse %q as a number", el.Text())
	}
	return f, nil
}

// enumCode resolves the element's text against a controlled vocabulary.
// Unrecognized codes are strict failures; absence is acceptable only when
// optional. The zero code is returned for an acceptable absence.
func enumCode[T ~string](el *xmltree.Element, path string, table map[T]string, optional bool) (T, error) {
	var zero T
	if el == nil {
		if optional {
			return zero, nil
		}
		return zero, issuef(path, CodeRequired, "mandatory enumerated element absent")
	}
	code := T(el.Text())
	if _, ok := table[code]; !ok {
		return zero, issuef(path, CodeInvalidEnum, "unrecognized code %q", el.Text())
	}
	return code, nil
}
