package gofirds

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired       = "required"        // mandatory element or attribute absent
	CodeInvalidBool    = "invalid_bool"    // text not "true"/"false"
	CodeInvalidTime    = "invalid_time"    // text not a parseable ISO-8601 timestamp
	CodeInvalidDate    = "invalid_date"    // text not a parseable ISO-8601 date
	CodeInvalidNumber  = "invalid_number"  // text not a parseable number
	CodeInvalidEnum    = "invalid_enum"    // code not in the controlled vocabulary
	CodeAmbiguousShape = "ambiguous_shape" // neither/both of two mutually-exclusive branches present
	CodeXMLSyntax      = "xml_syntax"      // malformed XML reported by the underlying parser
)

// Issue represents a single decode failure.
type Issue struct {
	Path    string // Slash-separated element path (for example: /DebtInstrmAttrbts/IntrstRate).
	Code    string // One of the codes listed above.
	Message string
	Cause   error // Optional: underlying error.
}

// Issues is a collection of decode errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. required at /TradgVnRltdAttrbts/Id
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Unwrap exposes the cause of the first issue so errors.Is/As keep working
// through a decode failure.
func (iss Issues) Unwrap() error {
	if len(iss) == 0 {
		return nil
	}
	return iss[0].Cause
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

func issuef(path, code, format string, args ...any) Issues {
	return Issues{{Path: path, Code: code, Message: fmt.Sprintf(format, args...)}}
}

// prefixIssues rebases the paths of issues raised by a child decoder under the
// element the parent was decoding. Non-Issues errors are wrapped as-is.
func prefixIssues(prefix string, err error) error {
	if err == nil {
		return nil
	}
	iss, ok := AsIssues(err)
	if !ok {
		return Issues{{Path: prefix, Code: CodeXMLSyntax, Message: err.Error(), Cause: err}}
	}
	out := make(Issues, len(iss))
	for i, it := range iss {
		it.Path = prefix + it.Path
		out[i] = it
	}
	return out
}
