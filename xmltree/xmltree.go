// Package xmltree holds the lightweight element tree that structural decoders
// walk. A tree is only ever built for one matched subtree at a time; the
// streaming driver discards it as soon as the record has been produced, which
// is what keeps memory bounded for multi-gigabyte inputs.
//
// Path expressions are slash-separated child steps ("MntryVal/Amt"). A step
// matches on local name regardless of namespace unless it carries a prefix
// ("document:Id"), in which case the prefix is resolved through the NSMap and
// the namespace URI must match too. "*" matches any child. This mirrors how
// the upstream files are actually queried: the two providers version their
// namespace URIs independently, so unprefixed steps stay tolerant while
// prefixed steps pin a schema version.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// Element is one XML element: name, namespace, attributes, accumulated
// character data and child elements in document order.
type Element struct {
	Local    string // local (namespace-stripped) tag name
	Space    string // namespace URI, "" when the element is unqualified
	Attrs    []xml.Attr
	Children []*Element

	text strings.Builder
}

// Text returns the element's character data with surrounding whitespace
// trimmed.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.text.String())
}

// Attr returns the value of the named attribute (matched on local name) and
// whether it was present.
func (e *Element) Attr(local string) (string, bool) {
	if e == nil {
		return "", false
	}
	for _, a := range e.Attrs {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// Find returns the first element at the given path below e, or nil when the
// path does not resolve. A nil receiver resolves nothing, so lookups chain
// safely over absent branches.
func (e *Element) Find(path string, ns NSMap) *Element {
	matches := e.find(path, ns, true)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// FindAll returns every element at the given path below e, in document order.
func (e *Element) FindAll(path string, ns NSMap) []*Element {
	return e.find(path, ns, false)
}

func (e *Element) find(path string, ns NSMap, first bool) []*Element {
	if e == nil || path == "" {
		return nil
	}
	steps := strings.Split(path, "/")
	frontier := []*Element{e}
	for _, step := range steps {
		prefix, local := splitStep(step)
		var uri string
		if prefix != "" {
			uri = ns[prefix]
		}
		var next []*Element
		for _, el := range frontier {
			for _, c := range el.Children {
				if !stepMatches(c, local, uri) {
					continue
				}
				next = append(next, c)
			}
		}
		frontier = next
		if len(frontier) == 0 {
			return nil
		}
	}
	if first && len(frontier) > 1 {
		frontier = frontier[:1]
	}
	return frontier
}

func splitStep(step string) (prefix, local string) {
	if i := strings.IndexByte(step, ':'); i >= 0 {
		return step[:i], step[i+1:]
	}
	return "", step
}

func stepMatches(e *Element, local, uri string) bool {
	if local != "*" && e.Local != local {
		return false
	}
	if uri != "" && e.Space != uri {
		return false
	}
	return true
}

// FromDecoder buffers the subtree rooted at start by consuming tokens from d
// until the matching end element. The decoder is left positioned immediately
// after the subtree, so a streaming scan can resume where it left off.
func FromDecoder(d *xml.Decoder, start xml.StartElement) (*Element, error) {
	root := &Element{Local: start.Name.Local, Space: start.Name.Space, Attrs: start.Attr}
	stack := []*Element{root}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, fmt.Errorf("xmltree: subtree for <%s> truncated: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Local: t.Name.Local, Space: t.Name.Space, Attrs: copyAttrs(t.Attr)}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, el)
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return root, nil
			}
		case xml.CharData:
			stack[len(stack)-1].text.Write(t)
		}
	}
}

// copyAttrs detaches attribute values from the decoder's internal buffer.
func copyAttrs(attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, len(attrs))
	copy(out, attrs)
	return out
}
