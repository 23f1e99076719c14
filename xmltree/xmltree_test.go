package xmltree_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/gofirds/gofirds/xmltree"
)

func parse(t *testing.T, src string) *xmltree.Element {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(src))
	for {
		tok, err := d.Token()
		if err != nil {
			t.Fatalf("no start element: %v", err)
		}
		if start, ok := tok.(xml.StartElement); ok {
			el, err := xmltree.FromDecoder(d, start)
			if err != nil {
				t.Fatalf("buffer subtree: %v", err)
			}
			return el
		}
	}
}

func TestFind_Paths(t *testing.T) {
	root := parse(t, `<a><b><c>one</c></b><b><c>two</c></b><d attr="v">text</d></a>`)

	if got := root.Find("b/c", nil).Text(); got != "one" {
		t.Fatalf("got %q", got)
	}
	if all := root.FindAll("b/c", nil); len(all) != 2 || all[1].Text() != "two" {
		t.Fatalf("got %d matches", len(all))
	}
	if root.Find("b/x", nil) != nil {
		t.Fatalf("expected nil for unresolvable path")
	}
	if v, ok := root.Find("d", nil).Attr("attr"); !ok || v != "v" {
		t.Fatalf("got attr %q, %v", v, ok)
	}
	if _, ok := root.Find("d", nil).Attr("missing"); ok {
		t.Fatalf("expected missing attribute")
	}
}

func TestFind_Wildcard(t *testing.T) {
	root := parse(t, `<p><x><deep>1</deep></x><y><deep>2</deep></y></p>`)
	if all := root.FindAll("*/deep", nil); len(all) != 2 {
		t.Fatalf("got %d matches", len(all))
	}
	if got := root.Find("*/deep", nil).Text(); got != "1" {
		t.Fatalf("wildcard must keep document order, got %q", got)
	}
}

// Unprefixed steps ignore namespaces; prefixed steps pin the URI through the
// map.
func TestFind_Namespaces(t *testing.T) {
	root := parse(t, `<root xmlns:a="urn:one" xmlns:b="urn:two"><a:leaf>1</a:leaf><b:leaf>2</b:leaf></root>`)
	ns := xmltree.NSMap{"one": "urn:one", "two": "urn:two"}

	if all := root.FindAll("leaf", ns); len(all) != 2 {
		t.Fatalf("unprefixed step must match both, got %d", len(all))
	}
	if got := root.Find("two:leaf", ns).Text(); got != "2" {
		t.Fatalf("got %q", got)
	}
	if root.Find("one:missing", ns) != nil {
		t.Fatalf("expected nil")
	}
}

func TestFind_NilReceiverChains(t *testing.T) {
	var el *xmltree.Element
	if el.Find("a/b", nil) != nil {
		t.Fatalf("nil receiver must resolve nothing")
	}
	if el.Text() != "" {
		t.Fatalf("nil receiver text must be empty")
	}
	root := parse(t, `<a/>`)
	if root.Find("missing", nil).Find("deeper", nil).Text() != "" {
		t.Fatalf("chained lookup over absent branch must stay safe")
	}
}

// FromDecoder must leave the decoder positioned after the subtree so a scan
// can pick up the next sibling.
func TestFromDecoder_LeavesDecoderAtSibling(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<root><first><v>1</v></first><second><v>2</v></second></root>`))

	var got []string
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local == "root" {
			continue
		}
		el, err := xmltree.FromDecoder(d, start)
		if err != nil {
			t.Fatalf("buffer subtree: %v", err)
		}
		got = append(got, el.Local+"="+el.Find("v", nil).Text())
	}
	if len(got) != 2 || got[0] != "first=1" || got[1] != "second=2" {
		t.Fatalf("got %v", got)
	}
}

func TestFromDecoder_Truncated(t *testing.T) {
	d := xml.NewDecoder(strings.NewReader(`<a><b>`))
	tok, _ := d.Token()
	start := tok.(xml.StartElement)
	if _, err := xmltree.FromDecoder(d, start); err == nil {
		t.Fatalf("expected error for truncated subtree")
	}
}

func TestParseNSMap(t *testing.T) {
	m, err := xmltree.ParseNSMap([]byte("document: urn:iso:std:iso:20022:tech:xsd:auth.017.001.02\nbiz_data: urn:iso:std:iso:20022:tech:xsd:head.003.001.01\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["document"] != "urn:iso:std:iso:20022:tech:xsd:auth.017.001.02" {
		t.Fatalf("got %v", m)
	}

	merged := m.Merge(xmltree.NSMap{"document": "urn:other"})
	if merged["document"] != "urn:other" || merged["biz_data"] != m["biz_data"] {
		t.Fatalf("got %v", merged)
	}
	if m["document"] == "urn:other" {
		t.Fatalf("merge must not mutate the receiver")
	}
}
