package gofirds

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/gofirds/gofirds/xmltree"
)

// Namespace maps for the two schema versions seen in the register files.
// Iterate applies DefaultFullNSMap when Options.NSMap is nil; delta callers
// pass DefaultDeltaNSMap, and either can be replaced wholesale via
// xmltree.LoadNSMap when a provider revs a schema.
var (
	DefaultFullNSMap = xmltree.NSMap{
		"biz_data": "urn:iso:std:iso:20022:tech:xsd:head.003.001.01",
		"app_hdr":  "urn:iso:std:iso:20022:tech:xsd:head.001.001.01",
		"document": "urn:iso:std:iso:20022:tech:xsd:auth.017.001.02",
	}
	DefaultDeltaNSMap = xmltree.NSMap{
		"biz_data": "urn:iso:std:iso:20022:tech:xsd:head.003.001.01",
		"app_hdr":  "urn:iso:std:iso:20022:tech:xsd:head.001.001.01",
		"document": "urn:iso:std:iso:20022:tech:xsd:auth.036.001.02",
	}
)

// Options adjusts how an Iterator walks a file.
type Options struct {
	// NSMap resolves prefixed path steps. Nil means DefaultFullNSMap.
	NSMap xmltree.NSMap

	// ValidateInterestRate rejects debt records whose interest rate resolves
	// to neither the fixed nor the floating form. The register does publish
	// such records, so this is off by default; InterestRate.Validate remains
	// available as a post-decode check either way.
	ValidateInterestRate bool
}

// Iterator is a pull-based scan over one reference-data file. Memory stays
// bounded by the largest single record subtree: the token stream is consumed
// incrementally and only the subtree currently being decoded is held.
//
//	it := gofirds.Iterate(r, gofirds.FullTable(), gofirds.Options{})
//	for it.Next() {
//		rec := it.Record()
//		...
//	}
//	if err := it.Err(); err != nil { ... }
type Iterator struct {
	dec    *xml.Decoder
	table  DispatchTable
	ns     xmltree.NSMap
	opts   Options
	rec    Record
	err    error
	done   bool
	counts map[string]int
	closer io.Closer
}

// Iterate scans records from r using the given dispatch table.
func Iterate(r io.Reader, table DispatchTable, opts Options) *Iterator {
	ns := opts.NSMap
	if ns == nil {
		ns = DefaultFullNSMap
	}
	return &Iterator{
		dec:    xml.NewDecoder(r),
		table:  table,
		ns:     ns,
		opts:   opts,
		counts: make(map[string]int),
	}
}

// IterateFile opens path and scans records from it. Close releases the file.
func IterateFile(path string, table DispatchTable, opts Options) (*Iterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	it := Iterate(f, table, opts)
	it.closer = f
	return it, nil
}

// Next advances to the next record. It returns false at end of input or on
// the first error; the scan never resumes past a failed record, so a partial
// read is never mistaken for a complete one. Check Err after the loop.
func (it *Iterator) Next() bool {
	if it.done || it.err != nil {
		return false
	}
	for {
		tok, err := it.dec.Token()
		if err == io.EOF {
			it.done = true
			return false
		}
		if err != nil {
			it.err = issuef("", CodeXMLSyntax, "malformed XML: %v", err)
			return false
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		decode, ok := it.table[start.Name.Local]
		if !ok {
			continue
		}

		it.counts[start.Name.Local]++
		el, err := xmltree.FromDecoder(it.dec, start)
		if err != nil {
			it.err = issuef("/"+start.Name.Local, CodeXMLSyntax, "%v", err)
			return false
		}
		rec, err := decode(el, it.ns)
		if err != nil {
			it.err = prefixIssues("/"+start.Name.Local, err)
			return false
		}
		if it.opts.ValidateInterestRate && rec.DebtAttributes != nil {
			if verr := rec.DebtAttributes.InterestRate.Validate(); verr != nil {
				it.err = issuef("/"+start.Name.Local+"/DebtInstrmAttrbts/IntrstRate", CodeAmbiguousShape, "%v", verr)
				return false
			}
		}
		it.rec = rec
		return true
	}
}

// Record returns the record produced by the last successful Next.
func (it *Iterator) Record() Record { return it.rec }

// Err returns the error that stopped the scan, or nil after a clean end of
// input. Decode failures carry an Issues value; see AsIssues.
func (it *Iterator) Err() error { return it.err }

// Counts returns how many times each dispatched tag was encountered,
// including a record whose decode then failed. Comparing these totals against
// provider-published counts catches silently skipped records.
func (it *Iterator) Counts() map[string]int { return it.counts }

// Close releases the underlying file when the Iterator owns one.
func (it *Iterator) Close() error {
	if it.closer == nil {
		return nil
	}
	return it.closer.Close()
}

// ReadAll collects every record from one scan. It exists for small inputs and
// tests; multi-gigabyte files should use the Iterator directly.
func ReadAll(r io.Reader, table DispatchTable, opts Options) ([]Record, map[string]int, error) {
	it := Iterate(r, table, opts)
	var out []Record
	for it.Next() {
		out = append(out, it.Record())
	}
	return out, it.Counts(), it.Err()
}
