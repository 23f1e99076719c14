package gofirds

import "github.com/gofirds/gofirds/xmltree"

// DecodeFunc turns one buffered element subtree into a record.
type DecodeFunc func(el *xmltree.Element, ns xmltree.NSMap) (Record, error)

// DispatchTable maps the bare local names the streaming driver matches to the
// decoder each one gets. Tables are plain maps so callers can add or remove
// entries, for instance to skip record roles they do not care about.
type DispatchTable map[string]DecodeFunc

func kindDecoder(kind RecordKind) DecodeFunc {
	return func(el *xmltree.Element, ns xmltree.NSMap) (Record, error) {
		ref, err := DecodeReferenceData(el, ns)
		if err != nil {
			return Record{}, err
		}
		return Record{Kind: kind, ReferenceData: ref}, nil
	}
}

// FullTable returns the dispatch table for full-file snapshots, which carry
// every instrument under a single record tag.
func FullTable() DispatchTable {
	return DispatchTable{
		string(KindReference): kindDecoder(KindReference),
	}
}

// DeltaTable returns the dispatch table for delta files, which split records
// across four role tags. All roles share the snapshot record shape.
func DeltaTable() DispatchTable {
	return DispatchTable{
		string(KindNew):        kindDecoder(KindNew),
		string(KindModified):   kindDecoder(KindModified),
		string(KindTerminated): kindDecoder(KindTerminated),
		string(KindCancelled):  kindDecoder(KindCancelled),
	}
}
