// Package gofirds decodes financial instrument reference data files published
// by the European and UK registers into typed records.
//
// The register files are ISO 20022 business messages that routinely run to
// multiple gigabytes uncompressed, so the package never materializes a whole
// document. Iterate walks the token stream, buffers one record subtree at a
// time, decodes it through a dispatch table and discards it. Memory use is
// bounded by the largest single record regardless of file size.
//
// Full-file snapshots carry every instrument under one tag; delta files split
// changes across four role tags that all share the snapshot record shape.
// FullTable and DeltaTable provide the matching dispatch tables.
//
// Decode failures are reported as Issues, a slice of path-addressed Issue
// values; extract them from any returned error with AsIssues. A scan is
// fail-fast: the first bad record stops the Iterator so a partial read cannot
// pass for a complete one.
//
// The download subpackage finds and fetches register files, and the db
// subpackage persists decoded records.
package gofirds
