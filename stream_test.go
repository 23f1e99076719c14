package gofirds_test

import (
	"runtime"
	"strings"
	"testing"

	"github.com/gofirds/gofirds"
)

const fullFileHeader = `<?xml version="1.0" encoding="UTF-8"?>
<BizData xmlns="urn:iso:std:iso:20022:tech:xsd:head.003.001.01">
  <Pyld>
    <Document xmlns="urn:iso:std:iso:20022:tech:xsd:auth.017.001.02">
      <FinInstrmRptgRefDataRpt>`

const fullFileFooter = `      </FinInstrmRptgRefDataRpt>
    </Document>
  </Pyld>
</BizData>`

func refDataRecord(isin, venue, fullName, ccy string) string {
	return `<RefData>
		<FinInstrmGnlAttrbts>
			<Id>` + isin + `</Id>
			<FullNm>` + fullName + `</FullNm>
			<ShrtNm>TEST/INSTR</ShrtNm>
			<ClssfctnTp>DBFTFB</ClssfctnTp>
			<NtnlCcy>` + ccy + `</NtnlCcy>
			<CmmdtyDerivInd>false</CmmdtyDerivInd>
		</FinInstrmGnlAttrbts>
		<Issr>HWUPKR0MPOU8FGXBT394</Issr>
		<TradgVnRltdAttrbts>
			<Id>` + venue + `</Id>
			<IssrReq>true</IssrReq>
			<FrstTradDt>2024-01-02T08:00:00Z</FrstTradDt>
		</TradgVnRltdAttrbts>
		<TechAttrbts>
			<RlvntCmptntAuthrty>SE</RlvntCmptntAuthrty>
			<PblctnPrd><FrDt>2024-01-02</FrDt></PblctnPrd>
			<RlvntTradgVn>` + venue + `</RlvntTradgVn>
		</TechAttrbts>
	</RefData>`
}

func TestIterate_SingleRecord(t *testing.T) {
	src := fullFileHeader + refDataRecord("XX0000000001", "ABCD", "Test Instrument", "EUR") + fullFileFooter

	records, counts, err := gofirds.ReadAll(strings.NewReader(src), gofirds.FullTable(), gofirds.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Kind != gofirds.KindReference {
		t.Fatalf("got kind %q", rec.Kind)
	}
	if rec.ISIN != "XX0000000001" || rec.FullName != "Test Instrument" || rec.NotionalCurrency != "EUR" {
		t.Fatalf("got %+v", rec.ReferenceData)
	}
	if rec.TradingVenueAttrs.TradingVenue != "ABCD" {
		t.Fatalf("got venue %q", rec.TradingVenueAttrs.TradingVenue)
	}
	if rec.UniqueID() != "XX0000000001ABCD" {
		t.Fatalf("got unique id %q", rec.UniqueID())
	}
	if len(counts) != 1 || counts["RefData"] != 1 {
		t.Fatalf("got counts %v", counts)
	}
}

func TestIterate_CountsEveryMatchedTag(t *testing.T) {
	src := fullFileHeader +
		refDataRecord("XX0000000001", "ABCD", "One", "EUR") +
		refDataRecord("XX0000000019", "EFGH", "Two", "USD") +
		refDataRecord("XX0000000027", "ABCD", "Three", "GBP") +
		fullFileFooter

	records, counts, err := gofirds.ReadAll(strings.NewReader(src), gofirds.FullTable(), gofirds.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 || counts["RefData"] != 3 {
		t.Fatalf("got %d records, counts %v", len(records), counts)
	}
}

// The first bad record stops the scan; records before it are still yielded
// and the tag count includes the failed record.
func TestIterate_FailFast(t *testing.T) {
	bad := strings.Replace(
		refDataRecord("XX0000000019", "EFGH", "Bad", "USD"),
		"<IssrReq>true</IssrReq>", "<IssrReq>not-a-bool</IssrReq>", 1)
	src := fullFileHeader +
		refDataRecord("XX0000000001", "ABCD", "Good", "EUR") +
		bad +
		refDataRecord("XX0000000027", "IJKL", "Never reached", "GBP") +
		fullFileFooter

	it := gofirds.Iterate(strings.NewReader(src), gofirds.FullTable(), gofirds.Options{})
	var got []gofirds.Record
	for it.Next() {
		got = append(got, it.Record())
	}
	if len(got) != 1 || got[0].ISIN != "XX0000000001" {
		t.Fatalf("got %d records before failure", len(got))
	}
	err := it.Err()
	if err == nil {
		t.Fatalf("expected scan error")
	}
	iss, ok := gofirds.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Path != "/RefData/TradgVnRltdAttrbts/IssrReq" {
		t.Fatalf("got path %q", iss[0].Path)
	}
	if it.Counts()["RefData"] != 2 {
		t.Fatalf("counts must include the failed record, got %v", it.Counts())
	}
}

func TestIterate_MalformedXML(t *testing.T) {
	src := fullFileHeader + `<RefData><FinInstrmGnlAttrbts>` // truncated
	_, _, err := gofirds.ReadAll(strings.NewReader(src), gofirds.FullTable(), gofirds.Options{})
	iss, ok := gofirds.AsIssues(err)
	if !ok || iss[0].Code != gofirds.CodeXMLSyntax {
		t.Fatalf("expected xml_syntax issue, got %v", err)
	}
}

func TestIterate_DeltaRoles(t *testing.T) {
	wrap := func(tag, isin, venue string) string {
		inner := refDataRecord(isin, venue, "Delta", "EUR")
		inner = strings.TrimPrefix(inner, "<RefData>")
		inner = strings.TrimSuffix(inner, "</RefData>")
		return "<" + tag + ">" + inner + "</" + tag + ">"
	}
	src := `<?xml version="1.0" encoding="UTF-8"?>
<BizData xmlns="urn:iso:std:iso:20022:tech:xsd:head.003.001.01">
  <Pyld>
    <Document xmlns="urn:iso:std:iso:20022:tech:xsd:auth.036.001.02">
      <FinInstrmRptgRefDataDltaRpt>` +
		wrap("NewRcrd", "XX0000000001", "ABCD") +
		wrap("ModfdRcrd", "XX0000000019", "ABCD") +
		wrap("TermntdRcrd", "XX0000000027", "EFGH") +
		wrap("CancRcrd", "XX0000000035", "EFGH") +
		`</FinInstrmRptgRefDataDltaRpt>
    </Document>
  </Pyld>
</BizData>`

	records, counts, err := gofirds.ReadAll(strings.NewReader(src), gofirds.DeltaTable(),
		gofirds.Options{NSMap: gofirds.DefaultDeltaNSMap})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("got %d records", len(records))
	}
	wantKinds := []gofirds.RecordKind{gofirds.KindNew, gofirds.KindModified, gofirds.KindTerminated, gofirds.KindCancelled}
	for i, k := range wantKinds {
		if records[i].Kind != k {
			t.Fatalf("record %d: got kind %q, want %q", i, records[i].Kind, k)
		}
	}
	for _, tag := range []string{"NewRcrd", "ModfdRcrd", "TermntdRcrd", "CancRcrd"} {
		if counts[tag] != 1 {
			t.Fatalf("got counts %v", counts)
		}
	}
}

// A full table scanning a delta file matches nothing: the roles carry
// different tags.
func TestIterate_TableMismatchYieldsNothing(t *testing.T) {
	src := fullFileHeader + refDataRecord("XX0000000001", "ABCD", "Test", "EUR") + fullFileFooter
	records, counts, err := gofirds.ReadAll(strings.NewReader(src), gofirds.DeltaTable(), gofirds.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 || len(counts) != 0 {
		t.Fatalf("got %d records, counts %v", len(records), counts)
	}
}

// The driver buffers one subtree at a time, so per-record allocation must
// stay flat as the file grows: a hundredfold larger input may not allocate
// meaningfully more per record than a small one.
func TestIterate_BoundedMemory(t *testing.T) {
	buildDoc := func(n int) string {
		var b strings.Builder
		b.WriteString(fullFileHeader)
		for i := 0; i < n; i++ {
			b.WriteString(refDataRecord("XX0000000001", "ABCD", "Bulk Instrument", "EUR"))
		}
		b.WriteString(fullFileFooter)
		return b.String()
	}
	bytesPerRecord := func(doc string, n int) float64 {
		it := gofirds.Iterate(strings.NewReader(doc), gofirds.FullTable(), gofirds.Options{})
		runtime.GC()
		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		got := 0
		for it.Next() {
			got++
		}
		runtime.ReadMemStats(&after)
		if err := it.Err(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != n {
			t.Fatalf("got %d records, want %d", got, n)
		}
		return float64(after.TotalAlloc-before.TotalAlloc) / float64(n)
	}

	small := bytesPerRecord(buildDoc(100), 100)
	large := bytesPerRecord(buildDoc(10000), 10000)
	if large > small*2 {
		t.Fatalf("per-record allocation grew with file size: %.0f B/record at 100 records, %.0f B/record at 10000", small, large)
	}
}

func TestIterate_ValidateInterestRate(t *testing.T) {
	debt := `<DebtInstrmAttrbts>
		<TtlIssdNmnlAmt Ccy="EUR">1000000</TtlIssdNmnlAmt>
		<NmnlValPerUnit>1000</NmnlValPerUnit>
		<IntrstRate></IntrstRate>
	</DebtInstrmAttrbts>`
	rec := strings.Replace(
		refDataRecord("XX0000000001", "ABCD", "Empty rate", "EUR"),
		"</RefData>", debt+"</RefData>", 1)
	src := fullFileHeader + rec + fullFileFooter

	// Permissive by default.
	records, _, err := gofirds.ReadAll(strings.NewReader(src), gofirds.FullTable(), gofirds.Options{})
	if err != nil {
		t.Fatalf("unexpected error without validation: %v", err)
	}
	if records[0].DebtAttributes == nil {
		t.Fatalf("expected debt attributes")
	}

	// Strict when asked.
	_, _, err = gofirds.ReadAll(strings.NewReader(src), gofirds.FullTable(),
		gofirds.Options{ValidateInterestRate: true})
	iss, ok := gofirds.AsIssues(err)
	if !ok || iss[0].Code != gofirds.CodeAmbiguousShape {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
