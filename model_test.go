package gofirds_test

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/gofirds/gofirds"
)

func TestUniqueID_PrefersRelevantTradingVenue(t *testing.T) {
	rec := gofirds.ReferenceData{
		ISIN:              "XX0000000001",
		TradingVenueAttrs: gofirds.TradingVenueAttributes{TradingVenue: "SEGM"},
	}
	if got := rec.UniqueID(); got != "XX0000000001SEGM" {
		t.Fatalf("got %q", got)
	}

	rec.TechnicalAttributes = &gofirds.TechnicalAttributes{RelevantTradingVenue: "OPER"}
	if got := rec.UniqueID(); got != "XX0000000001OPER" {
		t.Fatalf("technical attributes must take precedence, got %q", got)
	}

	rec.TechnicalAttributes.RelevantTradingVenue = ""
	if got := rec.UniqueID(); got != "XX0000000001SEGM" {
		t.Fatalf("empty relevant venue must fall back, got %q", got)
	}
}

func TestNewBenchmarkName(t *testing.T) {
	if n := gofirds.NewBenchmarkName("EONA"); !n.IsControlled() || n.Code != gofirds.IndexEONIA {
		t.Fatalf("got %+v", n)
	}
	if n := gofirds.NewBenchmarkName("SONIA"); n.IsControlled() || n.Text != "SONIA" {
		t.Fatalf("got %+v", n)
	}
	if gofirds.NewBenchmarkName("") != nil {
		t.Fatalf("empty text must yield nil")
	}
}

func TestBenchmarkName_StringAndRaw(t *testing.T) {
	controlled := gofirds.BenchmarkName{Code: gofirds.IndexEURIBOR}
	if controlled.Raw() != "EURO" {
		t.Fatalf("got %q", controlled.Raw())
	}
	if controlled.String() == "EURO" || controlled.String() == "" {
		t.Fatalf("controlled String must use the description, got %q", controlled.String())
	}

	free := gofirds.BenchmarkName{Text: "SONIA"}
	if free.Raw() != "SONIA" || free.String() != "SONIA" {
		t.Fatalf("got raw %q string %q", free.Raw(), free.String())
	}
}

func TestRecord_JSONShape(t *testing.T) {
	fixed := 2.5
	rec := gofirds.Record{
		Kind: gofirds.KindReference,
		ReferenceData: gofirds.ReferenceData{
			ISIN:     "XX0000000001",
			FullName: "Test Instrument",
			DebtAttributes: &gofirds.DebtAttributes{
				NominalCurrency: "EUR",
				InterestRate:    gofirds.InterestRate{FixedRate: &fixed},
			},
		},
	}
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["kind"] != "RefData" || out["isin"] != "XX0000000001" {
		t.Fatalf("got %v", out)
	}
	debt, ok := out["debt_attributes"].(map[string]any)
	if !ok || debt["nominal_currency"] != "EUR" {
		t.Fatalf("got %v", out["debt_attributes"])
	}
	if _, present := out["derivative_attributes"]; present {
		t.Fatalf("absent sub-records must be omitted")
	}
}
