package gofirds_test

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/gofirds/gofirds"
	"github.com/gofirds/gofirds/xmltree"
)

// element buffers the first element of src into a tree for decoder tests.
func element(t *testing.T, src string) *xmltree.Element {
	t.Helper()
	d := xml.NewDecoder(strings.NewReader(src))
	for {
		tok, err := d.Token()
		if err != nil {
			t.Fatalf("no start element in %q: %v", src, err)
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

func dateOf(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDecodeIndexTerm(t *testing.T) {
	el := element(t, `<Term><Val>3</Val><Unit>MNTH</Unit></Term>`)
	term, err := gofirds.DecodeIndexTerm(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if term.Number != 3 || term.Unit != gofirds.TermMonth {
		t.Fatalf("got %+v", term)
	}
}

func TestDecodeIndexTerm_BadUnit(t *testing.T) {
	el := element(t, `<Term><Val>3</Val><Unit>FORTNIGHT</Unit></Term>`)
	_, err := gofirds.DecodeIndexTerm(el, nil)
	iss, ok := gofirds.AsIssues(err)
	if !ok || iss[0].Code != gofirds.CodeInvalidEnum {
		t.Fatalf("expected invalid_enum issue, got %v", err)
	}
}

func TestDecodeIndex_ControlledCode(t *testing.T) {
	el := element(t, `<Fltg>
		<RefRate><Indx>EURO</Indx></RefRate>
		<Term><Val>6</Val><Unit>MNTH</Unit></Term>
	</Fltg>`)
	idx, err := gofirds.DecodeIndex(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name == nil || !idx.Name.IsControlled() || idx.Name.Code != gofirds.IndexEURIBOR {
		t.Fatalf("expected controlled EURIBOR name, got %+v", idx.Name)
	}
	if idx.Term == nil || idx.Term.Number != 6 || idx.Term.Unit != gofirds.TermMonth {
		t.Fatalf("got term %+v", idx.Term)
	}
}

// A benchmark name outside the controlled vocabulary is carried verbatim, not
// rejected.
func TestDecodeIndex_FreeTextCode(t *testing.T) {
	el := element(t, `<Fltg><RefRate><Indx>SONIA</Indx></RefRate></Fltg>`)
	idx, err := gofirds.DecodeIndex(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name == nil || idx.Name.IsControlled() || idx.Name.Text != "SONIA" {
		t.Fatalf("expected free-text name SONIA, got %+v", idx.Name)
	}
}

func TestDecodeIndex_NameElement(t *testing.T) {
	el := element(t, `<Fltg><RefRate><Nm>Custom Benchmark</Nm><ISIN>GB00BH4HKS39</ISIN></RefRate></Fltg>`)
	idx, err := gofirds.DecodeIndex(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name == nil || idx.Name.Text != "Custom Benchmark" {
		t.Fatalf("got name %+v", idx.Name)
	}
	if idx.ISIN != "GB00BH4HKS39" {
		t.Fatalf("got isin %q", idx.ISIN)
	}
}

func TestDecodeInterestRate_Fixed(t *testing.T) {
	el := element(t, `<IntrstRate><Fxd>2.375</Fxd></IntrstRate>`)
	rate, err := gofirds.DecodeInterestRate(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.IsFixed() || *rate.FixedRate != 2.375 {
		t.Fatalf("got %+v", rate)
	}
	if rate.IsFloating() {
		t.Fatalf("expected no floating leg")
	}
	if err := rate.Validate(); err != nil {
		t.Fatalf("fixed rate should validate: %v", err)
	}
}

func TestDecodeInterestRate_Floating(t *testing.T) {
	el := element(t, `<IntrstRate><Fltg>
		<RefRate><Indx>LIBO</Indx></RefRate>
		<Term><Val>3</Val><Unit>MNTH</Unit></Term>
		<BsisPtSprd>25</BsisPtSprd>
	</Fltg></IntrstRate>`)
	rate, err := gofirds.DecodeInterestRate(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rate.IsFloating() || rate.Benchmark.Name.Code != gofirds.IndexLIBOR {
		t.Fatalf("got %+v", rate)
	}
	if rate.Spread == nil || *rate.Spread != 25 {
		t.Fatalf("got spread %v", rate.Spread)
	}
	if err := rate.Validate(); err != nil {
		t.Fatalf("floating rate with spread should validate: %v", err)
	}
}

func TestDecodeInterestRate_NeitherFormFailsValidate(t *testing.T) {
	el := element(t, `<IntrstRate></IntrstRate>`)
	rate, err := gofirds.DecodeInterestRate(el, nil)
	if err != nil {
		t.Fatalf("decode itself must not fail: %v", err)
	}
	if err := rate.Validate(); err == nil {
		t.Fatalf("expected validation failure for empty rate")
	}
}

func TestDecodeStrikePrice_Branches(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want gofirds.StrikePriceType
	}{
		{"monetary", `<StrkPric><Pric><MntryVal><Amt Ccy="EUR">101.5</Amt><Ccy>EUR</Ccy></MntryVal></Pric></StrkPric>`, gofirds.StrikeMonetaryValue},
		{"percentage", `<StrkPric><Pric><Pctg>98.25</Pctg></Pric></StrkPric>`, gofirds.StrikePercentage},
		{"yield", `<StrkPric><Pric><Yld>1.75</Yld></Pric></StrkPric>`, gofirds.StrikeYield},
		{"basis points", `<StrkPric><Pric><BsisPts>150</BsisPts></Pric></StrkPric>`, gofirds.StrikeBasisPoints},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sp, err := gofirds.DecodeStrikePrice(element(t, tc.src), nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sp.Type != tc.want {
				t.Fatalf("got type %q, want %q", sp.Type, tc.want)
			}
			if sp.Price == nil {
				t.Fatalf("expected a price value")
			}
			if sp.Pending {
				t.Fatalf("priced strike must not be pending")
			}
		})
	}
}

func TestDecodeStrikePrice_PendingNoPrice(t *testing.T) {
	sp, err := gofirds.DecodeStrikePrice(element(t,
		`<StrkPric><NoPric><Pdg>PNDG</Pdg><Ccy>USD</Ccy></NoPric></StrkPric>`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp.Type != gofirds.StrikeNoPrice || !sp.Pending || sp.Currency != "USD" {
		t.Fatalf("got %+v", sp)
	}
	if sp.Price != nil {
		t.Fatalf("no-price strike must carry no price")
	}
}

func TestDecodeStrikePrice_MissingBothBranches(t *testing.T) {
	_, err := gofirds.DecodeStrikePrice(element(t, `<StrkPric></StrkPric>`), nil)
	iss, ok := gofirds.AsIssues(err)
	if !ok || iss[0].Code != gofirds.CodeAmbiguousShape {
		t.Fatalf("expected ambiguous_shape issue, got %v", err)
	}
}

func TestDecodeUnderlying_SingleWithSplitIndex(t *testing.T) {
	// The ISIN lives directly under Indx while the name and term live under
	// Indx/Nm; both must land on the one Index.
	el := element(t, `<UndrlygInstrm><Sngl><Indx>
		<ISIN>EU000A2X2A25</ISIN>
		<Nm>
			<RefRate><Indx>ESTR</Indx></RefRate>
			<Term><Val>1</Val><Unit>YEAR</Unit></Term>
		</Nm>
	</Indx></Sngl></UndrlygInstrm>`)
	u, err := gofirds.DecodeUnderlying(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Single == nil || u.Basket != nil {
		t.Fatalf("expected single variant, got %+v", u)
	}
	idx := u.Single.Index
	if idx == nil || idx.ISIN != "EU000A2X2A25" {
		t.Fatalf("got index %+v", idx)
	}
	if idx.Name == nil || idx.Name.Text != "ESTR" {
		t.Fatalf("got name %+v", idx.Name)
	}
	if idx.Term == nil || idx.Term.Number != 1 || idx.Term.Unit != gofirds.TermYear {
		t.Fatalf("got term %+v", idx.Term)
	}
}

func TestDecodeUnderlying_SingleBareISINIndex(t *testing.T) {
	el := element(t, `<UndrlygInstrm><Sngl><Indx><ISIN>EU000A2X2A25</ISIN></Indx></Sngl></UndrlygInstrm>`)
	u, err := gofirds.DecodeUnderlying(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	idx := u.Single.Index
	if idx == nil || idx.ISIN != "EU000A2X2A25" || idx.Name != nil || idx.Term != nil {
		t.Fatalf("expected bare-ISIN index, got %+v", idx)
	}
}

func TestDecodeUnderlying_Basket(t *testing.T) {
	el := element(t, `<UndrlygInstrm><Bskt>
		<ISIN>US0378331005</ISIN>
		<ISIN>US5949181045</ISIN>
		<LEI>HWUPKR0MPOU8FGXBT394</LEI>
	</Bskt></UndrlygInstrm>`)
	u, err := gofirds.DecodeUnderlying(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Basket == nil || u.Single != nil {
		t.Fatalf("expected basket variant, got %+v", u)
	}
	if len(u.Basket.ISINs) != 2 || u.Basket.ISINs[1] != "US5949181045" {
		t.Fatalf("got isins %v", u.Basket.ISINs)
	}
	if len(u.Basket.IssuerLEIs) != 1 {
		t.Fatalf("got leis %v", u.Basket.IssuerLEIs)
	}
}

func TestDecodeUnderlying_MissingBothBranches(t *testing.T) {
	_, err := gofirds.DecodeUnderlying(element(t, `<UndrlygInstrm></UndrlygInstrm>`), nil)
	iss, ok := gofirds.AsIssues(err)
	if !ok || iss[0].Code != gofirds.CodeAmbiguousShape {
		t.Fatalf("expected ambiguous_shape issue, got %v", err)
	}
}

func TestDecodePublicationPeriod(t *testing.T) {
	ranged, err := gofirds.DecodePublicationPeriod(element(t,
		`<PblctnPrd><FrDtToDt><FrDt>2024-01-02</FrDt><ToDt>2024-06-30</ToDt></FrDtToDt></PblctnPrd>`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ranged.FromDate.Equal(dateOf(2024, time.January, 2)) {
		t.Fatalf("got from %v", ranged.FromDate)
	}
	if ranged.ToDate == nil || !ranged.ToDate.Equal(dateOf(2024, time.June, 30)) {
		t.Fatalf("got to %v", ranged.ToDate)
	}

	open, err := gofirds.DecodePublicationPeriod(element(t,
		`<PblctnPrd><FrDt>2024-01-02</FrDt></PblctnPrd>`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if open.ToDate != nil {
		t.Fatalf("open-ended period must have nil ToDate")
	}
}

// Some files append a literal Z to date-only fields; it is stripped rather
// than rejected.
func TestDecodePublicationPeriod_DateWithZSuffix(t *testing.T) {
	p, err := gofirds.DecodePublicationPeriod(element(t,
		`<PblctnPrd><FrDt>2024-01-02Z</FrDt></PblctnPrd>`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.FromDate.Equal(dateOf(2024, time.January, 2)) {
		t.Fatalf("got %v", p.FromDate)
	}
}

// The nominal currency rides on the Ccy attribute of the issued-amount
// element, not in a sibling element.
func TestDecodeDebtAttributes_CurrencyFromAttribute(t *testing.T) {
	el := element(t, `<DebtInstrmAttrbts>
		<TtlIssdNmnlAmt Ccy="SEK">500000000</TtlIssdNmnlAmt>
		<MtrtyDt>2030-09-15</MtrtyDt>
		<NmnlValPerUnit>1000</NmnlValPerUnit>
		<IntrstRate><Fxd>1.25</Fxd></IntrstRate>
		<DebtSnrty>SNDB</DebtSnrty>
	</DebtInstrmAttrbts>`)
	debt, err := gofirds.DecodeDebtAttributes(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if debt.NominalCurrency != "SEK" {
		t.Fatalf("got currency %q", debt.NominalCurrency)
	}
	if debt.TotalIssuedAmount != 500000000 || debt.NominalValuePerUnit != 1000 {
		t.Fatalf("got %+v", debt)
	}
	if debt.Seniority != gofirds.SenioritySenior {
		t.Fatalf("got seniority %q", debt.Seniority)
	}
}

func TestDecodeDebtAttributes_MissingCurrencyAttribute(t *testing.T) {
	el := element(t, `<DebtInstrmAttrbts>
		<TtlIssdNmnlAmt>500000000</TtlIssdNmnlAmt>
		<NmnlValPerUnit>1000</NmnlValPerUnit>
		<IntrstRate><Fxd>1.25</Fxd></IntrstRate>
	</DebtInstrmAttrbts>`)
	_, err := gofirds.DecodeDebtAttributes(el, nil)
	iss, ok := gofirds.AsIssues(err)
	if !ok || iss[0].Code != gofirds.CodeRequired || !strings.Contains(iss[0].Path, "TtlIssdNmnlAmt") {
		t.Fatalf("expected required issue on the amount element, got %v", err)
	}
}

// Commodity classifications sit at a variable depth under Pdct; the deeper
// shape carries sub-products, the shallow one does not.
func TestDecodeCommodityAttributes_DeepShape(t *testing.T) {
	el := element(t, `<Cmmdty>
		<Pdct><Agrcltrl><GrnsAndOilSeeds>
			<BasePdct>AGRI</BasePdct>
			<SubPdct>GROS</SubPdct>
			<AddtlSubPdct>FWHT</AddtlSubPdct>
		</GrnsAndOilSeeds></Agrcltrl></Pdct>
		<TxTp>FUTR</TxTp>
	</Cmmdty>`)
	c, err := gofirds.DecodeCommodityAttributes(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.BaseProduct != gofirds.ProductAgricultural || c.SubProduct != gofirds.SubGrainsOilSeeds || c.FurtherSubProduct != gofirds.FurtherFeedWheat {
		t.Fatalf("got %+v", c)
	}
	if c.TransactionType != gofirds.TransactionFutures {
		t.Fatalf("got tx type %q", c.TransactionType)
	}
}

func TestDecodeCommodityAttributes_ShallowShape(t *testing.T) {
	el := element(t, `<Cmmdty><Pdct><Infltn><BasePdct>INFL</BasePdct></Infltn></Pdct></Cmmdty>`)
	c, err := gofirds.DecodeCommodityAttributes(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.BaseProduct != gofirds.ProductInflation {
		t.Fatalf("got base %q", c.BaseProduct)
	}
	if c.SubProduct != "" || c.FurtherSubProduct != "" {
		t.Fatalf("shallow shape must not carry sub-products, got %+v", c)
	}
}

func TestDecodeIRDerivativeAttributes_SecondLeg(t *testing.T) {
	el := element(t, `<Intrst>
		<IntrstRate><RefRate><Indx>EURO</Indx></RefRate><Term><Val>3</Val><Unit>MNTH</Unit></Term></IntrstRate>
		<FrstLegIntrstRate><Fxd>0.5</Fxd></FrstLegIntrstRate>
		<OthrLegIntrstRate>
			<Fltg><RefRate><Indx>LIBO</Indx></RefRate><Term><Val>6</Val><Unit>MNTH</Unit></Term></Fltg>
		</OthrLegIntrstRate>
	</Intrst>`)
	ir, err := gofirds.DecodeIRDerivativeAttributes(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ir.ReferenceRate.Name == nil || ir.ReferenceRate.Name.Code != gofirds.IndexEURIBOR {
		t.Fatalf("got reference rate %+v", ir.ReferenceRate)
	}
	if ir.FixedRate1 == nil || *ir.FixedRate1 != 0.5 {
		t.Fatalf("got fixed1 %v", ir.FixedRate1)
	}
	if ir.FloatingRate2 == nil || ir.FloatingRate2.Name.Code != gofirds.IndexLIBOR {
		t.Fatalf("got floating2 %+v", ir.FloatingRate2)
	}
}

// The second notional currency appears under either spelling depending on
// the schema revision; both must decode.
func TestDecodeIRDerivativeAttributes_SecondCurrencySpellings(t *testing.T) {
	for _, tag := range []string{"OthrNtnlCcy", "OtherNtnlCcy"} {
		el := element(t, `<Intrst>
			<IntrstRate><RefRate><Indx>EURO</Indx></RefRate></IntrstRate>
			<`+tag+`>USD</`+tag+`>
		</Intrst>`)
		ir, err := gofirds.DecodeIRDerivativeAttributes(el, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tag, err)
		}
		if ir.NotionalCurrency2 != "USD" {
			t.Fatalf("%s: got currency %q, want USD", tag, ir.NotionalCurrency2)
		}
	}
}

// Without the second-leg container neither of its rates may be probed.
func TestDecodeIRDerivativeAttributes_NoSecondLeg(t *testing.T) {
	el := element(t, `<Intrst>
		<IntrstRate><RefRate><Indx>EURO</Indx></RefRate></IntrstRate>
	</Intrst>`)
	ir, err := gofirds.DecodeIRDerivativeAttributes(el, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ir.FixedRate2 != nil || ir.FloatingRate2 != nil {
		t.Fatalf("second leg must stay empty, got %+v", ir)
	}
}

func TestDecodeFxDerivativeAttributes(t *testing.T) {
	fx, err := gofirds.DecodeFxDerivativeAttributes(element(t,
		`<FX><OthrNtnlCcy>JPY</OthrNtnlCcy><FxTp>FXMJ</FxTp></FX>`), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx.NotionalCurrency2 != "JPY" || fx.FxType != gofirds.FxMajors {
		t.Fatalf("got %+v", fx)
	}
}

func TestDecodeReferenceData_ChildIssuePaths(t *testing.T) {
	// A failure deep in a sub-record must surface with the full path to the
	// offending element.
	el := element(t, `<RefData>
		<FinInstrmGnlAttrbts>
			<Id>XX0000000001</Id>
			<FullNm>Test Instrument</FullNm>
			<ShrtNm>TEST/INSTR</ShrtNm>
			<ClssfctnTp>DBFTFB</ClssfctnTp>
			<NtnlCcy>EUR</NtnlCcy>
			<CmmdtyDerivInd>false</CmmdtyDerivInd>
		</FinInstrmGnlAttrbts>
		<Issr>HWUPKR0MPOU8FGXBT394</Issr>
		<TradgVnRltdAttrbts>
			<Id>ABCD</Id>
			<IssrReq>maybe</IssrReq>
			<FrstTradDt>2024-01-02T08:00:00Z</FrstTradDt>
		</TradgVnRltdAttrbts>
	</RefData>`)
	_, err := gofirds.DecodeReferenceData(el, nil)
	iss, ok := gofirds.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if iss[0].Code != gofirds.CodeInvalidBool {
		t.Fatalf("got code %q", iss[0].Code)
	}
	if iss[0].Path != "/TradgVnRltdAttrbts/IssrReq" {
		t.Fatalf("got path %q", iss[0].Path)
	}
}
