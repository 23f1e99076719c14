package gofirds

import (
	"fmt"
	"time"
)

// RecordKind identifies which role a reference record played in the file it
// came from. The values are the bare XML tags the streaming driver matches.
type RecordKind string

const (
	KindReference  RecordKind = "RefData"    // full-file snapshot record
	KindNew        RecordKind = "NewRcrd"    // delta: newly added instrument
	KindModified   RecordKind = "ModfdRcrd"  // delta: modified instrument
	KindTerminated RecordKind = "TermntdRcrd" // delta: instrument no longer traded
	KindCancelled  RecordKind = "CancRcrd"   // delta: record cancelled
)

// Record is the unit yielded by the streaming driver: one decoded reference
// record plus the role its enclosing tag gave it. All record kinds share one
// shape.
type Record struct {
	Kind RecordKind `json:"kind"`
	ReferenceData
}

// IndexTerm is the term of an index or benchmark: a count of days, weeks,
// months or years.
type IndexTerm struct {
	Number int           `json:"number"`
	Unit   IndexTermUnit `json:"unit"`
}

// BenchmarkName names an index or benchmark. Controlled vocabulary codes are
// carried in Code; benchmark names outside the vocabulary are legal in the
// data and are carried verbatim in Text instead.
type BenchmarkName struct {
	Code IndexName `json:"code,omitempty"`
	Text string    `json:"text,omitempty"`
}

// NewBenchmarkName builds a BenchmarkName from raw text, classifying it as a
// controlled code when the vocabulary recognizes it. Empty text yields nil.
func NewBenchmarkName(s string) *BenchmarkName {
	if s == "" {
		return nil
	}
	if _, ok := indexNames[IndexName(s)]; ok {
		return &BenchmarkName{Code: IndexName(s)}
	}
	return &BenchmarkName{Text: s}
}

// Raw returns the stored form of the name: the vocabulary code for controlled
// names, the verbatim text otherwise.
func (n BenchmarkName) Raw() string {
	if n.IsControlled() {
		return string(n.Code)
	}
	return n.Text
}

// IsControlled reports whether the name is a controlled vocabulary code.
func (n BenchmarkName) IsControlled() bool { return n.Code != "" }

// String returns the display name: the vocabulary description for controlled
// codes, the raw text otherwise.
func (n BenchmarkName) String() string {
	if n.IsControlled() {
		return n.Code.Description()
	}
	return n.Text
}

// Index identifies an index or benchmark rate: by ISIN, by name, by name and
// term, or any combination the data happens to carry.
type Index struct {
	Name *BenchmarkName `json:"name,omitempty"`
	ISIN string         `json:"isin,omitempty"`
	Term *IndexTerm     `json:"term,omitempty"`
}

// InterestRate is the rate applicable to a debt instrument: a fixed
// percentage, or a floating rate over a benchmark plus a spread in basis
// points.
type InterestRate struct {
	FixedRate *float64 `json:"fixed_rate,omitempty"`
	Benchmark *Index   `json:"benchmark,omitempty"`
	Spread    *int     `json:"spread,omitempty"`
}

// IsFixed reports whether a fixed rate is present.
func (r InterestRate) IsFixed() bool { return r.FixedRate != nil }

// IsFloating reports whether a floating-rate benchmark is present.
func (r InterestRate) IsFloating() bool { return r.Benchmark != nil }

// Validate checks that at least one of the fixed or floating forms is
// resolvable. Decoding does not call this unless Options.ValidateInterestRate
// is set; it stays available as a post-decode check.
func (r InterestRate) Validate() error {
	if r.FixedRate != nil {
		return nil
	}
	if r.Benchmark != nil && r.Spread != nil {
		return nil
	}
	return fmt.Errorf("interest rate has neither a fixed rate nor a benchmark with spread")
}

// StrikePrice is the strike of a derivative instrument: a price expressed one
// of four ways, or an explicit no-price state that may be pending.
type StrikePrice struct {
	Type     StrikePriceType `json:"type"`
	Price    *float64        `json:"price,omitempty"`   // nil when Type is StrikeNoPrice
	Pending  bool            `json:"pending"`           // only meaningful when Type is StrikeNoPrice
	Currency string          `json:"currency,omitempty"`
}

// UnderlyingSingle describes a single instrument, index or issuer underlying
// a derivative.
type UnderlyingSingle struct {
	ISIN      string `json:"isin,omitempty"`
	Index     *Index `json:"index,omitempty"`
	IssuerLEI string `json:"issuer_lei,omitempty"`
}

// UnderlyingBasket describes a basket of instruments or issuers underlying a
// derivative.
type UnderlyingBasket struct {
	ISINs      []string `json:"isins,omitempty"`
	IssuerLEIs []string `json:"issuer_leis,omitempty"`
}

// DerivativeUnderlying is the asset underlying a derivative. Exactly one of
// Single or Basket is populated per decode.
type DerivativeUnderlying struct {
	Single *UnderlyingSingle `json:"single,omitempty"`
	Basket *UnderlyingBasket `json:"basket,omitempty"`
}

// TradingVenueAttributes is data relating to the trading, or admission to
// trading, of an instrument on one trading venue.
type TradingVenueAttributes struct {
	// TradingVenue is the MIC of the venue or systematic internaliser; a
	// segment MIC where available, otherwise an operating MIC.
	TradingVenue       string `json:"trading_venue"`
	RequestedAdmission bool   `json:"requested_admission"`
	ApprovalDate       *time.Time `json:"approval_date,omitempty"`
	RequestDate        *time.Time `json:"request_date,omitempty"`
	// AdmissionOrFirstTradeDate is mandatory in the full-file schema.
	AdmissionOrFirstTradeDate *time.Time `json:"admission_or_first_trade_date,omitempty"`
	TerminationDate           *time.Time `json:"termination_date,omitempty"`
}

// PublicationPeriod is the period for which details on an instrument were
// published.
type PublicationPeriod struct {
	FromDate time.Time  `json:"from_date"`
	ToDate   *time.Time `json:"to_date,omitempty"`
}

// TechnicalAttributes describes the submission of an instrument's details to
// the register rather than the instrument itself. PublicationPeriod does not
// appear on terminated delta records, so it is optional here.
type TechnicalAttributes struct {
	RelevantCompetentAuthority string             `json:"relevant_competent_authority,omitempty"`
	PublicationPeriod          *PublicationPeriod `json:"publication_period,omitempty"`
	RelevantTradingVenue       string             `json:"relevant_trading_venue,omitempty"`
}

// DebtAttributes is reference data for bonds and other securitised debt.
// Amounts are expressed in NominalCurrency, which the source carries as an
// attribute of the issued-amount element rather than a sibling element.
type DebtAttributes struct {
	TotalIssuedAmount   float64       `json:"total_issued_amount"`
	MaturityDate        *time.Time    `json:"maturity_date,omitempty"`
	NominalCurrency     string        `json:"nominal_currency"`
	NominalValuePerUnit float64       `json:"nominal_value_per_unit"`
	InterestRate        InterestRate  `json:"interest_rate"`
	Seniority           DebtSeniority `json:"seniority,omitempty"`
}

// CommodityDerivativeAttributes is the commodity product classification of a
// commodity derivative. SubProduct and FurtherSubProduct are empty when the
// base product has no deeper classification.
type CommodityDerivativeAttributes struct {
	BaseProduct       BaseProduct       `json:"base_product"`
	SubProduct        SubProduct        `json:"sub_product,omitempty"`
	FurtherSubProduct FurtherSubProduct `json:"further_sub_product,omitempty"`
	TransactionType   TransactionType   `json:"transaction_type,omitempty"`
	FinalPriceType    FinalPriceType    `json:"final_price_type,omitempty"`
}

// InterestRateDerivativeAttributes is reference data for an interest rate
// derivative: the reference rate plus up to two legs.
type InterestRateDerivativeAttributes struct {
	ReferenceRate     Index    `json:"reference_rate"`
	NotionalCurrency2 string   `json:"notional_currency_2,omitempty"`
	FixedRate1        *float64 `json:"fixed_rate_1,omitempty"`
	FixedRate2        *float64 `json:"fixed_rate_2,omitempty"`
	FloatingRate2     *Index   `json:"floating_rate_2,omitempty"`
}

// FxDerivativeAttributes is reference data for a foreign exchange derivative.
type FxDerivativeAttributes struct {
	NotionalCurrency2 string `json:"notional_currency_2"`
	FxType            FxType `json:"fx_type"`
}

// DerivativeAttributes is reference data for a derivative instrument. At most
// one of the asset-class-specific sub-records is expected per instrument.
type DerivativeAttributes struct {
	ExpiryDate          *time.Time                        `json:"expiry_date,omitempty"`
	PriceMultiplier     *float64                          `json:"price_multiplier,omitempty"`
	Underlying          *DerivativeUnderlying             `json:"underlying,omitempty"`
	OptionType          OptionType                        `json:"option_type,omitempty"`
	StrikePrice         *StrikePrice                      `json:"strike_price,omitempty"`
	OptionExerciseStyle OptionExerciseStyle               `json:"option_exercise_style,omitempty"`
	DeliveryType        DeliveryType                      `json:"delivery_type,omitempty"`
	Commodity           *CommodityDerivativeAttributes    `json:"commodity_attributes,omitempty"`
	InterestRate        *InterestRateDerivativeAttributes `json:"ir_attributes,omitempty"`
	Fx                  *FxDerivativeAttributes           `json:"fx_attributes,omitempty"`
}

// ReferenceData is one financial instrument reference record. The same shape
// serves the full-file snapshot and every delta role.
type ReferenceData struct {
	ISIN                    ISIN                   `json:"isin"`
	FullName                string                 `json:"full_name"`
	CFI                     string                 `json:"cfi"`
	IsCommoditiesDerivative bool                   `json:"is_commodities_derivative"`
	IssuerLEI               LEI                    `json:"issuer_lei"`
	FISN                    string                 `json:"fisn"`
	TradingVenueAttrs       TradingVenueAttributes `json:"trading_venue_attrs"`
	NotionalCurrency        string                 `json:"notional_currency"`
	TechnicalAttributes     *TechnicalAttributes   `json:"technical_attributes,omitempty"`
	DebtAttributes          *DebtAttributes        `json:"debt_attributes,omitempty"`
	DerivativeAttributes    *DerivativeAttributes  `json:"derivative_attributes,omitempty"`
}

// UniqueID returns the ISIN concatenated with the MIC of the relevant trading
// venue. The same ISIN can be reported by multiple venues, so neither alone
// identifies a record; the register keys records by this pair. The relevant
// venue comes from the technical attributes when present, otherwise from the
// trading-venue attributes.
func (r ReferenceData) UniqueID() string {
	venue := r.TradingVenueAttrs.TradingVenue
	if r.TechnicalAttributes != nil && r.TechnicalAttributes.RelevantTradingVenue != "" {
		venue = r.TechnicalAttributes.RelevantTradingVenue
	}
	return string(r.ISIN) + venue
}
