package gofirds

import (
	"github.com/samber/lo"

	"github.com/gofirds/gofirds/xmltree"
)

// Structural decoders. Each consumes one already-buffered element subtree and
// returns the corresponding record. They are pure functions of the element
// plus the ambient namespace map; no state crosses invocations. Issues raised
// by child decoders are rebased under the child's tag so a failure names the
// field being decoded.

// DecodeIndexTerm decodes a Term element (a count plus a unit).
func DecodeIndexTerm(el *xmltree.Element, ns xmltree.NSMap) (IndexTerm, error) {
	n, err := parseInt(el.Find("Val", ns), "/Val")
	if err != nil {
		return IndexTerm{}, err
	}
	if n == nil {
		return IndexTerm{}, issuef("/Val", CodeRequired, "mandatory element absent")
	}
	unit, err := enumCode(el.Find("Unit", ns), "/Unit", indexTermUnits, false)
	if err != nil {
		return IndexTerm{}, err
	}
	return IndexTerm{Number: *n, Unit: unit}, nil
}

// DecodeIndex decodes a FloatingInterestRate8-shaped element (IntrstRate/Fltg
// or UndrlygInstrm/Sngl/Indx/Nm): a RefRate naming the benchmark, plus an
// optional Term. A benchmark code outside the controlled vocabulary is kept
// as free text, never an error.
func DecodeIndex(el *xmltree.Element, ns xmltree.NSMap) (Index, error) {
	refRate := el.Find("RefRate", ns)

	var name *BenchmarkName
	if code := textOrEmpty(refRate.Find("Indx", ns)); code != "" {
		name = NewBenchmarkName(code)
	} else if nm := textOrEmpty(refRate.Find("Nm", ns)); nm != "" {
		// Nm is always free text, even when it happens to match a code.
		name = &BenchmarkName{Text: nm}
	}

	var term *IndexTerm
	if termEl := el.Find("Term", ns); termEl != nil {
		t, err := DecodeIndexTerm(termEl, ns)
		if err != nil {
			return Index{}, prefixIssues("/Term", err)
		}
		term = &t
	}

	return Index{
		Name: name,
		ISIN: textOrEmpty(refRate.Find("ISIN", ns)),
		Term: term,
	}, nil
}

// DecodeInterestRate decodes an IntrstRate element. Presence of the Fltg
// sub-element implies attempting a spread; its absence means fixed-only with
// no spread. The fixed-xor-floating invariant is not enforced here; see
// Options.ValidateInterestRate.
func DecodeInterestRate(el *xmltree.Element, ns xmltree.NSMap) (InterestRate, error) {
	fixed, err := parseFloat(el.Find("Fxd", ns), "/Fxd")
	if err != nil {
		return InterestRate{}, err
	}

	var benchmark *Index
	var spread *int
	if fltg := el.Find("Fltg", ns); fltg != nil {
		idx, err := DecodeIndex(fltg, ns)
		if err != nil {
			return InterestRate{}, prefixIssues("/Fltg", err)
		}
		benchmark = &idx
		if spread, err = parseInt(fltg.Find("BsisPtSprd", ns), "/Fltg/BsisPtSprd"); err != nil {
			return InterestRate{}, err
		}
	}

	return InterestRate{FixedRate: fixed, Benchmark: benchmark, Spread: spread}, nil
}

// pendingSentinel is the PriceStatus1Code value marking a strike price as
// pending.
const pendingSentinel = "PNDG"

// DecodeStrikePrice decodes a StrkPric element: either a Pric container whose
// first recognized sub-element picks the price expression, or a NoPric
// container carrying a pending flag. The container itself is mandatory even
// though its contents vary.
func DecodeStrikePrice(el *xmltree.Element, ns xmltree.NSMap) (StrikePrice, error) {
	if priced := el.Find("Pric", ns); priced != nil {
		var typ StrikePriceType
		var valEl *xmltree.Element
		switch {
		case priced.Find("MntryVal/Amt", ns) != nil:
			typ, valEl = StrikeMonetaryValue, priced.Find("MntryVal/Amt", ns)
		case priced.Find("Pctg", ns) != nil:
			typ, valEl = StrikePercentage, priced.Find("Pctg", ns)
		case priced.Find("Yld", ns) != nil:
			typ, valEl = StrikeYield, priced.Find("Yld", ns)
		case priced.Find("BsisPts", ns) != nil:
			typ, valEl = StrikeBasisPoints, priced.Find("BsisPts", ns)
		default:
			return StrikePrice{}, issuef("/Pric", CodeAmbiguousShape, "Pric element present but no price expression identified")
		}
		price, err := parseFloat(valEl, "/Pric")
		if err != nil {
			return StrikePrice{}, err
		}
		return StrikePrice{
			Type:     typ,
			Price:    price,
			Currency: textOrEmpty(priced.Find("MntryVal/Ccy", ns)),
		}, nil
	}

	noPrice := el.Find("NoPric", ns)
	if noPrice == nil {
		return StrikePrice{}, issuef("", CodeAmbiguousShape, "neither Pric nor NoPric found in StrkPric element")
	}
	return StrikePrice{
		Type:     StrikeNoPrice,
		Pending:  textOrEmpty(noPrice.Find("Pdg", ns)) == pendingSentinel,
		Currency: textOrEmpty(noPrice.Find("Ccy", ns)),
	}, nil
}

// DecodeUnderlying decodes an UndrlygInstrm element into its single or basket
// variant; exactly one must be present.
//
// For the single variant the index is split across two locations: the ISIN,
// when given, sits directly under Indx while the name and term sit under
// Indx/Nm. Both fragments are gathered before the Index is constructed; a
// bare-ISIN Index is only built when no name/term fragment exists at all.
func DecodeUnderlying(el *xmltree.Element, ns xmltree.NSMap) (DerivativeUnderlying, error) {
	if single := el.Find("Sngl", ns); single != nil {
		var index *Index
		if indexEl := single.Find("Indx", ns); indexEl != nil {
			isin := textOrEmpty(indexEl.Find("ISIN", ns))
			if nameEl := indexEl.Find("Nm", ns); nameEl != nil {
				named, err := DecodeIndex(nameEl, ns)
				if err != nil {
					return DerivativeUnderlying{}, prefixIssues("/Sngl/Indx/Nm", err)
				}
				index = &Index{Name: named.Name, ISIN: isin, Term: named.Term}
			} else if isin != "" {
				index = &Index{ISIN: isin}
			}
		}
		return DerivativeUnderlying{
			Single: &UnderlyingSingle{
				ISIN:      textOrEmpty(single.Find("ISIN", ns)),
				Index:     index,
				IssuerLEI: textOrEmpty(single.Find("LEI", ns)),
			},
		}, nil
	}

	if basket := el.Find("Bskt", ns); basket != nil {
		text := func(e *xmltree.Element, _ int) string { return e.Text() }
		return DerivativeUnderlying{
			Basket: &UnderlyingBasket{
				ISINs:      lo.Map(basket.FindAll("ISIN", ns), text),
				IssuerLEIs: lo.Map(basket.FindAll("LEI", ns), text),
			},
		}, nil
	}

	return DerivativeUnderlying{}, issuef("", CodeAmbiguousShape, "neither Sngl nor Bskt found in UndrlygInstrm element")
}

// DecodeTradingVenueAttributes decodes a TradgVnRltdAttrbts element.
func DecodeTradingVenueAttributes(el *xmltree.Element, ns xmltree.NSMap) (TradingVenueAttributes, error) {
	venue, err := requireText(el.Find("Id", ns), "/Id")
	if err != nil {
		return TradingVenueAttributes{}, err
	}
	requested, err := parseBool(el.Find("IssrReq", ns), "/IssrReq", false)
	if err != nil {
		return TradingVenueAttributes{}, err
	}
	approval, err := parseDateTime(el.Find("AdmssnApprvlDtByIssr", ns), "/AdmssnApprvlDtByIssr", true)
	if err != nil {
		return TradingVenueAttributes{}, err
	}
	request, err := parseDateTime(el.Find("ReqForAdmssnDt", ns), "/ReqForAdmssnDt", true)
	if err != nil {
		return TradingVenueAttributes{}, err
	}
	firstTrade, err := parseDateTime(el.Find("FrstTradDt", ns), "/FrstTradDt", false)
	if err != nil {
		return TradingVenueAttributes{}, err
	}
	termination, err := parseDateTime(el.Find("TermntnDt", ns), "/TermntnDt", true)
	if err != nil {
		return TradingVenueAttributes{}, err
	}
	return TradingVenueAttributes{
		TradingVenue:              venue,
		RequestedAdmission:        *requested,
		ApprovalDate:              approval,
		RequestDate:               request,
		AdmissionOrFirstTradeDate: firstTrade,
		TerminationDate:           termination,
	}, nil
}

// DecodePublicationPeriod decodes a PblctnPrd element. The period is either a
// FrDtToDt range or a lone FrDt.
func DecodePublicationPeriod(el *xmltree.Element, ns xmltree.NSMap) (PublicationPeriod, error) {
	if fromTo := el.Find("FrDtToDt", ns); fromTo != nil {
		from, err := parseDate(fromTo.Find("FrDt", ns), "/FrDtToDt/FrDt", false)
		if err != nil {
			return PublicationPeriod{}, err
		}
		to, err := parseDate(fromTo.Find("ToDt", ns), "/FrDtToDt/ToDt", true)
		if err != nil {
			return PublicationPeriod{}, err
		}
		return PublicationPeriod{FromDate: *from, ToDate: to}, nil
	}
	from, err := parseDate(el.Find("FrDt", ns), "/FrDt", false)
	if err != nil {
		return PublicationPeriod{}, err
	}
	return PublicationPeriod{FromDate: *from}, nil
}

// DecodeTechnicalAttributes decodes a TechAttrbts element.
func DecodeTechnicalAttributes(el *xmltree.Element, ns xmltree.NSMap) (TechnicalAttributes, error) {
	var period *PublicationPeriod
	if periodEl := el.Find("PblctnPrd", ns); periodEl != nil {
		p, err := DecodePublicationPeriod(periodEl, ns)
		if err != nil {
			return TechnicalAttributes{}, prefixIssues("/PblctnPrd", err)
		}
		period = &p
	}
	return TechnicalAttributes{
		RelevantCompetentAuthority: textOrEmpty(el.Find("RlvntCmptntAuthrty", ns)),
		PublicationPeriod:          period,
		RelevantTradingVenue:       textOrEmpty(el.Find("RlvntTradgVn", ns)),
	}, nil
}

// DecodeDebtAttributes decodes a DebtInstrmAttrbts element. The nominal
// currency is carried as the Ccy attribute of the issued-amount element, not
// as a sibling element.
func DecodeDebtAttributes(el *xmltree.Element, ns xmltree.NSMap) (DebtAttributes, error) {
	issuedEl := el.Find("TtlIssdNmnlAmt", ns)
	issued, err := requireFloat(issuedEl, "/TtlIssdNmnlAmt")
	if err != nil {
		return DebtAttributes{}, err
	}
	currency, ok := issuedEl.Attr("Ccy")
	if !ok {
		return DebtAttributes{}, issuef("/TtlIssdNmnlAmt", CodeRequired, "mandatory Ccy attribute absent")
	}
	maturity, err := parseDate(el.Find("MtrtyDt", ns), "/MtrtyDt", true)
	if err != nil {
		return DebtAttributes{}, err
	}
	perUnit, err := requireFloat(el.Find("NmnlValPerUnit", ns), "/NmnlValPerUnit")
	if err != nil {
		return DebtAttributes{}, err
	}
	rateEl := el.Find("IntrstRate", ns)
	if rateEl == nil {
		return DebtAttributes{}, issuef("/IntrstRate", CodeRequired, "mandatory element absent")
	}
	rate, err := DecodeInterestRate(rateEl, ns)
	if err != nil {
		return DebtAttributes{}, prefixIssues("/IntrstRate", err)
	}
	seniority, err := enumCode(el.Find("DebtSnrty", ns), "/DebtSnrty", debtSeniorities, true)
	if err != nil {
		return DebtAttributes{}, err
	}
	return DebtAttributes{
		TotalIssuedAmount:   issued,
		MaturityDate:        maturity,
		NominalCurrency:     currency,
		NominalValuePerUnit: perUnit,
		InterestRate:        rate,
		Seniority:           seniority,
	}, nil
}

// DecodeCommodityAttributes decodes an AsstClssSpcfcAttrbts/Cmmdty element.
//
// The product classification sits at a variable depth: Pdct/<base>/<sub>
// holds BasePdct when the base product has sub-products, Pdct/<base> holds it
// when there are none. The deeper shape is probed first; a fixed depth must
// not be assumed.
func DecodeCommodityAttributes(el *xmltree.Element, ns xmltree.NSMap) (CommodityDerivativeAttributes, error) {
	pdct := el.Find("Pdct", ns)
	if pdct == nil {
		return CommodityDerivativeAttributes{}, issuef("/Pdct", CodeRequired, "mandatory element absent")
	}

	prodEl := productElement(pdct, ns)
	if prodEl == nil {
		return CommodityDerivativeAttributes{}, issuef("/Pdct", CodeRequired, "no BasePdct found in product classification")
	}
	base, err := enumCode(prodEl.Find("BasePdct", ns), "/Pdct/BasePdct", baseProducts, false)
	if err != nil {
		return CommodityDerivativeAttributes{}, err
	}
	sub, err := enumCode(prodEl.Find("SubPdct", ns), "/Pdct/SubPdct", subProducts, true)
	if err != nil {
		return CommodityDerivativeAttributes{}, err
	}
	further, err := enumCode(prodEl.Find("AddtlSubPdct", ns), "/Pdct/AddtlSubPdct", furtherSubProducts, true)
	if err != nil {
		return CommodityDerivativeAttributes{}, err
	}
	txType, err := enumCode(el.Find("TxTp", ns), "/TxTp", transactionTypes, true)
	if err != nil {
		return CommodityDerivativeAttributes{}, err
	}
	finalPrice, err := enumCode(el.Find("FnlPricTp", ns), "/FnlPricTp", finalPriceTypes, true)
	if err != nil {
		return CommodityDerivativeAttributes{}, err
	}
	return CommodityDerivativeAttributes{
		BaseProduct:       base,
		SubProduct:        sub,
		FurtherSubProduct: further,
		TransactionType:   txType,
		FinalPriceType:    finalPrice,
	}, nil
}

// productElement locates the element that carries BasePdct (and, in the
// deeper shape, SubPdct/AddtlSubPdct), probing two levels below Pdct before
// one.
func productElement(pdct *xmltree.Element, ns xmltree.NSMap) *xmltree.Element {
	for _, depth := range []string{"*/*", "*"} {
		for _, cand := range pdct.FindAll(depth, ns) {
			if cand.Find("BasePdct", ns) != nil {
				return cand
			}
		}
	}
	return nil
}

// DecodeIRDerivativeAttributes decodes an AsstClssSpcfcAttrbts/Intrst
// element: the reference rate plus up to two legs. The second leg's fixed and
// floating rates are only attempted when its container is present at all.
func DecodeIRDerivativeAttributes(el *xmltree.Element, ns xmltree.NSMap) (InterestRateDerivativeAttributes, error) {
	rateEl := el.Find("IntrstRate", ns)
	if rateEl == nil {
		return InterestRateDerivativeAttributes{}, issuef("/IntrstRate", CodeRequired, "mandatory element absent")
	}
	refRate, err := DecodeIndex(rateEl, ns)
	if err != nil {
		return InterestRateDerivativeAttributes{}, prefixIssues("/IntrstRate", err)
	}
	fixed1, err := parseFloat(el.Find("FrstLegIntrstRate/Fxd", ns), "/FrstLegIntrstRate/Fxd")
	if err != nil {
		return InterestRateDerivativeAttributes{}, err
	}

	var fixed2 *float64
	var floating2 *Index
	if otherLeg := el.Find("OthrLegIntrstRate", ns); otherLeg != nil {
		if fixed2, err = parseFloat(otherLeg.Find("Fxd", ns), "/OthrLegIntrstRate/Fxd"); err != nil {
			return InterestRateDerivativeAttributes{}, err
		}
		if fltg := otherLeg.Find("Fltg", ns); fltg != nil {
			idx, err := DecodeIndex(fltg, ns)
			if err != nil {
				return InterestRateDerivativeAttributes{}, prefixIssues("/OthrLegIntrstRate/Fltg", err)
			}
			floating2 = &idx
		}
	}

	// Earlier schema revisions spell the element OtherNtnlCcy.
	ccy2 := textOrEmpty(el.Find("OthrNtnlCcy", ns))
	if ccy2 == "" {
		ccy2 = textOrEmpty(el.Find("OtherNtnlCcy", ns))
	}

	return InterestRateDerivativeAttributes{
		ReferenceRate:     refRate,
		NotionalCurrency2: ccy2,
		FixedRate1:        fixed1,
		FixedRate2:        fixed2,
		FloatingRate2:     floating2,
	}, nil
}

// DecodeFxDerivativeAttributes decodes an AsstClssSpcfcAttrbts/FX element.
func DecodeFxDerivativeAttributes(el *xmltree.Element, ns xmltree.NSMap) (FxDerivativeAttributes, error) {
	ccy2, err := requireText(el.Find("OthrNtnlCcy", ns), "/OthrNtnlCcy")
	if err != nil {
		// Earlier schema revisions spell the element OtherNtnlCcy.
		ccy2, err = requireText(el.Find("OtherNtnlCcy", ns), "/OthrNtnlCcy")
		if err != nil {
			return FxDerivativeAttributes{}, err
		}
	}
	fxType, err := enumCode(el.Find("FxTp", ns), "/FxTp", fxTypes, false)
	if err != nil {
		return FxDerivativeAttributes{}, err
	}
	return FxDerivativeAttributes{NotionalCurrency2: ccy2, FxType: fxType}, nil
}

// DecodeDerivativeAttributes decodes a DerivInstrmAttrbts element.
func DecodeDerivativeAttributes(el *xmltree.Element, ns xmltree.NSMap) (DerivativeAttributes, error) {
	expiry, err := parseDate(el.Find("XpryDt", ns), "/XpryDt", true)
	if err != nil {
		return DerivativeAttributes{}, err
	}
	multiplier, err := parseFloat(el.Find("PricMltplr", ns), "/PricMltplr")
	if err != nil {
		return DerivativeAttributes{}, err
	}

	var underlying *DerivativeUnderlying
	if underEl := el.Find("UndrlygInstrm", ns); underEl != nil {
		u, err := DecodeUnderlying(underEl, ns)
		if err != nil {
			return DerivativeAttributes{}, prefixIssues("/UndrlygInstrm", err)
		}
		underlying = &u
	}

	optType, err := enumCode(el.Find("OptnTp", ns), "/OptnTp", optionTypes, true)
	if err != nil {
		return DerivativeAttributes{}, err
	}

	var strike *StrikePrice
	if strikeEl := el.Find("StrkPric", ns); strikeEl != nil {
		s, err := DecodeStrikePrice(strikeEl, ns)
		if err != nil {
			return DerivativeAttributes{}, prefixIssues("/StrkPric", err)
		}
		strike = &s
	}

	exercise, err := enumCode(el.Find("OptnExrcStyle", ns), "/OptnExrcStyle", optionExerciseStyles, true)
	if err != nil {
		return DerivativeAttributes{}, err
	}
	delivery, err := enumCode(el.Find("DlvryTp", ns), "/DlvryTp", deliveryTypes, true)
	if err != nil {
		return DerivativeAttributes{}, err
	}

	var commodity *CommodityDerivativeAttributes
	if cEl := el.Find("AsstClssSpcfcAttrbts/Cmmdty", ns); cEl != nil {
		c, err := DecodeCommodityAttributes(cEl, ns)
		if err != nil {
			return DerivativeAttributes{}, prefixIssues("/AsstClssSpcfcAttrbts/Cmmdty", err)
		}
		commodity = &c
	}

	var irAttrs *InterestRateDerivativeAttributes
	if iEl := el.Find("AsstClssSpcfcAttrbts/Intrst", ns); iEl != nil {
		ir, err := DecodeIRDerivativeAttributes(iEl, ns)
		if err != nil {
			return DerivativeAttributes{}, prefixIssues("/AsstClssSpcfcAttrbts/Intrst", err)
		}
		irAttrs = &ir
	}

	var fxAttrs *FxDerivativeAttributes
	fxEl := el.Find("AsstClssSpcfcAttrbts/FX", ns)
	if fxEl == nil {
		fxEl = el.Find("AsstClssSpcfcAttrbts/Fx", ns)
	}
	if fxEl != nil {
		fx, err := DecodeFxDerivativeAttributes(fxEl, ns)
		if err != nil {
			return DerivativeAttributes{}, prefixIssues("/AsstClssSpcfcAttrbts/FX", err)
		}
		fxAttrs = &fx
	}

	return DerivativeAttributes{
		ExpiryDate:          expiry,
		PriceMultiplier:     multiplier,
		Underlying:          underlying,
		OptionType:          optType,
		StrikePrice:         strike,
		OptionExerciseStyle: exercise,
		DeliveryType:        delivery,
		Commodity:           commodity,
		InterestRate:        irAttrs,
		Fx:                  fxAttrs,
	}, nil
}

// DecodeReferenceData decodes a RefData element (or one of the delta role
// elements, which share its shape).
func DecodeReferenceData(el *xmltree.Element, ns xmltree.NSMap) (ReferenceData, error) {
	gen := el.Find("FinInstrmGnlAttrbts", ns)
	if gen == nil {
		return ReferenceData{}, issuef("/FinInstrmGnlAttrbts", CodeRequired, "mandatory element absent")
	}
	isin, err := requireText(gen.Find("Id", ns), "/FinInstrmGnlAttrbts/Id")
	if err != nil {
		return ReferenceData{}, err
	}
	fullName, err := requireText(gen.Find("FullNm", ns), "/FinInstrmGnlAttrbts/FullNm")
	if err != nil {
		return ReferenceData{}, err
	}
	cfi, err := requireText(gen.Find("ClssfctnTp", ns), "/FinInstrmGnlAttrbts/ClssfctnTp")
	if err != nil {
		return ReferenceData{}, err
	}
	commodityDeriv, err := parseBool(gen.Find("CmmdtyDerivInd", ns), "/FinInstrmGnlAttrbts/CmmdtyDerivInd", false)
	if err != nil {
		return ReferenceData{}, err
	}
	notionalCcy, err := requireText(gen.Find("NtnlCcy", ns), "/FinInstrmGnlAttrbts/NtnlCcy")
	if err != nil {
		return ReferenceData{}, err
	}
	issuer, err := requireText(el.Find("Issr", ns), "/Issr")
	if err != nil {
		return ReferenceData{}, err
	}

	venueEl := el.Find("TradgVnRltdAttrbts", ns)
	if venueEl == nil {
		return ReferenceData{}, issuef("/TradgVnRltdAttrbts", CodeRequired, "mandatory element absent")
	}
	venue, err := DecodeTradingVenueAttributes(venueEl, ns)
	if err != nil {
		return ReferenceData{}, prefixIssues("/TradgVnRltdAttrbts", err)
	}

	var tech *TechnicalAttributes
	if techEl := el.Find("TechAttrbts", ns); techEl != nil {
		t, err := DecodeTechnicalAttributes(techEl, ns)
		if err != nil {
			return ReferenceData{}, prefixIssues("/TechAttrbts", err)
		}
		tech = &t
	}

	var debt *DebtAttributes
	if debtEl := el.Find("DebtInstrmAttrbts", ns); debtEl != nil {
		d, err := DecodeDebtAttributes(debtEl, ns)
		if err != nil {
			return ReferenceData{}, prefixIssues("/DebtInstrmAttrbts", err)
		}
		debt = &d
	}

	var deriv *DerivativeAttributes
	if derivEl := el.Find("DerivInstrmAttrbts", ns); derivEl != nil {
		d, err := DecodeDerivativeAttributes(derivEl, ns)
		if err != nil {
			return ReferenceData{}, prefixIssues("/DerivInstrmAttrbts", err)
		}
		deriv = &d
	}

	return ReferenceData{
		ISIN:                    ISIN(isin),
		FullName:                fullName,
		CFI:                     cfi,
		IsCommoditiesDerivative: *commodityDeriv,
		IssuerLEI:               LEI(issuer),
		FISN:                    textOrEmpty(gen.Find("ShrtNm", ns)),
		TradingVenueAttrs:       venue,
		NotionalCurrency:        notionalCcy,
		TechnicalAttributes:     tech,
		DebtAttributes:          debt,
		DerivativeAttributes:    deriv,
	}, nil
}
