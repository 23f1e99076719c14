package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofirds/gofirds"
)

// GetReferenceData loads the record stored for one ISIN and trading venue,
// reassembling the nested sub-records. ErrNotFound when no such record
// exists.
func (s *Store) GetReferenceData(ctx context.Context, isin, venue string) (*gofirds.ReferenceData, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
			isin, full_name, cfi, is_commodities_derivative, issuer_lei, fisn,
			tv_trading_venue, tv_requested_admission, tv_approval_date,
			tv_request_date, tv_admission_or_first_trade_date, tv_termination_date,
			notional_currency, technical_attributes_id, debt_attributes_id, derivative_attributes_id
		FROM reference_data WHERE isin = ? AND tv_trading_venue = ?`, isin, venue)

	var (
		rec                      gofirds.ReferenceData
		isinCol, leiCol, fisn    string
		approval, request        sql.NullString
		firstTrade, termination  sql.NullString
		techID, debtID, derivID  sql.NullInt64
	)
	err := row.Scan(
		&isinCol, &rec.FullName, &rec.CFI, &rec.IsCommoditiesDerivative, &leiCol, &fisn,
		&rec.TradingVenueAttrs.TradingVenue, &rec.TradingVenueAttrs.RequestedAdmission,
		&approval, &request, &firstTrade, &termination,
		&rec.NotionalCurrency, &techID, &debtID, &derivID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db: load reference_data: %w", err)
	}
	rec.ISIN = gofirds.ISIN(isinCol)
	rec.IssuerLEI = gofirds.LEI(leiCol)
	rec.FISN = fisn
	if rec.TradingVenueAttrs.ApprovalDate, err = scanTime(approval); err != nil {
		return nil, err
	}
	if rec.TradingVenueAttrs.RequestDate, err = scanTime(request); err != nil {
		return nil, err
	}
	if rec.TradingVenueAttrs.AdmissionOrFirstTradeDate, err = scanTime(firstTrade); err != nil {
		return nil, err
	}
	if rec.TradingVenueAttrs.TerminationDate, err = scanTime(termination); err != nil {
		return nil, err
	}

	if rec.TechnicalAttributes, err = s.getTechAttrs(ctx, techID); err != nil {
		return nil, err
	}
	if rec.DebtAttributes, err = s.getDebtAttrs(ctx, debtID); err != nil {
		return nil, err
	}
	if rec.DerivativeAttributes, err = s.getDerivAttrs(ctx, derivID); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) getTechAttrs(ctx context.Context, id sql.NullInt64) (*gofirds.TechnicalAttributes, error) {
	if !id.Valid {
		return nil, nil
	}
	var t gofirds.TechnicalAttributes
	var periodID sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT relevant_competent_authority, publication_period_id, relevant_trading_venue
			FROM technical_attributes WHERE id = ?`, id.Int64).
		Scan(&t.RelevantCompetentAuthority, &periodID, &t.RelevantTradingVenue)
	if err != nil {
		return nil, fmt.Errorf("db: load technical_attributes: %w", err)
	}
	if periodID.Valid {
		var from string
		var to sql.NullString
		err := s.db.QueryRowContext(ctx, `SELECT from_date, to_date FROM publication_period WHERE id = ?`, periodID.Int64).
			Scan(&from, &to)
		if err != nil {
			return nil, fmt.Errorf("db: load publication_period: %w", err)
		}
		p := gofirds.PublicationPeriod{}
		if p.FromDate, err = time.Parse(time.RFC3339, from); err != nil {
			return nil, fmt.Errorf("db: publication_period from_date: %w", err)
		}
		if p.ToDate, err = scanTime(to); err != nil {
			return nil, err
		}
		t.PublicationPeriod = &p
	}
	return &t, nil
}

func (s *Store) getIndexTerm(ctx context.Context, id sql.NullInt64) (*gofirds.IndexTerm, error) {
	if !id.Valid {
		return nil, nil
	}
	var t gofirds.IndexTerm
	var unit string
	err := s.db.QueryRowContext(ctx, `SELECT number, unit FROM index_term WHERE id = ?`, id.Int64).
		Scan(&t.Number, &unit)
	if err != nil {
		return nil, fmt.Errorf("db: load index_term: %w", err)
	}
	t.Unit = gofirds.IndexTermUnit(unit)
	return &t, nil
}

func (s *Store) getIndex(ctx context.Context, id sql.NullInt64) (*gofirds.Index, error) {
	if !id.Valid {
		return nil, nil
	}
	var name, isin sql.NullString
	var termID sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT name, isin, term_id FROM benchmark_index WHERE id = ?`, id.Int64).
		Scan(&name, &isin, &termID)
	if err != nil {
		return nil, fmt.Errorf("db: load benchmark_index: %w", err)
	}
	term, err := s.getIndexTerm(ctx, termID)
	if err != nil {
		return nil, err
	}
	return &gofirds.Index{
		Name: gofirds.NewBenchmarkName(name.String),
		ISIN: isin.String,
		Term: term,
	}, nil
}

func (s *Store) getInterestRate(ctx context.Context, id sql.NullInt64) (gofirds.InterestRate, error) {
	var r gofirds.InterestRate
	if !id.Valid {
		return r, nil
	}
	var fixed sql.NullFloat64
	var benchID sql.NullInt64
	var spread sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT fixed_rate, benchmark_id, spread FROM interest_rate WHERE id = ?`, id.Int64).
		Scan(&fixed, &benchID, &spread)
	if err != nil {
		return r, fmt.Errorf("db: load interest_rate: %w", err)
	}
	if fixed.Valid {
		r.FixedRate = &fixed.Float64
	}
	if spread.Valid {
		n := int(spread.Int64)
		r.Spread = &n
	}
	if r.Benchmark, err = s.getIndex(ctx, benchID); err != nil {
		return r, err
	}
	return r, nil
}

func (s *Store) getDebtAttrs(ctx context.Context, id sql.NullInt64) (*gofirds.DebtAttributes, error) {
	if !id.Valid {
		return nil, nil
	}
	var d gofirds.DebtAttributes
	var maturity sql.NullString
	var rateID sql.NullInt64
	var seniority sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT total_issued_amount, maturity_date, nominal_currency,
			nominal_value_per_unit, interest_rate_id, seniority
			FROM debt_attributes WHERE id = ?`, id.Int64).
		Scan(&d.TotalIssuedAmount, &maturity, &d.NominalCurrency, &d.NominalValuePerUnit, &rateID, &seniority)
	if err != nil {
		return nil, fmt.Errorf("db: load debt_attributes: %w", err)
	}
	if d.MaturityDate, err = scanTime(maturity); err != nil {
		return nil, err
	}
	if d.InterestRate, err = s.getInterestRate(ctx, rateID); err != nil {
		return nil, err
	}
	d.Seniority = gofirds.DebtSeniority(seniority.String)
	return &d, nil
}

func (s *Store) getStrikePrice(ctx context.Context, id sql.NullInt64) (*gofirds.StrikePrice, error) {
	if !id.Valid {
		return nil, nil
	}
	var sp gofirds.StrikePrice
	var typ string
	var price sql.NullFloat64
	var currency sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT type, price, pending, currency FROM strike_price WHERE id = ?`, id.Int64).
		Scan(&typ, &price, &sp.Pending, &currency)
	if err != nil {
		return nil, fmt.Errorf("db: load strike_price: %w", err)
	}
	sp.Type = gofirds.StrikePriceType(typ)
	if price.Valid {
		sp.Price = &price.Float64
	}
	sp.Currency = currency.String
	return &sp, nil
}

func (s *Store) getUnderlying(ctx context.Context, singleID, basketID sql.NullInt64) (*gofirds.DerivativeUnderlying, error) {
	if singleID.Valid {
		var isin, lei sql.NullString
		var indexID sql.NullInt64
		err := s.db.QueryRowContext(ctx, `SELECT isin, index_id, issuer_lei FROM underlying_single WHERE id = ?`, singleID.Int64).
			Scan(&isin, &indexID, &lei)
		if err != nil {
			return nil, fmt.Errorf("db: load underlying_single: %w", err)
		}
		index, err := s.getIndex(ctx, indexID)
		if err != nil {
			return nil, err
		}
		return &gofirds.DerivativeUnderlying{Single: &gofirds.UnderlyingSingle{
			ISIN:      isin.String,
			Index:     index,
			IssuerLEI: lei.String,
		}}, nil
	}
	if basketID.Valid {
		var isins, leis sql.NullString
		err := s.db.QueryRowContext(ctx, `SELECT isins, issuer_leis FROM underlying_basket WHERE id = ?`, basketID.Int64).
			Scan(&isins, &leis)
		if err != nil {
			return nil, fmt.Errorf("db: load underlying_basket: %w", err)
		}
		return &gofirds.DerivativeUnderlying{Basket: &gofirds.UnderlyingBasket{
			ISINs:      splitList(isins.String),
			IssuerLEIs: splitList(leis.String),
		}}, nil
	}
	return nil, nil
}

func (s *Store) getCommodityAttrs(ctx context.Context, id sql.NullInt64) (*gofirds.CommodityDerivativeAttributes, error) {
	if !id.Valid {
		return nil, nil
	}
	var base string
	var sub, further, tx, final sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT base_product, sub_product, further_sub_product, transaction_type, final_price_type
			FROM commodity_derivative_attributes WHERE id = ?`, id.Int64).
		Scan(&base, &sub, &further, &tx, &final)
	if err != nil {
		return nil, fmt.Errorf("db: load commodity_derivative_attributes: %w", err)
	}
	return &gofirds.CommodityDerivativeAttributes{
		BaseProduct:       gofirds.BaseProduct(base),
		SubProduct:        gofirds.SubProduct(sub.String),
		FurtherSubProduct: gofirds.FurtherSubProduct(further.String),
		TransactionType:   gofirds.TransactionType(tx.String),
		FinalPriceType:    gofirds.FinalPriceType(final.String),
	}, nil
}

func (s *Store) getIRAttrs(ctx context.Context, id sql.NullInt64) (*gofirds.InterestRateDerivativeAttributes, error) {
	if !id.Valid {
		return nil, nil
	}
	var refID, floatID sql.NullInt64
	var ccy2 sql.NullString
	var fixed1, fixed2 sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `SELECT reference_rate_id, notional_currency_2, fixed_rate_1, fixed_rate_2, floating_rate_2_id
			FROM ir_derivative_attributes WHERE id = ?`, id.Int64).
		Scan(&refID, &ccy2, &fixed1, &fixed2, &floatID)
	if err != nil {
		return nil, fmt.Errorf("db: load ir_derivative_attributes: %w", err)
	}
	var ir gofirds.InterestRateDerivativeAttributes
	ref, err := s.getIndex(ctx, refID)
	if err != nil {
		return nil, err
	}
	if ref != nil {
		ir.ReferenceRate = *ref
	}
	ir.NotionalCurrency2 = ccy2.String
	if fixed1.Valid {
		ir.FixedRate1 = &fixed1.Float64
	}
	if fixed2.Valid {
		ir.FixedRate2 = &fixed2.Float64
	}
	if ir.FloatingRate2, err = s.getIndex(ctx, floatID); err != nil {
		return nil, err
	}
	return &ir, nil
}

func (s *Store) getFxAttrs(ctx context.Context, id sql.NullInt64) (*gofirds.FxDerivativeAttributes, error) {
	if !id.Valid {
		return nil, nil
	}
	var fx gofirds.FxDerivativeAttributes
	var typ string
	err := s.db.QueryRowContext(ctx, `SELECT notional_currency_2, fx_type FROM fx_derivative_attributes WHERE id = ?`, id.Int64).
		Scan(&fx.NotionalCurrency2, &typ)
	if err != nil {
		return nil, fmt.Errorf("db: load fx_derivative_attributes: %w", err)
	}
	fx.FxType = gofirds.FxType(typ)
	return &fx, nil
}

func (s *Store) getDerivAttrs(ctx context.Context, id sql.NullInt64) (*gofirds.DerivativeAttributes, error) {
	if !id.Valid {
		return nil, nil
	}
	var (
		expiry                                 sql.NullString
		multiplier                             sql.NullFloat64
		singleID, basketID, strikeID           sql.NullInt64
		commodityID, irID, fxID                sql.NullInt64
		optType, exercise, delivery            sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `SELECT expiry_date, price_multiplier, underlying_single_id,
			underlying_basket_id, option_type, strike_price_id, option_exercise_style, delivery_type,
			commodity_attributes_id, ir_attributes_id, fx_attributes_id
			FROM derivative_attributes WHERE id = ?`, id.Int64).
		Scan(&expiry, &multiplier, &singleID, &basketID, &optType, &strikeID, &exercise, &delivery,
			&commodityID, &irID, &fxID)
	if err != nil {
		return nil, fmt.Errorf("db: load derivative_attributes: %w", err)
	}
	var d gofirds.DerivativeAttributes
	if d.ExpiryDate, err = scanTime(expiry); err != nil {
		return nil, err
	}
	if multiplier.Valid {
		d.PriceMultiplier = &multiplier.Float64
	}
	if d.Underlying, err = s.getUnderlying(ctx, singleID, basketID); err != nil {
		return nil, err
	}
	d.OptionType = gofirds.OptionType(optType.String)
	if d.StrikePrice, err = s.getStrikePrice(ctx, strikeID); err != nil {
		return nil, err
	}
	d.OptionExerciseStyle = gofirds.OptionExerciseStyle(exercise.String)
	d.DeliveryType = gofirds.DeliveryType(delivery.String)
	if d.Commodity, err = s.getCommodityAttrs(ctx, commodityID); err != nil {
		return nil, err
	}
	if d.InterestRate, err = s.getIRAttrs(ctx, irID); err != nil {
		return nil, err
	}
	if d.Fx, err = s.getFxAttrs(ctx, fxID); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, fmt.Errorf("db: parse stored time %q: %w", s.String, err)
	}
	return &t, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
