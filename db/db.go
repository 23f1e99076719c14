// Package db persists decoded reference records to SQLite. Nested
// sub-records are normalized into their own tables; the handful of benchmark
// rates and terms that recur across millions of records are deduplicated via
// lookup-or-insert.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	_ "modernc.org/sqlite"

	"github.com/gofirds/gofirds"
)

// ErrNotFound is returned when no record matches a lookup.
var ErrNotFound = errors.New("db: record not found")

// Store is a reference-data store backed by one SQLite database.
type Store struct {
	db     *sql.DB
	logger hclog.Logger
}

// Open opens (creating if necessary) the SQLite database at dsn and applies
// the schema. Use ":memory:" for an in-memory store.
func Open(dsn string, logger hclog.Logger) (*Store, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", dsn, err)
	}
	// One connection: SQLite allows a single writer, and a pooled second
	// connection to an in-memory database would see a different database.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec(schemaDDL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db: apply schema: %w", err)
	}
	return &Store{db: conn, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// AddReferenceData stores one record, valid from validFrom until validTo
// (nil meaning still valid). Re-adding a record with the same ISIN and venue
// replaces the previous row, which makes re-loading a file idempotent.
func (s *Store) AddReferenceData(ctx context.Context, rec gofirds.ReferenceData, validFrom time.Time, validTo *time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db: begin: %w", err)
	}
	defer tx.Rollback()

	techID, err := s.addTechAttrs(tx, rec.TechnicalAttributes)
	if err != nil {
		return err
	}
	debtID, err := s.addDebtAttrs(tx, rec.DebtAttributes)
	if err != nil {
		return err
	}
	derivID, err := s.addDerivAttrs(tx, rec.DerivativeAttributes)
	if err != nil {
		return err
	}

	tv := rec.TradingVenueAttrs
	_, err = tx.Exec(`INSERT OR REPLACE INTO reference_data (
			isin, full_name, cfi, is_commodities_derivative, issuer_lei, fisn,
			tv_trading_venue, tv_requested_admission, tv_approval_date,
			tv_request_date, tv_admission_or_first_trade_date, tv_termination_date,
			notional_currency, technical_attributes_id, debt_attributes_id,
			derivative_attributes_id, valid_from, valid_to
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		string(rec.ISIN), rec.FullName, rec.CFI, rec.IsCommoditiesDerivative,
		string(rec.IssuerLEI), rec.FISN,
		tv.TradingVenue, tv.RequestedAdmission, timePtr(tv.ApprovalDate),
		timePtr(tv.RequestDate), timePtr(tv.AdmissionOrFirstTradeDate), timePtr(tv.TerminationDate),
		rec.NotionalCurrency, techID, debtID, derivID,
		validFrom.UTC().Format(time.RFC3339), timePtr(validTo))
	if err != nil {
		return fmt.Errorf("db: insert reference_data: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("db: commit: %w", err)
	}
	s.logger.Debug("stored record", "id", rec.UniqueID())
	return nil
}

// AddRecord stores the record carried by a streaming driver result.
func (s *Store) AddRecord(ctx context.Context, rec gofirds.Record, validFrom time.Time) error {
	// A termination closes the record's validity instead of opening a new
	// period.
	var validTo *time.Time
	if rec.Kind == gofirds.KindTerminated {
		validTo = &validFrom
	}
	return s.AddReferenceData(ctx, rec.ReferenceData, validFrom, validTo)
}

func (s *Store) addPublicationPeriod(tx *sql.Tx, p *gofirds.PublicationPeriod) (sql.NullInt64, error) {
	if p == nil {
		return sql.NullInt64{}, nil
	}
	res, err := tx.Exec(`INSERT INTO publication_period (from_date, to_date) VALUES (?,?)`,
		p.FromDate.UTC().Format(time.RFC3339), timePtr(p.ToDate))
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert publication_period: %w", err)
	}
	return lastID(res)
}

func (s *Store) addTechAttrs(tx *sql.Tx, t *gofirds.TechnicalAttributes) (sql.NullInt64, error) {
	if t == nil {
		return sql.NullInt64{}, nil
	}
	periodID, err := s.addPublicationPeriod(tx, t.PublicationPeriod)
	if err != nil {
		return sql.NullInt64{}, err
	}
	res, err := tx.Exec(`INSERT INTO technical_attributes
			(relevant_competent_authority, publication_period_id, relevant_trading_venue)
			VALUES (?,?,?)`,
		t.RelevantCompetentAuthority, periodID, t.RelevantTradingVenue)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert technical_attributes: %w", err)
	}
	return lastID(res)
}

// getOrAddIndexTerm deduplicates terms on (number, unit).
func (s *Store) getOrAddIndexTerm(tx *sql.Tx, t *gofirds.IndexTerm) (sql.NullInt64, error) {
	if t == nil {
		return sql.NullInt64{}, nil
	}
	var id int64
	err := tx.QueryRow(`SELECT id FROM index_term WHERE number = ? AND unit = ?`,
		t.Number, string(t.Unit)).Scan(&id)
	switch {
	case err == nil:
		return sql.NullInt64{Int64: id, Valid: true}, nil
	case errors.Is(err, sql.ErrNoRows):
	default:
		return sql.NullInt64{}, fmt.Errorf("db: lookup index_term: %w", err)
	}
	res, err := tx.Exec(`INSERT INTO index_term (number, unit) VALUES (?,?)`, t.Number, string(t.Unit))
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert index_term: %w", err)
	}
	return lastID(res)
}

// getOrAddIndex deduplicates indices on (name, isin, term). SQLite's IS
// comparison makes the NULL-valued columns participate in the match.
func (s *Store) getOrAddIndex(tx *sql.Tx, idx *gofirds.Index) (sql.NullInt64, error) {
	if idx == nil {
		return sql.NullInt64{}, nil
	}
	termID, err := s.getOrAddIndexTerm(tx, idx.Term)
	if err != nil {
		return sql.NullInt64{}, err
	}
	var name sql.NullString
	if idx.Name != nil {
		name = sql.NullString{String: idx.Name.Raw(), Valid: true}
	}
	isin := sql.NullString{String: idx.ISIN, Valid: idx.ISIN != ""}

	var id int64
	err = tx.QueryRow(`SELECT id FROM benchmark_index WHERE name IS ? AND isin IS ? AND term_id IS ?`,
		name, isin, termID).Scan(&id)
	switch {
	case err == nil:
		return sql.NullInt64{Int64: id, Valid: true}, nil
	case errors.Is(err, sql.ErrNoRows):
	default:
		return sql.NullInt64{}, fmt.Errorf("db: lookup benchmark_index: %w", err)
	}
	res, err := tx.Exec(`INSERT INTO benchmark_index (name, isin, term_id) VALUES (?,?,?)`, name, isin, termID)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert benchmark_index: %w", err)
	}
	return lastID(res)
}

func (s *Store) getOrAddInterestRate(tx *sql.Tx, r gofirds.InterestRate) (sql.NullInt64, error) {
	benchID, err := s.getOrAddIndex(tx, r.Benchmark)
	if err != nil {
		return sql.NullInt64{}, err
	}
	var id int64
	err = tx.QueryRow(`SELECT id FROM interest_rate WHERE fixed_rate IS ? AND benchmark_id IS ? AND spread IS ?`,
		r.FixedRate, benchID, r.Spread).Scan(&id)
	switch {
	case err == nil:
		return sql.NullInt64{Int64: id, Valid: true}, nil
	case errors.Is(err, sql.ErrNoRows):
	default:
		return sql.NullInt64{}, fmt.Errorf("db: lookup interest_rate: %w", err)
	}
	res, err := tx.Exec(`INSERT INTO interest_rate (fixed_rate, benchmark_id, spread) VALUES (?,?,?)`,
		r.FixedRate, benchID, r.Spread)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert interest_rate: %w", err)
	}
	return lastID(res)
}

func (s *Store) addDebtAttrs(tx *sql.Tx, d *gofirds.DebtAttributes) (sql.NullInt64, error) {
	if d == nil {
		return sql.NullInt64{}, nil
	}
	rateID, err := s.getOrAddInterestRate(tx, d.InterestRate)
	if err != nil {
		return sql.NullInt64{}, err
	}
	res, err := tx.Exec(`INSERT INTO debt_attributes
			(total_issued_amount, maturity_date, nominal_currency, nominal_value_per_unit, interest_rate_id, seniority)
			VALUES (?,?,?,?,?,?)`,
		d.TotalIssuedAmount, timePtr(d.MaturityDate), d.NominalCurrency,
		d.NominalValuePerUnit, rateID, nullStr(string(d.Seniority)))
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert debt_attributes: %w", err)
	}
	return lastID(res)
}

func (s *Store) addStrikePrice(tx *sql.Tx, sp *gofirds.StrikePrice) (sql.NullInt64, error) {
	if sp == nil {
		return sql.NullInt64{}, nil
	}
	res, err := tx.Exec(`INSERT INTO strike_price (type, price, pending, currency) VALUES (?,?,?,?)`,
		string(sp.Type), sp.Price, sp.Pending, nullStr(sp.Currency))
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert strike_price: %w", err)
	}
	return lastID(res)
}

func (s *Store) addUnderlying(tx *sql.Tx, u *gofirds.DerivativeUnderlying) (singleID, basketID sql.NullInt64, err error) {
	if u == nil {
		return sql.NullInt64{}, sql.NullInt64{}, nil
	}
	if u.Single != nil {
		indexID, err := s.getOrAddIndex(tx, u.Single.Index)
		if err != nil {
			return sql.NullInt64{}, sql.NullInt64{}, err
		}
		res, err := tx.Exec(`INSERT INTO underlying_single (isin, index_id, issuer_lei) VALUES (?,?,?)`,
			nullStr(u.Single.ISIN), indexID, nullStr(u.Single.IssuerLEI))
		if err != nil {
			return sql.NullInt64{}, sql.NullInt64{}, fmt.Errorf("db: insert underlying_single: %w", err)
		}
		singleID, err = lastID(res)
		return singleID, sql.NullInt64{}, err
	}
	if u.Basket != nil {
		res, err := tx.Exec(`INSERT INTO underlying_basket (isins, issuer_leis) VALUES (?,?)`,
			strings.Join(u.Basket.ISINs, ","), strings.Join(u.Basket.IssuerLEIs, ","))
		if err != nil {
			return sql.NullInt64{}, sql.NullInt64{}, fmt.Errorf("db: insert underlying_basket: %w", err)
		}
		basketID, err = lastID(res)
		return sql.NullInt64{}, basketID, err
	}
	return sql.NullInt64{}, sql.NullInt64{}, nil
}

func (s *Store) addCommodityAttrs(tx *sql.Tx, c *gofirds.CommodityDerivativeAttributes) (sql.NullInt64, error) {
	if c == nil {
		return sql.NullInt64{}, nil
	}
	res, err := tx.Exec(`INSERT INTO commodity_derivative_attributes
			(base_product, sub_product, further_sub_product, transaction_type, final_price_type)
			VALUES (?,?,?,?,?)`,
		string(c.BaseProduct), nullStr(string(c.SubProduct)), nullStr(string(c.FurtherSubProduct)),
		nullStr(string(c.TransactionType)), nullStr(string(c.FinalPriceType)))
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert commodity_derivative_attributes: %w", err)
	}
	return lastID(res)
}

func (s *Store) addIRAttrs(tx *sql.Tx, ir *gofirds.InterestRateDerivativeAttributes) (sql.NullInt64, error) {
	if ir == nil {
		return sql.NullInt64{}, nil
	}
	refID, err := s.getOrAddIndex(tx, &ir.ReferenceRate)
	if err != nil {
		return sql.NullInt64{}, err
	}
	floatID, err := s.getOrAddIndex(tx, ir.FloatingRate2)
	if err != nil {
		return sql.NullInt64{}, err
	}
	res, err := tx.Exec(`INSERT INTO ir_derivative_attributes
			(reference_rate_id, notional_currency_2, fixed_rate_1, fixed_rate_2, floating_rate_2_id)
			VALUES (?,?,?,?,?)`,
		refID, nullStr(ir.NotionalCurrency2), ir.FixedRate1, ir.FixedRate2, floatID)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert ir_derivative_attributes: %w", err)
	}
	return lastID(res)
}

func (s *Store) addFxAttrs(tx *sql.Tx, fx *gofirds.FxDerivativeAttributes) (sql.NullInt64, error) {
	if fx == nil {
		return sql.NullInt64{}, nil
	}
	res, err := tx.Exec(`INSERT INTO fx_derivative_attributes (notional_currency_2, fx_type) VALUES (?,?)`,
		fx.NotionalCurrency2, string(fx.FxType))
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert fx_derivative_attributes: %w", err)
	}
	return lastID(res)
}

func (s *Store) addDerivAttrs(tx *sql.Tx, d *gofirds.DerivativeAttributes) (sql.NullInt64, error) {
	if d == nil {
		return sql.NullInt64{}, nil
	}
	singleID, basketID, err := s.addUnderlying(tx, d.Underlying)
	if err != nil {
		return sql.NullInt64{}, err
	}
	strikeID, err := s.addStrikePrice(tx, d.StrikePrice)
	if err != nil {
		return sql.NullInt64{}, err
	}
	commodityID, err := s.addCommodityAttrs(tx, d.Commodity)
	if err != nil {
		return sql.NullInt64{}, err
	}
	irID, err := s.addIRAttrs(tx, d.InterestRate)
	if err != nil {
		return sql.NullInt64{}, err
	}
	fxID, err := s.addFxAttrs(tx, d.Fx)
	if err != nil {
		return sql.NullInt64{}, err
	}
	res, err := tx.Exec(`INSERT INTO derivative_attributes
			(expiry_date, price_multiplier, underlying_single_id, underlying_basket_id,
			 option_type, strike_price_id, option_exercise_style, delivery_type,
			 commodity_attributes_id, ir_attributes_id, fx_attributes_id)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		timePtr(d.ExpiryDate), d.PriceMultiplier, singleID, basketID,
		nullStr(string(d.OptionType)), strikeID, nullStr(string(d.OptionExerciseStyle)),
		nullStr(string(d.DeliveryType)), commodityID, irID, fxID)
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: insert derivative_attributes: %w", err)
	}
	return lastID(res)
}

func lastID(res sql.Result) (sql.NullInt64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return sql.NullInt64{}, fmt.Errorf("db: last insert id: %w", err)
	}
	return sql.NullInt64{Int64: id, Valid: true}, nil
}

func timePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
