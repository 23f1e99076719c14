package db

// schemaDDL creates the normalized store. Reference records are keyed by
// ISIN plus trading venue MIC; shared sub-records (index terms, indices,
// interest rates) are deduplicated through unique constraints and
// lookup-or-insert, since a handful of benchmark rates recur across millions
// of records.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS publication_period (
	id        INTEGER PRIMARY KEY,
	from_date TEXT NOT NULL,
	to_date   TEXT
);

CREATE TABLE IF NOT EXISTS technical_attributes (
	id                           INTEGER PRIMARY KEY,
	relevant_competent_authority TEXT NOT NULL,
	publication_period_id        INTEGER REFERENCES publication_period(id),
	relevant_trading_venue       TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS index_term (
	id     INTEGER PRIMARY KEY,
	number INTEGER NOT NULL,
	unit   TEXT NOT NULL,
	UNIQUE (number, unit)
);

CREATE TABLE IF NOT EXISTS benchmark_index (
	id      INTEGER PRIMARY KEY,
	name    TEXT,
	isin    TEXT,
	term_id INTEGER REFERENCES index_term(id),
	UNIQUE (name, isin, term_id)
);

CREATE TABLE IF NOT EXISTS interest_rate (
	id           INTEGER PRIMARY KEY,
	fixed_rate   REAL,
	benchmark_id INTEGER REFERENCES benchmark_index(id),
	spread       INTEGER,
	UNIQUE (fixed_rate, benchmark_id, spread)
);

CREATE TABLE IF NOT EXISTS debt_attributes (
	id                     INTEGER PRIMARY KEY,
	total_issued_amount    REAL NOT NULL,
	maturity_date          TEXT,
	nominal_currency       TEXT NOT NULL,
	nominal_value_per_unit REAL NOT NULL,
	interest_rate_id       INTEGER REFERENCES interest_rate(id),
	seniority              TEXT
);

CREATE TABLE IF NOT EXISTS strike_price (
	id       INTEGER PRIMARY KEY,
	type     TEXT NOT NULL,
	price    REAL,
	pending  INTEGER NOT NULL DEFAULT 0,
	currency TEXT
);

CREATE TABLE IF NOT EXISTS underlying_single (
	id         INTEGER PRIMARY KEY,
	isin       TEXT,
	index_id   INTEGER REFERENCES benchmark_index(id),
	issuer_lei TEXT
);

CREATE TABLE IF NOT EXISTS underlying_basket (
	id          INTEGER PRIMARY KEY,
	isins       TEXT,
	issuer_leis TEXT
);

CREATE TABLE IF NOT EXISTS commodity_derivative_attributes (
	id                  INTEGER PRIMARY KEY,
	base_product        TEXT NOT NULL,
	sub_product         TEXT,
	further_sub_product TEXT,
	transaction_type    TEXT,
	final_price_type    TEXT
);

CREATE TABLE IF NOT EXISTS ir_derivative_attributes (
	id                  INTEGER PRIMARY KEY,
	reference_rate_id   INTEGER NOT NULL REFERENCES benchmark_index(id),
	notional_currency_2 TEXT,
	fixed_rate_1        REAL,
	fixed_rate_2        REAL,
	floating_rate_2_id  INTEGER REFERENCES benchmark_index(id)
);

CREATE TABLE IF NOT EXISTS fx_derivative_attributes (
	id                  INTEGER PRIMARY KEY,
	notional_currency_2 TEXT NOT NULL,
	fx_type             TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS derivative_attributes (
	id                       INTEGER PRIMARY KEY,
	expiry_date              TEXT,
	price_multiplier         REAL,
	underlying_single_id     INTEGER REFERENCES underlying_single(id),
	underlying_basket_id     INTEGER REFERENCES underlying_basket(id),
	option_type              TEXT,
	strike_price_id          INTEGER REFERENCES strike_price(id),
	option_exercise_style    TEXT,
	delivery_type            TEXT,
	commodity_attributes_id  INTEGER REFERENCES commodity_derivative_attributes(id),
	ir_attributes_id         INTEGER REFERENCES ir_derivative_attributes(id),
	fx_attributes_id         INTEGER REFERENCES fx_derivative_attributes(id)
);

CREATE TABLE IF NOT EXISTS reference_data (
	isin                             TEXT NOT NULL,
	full_name                        TEXT NOT NULL,
	cfi                              TEXT NOT NULL,
	is_commodities_derivative        INTEGER NOT NULL,
	issuer_lei                       TEXT NOT NULL,
	fisn                             TEXT,
	tv_trading_venue                 TEXT NOT NULL,
	tv_requested_admission           INTEGER NOT NULL,
	tv_approval_date                 TEXT,
	tv_request_date                  TEXT,
	tv_admission_or_first_trade_date TEXT,
	tv_termination_date              TEXT,
	notional_currency                TEXT NOT NULL,
	technical_attributes_id          INTEGER REFERENCES technical_attributes(id),
	debt_attributes_id               INTEGER REFERENCES debt_attributes(id),
	derivative_attributes_id         INTEGER REFERENCES derivative_attributes(id),
	valid_from                       TEXT NOT NULL,
	valid_to                         TEXT,
	PRIMARY KEY (isin, tv_trading_venue)
);
`
