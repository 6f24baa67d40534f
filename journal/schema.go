// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS report_runs (
	run_id TEXT PRIMARY KEY,
	generated DATETIME NOT NULL,
	source TEXT NOT NULL,
	warmup_offset INTEGER NOT NULL,
	start_balance REAL NOT NULL,
	end_balance REAL NOT NULL,
	growth REAL NOT NULL,
	growth_pct REAL NOT NULL,
	deposit_sum REAL NOT NULL,
	withdrawal_sum REAL NOT NULL,
	net_flow REAL NOT NULL,
	total_pnl REAL NOT NULL,
	win_count INTEGER NOT NULL,
	loss_count INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	funding_sum REAL NOT NULL,
	max_balance REAL NOT NULL,
	min_balance REAL NOT NULL,
	max_time TEXT NOT NULL,
	min_time TEXT NOT NULL,
	drawdown REAL NOT NULL,
	max_drawdown_pct REAL NOT NULL,
	total_records INTEGER NOT NULL,
	pnl_trades INTEGER NOT NULL,
	funding_payments INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS balance (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time TEXT NOT NULL,
	balance REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS flow_events (
	run_id TEXT NOT NULL,
	kind TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time TEXT NOT NULL,
	amount REAL NOT NULL,
	balance REAL NOT NULL,
	status TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS pnl_cumsum (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time TEXT NOT NULL,
	amount REAL NOT NULL,
	cumulative REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS monthly_pnl (
	run_id TEXT NOT NULL,
	year_month TEXT NOT NULL,
	amount REAL NOT NULL,
	trades INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS drawdown (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	time TEXT NOT NULL,
	balance REAL NOT NULL,
	peak REAL NOT NULL,
	drawdown REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS type_mix (
	run_id TEXT NOT NULL,
	transact_type TEXT NOT NULL,
	count INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_balance_run ON balance(run_id, seq);
CREATE INDEX IF NOT EXISTS idx_flow_events_run ON flow_events(run_id, kind, seq);
CREATE INDEX IF NOT EXISTS idx_pnl_cumsum_run ON pnl_cumsum(run_id, seq);
CREATE INDEX IF NOT EXISTS idx_monthly_pnl_run ON monthly_pnl(run_id, year_month);
CREATE INDEX IF NOT EXISTS idx_drawdown_run ON drawdown(run_id, seq);
`
