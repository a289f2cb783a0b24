package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"TrendSniper/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_cycles (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle_id      TEXT NOT NULL UNIQUE,
			source        TEXT,
			started_at    INTEGER NOT NULL,
			finished_at   INTEGER NOT NULL,
			universe_size INTEGER,
			examined      INTEGER,
			ideas         INTEGER,
			skipped       INTEGER,
			rejected      INTEGER,
			duplicates    INTEGER,
			failed        INTEGER,
			delivery_err  TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_started ON scan_cycles(started_at)`,

		`CREATE TABLE IF NOT EXISTS trade_ideas (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle_id     TEXT NOT NULL,
			created_at   INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			price        REAL,
			vwap         REAL,
			ma20         REAL,
			ma50         REAL,
			avg_volume   INTEGER,
			last_volume  INTEGER,
			entry        REAL,
			stop         REAL,
			take         REAL,
			shares       INTEGER,
			has_catalyst INTEGER,
			headlines    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_cycle ON trade_ideas(cycle_id)`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_ticker ON trade_ideas(ticker, created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(evt *CycleEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_cycles
		(cycle_id, source, started_at, finished_at, universe_size, examined,
		 ideas, skipped, rejected, duplicates, failed, delivery_err)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		evt.CycleID, evt.Trigger, evt.StartedAt.UnixMilli(), evt.FinishedAt.UnixMilli(),
		evt.UniverseSize, evt.Examined, evt.Ideas, evt.Skipped, evt.Rejected,
		evt.Duplicates, evt.Failed, evt.DeliveryErr,
	)
	if err != nil {
		return fmt.Errorf("insert cycle %s: %w", evt.CycleID, err)
	}
	return nil
}

func (r *SQLiteRecorder) RecordIdea(cycleID string, idea *model.TradeIdea) error {
	headlines, err := json.Marshal(idea.Headlines)
	if err != nil {
		return fmt.Errorf("marshal headlines: %w", err)
	}
	created := idea.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, err = r.db.Exec(`INSERT INTO trade_ideas
		(cycle_id, created_at, ticker, price, vwap, ma20, ma50, avg_volume, last_volume,
		 entry, stop, take, shares, has_catalyst, headlines)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		cycleID, created.UnixMilli(), idea.Ticker, idea.Price, idea.VWAP, idea.MA20, idea.MA50,
		idea.AvgVolume, idea.LastVolume, idea.Entry, idea.Stop, idea.Take, idea.Shares,
		boolToInt(idea.HasCatalyst), string(headlines),
	)
	if err != nil {
		return fmt.Errorf("insert idea %s: %w", idea.Ticker, err)
	}
	return nil
}

// IdeasForCycle loads the ideas recorded for one cycle in insertion order.
func (r *SQLiteRecorder) IdeasForCycle(cycleID string) ([]model.TradeIdea, error) {
	rows, err := r.db.Query(`SELECT created_at, ticker, price, vwap, ma20, ma50, avg_volume,
		last_volume, entry, stop, take, shares, has_catalyst, headlines
		FROM trade_ideas WHERE cycle_id = ? ORDER BY id`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("query ideas: %w", err)
	}
	defer rows.Close()

	var out []model.TradeIdea
	for rows.Next() {
		var (
			idea      model.TradeIdea
			created   int64
			catalyst  int
			headlines string
		)
		if err := rows.Scan(&created, &idea.Ticker, &idea.Price, &idea.VWAP, &idea.MA20, &idea.MA50,
			&idea.AvgVolume, &idea.LastVolume, &idea.Entry, &idea.Stop, &idea.Take, &idea.Shares,
			&catalyst, &headlines); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		idea.CreatedAt = time.UnixMilli(created)
		idea.HasCatalyst = catalyst != 0
		if err := json.Unmarshal([]byte(headlines), &idea.Headlines); err != nil {
			return nil, fmt.Errorf("decode headlines: %w", err)
		}
		out = append(out, idea)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
