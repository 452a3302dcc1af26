package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"DragonLens/internal/model"
	"DragonLens/internal/query"

	_ "modernc.org/sqlite"
)

// ErrUnknownSchema is returned for bar schemas the store was not opened with.
var ErrUnknownSchema = errors.New("unknown bar schema")

const disclosureTable = "dragon_and_tiger"

const disclosureSelect = `SELECT entity_id, timestamp, provider, code, name, reason, change_pct,
	dep1, dep1_rate, dep2, dep2_rate, dep3, dep3_rate,
	dep_1, dep_1_rate, dep_2, dep_2_rate, dep_3, dep_3_rate
	FROM ` + disclosureTable

const barSelect = `SELECT entity_id, timestamp, provider, open, high, low, close, volume, turnover, turnover_rate FROM `

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore reads disclosures and daily bars from a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.Mutex // serializes bulk inserts
	tables map[string]bool
}

// NewSQLiteStore opens (or creates) the SQLite database and migrates the
// disclosure table plus one bar table per schema.
func NewSQLiteStore(dbPath string, schemas []model.BarSchema) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, tables: make(map[string]bool, len(schemas))}
	if err := s.migrate(schemas); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s (%d bar tables)", dbPath, len(schemas))
	return s, nil
}

func (s *SQLiteStore) migrate(schemas []model.BarSchema) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS dragon_and_tiger (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			entity_id   TEXT NOT NULL,
			timestamp   INTEGER NOT NULL,
			provider    TEXT NOT NULL DEFAULT '',
			code        TEXT,
			name        TEXT,
			reason      TEXT,
			change_pct  REAL,
			dep1        TEXT,
			dep1_rate   REAL,
			dep2        TEXT,
			dep2_rate   REAL,
			dep3        TEXT,
			dep3_rate   REAL,
			dep_1       TEXT,
			dep_1_rate  REAL,
			dep_2       TEXT,
			dep_2_rate  REAL,
			dep_3       TEXT,
			dep_3_rate  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dt_ts ON dragon_and_tiger(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_dt_entity ON dragon_and_tiger(entity_id, timestamp)`,
	}
	for _, sc := range schemas {
		stmts = append(stmts,
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				entity_id     TEXT NOT NULL,
				timestamp     INTEGER NOT NULL,
				provider      TEXT NOT NULL DEFAULT '',
				open          REAL,
				high          REAL,
				low           REAL,
				close         REAL,
				volume        REAL,
				turnover      REAL,
				turnover_rate REAL,
				PRIMARY KEY (provider, entity_id, timestamp)
			)`, sc.Table),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_ts ON %s(timestamp)`, sc.Table, sc.Table),
		)
		s.tables[sc.Table] = true
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func (s *SQLiteStore) QueryDisclosures(ctx context.Context, q query.Query) ([]model.Disclosure, error) {
	where, args, err := q.Where(disclosureColumns)
	if err != nil {
		return nil, err
	}
	order, err := q.Order(disclosureColumns, "timestamp", "id")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, disclosureSelect+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("query disclosures: %w", err)
	}
	defer rows.Close()

	var out []model.Disclosure
	for rows.Next() {
		var (
			d                 model.Disclosure
			ts                int64
			code, name, why   sql.NullString
			change            sql.NullFloat64
			buyName, sellName [3]sql.NullString
			buyRate, sellRate [3]sql.NullFloat64
		)
		err := rows.Scan(&d.EntityID, &ts, &d.Provider, &code, &name, &why, &change,
			&buyName[0], &buyRate[0], &buyName[1], &buyRate[1], &buyName[2], &buyRate[2],
			&sellName[0], &sellRate[0], &sellName[1], &sellRate[1], &sellName[2], &sellRate[2],
		)
		if err != nil {
			return nil, fmt.Errorf("scan disclosure: %w", err)
		}
		d.Time = time.Unix(ts, 0).UTC()
		d.Code, d.Name, d.Reason = code.String, name.String, why.String
		d.ChangePct = change.Float64
		for i := 0; i < 3; i++ {
			d.Buy[i] = model.DeskSlot{Name: buyName[i].String, Rate: buyRate[i].Float64}
			d.Sell[i] = model.DeskSlot{Name: sellName[i].String, Rate: sellRate[i].Float64}
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) QueryBars(ctx context.Context, schema model.BarSchema, q query.Query) ([]model.DailyBar, error) {
	if !s.tables[schema.Table] {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSchema, schema.Table)
	}
	where, args, err := q.Where(barColumns)
	if err != nil {
		return nil, err
	}
	order, err := q.Order(barColumns, "timestamp", "entity_id")
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, barSelect+schema.Table+where+order, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", schema.Table, err)
	}
	defer rows.Close()

	var out []model.DailyBar
	for rows.Next() {
		var (
			b      model.DailyBar
			ts     int64
			values [7]sql.NullFloat64
		)
		if err := rows.Scan(&b.EntityID, &ts, &b.Provider,
			&values[0], &values[1], &values[2], &values[3], &values[4], &values[5], &values[6]); err != nil {
			return nil, fmt.Errorf("scan %s: %w", schema.Table, err)
		}
		b.Time = time.Unix(ts, 0).UTC()
		b.Open, b.High, b.Low, b.Close = values[0].Float64, values[1].Float64, values[2].Float64, values[3].Float64
		b.Volume, b.Turnover, b.TurnoverRate = values[4].Float64, values[5].Float64, values[6].Float64
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) LatestBarDate(ctx context.Context, schema model.BarSchema, provider string) (time.Time, error) {
	if !s.tables[schema.Table] {
		return time.Time{}, fmt.Errorf("%w: %q", ErrUnknownSchema, schema.Table)
	}
	where, args, err := query.Query{Provider: provider}.Where(barColumns)
	if err != nil {
		return time.Time{}, err
	}

	var ts sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT MAX(timestamp) FROM "+schema.Table+where, args...).Scan(&ts); err != nil {
		return time.Time{}, fmt.Errorf("latest %s: %w", schema.Table, err)
	}
	if !ts.Valid {
		return time.Time{}, nil
	}
	return time.Unix(ts.Int64, 0).UTC(), nil
}

// InsertDisclosures bulk-loads externally sourced disclosure rows.
func (s *SQLiteStore) InsertDisclosures(ctx context.Context, rows []model.Disclosure) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, `INSERT INTO dragon_and_tiger
		(entity_id, timestamp, provider, code, name, reason, change_pct,
		 dep1, dep1_rate, dep2, dep2_rate, dep3, dep3_rate,
		 dep_1, dep_1_rate, dep_2, dep_2_rate, dep_3, dep_3_rate)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		len(rows), func(stmt *sql.Stmt, i int) error {
			d := rows[i]
			args := []any{d.EntityID, d.Time.Unix(), d.Provider, d.Code, d.Name, d.Reason, d.ChangePct}
			for _, slot := range d.Buy {
				args = append(args, slotArgs(slot)...)
			}
			for _, slot := range d.Sell {
				args = append(args, slotArgs(slot)...)
			}
			_, err := stmt.ExecContext(ctx, args...)
			return err
		})
}

// InsertBars bulk-loads daily bars into the schema's table, replacing rows
// with the same (provider, entity, timestamp).
func (s *SQLiteStore) InsertBars(ctx context.Context, schema model.BarSchema, bars []model.DailyBar) error {
	if !s.tables[schema.Table] {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, schema.Table)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.inTx(ctx, `INSERT OR REPLACE INTO `+schema.Table+`
		(entity_id, timestamp, provider, open, high, low, close, volume, turnover, turnover_rate)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		len(bars), func(stmt *sql.Stmt, i int) error {
			b := bars[i]
			_, err := stmt.ExecContext(ctx, b.EntityID, b.Time.Unix(), b.Provider,
				b.Open, b.High, b.Low, b.Close, b.Volume, b.Turnover, b.TurnoverRate)
			return err
		})
}

func (s *SQLiteStore) inTx(ctx context.Context, insert string, n int, exec func(*sql.Stmt, int) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}

// Empty desk slots are stored as NULL.
func slotArgs(slot model.DeskSlot) []any {
	if slot.Name == "" {
		return []any{nil, nil}
	}
	return []any{slot.Name, slot.Rate}
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
