package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"heat-optimizer/internal/demand"
	"heat-optimizer/internal/model"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps results in a SQLite table rewritten on every Save.
type SQLiteStore struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewSQLiteStore opens or creates the database and ensures schema.
func NewSQLiteStore(path string, log zerolog.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	schema := `CREATE TABLE IF NOT EXISTS result_entries (
        seq INTEGER PRIMARY KEY,
        unit_name TEXT NOT NULL,
        timestamp TEXT NOT NULL,
        heat_produced REAL,
        electricity_produced REAL,
        production_cost REAL,
        fuel_consumption REAL,
        co2_emissions REAL
    );`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db, log: log}, nil
}

// Save deletes the previous run and inserts rows in one transaction.
func (s *SQLiteStore) Save(rows []model.ResultEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM result_entries`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO result_entries
        (seq, unit_name, timestamp, heat_produced, electricity_produced, production_cost, fuel_consumption, co2_emissions)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range rows {
		if _, err := stmt.Exec(i, r.UnitName, r.Timestamp.Format(time.RFC3339),
			r.HeatProduced, r.ElectricityProduced, r.ProductionCost, r.FuelConsumption, r.CO2Emissions); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// Load returns rows in insertion order.
func (s *SQLiteStore) Load() ([]model.ResultEntry, error) {
	rows, err := s.db.Query(`SELECT seq, unit_name, timestamp, heat_produced, electricity_produced,
        production_cost, fuel_consumption, co2_emissions
        FROM result_entries ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []model.ResultEntry{}
	for rows.Next() {
		var (
			seq int
			ts  string
			e   model.ResultEntry
		)
		if err := rows.Scan(&seq, &e.UnitName, &ts, &e.HeatProduced, &e.ElectricityProduced,
			&e.ProductionCost, &e.FuelConsumption, &e.CO2Emissions); err != nil {
			s.log.Warn().Err(err).Msg("error reading record")
			continue
		}
		if e.Timestamp, err = demand.ParseTime(ts); err != nil {
			s.log.Warn().Err(err).Int("seq", seq).Msg("error reading record")
			continue
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
