package recorder

import (
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sanjayshukla-jarbits/skyroutex-client-sub001/pkg/model"
)

//go:embed schema.sql
var schemaSQL string

// SqliteStore persists records to a SQLite database, one row per record.
type SqliteStore struct {
	db *sql.DB

	closeOnce sync.Once
	closeErr  error
}

// OpenSqliteStore opens or creates the database at path.
func OpenSqliteStore(path string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SqliteStore{db: db}, nil
}

// dsnEscaper keeps characters that delimit a URI filename out of the path.
var dsnEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

func sqliteDSN(path string) string {
	return "file:" + dsnEscaper.Replace(path) + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000"
}

const insertRecordSQL = `
INSERT INTO records (vehicle_id, ts_ms, latitude, longitude, payload)
VALUES (?, ?, ?, ?, ?)`

func (s *SqliteStore) Write(rec model.TelemetryRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling record: %w", err)
	}

	var lat, lon sql.NullFloat64
	if rec.Position != nil {
		lat = sql.NullFloat64{Float64: rec.Position.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: rec.Position.Lon, Valid: true}
	}

	if _, err := s.db.Exec(insertRecordSQL, rec.VehicleID, rec.Timestamp.UnixMilli(), lat, lon, string(payload)); err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *SqliteStore) Count() (n int64, err error) {
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		err = fmt.Errorf("counting records: %w", err)
	}
	return
}

const selectLatestSQL = `
SELECT payload
FROM records
WHERE vehicle_id = ?
ORDER BY ts_ms DESC, id DESC
LIMIT 1`

// Latest returns the newest record for vehicleID. ok is false when none exist.
func (s *SqliteStore) Latest(vehicleID string) (rec model.TelemetryRecord, ok bool, err error) {
	var payload string
	err = s.db.QueryRow(selectLatestSQL, vehicleID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.TelemetryRecord{}, false, nil
	}
	if err != nil {
		return model.TelemetryRecord{}, false, fmt.Errorf("querying latest record: %w", err)
	}
	if err = json.Unmarshal([]byte(payload), &rec); err != nil {
		return model.TelemetryRecord{}, false, fmt.Errorf("decoding record: %w", err)
	}
	return rec, true, nil
}

func (s *SqliteStore) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
