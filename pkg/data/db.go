package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jpappel/squint/pkg/query"
	_ "github.com/mattn/go-sqlite3"
)

// A single recorded optimization
type Entry struct {
	Id         int64
	QueriedAt  time.Time
	Statement  string
	Table      string
	Conditions int
	Moved      int
}

// History records optimized statements in a sqlite database
type History struct {
	db *sql.DB
}

func NewHistory(filename string) *History {
	return &History{NewDB(filename)}
}

func NewMemHistory() *History {
	db, err := sql.Open("sqlite3", ":memory:?_fk=true")
	if err != nil {
		panic(err)
	}

	if err := createSchema(db); err != nil {
		panic(err)
	}

	return &History{db}
}

func NewDB(filename string) *sql.DB {
	connStr := "file:" + filename + "?_fk=true&_journal=WAL"
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		panic(err)
	}

	if err := createSchema(db); err != nil {
		panic(err)
	}

	return db
}

const schemaVersion = 1

func createSchema(db *sql.DB) error {
	ctx := context.TODO()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Commit()

	var version int
	if err := tx.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		tx.Rollback()
		return err
	}
	if version > schemaVersion {
		tx.Rollback()
		return fmt.Errorf("Unsupported history schema version %d", version)
	}

	_, err = tx.Exec(`
	CREATE TABLE IF NOT EXISTS Optimizations(
		id INTEGER PRIMARY KEY,
		queriedAt INT NOT NULL,
		statement TEXT NOT NULL,
		tbl TEXT NOT NULL,
		conditions INT NOT NULL,
		moved INT NOT NULL
	)`)
	if err != nil {
		tx.Rollback()
		return err
	}

	_, err = tx.Exec(`
	CREATE INDEX IF NOT EXISTS idx_optimizations_queriedAt
	ON Optimizations(queriedAt)
	`)
	if err != nil {
		tx.Rollback()
		return err
	}

	// PRAGMA does not take placeholders
	_, err = tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion))
	if err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

func (h *History) Record(oq query.OptimizedQuery) (int64, error) {
	ctx := context.TODO()
	res, err := h.db.ExecContext(ctx, `
	INSERT INTO Optimizations(queriedAt, statement, tbl, conditions, moved)
	VALUES (?,?,?,?,?)
	`, time.Now().UTC().Unix(), oq.Statement, oq.Table, len(oq.Original), oq.Moved)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// Recent returns up to n entries, newest first
func (h *History) Recent(n int) ([]Entry, error) {
	ctx := context.TODO()
	rows, err := h.db.QueryContext(ctx, `
	SELECT id, queriedAt, statement, tbl, conditions, moved
	FROM Optimizations
	ORDER BY queriedAt DESC, id DESC
	LIMIT ?
	`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0, n)
	for rows.Next() {
		var entry Entry
		var queriedAtEpoch int64

		if err := rows.Scan(&entry.Id, &queriedAtEpoch, &entry.Statement,
			&entry.Table, &entry.Conditions, &entry.Moved); err != nil {
			return nil, err
		}
		entry.QueriedAt = time.Unix(queriedAtEpoch, 0).UTC()

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (h *History) Clear() error {
	_, err := h.db.Exec("DELETE FROM Optimizations")
	return err
}

func (h *History) Close() error {
	return h.db.Close()
}
