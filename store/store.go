// Package store caches assembled operators in a sqlite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/fumin/quijy/mat"
)

const (
	tableOperator = "operator"
	tableEntry    = "entry"
)

// ErrNotFound is returned by Get for keys that were never stored.
var ErrNotFound = errors.New("not found")

type Store struct {
	Path string

	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	s := &Store{Path: dbPath}
	var err error
	s.db, err = newDB(dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores m under key, replacing any previous operator.
func (s *Store) Put(ctx context.Context, key string, m *mat.COO) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err := deleteKey(ctx, tx, key); err != nil {
		return errors.Wrap(err, "")
	}
	sqlStr := fmt.Sprintf(`INSERT INTO %s (name, nrows, ncols) VALUES (?, ?, ?)`, tableOperator)
	if _, err := tx.ExecContext(ctx, sqlStr, key, m.Rows(), m.Cols()); err != nil {
		return errors.Wrap(err, fmt.Sprintf("%s %s", sqlStr, key))
	}

	sqlStr = fmt.Sprintf(`INSERT INTO %s (name, i, j, re, im) VALUES (?, ?, ?, ?, ?)`, tableEntry)
	stmt, err := tx.PrepareContext(ctx, sqlStr)
	if err != nil {
		return errors.Wrap(err, sqlStr)
	}
	defer stmt.Close()
	for ij, v := range m.All() {
		if _, err := stmt.ExecContext(ctx, key, ij[0], ij[1], real(v), imag(v)); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%s %v %v", key, ij, v))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Get returns the operator stored under key.
func (s *Store) Get(ctx context.Context, key string) (*mat.COO, error) {
	sqlStr := fmt.Sprintf(`SELECT nrows, ncols FROM %s WHERE name=?`, tableOperator)
	var rows, cols int
	err := s.db.QueryRowContext(ctx, sqlStr, key).Scan(&rows, &cols)
	switch {
	case err == sql.ErrNoRows:
		return nil, errors.Wrap(ErrNotFound, key)
	case err != nil:
		return nil, errors.Wrap(err, key)
	}
	m := mat.Zeros(rows, cols)

	sqlStr = fmt.Sprintf(`SELECT i, j, re, im FROM %s WHERE name=? ORDER BY i, j`, tableEntry)
	entries, err := s.db.QueryContext(ctx, sqlStr, key)
	if err != nil {
		return nil, errors.Wrap(err, key)
	}
	defer entries.Close()
	for entries.Next() {
		var i, j int
		var re, im float64
		if err := entries.Scan(&i, &j, &re, &im); err != nil {
			return nil, errors.Wrap(err, key)
		}
		m.Append(i, j, complex(re, im))
	}
	if err := entries.Err(); err != nil {
		return nil, errors.Wrap(err, key)
	}

	return m, nil
}

// Delete removes the operator stored under key, if any.
func (s *Store) Delete(ctx context.Context, key string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "")
	}
	if err := deleteKey(ctx, tx, key); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "")
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "")
	}
	return nil
}

// Keys returns the stored keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	sqlStr := fmt.Sprintf(`SELECT name FROM %s ORDER BY name`, tableOperator)
	rows, err := s.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, errors.Wrap(err, "")
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, "")
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "")
	}
	return keys, nil
}

func deleteKey(ctx context.Context, tx *sql.Tx, key string) error {
	for _, table := range []string{tableEntry, tableOperator} {
		sqlStr := fmt.Sprintf(`DELETE FROM %s WHERE name=?`, table)
		if _, err := tx.ExecContext(ctx, sqlStr, key); err != nil {
			return errors.Wrap(err, fmt.Sprintf("%s %s", sqlStr, key))
		}
	}
	return nil
}

func newDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s", dbPath))
	if err != nil {
		return nil, errors.Wrap(err, "")
	}

	if err := prepareDB(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "")
	}

	return db, nil
}

func prepareDB(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	sqlStrs := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT, nrows INTEGER, ncols INTEGER, PRIMARY KEY (name)) STRICT`, tableOperator),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (name TEXT, i INTEGER, j INTEGER, re REAL, im REAL, PRIMARY KEY (name, i, j)) STRICT`, tableEntry),
	}
	for _, sqlStr := range sqlStrs {
		if _, err := db.ExecContext(ctx, sqlStr); err != nil {
			return errors.Wrap(err, sqlStr)
		}
	}
	return nil
}
