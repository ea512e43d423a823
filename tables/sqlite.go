package tables

import (
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/timpalpant/lookerup"
)

const schema = `
CREATE TABLE IF NOT EXISTS patterns (
	name            TEXT NOT NULL,
	self_depth      INTEGER NOT NULL,
	opp_depth       INTEGER NOT NULL,
	opp_start_depth INTEGER NOT NULL,
	idx             INTEGER NOT NULL,
	value           TEXT NOT NULL,
	PRIMARY KEY (name, self_depth, opp_depth, opp_start_depth, idx)
);
`

// SQLiteStore keeps pattern data in a SQLite database, one row per entry.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if necessary) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open db")
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "pragma")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Put replaces the pattern stored under id.
func (s *SQLiteStore) Put(id lookerup.TableID, pattern []lookerup.RawValue) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	w := id.Window
	if _, err := tx.Exec(
		`DELETE FROM patterns
		 WHERE name = ? AND self_depth = ? AND opp_depth = ? AND opp_start_depth = ?`,
		id.Name, w.Self, w.Opp, w.OppStart,
	); err != nil {
		return errors.Wrapf(err, "delete %v", id)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO patterns (name, self_depth, opp_depth, opp_start_depth, idx, value)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer stmt.Close()

	for i, v := range pattern {
		if _, err := stmt.Exec(id.Name, w.Self, w.Opp, w.OppStart, i, v.String()); err != nil {
			return errors.Wrapf(err, "insert %v[%d]", id, i)
		}
	}

	return errors.Wrap(tx.Commit(), "commit")
}

// Pattern implements lookerup.PatternProvider.
func (s *SQLiteStore) Pattern(id lookerup.TableID) ([]lookerup.RawValue, error) {
	w := id.Window
	rows, err := s.db.Query(
		`SELECT idx, value FROM patterns
		 WHERE name = ? AND self_depth = ? AND opp_depth = ? AND opp_start_depth = ?
		 ORDER BY idx`,
		id.Name, w.Self, w.Opp, w.OppStart,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "query %v", id)
	}
	defer rows.Close()

	var pattern []lookerup.RawValue
	for rows.Next() {
		var idx int
		var value string
		if err := rows.Scan(&idx, &value); err != nil {
			return nil, errors.Wrapf(err, "scan %v", id)
		}
		if idx != len(pattern) {
			return nil, errors.Errorf("%v: missing entry %d", id, len(pattern))
		}

		v, err := lookerup.ParseRawValue(value)
		if err != nil {
			return nil, errors.Wrapf(err, "%v[%d]", id, idx)
		}
		pattern = append(pattern, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(pattern) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "%v", id)
	}
	return pattern, nil
}

// List returns the stored TableIDs sorted by name, then window.
func (s *SQLiteStore) List() ([]lookerup.TableID, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT name, self_depth, opp_depth, opp_start_depth FROM patterns`)
	if err != nil {
		return nil, errors.Wrap(err, "list tables")
	}
	defer rows.Close()

	var result []lookerup.TableID
	for rows.Next() {
		var id lookerup.TableID
		if err := rows.Scan(&id.Name, &id.Window.Self, &id.Window.Opp, &id.Window.OppStart); err != nil {
			return nil, errors.Wrap(err, "scan table id")
		}
		result = append(result, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortIDs(result)
	return result, nil
}
