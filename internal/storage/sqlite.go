package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"docinherit/internal/docstring"
	"docinherit/internal/graph"
	"docinherit/internal/inherit"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when no stored entry has the requested name.
var ErrNotFound = errors.New("not found")

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS classes (
			id TEXT PRIMARY KEY,
			name TEXT,
			module TEXT,
			filepath TEXT,
			start_line INTEGER,
			metaclass TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS bases (
			class_id TEXT,
			position INTEGER,
			base_id TEXT,
			kind TEXT,
			PRIMARY KEY (class_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS docstrings (
			qualname TEXT PRIMARY KEY,
			kind TEXT,
			filepath TEXT,
			line INTEGER,
			dialect TEXT,
			original TEXT,
			docstring TEXT,
			changed INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS warnings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			qualname TEXT,
			filepath TEXT,
			section TEXT,
			message TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_docstrings_file ON docstrings(filepath);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// --- ClassGraphStore Implementation ---

func (s *SQLiteStore) SaveGraph(ctx context.Context, g *graph.Graph) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Snapshot semantics: classes gone from the graph disappear.
	for _, q := range []string{"DELETE FROM bases", "DELETE FROM classes"} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO classes (id, name, module, filepath, start_line, metaclass)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	baseStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bases (class_id, position, base_id, kind) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer baseStmt.Close()

	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		c := g.Nodes[id].Class
		if _, err := stmt.ExecContext(ctx, id, c.Name, c.Module, c.Filepath, c.StartLine, c.Metaclass); err != nil {
			return err
		}
		for pos, base := range g.Bases(id) {
			if _, err := baseStmt.ExecContext(ctx, id, pos, base, graph.RelationInherits); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) Bases(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT base_id FROM bases WHERE class_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("failed to query bases: %w", err)
	}
	defer rows.Close()

	var bases []string
	for rows.Next() {
		var base string
		if err := rows.Scan(&base); err != nil {
			return nil, fmt.Errorf("failed to scan base: %w", err)
		}
		bases = append(bases, base)
	}
	return bases, rows.Err()
}

// --- DocstringStore Implementation ---

func (s *SQLiteStore) SaveTable(ctx context.Context, t *inherit.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{"DELETE FROM warnings", "DELETE FROM docstrings"} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return err
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO docstrings (qualname, kind, filepath, line, dialect, original, docstring, changed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range t.Entries {
		if _, err := stmt.ExecContext(ctx, e.QualName, e.Kind, e.File, e.Line, e.Dialect,
			nullString(e.Original), nullString(e.Docstring), e.Changed); err != nil {
			return err
		}
	}

	warnStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO warnings (qualname, filepath, section, message) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer warnStmt.Close()

	for _, w := range t.Warnings {
		if _, err := warnStmt.ExecContext(ctx, w.Unit, w.File, w.Section, w.Message); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const entryColumns = "qualname, kind, filepath, line, dialect, original, docstring, changed"

func (s *SQLiteStore) LoadTable(ctx context.Context) (*inherit.Table, error) {
	entries, err := s.queryEntries(ctx, "SELECT "+entryColumns+" FROM docstrings ORDER BY rowid")
	if err != nil {
		return nil, err
	}

	t := inherit.NewTable()
	for _, e := range entries {
		t.Add(e)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT qualname, filepath, section, message FROM warnings ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query warnings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w docstring.Warning
		if err := rows.Scan(&w.Unit, &w.File, &w.Section, &w.Message); err != nil {
			return nil, fmt.Errorf("failed to scan warning: %w", err)
		}
		t.AddWarning(w)
	}
	return t, rows.Err()
}

func (s *SQLiteStore) GetDocstring(ctx context.Context, qualname string) (*inherit.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM docstrings WHERE qualname = ?", qualname)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, qualname)
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *SQLiteStore) FindByFile(ctx context.Context, filepath string) ([]inherit.Entry, error) {
	return s.queryEntries(ctx, "SELECT "+entryColumns+" FROM docstrings WHERE filepath = ? ORDER BY rowid", filepath)
}

func (s *SQLiteStore) queryEntries(ctx context.Context, query string, args ...any) ([]inherit.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query docstrings: %w", err)
	}
	defer rows.Close()

	var entries []inherit.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan docstring: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (inherit.Entry, error) {
	var e inherit.Entry
	var kind string
	var original, doc sql.NullString
	if err := row.Scan(&e.QualName, &kind, &e.File, &e.Line, &e.Dialect, &original, &doc, &e.Changed); err != nil {
		return inherit.Entry{}, err
	}
	e.Kind = inherit.Kind(kind)
	if original.Valid {
		e.Original = &original.String
	}
	if doc.Valid {
		e.Docstring = &doc.String
	}
	return e, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
