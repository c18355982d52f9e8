package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/wordstats/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
)

// DatabaseName is the file name of the database inside the data directory.
const DatabaseName = "wordstats.db"

const (
	txMaxRetries = 5
	txRetryBase  = 50 * time.Millisecond
)

// Store is the SQLite-backed file and word store.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

var (
	_ driven.FileStore = (*Store)(nil)
	_ driven.WordStore = (*Store)(nil)
)

// NewStore opens (creating if needed) the database in dataDir and migrates it.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("%w: data directory is required", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseName)

	// WAL plus busy timeout lets the server and CLI share the file.
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		now:  time.Now,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations in version order.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, script string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(script); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== File Store ====================

// CreateFile inserts the file row and its occurrences in one transaction.
// On success file.ID and file.UploadedAt are set.
func (s *Store) CreateFile(ctx context.Context, file *domain.File, counts map[string]int) error {
	if err := validateCounts(counts); err != nil {
		return err
	}

	uploadedAt := s.now().UTC()
	var id int64
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO files (blob_key, name, uploaded_at) VALUES (?, ?, ?)",
			file.BlobKey, file.Name, uploadedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("inserting file: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading file id: %w", err)
		}
		return ingestTx(ctx, tx, id, counts)
	})
	if err != nil {
		return err
	}

	file.ID = id
	file.UploadedAt = uploadedAt
	return nil
}

// GetFile retrieves a file by ID.
func (s *Store) GetFile(ctx context.Context, id int64) (*domain.File, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, blob_key, name, uploaded_at FROM files WHERE id = ?", id)
	file, err := scanFile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting file %d: %w", id, err)
	}
	return file, nil
}

// ListFiles returns all files ordered by ID.
func (s *Store) ListFiles(ctx context.Context) ([]domain.File, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, blob_key, name, uploaded_at FROM files ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	files := []domain.File{}
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, *file)
	}
	return files, rows.Err()
}

// CountFiles returns the number of files.
func (s *Store) CountFiles(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM files").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting files: %w", err)
	}
	return n, nil
}

// DeleteFile removes a file. Its occurrences go with it; words stay.
func (s *Store) DeleteFile(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM files WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting file %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting file %d: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ==================== Word Store ====================

// Ingest records counts for an existing file that has none yet.
func (s *Store) Ingest(ctx context.Context, fileID int64, counts map[string]int) error {
	if err := validateCounts(counts); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM files WHERE id = ?", fileID).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("checking file %d: %w", fileID, err)
		}

		var recorded int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM occurrences WHERE file_id = ?", fileID).Scan(&recorded)
		if err != nil {
			return fmt.Errorf("checking occurrences of file %d: %w", fileID, err)
		}
		if recorded > 0 {
			return fmt.Errorf("file %d: %w", fileID, domain.ErrAlreadyExists)
		}

		return ingestTx(ctx, tx, fileID, counts)
	})
}

// withTx runs fn in a transaction and commits it. Attempts that fail
// because the database is busy or locked are retried with a Fibonacci
// backoff; any other error is returned as is.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	b := retry.WithMaxRetries(txMaxRetries, retry.NewFibonacci(txRetryBase))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := s.runTx(ctx, fn)
		if isBusyErr(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (s *Store) runTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ingestTx upserts each word and inserts its occurrence row.
func ingestTx(ctx context.Context, tx *sql.Tx, fileID int64, counts map[string]int) error {
	if len(counts) == 0 {
		return nil
	}

	upsertWord, err := tx.PrepareContext(ctx, `
		INSERT INTO words (text) VALUES (?)
		ON CONFLICT(text) DO UPDATE SET text = excluded.text
		RETURNING id`)
	if err != nil {
		return fmt.Errorf("preparing word upsert: %w", err)
	}
	defer upsertWord.Close()

	insertOcc, err := tx.PrepareContext(ctx,
		"INSERT INTO occurrences (file_id, word_id, count) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing occurrence insert: %w", err)
	}
	defer insertOcc.Close()

	// New words in one upload get ids in alphabetical order.
	texts := make([]string, 0, len(counts))
	for text := range counts {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	for _, text := range texts {
		var wordID int64
		if err := upsertWord.QueryRowContext(ctx, text).Scan(&wordID); err != nil {
			return fmt.Errorf("upsert word %q: %w", text, err)
		}
		if _, err := insertOcc.ExecContext(ctx, fileID, wordID, counts[text]); err != nil {
			if isUniqueConstraintErr(err) {
				return fmt.Errorf("word %q in file %d: %w", text, fileID, domain.ErrAlreadyExists)
			}
			return fmt.Errorf("insert occurrence %q: %w", text, err)
		}
	}
	return nil
}

const aggregateAllQuery = `
	SELECT w.id, w.text, COALESCE(SUM(o.count), 0), COUNT(o.id), 0,
		(SELECT COUNT(*) FROM files)
	FROM words w
	LEFT JOIN occurrences o ON o.word_id = w.id
	GROUP BY w.id, w.text
	ORDER BY w.id`

const aggregateFileQuery = `
	SELECT w.id, w.text, SUM(o.count), COUNT(o.id), cur.count,
		(SELECT COUNT(*) FROM files)
	FROM occurrences cur
	JOIN words w ON w.id = cur.word_id
	JOIN occurrences o ON o.word_id = w.id
	WHERE cur.file_id = ?
	GROUP BY w.id, w.text, cur.count
	ORDER BY w.id`

// Aggregates returns per-word totals ordered by word ID.
// A file scope restricts the rows to words present in that file.
// The file total is a column of the same statement, so every row sees
// the same snapshot as its counts.
func (s *Store) Aggregates(ctx context.Context, scope domain.StatsScope) ([]domain.WordAggregate, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if fileID, ok := scope.FileID(); ok {
		rows, err = s.db.QueryContext(ctx, aggregateFileQuery, fileID)
	} else {
		rows, err = s.db.QueryContext(ctx, aggregateAllQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("aggregating words: %w", err)
	}
	defer rows.Close()

	result := []domain.WordAggregate{}
	for rows.Next() {
		var agg domain.WordAggregate
		if err := rows.Scan(&agg.WordID, &agg.Text, &agg.TotalCount, &agg.FileCount, &agg.CountInFile, &agg.TotalFiles); err != nil {
			return nil, fmt.Errorf("scanning aggregate: %w", err)
		}
		result = append(result, agg)
	}
	return result, rows.Err()
}

// Occurrences returns the occurrence rows of one file ordered by word ID.
func (s *Store) Occurrences(ctx context.Context, fileID int64) ([]domain.Occurrence, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT file_id, word_id, count FROM occurrences WHERE file_id = ? ORDER BY word_id", fileID)
	if err != nil {
		return nil, fmt.Errorf("listing occurrences: %w", err)
	}
	defer rows.Close()

	var result []domain.Occurrence
	for rows.Next() {
		var o domain.Occurrence
		if err := rows.Scan(&o.FileID, &o.WordID, &o.Count); err != nil {
			return nil, fmt.Errorf("scanning occurrence: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

// ==================== Helpers ====================

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*domain.File, error) {
	var (
		file       domain.File
		uploadedAt string
	)
	if err := row.Scan(&file.ID, &file.BlobKey, &file.Name, &uploadedAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing uploaded_at %q: %w", uploadedAt, err)
	}
	file.UploadedAt = t
	return &file, nil
}

// validateCounts rejects empty tokens and non-positive counts.
func validateCounts(counts map[string]int) error {
	for text, count := range counts {
		if text == "" || count < 1 {
			return fmt.Errorf("%w: word %q with count %d", domain.ErrInvalidInput, text, count)
		}
	}
	return nil
}

// isUniqueConstraintErr reports whether err is a unique constraint violation.
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "constraint failed")
}

// isBusyErr reports whether err means another connection holds the lock.
func isBusyErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "sqlite_busy")
}
