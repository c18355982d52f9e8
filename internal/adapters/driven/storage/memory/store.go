// Package memory provides in-memory implementations of the storage and
// config ports. Tests use them in place of sqlite and the filesystem; the
// CLI falls back to the config store when no config file can be located.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/custodia-labs/wordstats/internal/core/domain"
	"github.com/custodia-labs/wordstats/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.FileStore = (*Store)(nil)
	_ driven.WordStore = (*Store)(nil)
)

type occurrenceKey struct {
	fileID int64
	wordID int64
}

// Store is an in-memory implementation of driven.FileStore and driven.WordStore.
type Store struct {
	mu          sync.RWMutex
	files       map[int64]domain.File
	words       map[string]int64
	wordText    map[int64]string
	occurrences map[occurrenceKey]int
	nextFileID  int64
	nextWordID  int64
	now         func() time.Time
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		files:       make(map[int64]domain.File),
		words:       make(map[string]int64),
		wordText:    make(map[int64]string),
		occurrences: make(map[occurrenceKey]int),
		now:         time.Now,
	}
}

// CreateFile stores file and its occurrences atomically.
func (s *Store) CreateFile(_ context.Context, file *domain.File, counts map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := validateCounts(counts); err != nil {
		return err
	}

	s.nextFileID++
	file.ID = s.nextFileID
	file.UploadedAt = s.now().UTC()
	s.files[file.ID] = *file
	s.ingestLocked(file.ID, counts)
	return nil
}

// GetFile retrieves a file by ID.
func (s *Store) GetFile(_ context.Context, id int64) (*domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	file, ok := s.files[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &file, nil
}

// ListFiles returns all files ordered by ID.
func (s *Store) ListFiles(_ context.Context) ([]domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	files := make([]domain.File, 0, len(s.files))
	for _, f := range s.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

// CountFiles returns the number of files.
func (s *Store) CountFiles(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files), nil
}

// DeleteFile removes a file and its occurrences.
func (s *Store) DeleteFile(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.files, id)
	for key := range s.occurrences {
		if key.fileID == id {
			delete(s.occurrences, key)
		}
	}
	return nil
}

// PutFile stores a file row as is, without occurrences.
// It exists so tests can build rows the upload path never produces,
// such as a file without content.
func (s *Store) PutFile(file domain.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if file.ID > s.nextFileID {
		s.nextFileID = file.ID
	}
	s.files[file.ID] = file
}

// Ingest records counts for an existing file.
func (s *Store) Ingest(_ context.Context, fileID int64, counts map[string]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.files[fileID]; !ok {
		return domain.ErrNotFound
	}
	if err := validateCounts(counts); err != nil {
		return err
	}
	for key := range s.occurrences {
		if key.fileID == fileID {
			return fmt.Errorf("file %d: %w", fileID, domain.ErrAlreadyExists)
		}
	}
	s.ingestLocked(fileID, counts)
	return nil
}

// ingestLocked writes occurrences. Caller must hold the write lock.
func (s *Store) ingestLocked(fileID int64, counts map[string]int) {
	texts := make([]string, 0, len(counts))
	for text := range counts {
		texts = append(texts, text)
	}
	sort.Strings(texts)

	for _, text := range texts {
		count := counts[text]
		wordID, ok := s.words[text]
		if !ok {
			s.nextWordID++
			wordID = s.nextWordID
			s.words[text] = wordID
			s.wordText[wordID] = text
		}
		s.occurrences[occurrenceKey{fileID: fileID, wordID: wordID}] = count
	}
}

// Aggregates returns per-word totals ordered by word ID.
func (s *Store) Aggregates(_ context.Context, scope domain.StatsScope) ([]domain.WordAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scopeID, scoped := scope.FileID()
	byWord := make(map[int64]*domain.WordAggregate, len(s.wordText))
	if !scoped {
		for id, text := range s.wordText {
			byWord[id] = &domain.WordAggregate{WordID: id, Text: text}
		}
	}

	for key := range s.occurrences {
		if scoped && key.fileID == scopeID {
			byWord[key.wordID] = &domain.WordAggregate{WordID: key.wordID, Text: s.wordText[key.wordID]}
		}
	}

	for key, count := range s.occurrences {
		agg, ok := byWord[key.wordID]
		if !ok {
			continue
		}
		agg.TotalCount += count
		agg.FileCount++
		if scoped && key.fileID == scopeID {
			agg.CountInFile = count
		}
	}

	result := make([]domain.WordAggregate, 0, len(byWord))
	for _, agg := range byWord {
		agg.TotalFiles = len(s.files)
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WordID < result[j].WordID })
	return result, nil
}

// Occurrences returns the occurrence rows of one file ordered by word ID.
func (s *Store) Occurrences(_ context.Context, fileID int64) ([]domain.Occurrence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Occurrence //nolint:prealloc // size unknown
	for key, count := range s.occurrences {
		if key.fileID == fileID {
			result = append(result, domain.Occurrence{FileID: fileID, WordID: key.wordID, Count: count})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].WordID < result[j].WordID })
	return result, nil
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
