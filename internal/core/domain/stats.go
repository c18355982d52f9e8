package domain

// StatsScope selects between global statistics and statistics confined
// to one file. The zero value is the global scope.
type StatsScope struct {
	fileID int64
	scoped bool
}

// AllFiles returns the global scope.
func AllFiles() StatsScope {
	return StatsScope{}
}

// ForFile returns a scope confined to the words of one file.
func ForFile(id int64) StatsScope {
	return StatsScope{fileID: id, scoped: true}
}

// FileID returns the scoped file and whether a file context is present.
func (s StatsScope) FileID() (int64, bool) {
	return s.fileID, s.scoped
}

// WordAggregate is the raw per-word aggregate read from storage.
type WordAggregate struct {
	WordID int64
	Text   string

	// TotalCount is the sum of counts over every file.
	TotalCount int

	// FileCount is the number of distinct files containing the word.
	FileCount int

	// CountInFile is the count within the scoped file, 0 without a scope.
	CountInFile int

	// TotalFiles is the number of files when the aggregate was read. It
	// comes from the same read as FileCount, so FileCount <= TotalFiles.
	TotalFiles int
}

// WordStats is the statistics view of one word.
type WordStats struct {
	Text               string  `json:"text"`
	TotalCount         int     `json:"total_count"`
	FileCount          int     `json:"file_count"`
	FilePercentage     float64 `json:"file_percentage"`
	CountInCurrentFile int     `json:"count_in_current_file"`
}

// FilePercentage returns fileCount/totalFiles as a percentage.
// It is 0 when there are no files.
func FilePercentage(fileCount, totalFiles int) float64 {
	if totalFiles <= 0 {
		return 0.0
	}
	return float64(fileCount) / float64(totalFiles) * 100
}

// NewWordStats derives the statistics view from an aggregate.
func NewWordStats(agg WordAggregate) WordStats {
	return WordStats{
		Text:               agg.Text,
		TotalCount:         agg.TotalCount,
		FileCount:          agg.FileCount,
		FilePercentage:     FilePercentage(agg.FileCount, agg.TotalFiles),
		CountInCurrentFile: agg.CountInFile,
	}
}
