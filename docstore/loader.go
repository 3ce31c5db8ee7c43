package docstore

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/poiesic/priorart/core"
)

// DefaultPattern matches the USPTO application batch files this tool is
// normally pointed at.
const DefaultPattern = "patents_ipa*.json"

// Loader aggregates patent JSON batch files from a data directory into a
// single in-memory Collection.
type Loader struct {
	dataDir        string
	pattern        string
	criticalFilter bool
	logger         *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithPattern sets the glob pattern used to select source files inside the
// data directory. Default is DefaultPattern.
func WithPattern(pattern string) LoaderOption {
	return func(l *Loader) error {
		if pattern == "" {
			return ErrPatternRequired
		}
		l.pattern = pattern
		return nil
	}
}

// WithCriticalFilter drops records missing any critical text field after
// aggregation. Off by default; incomplete records index fine, they just
// produce zero-scoring vectors.
func WithCriticalFilter(enabled bool) LoaderOption {
	return func(l *Loader) error {
		l.criticalFilter = enabled
		return nil
	}
}

// NewLoader creates a loader rooted at dataDir.
func NewLoader(dataDir string, opts ...LoaderOption) (*Loader, error) {
	if dataDir == "" {
		return nil, ErrDataDirRequired
	}

	l := &Loader{
		dataDir: dataDir,
		pattern: DefaultPattern,
		logger:  slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// DataDir returns the directory the loader reads from.
func (l *Loader) DataDir() string {
	return l.dataDir
}

// Load reads every matching file and aggregates their records, files in
// name order and records in file order. Unreadable or malformed files are
// logged and skipped. A directory with no matching files yields an empty
// collection, not an error.
func (l *Loader) Load() (Collection, error) {
	paths, err := filepath.Glob(filepath.Join(l.dataDir, l.pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		l.logger.Warn("no patent files found", "dir", l.dataDir, "pattern", l.pattern)
		return Collection{}, nil
	}

	docs := Collection{}
	missingID := 0
	for _, path := range paths {
		records, err := readBatch(path)
		if err != nil {
			l.logger.Error("skipping unreadable patent file", "file", path, "err", err)
			continue
		}

		for _, rec := range records {
			if core.ValidateDocument(rec) != nil {
				missingID++
			}
		}

		docs = append(docs, records...)
		l.logger.Info("loaded patent file", "file", filepath.Base(path), "records", len(records))
	}

	if missingID > 0 {
		l.logger.Warn("records without document numbers kept, lookups will report them as Unknown", "count", missingID)
	}

	if l.criticalFilter {
		kept, dropped := docs.FilterComplete()
		l.logger.Info("filtered incomplete records", "kept", len(kept), "dropped", dropped)
		docs = kept
	}

	l.logger.Info("patent corpus loaded", "documents", len(docs), "files", len(paths))
	return docs, nil
}

// readBatch decodes one source file. The top level must be a JSON array of
// records; anything else is malformed.
func readBatch(path string) ([]core.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []core.Document
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
