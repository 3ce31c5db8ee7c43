// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package priorart ties a patent document store to similarity search
// engines. Open loads a corpus from a data directory; NewEngine hands out
// independent TF-IDF engines over that corpus.
package priorart

import (
	"log/slog"

	"github.com/poiesic/priorart/docstore"
	"github.com/poiesic/priorart/search"
)

// Archive is a loaded patent corpus and the factory for engines over it.
type Archive struct {
	loader *docstore.Loader
	docs   docstore.Collection
	logger *slog.Logger
}

// ArchiveOption configures Open.
type ArchiveOption func(*archiveOptions)

type archiveOptions struct {
	logger     *slog.Logger
	pattern    string
	critFilter bool
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) ArchiveOption {
	return func(o *archiveOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPattern sets the glob pattern for source files inside the data
// directory. Default is docstore.DefaultPattern.
func WithPattern(pattern string) ArchiveOption {
	return func(o *archiveOptions) {
		o.pattern = pattern
	}
}

// WithCriticalFilter drops records missing any critical text field while
// loading.
func WithCriticalFilter(enabled bool) ArchiveOption {
	return func(o *archiveOptions) {
		o.critFilter = enabled
	}
}

// Open loads the patent corpus under dataDir. A directory with no matching
// files opens as an empty archive, not an error.
func Open(dataDir string, opts ...ArchiveOption) (*Archive, error) {
	// Apply options
	options := &archiveOptions{
		logger:  slog.Default(),
		pattern: docstore.DefaultPattern,
	}
	for _, opt := range opts {
		opt(options)
	}

	loader, err := docstore.NewLoader(dataDir,
		docstore.WithLogger(options.logger),
		docstore.WithPattern(options.pattern),
		docstore.WithCriticalFilter(options.critFilter))
	if err != nil {
		return nil, err
	}

	docs, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return &Archive{
		loader: loader,
		docs:   docs,
		logger: options.logger,
	}, nil
}

// Documents returns the loaded collection in corpus order.
func (a *Archive) Documents() docstore.Collection {
	return a.docs
}

// Coverage reports field coverage across the loaded collection.
func (a *Archive) Coverage() docstore.Coverage {
	return a.docs.Coverage()
}

// DataDir returns the directory the archive was loaded from.
func (a *Archive) DataDir() string {
	return a.loader.DataDir()
}

// Reload re-reads the data directory and replaces the in-memory
// collection. Engines created earlier keep their own snapshots; create a
// new engine to search reloaded data.
func (a *Archive) Reload() error {
	docs, err := a.loader.Load()
	if err != nil {
		return err
	}
	a.docs = docs
	return nil
}

// NewEngine creates an unbuilt similarity engine over the archive's
// current collection.
func (a *Archive) NewEngine(opts ...search.Option) (*search.Engine, error) {
	merged := append([]search.Option{search.WithLogger(a.logger)}, opts...)
	return search.NewEngine(a.docs, merged...)
}
