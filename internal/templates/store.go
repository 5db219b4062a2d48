// Package templates provides the process-wide store of example schedule
// fragments used for retrieval-augmented prompting. The catalog is a JSON
// document loaded lazily and cached for the process lifetime; retrieval is
// exact matching on subcategory and ordering pattern.
package templates

import (
	"encoding/json"
	"os"
	"sync"
	"sync/atomic"

	"dayflow/internal/types"

	"go.uber.org/zap"
)

// MaxResults caps how many templates one retrieval returns.
const MaxResults = 5

// Template is one read-only example schedule fragment.
type Template struct {
	ID          string           `json:"id"`
	Subcategory string           `json:"subcategory"`
	Pattern     types.PatternKey `json:"ordering_pattern"`
	Example     []string         `json:"example"`
}

// Catalog is the parsed backing document. Immutable after publication.
type Catalog struct {
	Templates []Template `json:"templates"`
}

// Store caches the parsed catalog. Reads of a populated cache take no lock;
// the mutex serializes cache population and invalidation only, so at most
// one load ever runs and hits on a warm cache stay cheap.
type Store struct {
	path string
	log  *zap.Logger

	mu      sync.Mutex
	catalog atomic.Pointer[Catalog]
}

// NewStore creates a store backed by the JSON catalog file at path.
func NewStore(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{path: path, log: log}
}

// Catalog returns the cached catalog, loading it on first access. A missing
// or malformed backing file yields an empty catalog, never an error:
// retrieval simply finds no matches.
func (s *Store) Catalog() *Catalog {
	if c := s.catalog.Load(); c != nil {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.catalog.Load(); c != nil {
		return c
	}

	c := s.load()
	s.catalog.Store(c)
	return c
}

// Invalidate clears the cache so the next access reloads from disk.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.catalog.Store(nil)
	s.mu.Unlock()
}

// Retrieve returns up to MaxResults templates whose subcategory equals
// subcategory and whose ordering pattern equals pattern exactly, including
// shape (single vs compound) and element order. Never errors.
func (s *Store) Retrieve(subcategory string, pattern types.PatternKey) []Template {
	var out []Template
	for _, t := range s.Catalog().Templates {
		if t.Subcategory != subcategory {
			continue
		}
		if !t.Pattern.Equal(pattern) {
			continue
		}
		out = append(out, t)
		if len(out) == MaxResults {
			break
		}
	}
	return out
}

func (s *Store) load() *Catalog {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Warn("template catalog unreadable, using empty catalog",
			zap.String("path", s.path), zap.Error(err))
		return &Catalog{Templates: []Template{}}
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		s.log.Warn("template catalog malformed, using empty catalog",
			zap.String("path", s.path), zap.Error(err))
		return &Catalog{Templates: []Template{}}
	}
	if c.Templates == nil {
		c.Templates = []Template{}
	}

	s.log.Debug("template catalog loaded",
		zap.String("path", s.path), zap.Int("templates", len(c.Templates)))
	return &c
}
