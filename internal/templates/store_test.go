package templates

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"dayflow/internal/types"
)

const testCatalog = `{
  "templates": [
    {"id": "tb-1", "subcategory": "day-sections", "ordering_pattern": "timebox",
     "example": ["Morning", "9:00am - 10:00am: deep work", "Afternoon", "1:00pm - 2:00pm: email", "Evening", "7:00pm - 8:00pm: reading"]},
    {"id": "tb-2", "subcategory": "day-sections", "ordering_pattern": "timebox",
     "example": ["Morning", "8:00am - 9:30am: writing"]},
    {"id": "alt-tb", "subcategory": "day-sections", "ordering_pattern": ["alternating", "timebox"],
     "example": ["Morning", "hard task", "easy task"]},
    {"id": "tb-alt", "subcategory": "day-sections", "ordering_pattern": ["timebox", "alternating"],
     "example": ["Morning", "other order"]},
    {"id": "prio-tb", "subcategory": "priority", "ordering_pattern": "timebox",
     "example": ["High Priority", "ship release"]}
  ]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	return path
}

func TestRetrieveExactMatching(t *testing.T) {
	store := NewStore(writeCatalog(t, testCatalog), nil)

	got := store.Retrieve("day-sections", types.SinglePattern("timebox"))
	if len(got) != 2 {
		t.Fatalf("expected 2 single-timebox matches, got %d", len(got))
	}
	for _, tmpl := range got {
		if tmpl.Subcategory != "day-sections" {
			t.Errorf("wrong subcategory leaked in: %+v", tmpl)
		}
		if !tmpl.Pattern.Equal(types.SinglePattern("timebox")) {
			t.Errorf("pattern shape mismatch leaked in: %+v", tmpl)
		}
	}
}

func TestRetrieveCompoundOrderMatters(t *testing.T) {
	store := NewStore(writeCatalog(t, testCatalog), nil)

	got := store.Retrieve("day-sections", types.CompoundPattern("alternating", "timebox"))
	if len(got) != 1 || got[0].ID != "alt-tb" {
		t.Fatalf("compound [alternating timebox] should match only alt-tb, got %v", got)
	}

	got = store.Retrieve("day-sections", types.CompoundPattern("timebox", "alternating"))
	if len(got) != 1 || got[0].ID != "tb-alt" {
		t.Fatalf("reversed compound should match only tb-alt, got %v", got)
	}
}

func TestRetrieveUnknownInputs(t *testing.T) {
	store := NewStore(writeCatalog(t, testCatalog), nil)
	if got := store.Retrieve("garbage", types.SinglePattern("nope")); len(got) != 0 {
		t.Errorf("garbage query should return nothing, got %v", got)
	}
}

func TestRetrieveCapsResults(t *testing.T) {
	catalog := `{"templates": [`
	for i := 0; i < 8; i++ {
		if i > 0 {
			catalog += ","
		}
		catalog += `{"id": "x", "subcategory": "day-sections", "ordering_pattern": "timebox", "example": ["a"]}`
	}
	catalog += `]}`

	store := NewStore(writeCatalog(t, catalog), nil)
	if got := store.Retrieve("day-sections", types.SinglePattern("timebox")); len(got) != MaxResults {
		t.Errorf("expected %d results, got %d", MaxResults, len(got))
	}
}

func TestCatalogCacheIdempotence(t *testing.T) {
	store := NewStore(writeCatalog(t, testCatalog), nil)

	first := store.Catalog()
	second := store.Catalog()
	if first != second {
		t.Error("sequential accesses must return the identical cached catalog")
	}

	store.Invalidate()
	third := store.Catalog()
	if third == first {
		t.Error("invalidation must force a fresh load")
	}
	if len(third.Templates) != len(first.Templates) {
		t.Errorf("reload changed content: %d vs %d templates",
			len(third.Templates), len(first.Templates))
	}
}

func TestMissingAndMalformedCatalog(t *testing.T) {
	missing := NewStore(filepath.Join(t.TempDir(), "nope.json"), nil)
	if c := missing.Catalog(); len(c.Templates) != 0 {
		t.Errorf("missing file should yield empty catalog, got %d", len(c.Templates))
	}
	if got := missing.Retrieve("day-sections", types.SinglePattern("timebox")); len(got) != 0 {
		t.Errorf("retrieval against empty catalog should be empty, got %v", got)
	}

	malformed := NewStore(writeCatalog(t, "{not json"), nil)
	if c := malformed.Catalog(); len(c.Templates) != 0 {
		t.Errorf("malformed file should yield empty catalog, got %d", len(c.Templates))
	}
}

func TestConcurrentFirstAccess(t *testing.T) {
	store := NewStore(writeCatalog(t, testCatalog), nil)

	var wg sync.WaitGroup
	results := make([]*Catalog, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = store.Catalog()
		}()
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent first accesses must all see the same load")
		}
	}
}
