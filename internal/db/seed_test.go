package db

import (
	"io/fs"
	"testing"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/util"
)

func TestSeedProductsReferenceKnownCategories(t *testing.T) {
	known := make(map[string]bool, len(seedCategories))
	for _, c := range seedCategories {
		known[c.Name] = true
	}
	counts := make(map[string]int)
	for _, p := range seedProducts {
		if !known[p.Category] {
			t.Fatalf("product %q references unknown category %q", p.Name, p.Category)
		}
		if p.Price < 0 {
			t.Fatalf("product %q has negative price", p.Name)
		}
		counts[p.Category]++
	}
	if len(seedProducts) != 20 {
		t.Fatalf("expected 20 seed products, got %d", len(seedProducts))
	}
	if counts["Manga"] != 5 || counts["Novel"] != 6 || counts["Comic"] != 9 {
		t.Fatalf("unexpected per-category counts %v", counts)
	}
}

func TestSeedCategoryKeysAreUnique(t *testing.T) {
	seen := make(map[string]string)
	for _, c := range seedCategories {
		key := util.FoldKey(c.Name)
		if prev, ok := seen[key]; ok {
			t.Fatalf("categories %q and %q fold to the same key", prev, c.Name)
		}
		seen[key] = c.Name
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(migrationFS, "migrations/*.sql")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) == 0 || len(files)%2 != 0 {
		t.Fatalf("expected paired up/down migrations, got %v", files)
	}
}
