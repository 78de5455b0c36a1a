package redis

import (
	"testing"
	"time"

	"github.com/njprem/Bookstore_APP_BackEnd/internal/domain"
)

func TestCacheKeyFoldsSearch(t *testing.T) {
	if cacheKey("  MÁNGA ") != cacheKey("manga") {
		t.Fatalf("expected equivalent searches to share a key")
	}
	if cacheKey("") != categoryKeyPrefix {
		t.Fatalf("unexpected key for empty search %q", cacheKey(""))
	}
}

func TestCachedCategoryRoundTripKeepsNameKey(t *testing.T) {
	desc := "Japanese comics"
	in := domain.Category{ID: 7, Name: "Manga", NameKey: "manga", Description: &desc, CreatedAt: time.Unix(1700000000, 0).UTC()}
	out := fromDomain(in).toDomain()
	if out.ID != in.ID || out.Name != in.Name || out.NameKey != in.NameKey || !out.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("round trip lost data: %+v", out)
	}
	if out.Description == nil || *out.Description != desc {
		t.Fatalf("expected description to survive")
	}
}
