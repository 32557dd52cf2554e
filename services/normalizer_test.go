package services

import (
	"strings"
	"testing"
	"time"

	"polo-scraper/models"
	"polo-scraper/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

var testProfile = models.SourceProfile{
	Store:            "eBay",
	Colors:           []string{"Navy", "White", "Black"},
	Sizes:            []string{"S", "M", "L", "XL"},
	PlaceholderImage: "https://placeholder/img.jpg",
}

func TestExtractBrand(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Polo Ralph Lauren Custom Slim Fit", "Ralph Lauren"},
		{"LACOSTE Men's L.12.12 Polo", "Lacoste"},
		{"nike dri-fit victory polo", "Nike"},
		{"Brooks Brothers Golden Fleece Polo", "Polo"},
		{"J.Crew Piqué Shirt", "J.Crew"},
		{"Plain Cotton Shirt", UnknownBrand},
		{"", UnknownBrand},
	}

	for _, tt := range tests {
		if got := ExtractBrand(tt.title); got != tt.want {
			t.Errorf("ExtractBrand(%q) = %q; want %q", tt.title, got, tt.want)
		}
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"4.5 out of 5 stars", 4.5},
		{"5", 5},
		{"Rated 3.8", 3.8},
		{"", DefaultRating},
		{"New", DefaultRating},
		{"12 ratings", DefaultRating},
	}

	for _, tt := range tests {
		if got := ParseRating(tt.raw, DefaultRating); got != tt.want {
			t.Errorf("ParseRating(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	raw := []*models.RawListing{
		{Source: "ebay", Title: "  Nike   Dri-FIT Polo ", RawPrice: "$55.00", ScrapedAt: time.Now()},
	}

	got := n.Normalize(raw, testProfile)
	if len(got) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(got))
	}
	l := got[0]
	if l.Name != "Nike Dri-FIT Polo" {
		t.Errorf("Name: got %q", l.Name)
	}
	if l.Brand != "Nike" {
		t.Errorf("Brand: got %q", l.Brand)
	}
	if l.Price != 55 {
		t.Errorf("Price: got %.2f", l.Price)
	}
	if l.Image != testProfile.PlaceholderImage {
		t.Errorf("Image: got %q, want placeholder", l.Image)
	}
	if l.Rating != DefaultRating {
		t.Errorf("Rating: got %.2f, want %.2f", l.Rating, DefaultRating)
	}
	if l.Store != "eBay" || len(l.Colors) != 3 || len(l.Sizes) != 4 {
		t.Errorf("profile defaults not applied: %+v", l)
	}
	if l.OriginalPrice != nil {
		t.Errorf("live listings never carry an original price")
	}
	if !strings.HasPrefix(l.ID, "ebay_") || !strings.HasSuffix(l.ID, "_0") {
		t.Errorf("ID: got %q", l.ID)
	}
}

func TestNormalizeTruncatesName(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	long := "Polo " + strings.Repeat("é", 150)
	got := n.Normalize([]*models.RawListing{{Source: "ebay", Title: long, RawPrice: "10"}}, testProfile)
	if l := len([]rune(got[0].Name)); l != maxNameLength {
		t.Errorf("name length: got %d runes, want %d", l, maxNameLength)
	}
}

func TestNormalizeStableIDs(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	batch := func() []*models.RawListing {
		return []*models.RawListing{
			{Source: "ebay", Title: "Lacoste Polo", RawPrice: "$95.00", ScrapedAt: time.Now()},
			{Source: "ebay", Title: "Lacoste Polo", RawPrice: "$95.00", ScrapedAt: time.Now()},
			{Source: "ebay", Title: "Lacoste Polo", RawPrice: "$96.00", ScrapedAt: time.Now()},
		}
	}

	first := n.Normalize(batch(), testProfile)
	time.Sleep(2 * time.Millisecond)
	second := n.Normalize(batch(), testProfile)

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("id %d changed between fetches: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
	if first[0].ID == first[1].ID {
		t.Errorf("duplicate records must get distinct ids, both %q", first[0].ID)
	}
	if first[0].ID == first[2].ID {
		t.Errorf("different prices must get distinct ids")
	}
}

func TestNormalizeReviews(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	n.intn = func(int) int { return 7 }
	p := testProfile
	p.ReviewsMin, p.ReviewsSpread = 50, 100

	got := n.Normalize([]*models.RawListing{
		{Source: "target", Title: "Polo A", RawPrice: "10"},
		{Source: "target", Title: "Polo B", RawPrice: "10", Reviews: "(1,204)"},
	}, p)

	if got[0].Reviews != 57 {
		t.Errorf("synthetic reviews: got %d, want 57", got[0].Reviews)
	}
	if got[1].Reviews != 1204 {
		t.Errorf("parsed reviews: got %d, want 1204", got[1].Reviews)
	}
}

func TestNormalizeDropsUnparsablePrice(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	got := n.Normalize([]*models.RawListing{{Source: "ebay", Title: "Polo", RawPrice: "N/A"}}, testProfile)
	if len(got) != 0 {
		t.Errorf("expected unparsable price to be dropped, got %d listings", len(got))
	}
}

func TestNormalizePassesPrebuiltThrough(t *testing.T) {
	n := NewNormalizer(newTestLogger())
	l := &models.Listing{ID: "fallback_1", Name: "Classic Polo", Price: 10, Colors: []string{"Navy"}, Sizes: []string{"M"}}
	got := n.Normalize([]*models.RawListing{{Source: "fallback", Prebuilt: l}}, models.SourceProfile{})
	if len(got) != 1 || got[0].ID != "fallback_1" {
		t.Fatalf("prebuilt listing not passed through: %+v", got)
	}
	got[0].Colors[0] = "Red"
	if l.Colors[0] != "Navy" {
		t.Errorf("normalizer must hand out copies of prebuilt listings")
	}
}
