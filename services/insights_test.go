package services

import (
	"testing"

	"polo-scraper/models"
)

func sampleListings() []*models.Listing {
	return []*models.Listing{
		{ID: "1", Name: "Classic Polo", Brand: "Ralph Lauren", Store: "eBay", Price: 89.50, Rating: 4.5, Reviews: 10},
		{ID: "2", Name: "Sport Polo", Brand: "Nike", Store: "eBay", Price: 50, Rating: 4.9, Reviews: 3},
		{ID: "3", Name: "Pique Polo", Brand: "Lacoste", Store: "Target", Price: 120, Rating: 4.2, Reviews: 70},
		{ID: "4", Name: "Club Polo", Brand: "Nike", Store: "Walmart", Price: 300, Rating: 4.2, Reviews: 150},
		{ID: "5", Name: "Basic Polo", Brand: UnknownBrand, Store: "Walmart", Price: 10.5, Rating: 0},
		{ID: "6", Name: "Golf Polo", Brand: "Adidas", Store: "Target", Price: 60, Rating: 4.0},
		{ID: "7", Name: "Knit Polo", Brand: "Polo", Store: "eBay", Price: 75, Rating: 3.9},
	}
}

func TestInsightCounts(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	if r.TotalListings != 7 {
		t.Errorf("TotalListings: got %d, want 7", r.TotalListings)
	}
	if r.ListingsByStore["eBay"] != 3 {
		t.Errorf("eBay count: got %d, want 3", r.ListingsByStore["eBay"])
	}
	if r.ListingsByBrand["Nike"] != 2 {
		t.Errorf("Nike count: got %d, want 2", r.ListingsByBrand["Nike"])
	}
}

func TestInsightPrices(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	wantAvg := 100.71
	if r.AveragePrice != wantAvg {
		t.Errorf("AveragePrice: got %.2f, want %.2f", r.AveragePrice, wantAvg)
	}
	if r.MinPrice != 10.5 {
		t.Errorf("MinPrice: got %.2f, want 10.50", r.MinPrice)
	}
	if r.MaxPrice != 300 {
		t.Errorf("MaxPrice: got %.2f, want 300", r.MaxPrice)
	}
	if r.MostExpensive == nil || r.MostExpensive.ID != "4" {
		t.Errorf("MostExpensive: got %+v, want id 4", r.MostExpensive)
	}
	if r.Cheapest == nil || r.Cheapest.ID != "5" {
		t.Errorf("Cheapest: got %+v, want id 5", r.Cheapest)
	}
}

func TestInsightTopRated(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(sampleListings())
	if len(r.TopRated) != 5 {
		t.Fatalf("TopRated len: got %d, want 5", len(r.TopRated))
	}
	want := []string{"2", "1", "4", "3", "6"}
	for i, id := range want {
		if r.TopRated[i].ID != id {
			t.Errorf("TopRated[%d]: got %s, want %s", i, r.TopRated[i].ID, id)
		}
	}
}

func TestInsightEmptyInput(t *testing.T) {
	svc := NewInsightService(newTestLogger())
	r := svc.Generate(nil)
	if r.TotalListings != 0 || r.MostExpensive != nil {
		t.Errorf("expected an empty report for empty input, got %+v", r)
	}
	if r.TopRated == nil {
		t.Errorf("TopRated should be an empty slice, not nil")
	}
}
