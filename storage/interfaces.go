package storage

import "polo-scraper/models"

// ListingStore is the interface any result cache backend must satisfy.
type ListingStore interface {
	Get(fingerprint string) ([]*models.Listing, bool)
	Put(fingerprint string, listings []*models.Listing)
	Find(match func(*models.Listing) bool) (*models.Listing, bool)
	Stats() models.CacheStats
}

// ListingWriter is the interface for exporting a listing set.
type ListingWriter interface {
	Write(listings []*models.Listing) error
	Flush() error
}
