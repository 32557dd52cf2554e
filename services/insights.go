package services

import (
	"sort"

	"polo-scraper/models"
	"polo-scraper/utils"
)

const topRatedCount = 5

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(listings []*models.Listing) *models.InsightReport {
	report := &models.InsightReport{
		TopRated:        []*models.Listing{},
		ListingsByStore: make(map[string]int),
		ListingsByBrand: make(map[string]int),
	}

	if len(listings) == 0 {
		return report
	}

	report.TotalListings = len(listings)
	report.MostExpensive = listings[0]
	report.Cheapest = listings[0]

	var total float64
	rated := make([]*models.Listing, 0, len(listings))
	for _, l := range listings {
		total += l.Price
		if l.Price > report.MostExpensive.Price {
			report.MostExpensive = l
		}
		if l.Price < report.Cheapest.Price {
			report.Cheapest = l
		}
		if l.Store != "" {
			report.ListingsByStore[l.Store]++
		}
		if l.Brand != "" {
			report.ListingsByBrand[l.Brand]++
		}
		if l.Rating > 0 {
			rated = append(rated, l)
		}
	}

	report.AveragePrice = round2(total / float64(len(listings)))
	report.MinPrice = round2(report.Cheapest.Price)
	report.MaxPrice = round2(report.MostExpensive.Price)

	// Top 5 by rating, more reviews first on ties
	sort.SliceStable(rated, func(i, j int) bool {
		if rated[i].Rating != rated[j].Rating {
			return rated[i].Rating > rated[j].Rating
		}
		return rated[i].Reviews > rated[j].Reviews
	})
	if len(rated) > topRatedCount {
		rated = rated[:topRatedCount]
	}
	report.TopRated = rated

	s.logger.Debug("[insights] %d listings across %d stores, avg $%.2f",
		report.TotalListings, len(report.ListingsByStore), report.AveragePrice)
	return report
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
