package services

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"polo-scraper/models"
	"polo-scraper/scraper"
	"polo-scraper/utils"
)

const (
	UnknownBrand  = "Unknown Brand"
	DefaultRating = 4.0
	maxNameLength = 100
)

// Brands is matched in order against listing titles; the first hit wins.
var Brands = []string{
	"Ralph Lauren",
	"Lacoste",
	"Nike",
	"Adidas",
	"Tommy Hilfiger",
	"Calvin Klein",
	"Polo",
	"Brooks Brothers",
	"J.Crew",
	"Banana Republic",
}

var (
	defaultColors = []string{"Navy", "White", "Black"}
	defaultSizes  = []string{"S", "M", "L", "XL"}

	// ratingRegexp captures the first decimal number in free text
	ratingRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
	// reviewsRegexp captures a review count such as "1,204"
	reviewsRegexp = regexp.MustCompile(`\d[\d,]*`)
)

// Normalizer maps raw source records into canonical Listings.
type Normalizer struct {
	logger *utils.Logger
	intn   func(n int) int
}

// NewNormalizer creates a Normalizer with the given logger.
func NewNormalizer(logger *utils.Logger) *Normalizer {
	return &Normalizer{logger: logger, intn: rand.Intn}
}

// Normalize converts one source's batch. Ids are content-derived, so the
// same title and price from the same source map to the same id on every
// fetch; repeats within a batch get an increasing ordinal suffix.
func (n *Normalizer) Normalize(raw []*models.RawListing, profile models.SourceProfile) []*models.Listing {
	seen := make(map[string]int)
	result := make([]*models.Listing, 0, len(raw))

	for _, r := range raw {
		if r.Prebuilt != nil {
			l := r.Prebuilt.Clone()
			if l.OriginalPrice != nil && *l.OriginalPrice <= l.Price {
				l.OriginalPrice = nil
			}
			result = append(result, l)
			continue
		}

		price, ok := scraper.ParsePrice(r.RawPrice)
		if !ok {
			n.logger.Debug("[normalizer] Dropping %s record with unparsable price %q", r.Source, r.RawPrice)
			continue
		}

		title := normaliseText(r.Title)
		token := contentToken(r.Source, title, price)
		ordinal := seen[token]
		seen[token]++

		result = append(result, n.normalize(r, profile, title, price, token, ordinal))
	}
	return result
}

func (n *Normalizer) normalize(r *models.RawListing, p models.SourceProfile, title string, price float64, token string, ordinal int) *models.Listing {
	image := strings.TrimSpace(r.Image)
	if image == "" {
		image = p.PlaceholderImage
	}

	defaultRating := p.DefaultRating
	if defaultRating == 0 {
		defaultRating = DefaultRating
	}

	location := normaliseText(r.Location)
	if location == "" {
		location = p.DefaultLocation
	}

	return &models.Listing{
		ID:       r.Source + "_" + token + "_" + strconv.Itoa(ordinal),
		Name:     truncate(title, maxNameLength),
		Brand:    ExtractBrand(title),
		Price:    price,
		Image:    image,
		Store:    p.Store,
		Colors:   orDefault(p.Colors, defaultColors),
		Sizes:    orDefault(p.Sizes, defaultSizes),
		Rating:   ParseRating(r.Rating, defaultRating),
		Reviews:  n.reviews(r.Reviews, p),
		Location: location,
	}
}

func (n *Normalizer) reviews(raw string, p models.SourceProfile) int {
	if match := reviewsRegexp.FindString(raw); match != "" {
		if v, err := strconv.Atoi(strings.ReplaceAll(match, ",", "")); err == nil {
			return v
		}
	}
	if p.ReviewsSpread > 0 {
		return p.ReviewsMin + n.intn(p.ReviewsSpread)
	}
	return p.ReviewsMin
}

// ExtractBrand returns the first known brand contained in title,
// case-insensitively, or UnknownBrand.
func ExtractBrand(title string) string {
	lower := strings.ToLower(title)
	for _, b := range Brands {
		if strings.Contains(lower, strings.ToLower(b)) {
			return b
		}
	}
	return UnknownBrand
}

// ParseRating extracts the first decimal number from text. Missing,
// unparsable or out-of-range ratings give fallback.
func ParseRating(text string, fallback float64) float64 {
	match := ratingRegexp.FindString(text)
	if match == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || v < 0 || v > 5 {
		return fallback
	}
	return v
}

// contentToken derives a short stable token from what identifies a listing.
func contentToken(source, title string, price float64) string {
	name := source + "|" + title + "|" + strconv.FormatFloat(price, 'f', -1, 64)
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(name))
	return strings.ReplaceAll(u.String(), "-", "")[:12]
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		values = fallback
	}
	return append([]string(nil), values...)
}
