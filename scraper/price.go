package scraper

import (
	"regexp"
	"strconv"
)

var (
	// nonPriceRegexp matches everything that cannot be part of a decimal price
	nonPriceRegexp = regexp.MustCompile(`[^0-9.]`)
	// leadingNumberRegexp takes the longest leading decimal, so "12.9920.00"
	// (a "$12.99 to $20.00" range once stripped) reads as 12.992
	leadingNumberRegexp = regexp.MustCompile(`^(?:\d+(?:\.\d*)?|\.\d+)`)
)

// ParsePrice strips all non-numeric, non-decimal-point characters from text
// and parses the leading decimal. ok is false when nothing numeric remains.
func ParsePrice(text string) (price float64, ok bool) {
	match := leadingNumberRegexp.FindString(nonPriceRegexp.ReplaceAllString(text, ""))
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
