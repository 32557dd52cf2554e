package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"polo-scraper/models"
)

var csvHeader = []string{
	"id", "name", "brand", "price", "original_price", "store",
	"colors", "sizes", "rating", "reviews", "location", "image",
}

// CSVWriter writes listings as CSV rows to an underlying writer.
type CSVWriter struct {
	writer *csv.Writer
}

// NewCSVWriter wraps w and writes the header row.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	return &CSVWriter{writer: cw}, nil
}

// Write appends one row per listing. Colors and sizes are joined with "|".
func (c *CSVWriter) Write(listings []*models.Listing) error {
	for _, l := range listings {
		original := ""
		if l.OriginalPrice != nil {
			original = formatFloat(*l.OriginalPrice)
		}
		row := []string{
			l.ID,
			l.Name,
			l.Brand,
			formatFloat(l.Price),
			original,
			l.Store,
			strings.Join(l.Colors, "|"),
			strings.Join(l.Sizes, "|"),
			formatFloat(l.Rating),
			strconv.Itoa(l.Reviews),
			l.Location,
			l.Image,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}
	return nil
}

// Flush writes any buffered rows and reports a pending write error.
func (c *CSVWriter) Flush() error {
	c.writer.Flush()
	return c.writer.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
