package server

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"polo-scraper/models"
	"polo-scraper/services"
	"polo-scraper/storage"
	"polo-scraper/utils"
)

// PoloService is the behaviour the handlers need from the query layer.
type PoloService interface {
	ListAll(ctx context.Context, filter models.Filter) []*models.Listing
	GetByID(ctx context.Context, id string) (*models.Listing, error)
	Search(ctx context.Context, text string) []*models.Listing
	Insights(ctx context.Context, filter models.Filter) *models.InsightReport
	CacheStats() models.CacheStats
}

type PoloHandler struct {
	service PoloService
	logger  *utils.Logger
	now     func() time.Time
}

func NewPoloHandler(service PoloService, logger *utils.Logger) *PoloHandler {
	return &PoloHandler{service: service, logger: logger, now: time.Now}
}

// ListPolos - GET /api/polos
func (h *PoloHandler) ListPolos(c *fiber.Ctx) error {
	return c.JSON(h.service.ListAll(c.UserContext(), filterFromQuery(c)))
}

// ExportPolos - GET /api/polos/export
func (h *PoloHandler) ExportPolos(c *fiber.Ctx) error {
	listings := h.service.ListAll(c.UserContext(), filterFromQuery(c))

	var buf bytes.Buffer
	w, err := storage.NewCSVWriter(&buf)
	if err == nil {
		err = w.Write(listings)
	}
	if err == nil {
		err = w.Flush()
	}
	if err != nil {
		h.logger.Error("[server] CSV export failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Export failed"})
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="polos.csv"`)
	return c.Send(buf.Bytes())
}

// PoloInsights - GET /api/polos/insights
func (h *PoloHandler) PoloInsights(c *fiber.Ctx) error {
	return c.JSON(h.service.Insights(c.UserContext(), filterFromQuery(c)))
}

// GetPolo - GET /api/polos/:id
func (h *PoloHandler) GetPolo(c *fiber.Ctx) error {
	polo, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Polo not found"})
	}
	if err != nil {
		h.logger.Error("[server] Fetching polo %q failed: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch polo details"})
	}
	return c.JSON(polo)
}

// SearchPolos - GET /api/search
func (h *PoloHandler) SearchPolos(c *fiber.Ctx) error {
	return c.JSON(h.service.Search(c.UserContext(), c.Query("q")))
}

// Health - GET /api/health
func (h *PoloHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":     "OK",
		"timestamp":  h.now().UTC().Format("2006-01-02T15:04:05.000Z"),
		"cacheStats": h.service.CacheStats(),
	})
}

// filterFromQuery reads search, brand, minPrice and maxPrice. Unparsable
// numbers fall back to the defaults.
func filterFromQuery(c *fiber.Ctx) models.Filter {
	f := models.DefaultFilter()
	f.Search = c.Query("search")
	f.Brand = c.Query("brand")
	f.MinPrice = queryFloat(c, "minPrice", models.DefaultMinPrice)
	f.MaxPrice = queryFloat(c, "maxPrice", models.DefaultMaxPrice)
	return f.Normalize()
}

func queryFloat(c *fiber.Ctx, key string, fallback float64) float64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return v
}
