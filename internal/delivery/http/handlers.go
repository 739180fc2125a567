package http

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/skycast/widget/internal/domain"
	"github.com/skycast/widget/internal/service"
)

// NotFoundMessage is the error marker body value for an unknown city
const NotFoundMessage = "city not found"

// Handler contains all HTTP handlers
type Handler struct {
	lookups *service.LookupService
}

// NewHandler creates a new handler
func NewHandler(lookups *service.LookupService) *Handler {
	return &Handler{lookups: lookups}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	storage := "ok"
	if err := h.lookups.Health(c.Context()); err != nil {
		log.Printf("Health check: %v", err)
		storage = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "weather-backend",
		"storage": storage,
	})
}

// GetWeather returns the normalized record for ?city=, or the not-found marker
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	// c.Query aliases a request buffer that fasthttp reuses; the value outlives the handler
	city := utils.CopyString(strings.TrimSpace(c.Query("city")))
	if city == "" {
		return fiber.NewError(fiber.StatusBadRequest, "city is required")
	}

	record, err := h.lookups.Lookup(c.Context(), city)
	if err != nil {
		return lookupError(c, city, err)
	}

	return c.JSON(record)
}

// History window bounds in hours
const (
	defaultHistoryHours = 24
	maxHistoryHours     = 720
)

// GetHistory returns recent lookups within ?hours= (default 24, max 720)
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	data, err := h.lookups.History(c.Context(), historyWindow(c.QueryInt("hours", defaultHistoryHours)))
	if err != nil {
		log.Printf("History query failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch lookup history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}

// historyWindow falls back to the default for non-positive hours and caps the rest
func historyWindow(hours int) time.Duration {
	switch {
	case hours < 1:
		hours = defaultHistoryHours
	case hours > maxHistoryHours:
		hours = maxHistoryHours
	}
	return time.Duration(hours) * time.Hour
}

// lookupError maps fetch failures onto the local backend contract
func lookupError(c *fiber.Ctx, city string, err error) error {
	var (
		nf     *domain.NotFoundError
		remote *domain.RemoteError
		cfgErr *domain.ConfigurationError
	)
	switch {
	case errors.As(err, &nf),
		errors.As(err, &remote) && remote.StatusCode == http.StatusNotFound:
		return c.JSON(fiber.Map{"error": NotFoundMessage})
	case errors.As(err, &cfgErr):
		log.Printf("Lookup %q: %v", city, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Weather provider is not configured")
	default:
		log.Printf("Lookup %q: %v", city, err)
		return fiber.NewError(fiber.StatusBadGateway, "Failed to fetch weather data")
	}
}
