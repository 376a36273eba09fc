package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"

	"github.com/padraicbc/classicsapi/models"
	"github.com/padraicbc/classicsapi/pricematch"
)

// SeedPrices upserts price rows from the reviewed price-seed YAML produced by
// the matchprices batch. One row per (rider, source): re-seeding refreshes
// the amount and capture time.
func (h *Handler) SeedPrices(c echo.Context) error {
	data, err := os.ReadFile(h.cfg.PricesFile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var rows []pricematch.PriceRow
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	created, updated := 0, 0
	for _, row := range rows {
		existing := &models.Price{}
		err := h.db.NewSelect().Model(existing).
			Where("rider_id = ?", row.RiderID).
			Where("source = ?", row.Source).
			Limit(1).
			Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			price := &models.Price{
				RiderID:    row.RiderID,
				Source:     row.Source,
				AmountEUR:  row.AmountEUR,
				CapturedAt: time.Now(),
			}
			if _, err := h.db.NewInsert().Model(price).Exec(ctx); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			created++
		case err != nil:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		default:
			_, err := h.db.NewUpdate().Model((*models.Price)(nil)).
				Set("amount_eur = ?", row.AmountEUR).
				Set("captured_at = ?", time.Now()).
				Where("id = ?", existing.ID).
				Exec(ctx)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
			updated++
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Seeded prices successfully",
		"created": created,
		"updated": updated,
		"total":   len(rows),
	})
}

// Prices returns all captured prices with their riders, highest first.
func (h *Handler) Prices(c echo.Context) error {
	var prices []models.Price
	err := h.db.NewSelect().Model(&prices).
		Relation("Rider").
		Order("amount_eur DESC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, prices)
}
