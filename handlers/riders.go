package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/classicsapi/models"
)

// riderRow is a flat scan target for the rider listing query.
type riderRow struct {
	ID             string     `bun:"id"`
	Name           string     `bun:"name"`
	PcsID          *string    `bun:"pcs_id"`
	Team           *string    `bun:"team"`
	Nationality    *string    `bun:"nationality"`
	AmountEUR      *int       `bun:"amount_eur"`
	CapturedAt     *time.Time `bun:"captured_at"`
	StartlistCount int        `bun:"startlist_count"`
}

type riderJSON struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	PcsID          *string    `json:"pcsId,omitempty"`
	Team           *string    `json:"team,omitempty"`
	Nationality    *string    `json:"nationality,omitempty"`
	AmountEUR      *int       `json:"amountEUR,omitempty"`
	CapturedAt     *time.Time `json:"capturedAt,omitempty"`
	StartlistCount int        `json:"startlistCount"`
}

// Riders returns all canonical riders with their latest price from the
// configured source and their startlist-entry count, in name order.
func (h *Handler) Riders(c echo.Context) error {
	var rows []riderRow
	err := h.db.NewRaw(`
		SELECT rd.id, rd.name, rd.pcs_id, rd.team, rd.nationality,
		       p.amount_eur, p.captured_at,
		       (SELECT count(*) FROM startlist_entries se WHERE se.rider_id = rd.id) AS startlist_count
		FROM riders rd
		LEFT JOIN LATERAL (
			SELECT amount_eur, captured_at FROM prices
			WHERE rider_id = rd.id AND source = ?
			ORDER BY captured_at DESC
			LIMIT 1
		) p ON true
		ORDER BY rd.name ASC`,
		h.cfg.PriceSource,
	).Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result := make([]riderJSON, len(rows))
	for i, row := range rows {
		result[i] = riderJSON(row)
	}
	return c.JSON(http.StatusOK, result)
}

// RiderCount returns the number of canonical riders.
func (h *Handler) RiderCount(c echo.Context) error {
	count, err := h.db.NewSelect().Model((*models.Rider)(nil)).Count(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]int{"count": count})
}

// RiderPrices returns one rider's price history, newest first.
func (h *Handler) RiderPrices(c echo.Context) error {
	riderID := c.Param("id")

	var prices []models.Price
	err := h.db.NewSelect().Model(&prices).
		Where("rider_id = ?", riderID).
		Order("captured_at DESC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, prices)
}
