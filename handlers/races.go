package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gopkg.in/yaml.v3"

	"github.com/padraicbc/classicsapi/models"
)

type raceSeed struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
	Date string `yaml:"date"`
	URL  string `yaml:"url"`
}

// SeedRaces upserts races from the configured YAML file, keyed by slug.
// Re-seeding updates name, date and source URL without touching startlists.
func (h *Handler) SeedRaces(c echo.Context) error {
	data, err := os.ReadFile(h.cfg.RacesFile)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var seeds []raceSeed
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	for _, s := range seeds {
		if s.Slug == "" || s.URL == "" {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("race %q: slug and url are required", s.Name))
		}
		if _, err := time.Parse("2006-01-02", s.Date); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("race %q: bad date %q", s.Slug, s.Date))
		}

		race := &models.Race{
			ID:        uuid.NewString(),
			Slug:      s.Slug,
			Name:      s.Name,
			Date:      s.Date,
			SourceURL: s.URL,
		}
		_, err := h.db.NewInsert().Model(race).
			On("CONFLICT (slug) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("date = EXCLUDED.date").
			Set("source_url = EXCLUDED.source_url").
			Exec(ctx)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Seeded %d races successfully", len(seeds)),
	})
}

// Races returns all tracked races in date order.
func (h *Handler) Races(c echo.Context) error {
	var races []models.Race
	err := h.db.NewSelect().Model(&races).
		OrderExpr("date ASC, slug ASC").
		Scan(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, races)
}

// startlistRow is a flat scan target for the startlist join query.
type startlistRow struct {
	ID         int        `bun:"id"`
	Dorsal     *int       `bun:"dorsal"`
	Team       string     `bun:"team"`
	RiderID    string     `bun:"rider_id"`
	RiderName  string     `bun:"name"`
	PcsID      *string    `bun:"pcs_id"`
	AmountEUR  *int       `bun:"amount_eur"`
	CapturedAt *time.Time `bun:"captured_at"`
}

type startlistJSON struct {
	ID         int        `json:"id"`
	Dorsal     *int       `json:"dorsal,omitempty"`
	Team       string     `json:"team"`
	RiderID    string     `json:"riderId"`
	RiderName  string     `json:"riderName"`
	PcsID      *string    `json:"pcsId,omitempty"`
	AmountEUR  *int       `json:"amountEUR,omitempty"`
	CapturedAt *time.Time `json:"capturedAt,omitempty"`
}

// Startlist returns a race's entries with rider identity and the latest
// captured price from the configured source.
func (h *Handler) Startlist(c echo.Context) error {
	slug := c.Param("slug")

	race := &models.Race{}
	err := h.db.NewSelect().Model(race).
		Where("slug = ?", slug).
		Scan(c.Request().Context())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "race not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var rows []startlistRow
	err = h.db.NewRaw(`
		SELECT se.id, se.dorsal, se.team, rd.id AS rider_id, rd.name, rd.pcs_id,
		       p.amount_eur, p.captured_at
		FROM startlist_entries se
		INNER JOIN riders rd ON rd.id = se.rider_id
		LEFT JOIN LATERAL (
			SELECT amount_eur, captured_at FROM prices
			WHERE rider_id = rd.id AND source = ?
			ORDER BY captured_at DESC
			LIMIT 1
		) p ON true
		WHERE se.race_id = ?
		ORDER BY se.dorsal ASC NULLS LAST, rd.name ASC`,
		h.cfg.PriceSource, race.ID,
	).Scan(c.Request().Context(), &rows)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	result := make([]startlistJSON, len(rows))
	for i, row := range rows {
		result[i] = startlistJSON(row)
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteRace removes a race and its startlist entries. Admin only – the sync
// pipeline itself never deletes.
func (h *Handler) DeleteRace(c echo.Context) error {
	if err := h.requireAdmin(c); err != nil {
		return err
	}
	slug := c.Param("slug")

	ctx := c.Request().Context()
	race := &models.Race{}
	err := h.db.NewSelect().Model(race).Where("slug = ?", slug).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "race not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM startlist_entries WHERE race_id = ?`, race.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM races WHERE id = ?`, race.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := tx.Commit(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	committed = true

	return c.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Race %s deleted successfully", slug),
	})
}
