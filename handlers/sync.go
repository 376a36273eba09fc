package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/classicsapi/syncer"
)

// SyncRaces runs one full synchronization pass and returns its report.
// Per-race failures are inside the report, not an HTTP error; a pass already
// in flight yields 409.
func (h *Handler) SyncRaces(c echo.Context) error {
	report, err := h.sync.SyncAll(c.Request().Context())
	if err != nil {
		if errors.Is(err, syncer.ErrInProgress) {
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, report)
}
